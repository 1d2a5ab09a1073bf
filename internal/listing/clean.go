package listing

import "go.mongodb.org/mongo-driver/bson"

// CleanNulls walks a decoded JSON/BSON value and drops map entries whose
// value is null, recursing into whatever remains. Sequence elements are
// recursed into but never filtered, so a null inside an array survives.
// That asymmetry is load-bearing: stored documents written by earlier
// versions of the portal rely on it.
func CleanNulls(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(bson.M, len(t))
		for k, val := range t {
			if val == nil {
				continue
			}
			out[k] = CleanNulls(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if val == nil {
				continue
			}
			out[k] = CleanNulls(val)
		}
		return out
	case bson.A:
		out := make(bson.A, len(t))
		for i, e := range t {
			out[i] = CleanNulls(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = CleanNulls(e)
		}
		return out
	default:
		return v
	}
}
