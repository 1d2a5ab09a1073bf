package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"jobportal-api/internal/apperr"
	"jobportal-api/internal/docstore"
	"jobportal-api/internal/models"
)

// Collection holds one document per listing: company + roles + timestamps.
const Collection = "companies"

// Store is the slice of the document store the listing service needs.
type Store interface {
	Get(ctx context.Context, coll, id string) (bson.M, error)
	Set(ctx context.Context, coll, id string, doc bson.M) error
	Update(ctx context.Context, coll, id string, fields bson.M) error
	Delete(ctx context.Context, coll, id string) error
	All(ctx context.Context, coll string) ([]docstore.Doc, error)
}

type Service struct {
	store  Store
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// NameCheck is the duplicate-detection verdict.
type NameCheck struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message,omitempty"`
}

// SummaryRow is one flattened role of one listing, shaped for the browse
// table. Field names are part of the wire contract.
type SummaryRow struct {
	UID         string `json:"uid"`
	CompanyName string `json:"companyName"`
	Description string `json:"description"`
	CompanyType string `json:"companyType"`
	RoleTitle   string `json:"roles"`
	Salary      string `json:"salary"`
}

// Patch carries the fields a partial update may touch; nil means "leave
// the stored value alone".
type Patch struct {
	Company *models.Company `json:"company"`
	Roles   *[]models.Role  `json:"roles"`
}

// Create persists a whole new listing and returns its generated id.
// Duplicate detection is the caller's job (CheckName), not Create's.
func (s *Service) Create(ctx context.Context, company models.Company, roles []models.Role) (string, error) {
	if strings.TrimSpace(company.Name) == "" {
		return "", apperr.InvalidInput("company name is required", nil)
	}

	for i := range roles {
		roles[i].Normalize()
	}

	companyDoc, err := toDoc(company)
	if err != nil {
		return "", err
	}
	rolesArr, err := toArray(roles)
	if err != nil {
		return "", err
	}

	id := s.newID()
	now := s.now().UTC()
	doc := bson.M{
		"company":    companyDoc,
		"roles":      CleanNulls(rolesArr),
		"created_at": now,
		"updated_at": now,
	}

	if err := s.store.Set(ctx, Collection, id, doc); err != nil {
		return "", err
	}

	s.logger.Info("listing created",
		zap.String("uid", id),
		zap.String("company", company.Name),
		zap.Int("roles", len(roles)))
	return id, nil
}

// CheckName scans every listing for a name collision with the candidate
// name, or with the supplied aliases instead when there are any. Matching
// is case-insensitive and also catches the "Parent (Alias)" convention in
// either direction. First hit wins.
func (s *Service) CheckName(ctx context.Context, name string, aliases []string) (NameCheck, error) {
	candidates := []string{strings.ToLower(strings.TrimSpace(name))}
	if len(aliases) > 0 {
		candidates = candidates[:0]
		for _, a := range aliases {
			candidates = append(candidates, strings.ToLower(strings.TrimSpace(a)))
		}
	}

	docs, err := s.store.All(ctx, Collection)
	if err != nil {
		return NameCheck{}, err
	}

	for _, doc := range docs {
		existing := strings.ToLower(strings.TrimSpace(companyField(doc.Data, "name")))
		if existing == "" {
			continue
		}
		for _, cand := range candidates {
			if existing == cand {
				return NameCheck{Exists: true, Message: "Company already exists"}, nil
			}
			if strings.Contains(existing, "("+cand+")") {
				return NameCheck{Exists: true, Message: fmt.Sprintf("Company with '%s' already exists", cand)}, nil
			}
			if strings.Contains(cand, "("+existing+")") {
				return NameCheck{Exists: true, Message: fmt.Sprintf("Company with '%s' already exists", existing)}, nil
			}
			// Base-name rule: "Foo" collides with "Foo (Bar)" in either
			// direction, so the alias convention stays symmetric.
			if strings.HasPrefix(existing, cand+" (") || strings.HasPrefix(cand, existing+" (") {
				return NameCheck{Exists: true, Message: fmt.Sprintf("Company with '%s' already exists", cand)}, nil
			}
		}
	}

	return NameCheck{Exists: false}, nil
}

// Summaries flattens every listing into one row per role.
func (s *Service) Summaries(ctx context.Context) ([]SummaryRow, error) {
	docs, err := s.store.All(ctx, Collection)
	if err != nil {
		return nil, err
	}

	rows := make([]SummaryRow, 0, len(docs))
	for _, doc := range docs {
		base := SummaryRow{
			UID:         doc.ID,
			CompanyName: companyField(doc.Data, "name"),
			Description: truncate(companyField(doc.Data, "description"), 100),
			CompanyType: companyField(doc.Data, "type"),
		}
		for _, r := range rolesOf(doc.Data) {
			row := base
			row.RoleTitle = stringField(r, "title")
			row.Salary = stringField(r, "salaryRange")
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Get returns the stored document verbatim (the facade decides how to
// wrap it).
func (s *Service) Get(ctx context.Context, id string) (bson.M, error) {
	doc, err := s.store.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, apperr.NotFound("data not found", err)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Patch merges the supplied top-level fields into the stored listing and
// refreshes updated_at. Unknown ids are rejected, never created.
func (s *Service) Patch(ctx context.Context, id string, p Patch) error {
	fields := bson.M{"updated_at": s.now().UTC()}

	if p.Company != nil {
		doc, err := toDoc(*p.Company)
		if err != nil {
			return err
		}
		fields["company"] = CleanNulls(doc)
	}
	if p.Roles != nil {
		arr, err := toArray(*p.Roles)
		if err != nil {
			return err
		}
		fields["roles"] = CleanNulls(arr)
	}

	err := s.store.Update(ctx, Collection, id, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return apperr.NotFound("company not found", err)
	}
	return err
}

// Replace always rewrites company and updated_at; roles only when
// supplied.
func (s *Service) Replace(ctx context.Context, id string, company models.Company, roles *[]models.Role) error {
	companyDoc, err := toDoc(company)
	if err != nil {
		return err
	}
	fields := bson.M{
		"company":    CleanNulls(companyDoc),
		"updated_at": s.now().UTC(),
	}
	if roles != nil {
		arr, err := toArray(*roles)
		if err != nil {
			return err
		}
		fields["roles"] = CleanNulls(arr)
	}

	err = s.store.Update(ctx, Collection, id, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return apperr.NotFound("company not found", err)
	}
	return err
}

// Delete removes the listing permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return apperr.NotFound("company not found", err)
	}
	if err != nil {
		return err
	}
	s.logger.Info("listing deleted", zap.String("uid", id))
	return nil
}

// toDoc round-trips a typed value through JSON so the null-strip visitor
// can walk it generically. Optional pointer fields come out as nulls here
// and are removed by CleanNulls.
func toDoc(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func toArray(v any) ([]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var arr []any
	if err := json.Unmarshal(b, &arr); err != nil {
		return nil, err
	}
	if arr == nil {
		arr = []any{}
	}
	return arr, nil
}

// Stored documents come back with bson container types from the live
// store and plain JSON types from fresh writes; the walkers below accept
// both.
func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case bson.M:
		return t, true
	case map[string]any:
		return t, true
	default:
		return nil, false
	}
}

func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case bson.A:
		return t, true
	case []any:
		return t, true
	default:
		return nil, false
	}
}

func companyField(doc bson.M, field string) string {
	company, ok := asMap(doc["company"])
	if !ok {
		return ""
	}
	return stringField(company, field)
}

func rolesOf(doc bson.M) []map[string]any {
	arr, ok := asSlice(doc["roles"])
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, e := range arr {
		if m, ok := asMap(e); ok {
			out = append(out, m)
		}
	}
	return out
}

func stringField(m map[string]any, field string) string {
	s, _ := m[field].(string)
	return s
}

// truncate caps s at n runes and always appends the ellipsis, matching
// the browse table's historical rendering.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r) + "..."
}
