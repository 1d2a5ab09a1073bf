package httpapi

import (
	"net/http"
	"net/url"
	"strings"
)

type ImagesHandler struct {
	Images ImageService
}

// GetByPath serves /company-image/{name}: the cached banner/logo pair,
// computed on first request.
func (h ImagesHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	// The mux hands us URL.Path already decoded, so strip the prefix off
	// the raw path and decode exactly once. Names with a literal percent
	// sequence survive that way.
	name := strings.TrimPrefix(r.URL.EscapedPath(), "/company-image/")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if name == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "missing company name")
		return
	}

	entry, err := h.Images.GetOrFetch(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, entry)
}
