package httpapi

import (
	"net/http"
	"strings"
)

type ListingsHandler struct {
	Listings ListingService
}

// Submit creates a whole listing (company + roles) and returns its uid.
func (h ListingsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitDataRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	uid, err := h.Listings.Create(r.Context(), req.Company, req.Roles)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{"message": "Data received successfully", "uid": uid})
}

// CheckCompany reports whether the candidate name (or any alias) collides
// with an existing listing.
func (h ListingsHandler) CheckCompany(w http.ResponseWriter, r *http.Request) {
	var req CheckCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	check, err := h.Listings.CheckName(r.Context(), req.CompanyName, req.NamesToCheck)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, check)
}

// List emits the flattened browse rows, one per role.
func (h ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Listings.Summaries(r.Context())
	if err != nil {
		writeServiceError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"data": rows})
}

// GetByPath serves /get-job/{uid}: the stored document wrapped in a data
// key.
func (h ListingsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	uid := strings.TrimPrefix(r.URL.Path, "/get-job/")
	if uid == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "missing uid")
		return
	}

	doc, err := h.Listings.Get(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"data": doc})
}

// GetDataByPath serves /get-job-data/{uid}: same document, no wrapper.
// Two routes survive because two callers expect different shapes.
func (h ListingsHandler) GetDataByPath(w http.ResponseWriter, r *http.Request) {
	uid := strings.TrimPrefix(r.URL.Path, "/get-job-data/")
	if uid == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "missing uid")
		return
	}

	doc, err := h.Listings.Get(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, doc)
}

// UpdateByPath serves PUT /update-job/{uid}: partial-field merge.
func (h ListingsHandler) UpdateByPath(w http.ResponseWriter, r *http.Request) {
	uid := strings.TrimPrefix(r.URL.Path, "/update-job/")
	if uid == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "missing uid")
		return
	}

	var req UpdateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	if err := h.Listings.Patch(r.Context(), uid, req.Data); err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"message": "Data updated successfully", "uid": uid})
}

// UpdateCompany serves POST /update-company: full rewrite of company,
// optional rewrite of roles.
func (h ListingsHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req UpdateCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}
	if req.UID == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "UID is required")
		return
	}
	if req.Company == nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "company is required")
		return
	}

	if err := h.Listings.Replace(r.Context(), req.UID, *req.Company, req.Roles); err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"success": true, "message": "Company data updated successfully"})
}

// DeleteByPath serves DELETE /job-delete/{uid}: permanent removal.
func (h ListingsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	uid := strings.TrimPrefix(r.URL.Path, "/job-delete/")
	if uid == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "missing uid")
		return
	}

	if err := h.Listings.Delete(r.Context(), uid); err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"message": "Data deleted successfully"})
}
