package httpapi

import (
	"net/http"
	"strings"

	"jobportal-api/internal/secrets"
)

// SecretsHandler manages the image-search API key in the OS keychain.
// A key stored here is picked up on the next startup; the running search
// client keeps the key it was built with.
type SecretsHandler struct {
	Account string
}

type setSearchKeyReq struct {
	Key string `json:"key"`
}

func (h SecretsHandler) SetSearchKey(w http.ResponseWriter, r *http.Request) {
	var req setSearchKeyReq
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Key) == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "key is required")
		return
	}

	if err := secrets.SetSearchAPIKey(h.Account, req.Key); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "failed to store key: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteSearchKey(w http.ResponseWriter, r *http.Request) {
	if err := secrets.DeleteSearchAPIKey(h.Account); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "failed to delete key: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
