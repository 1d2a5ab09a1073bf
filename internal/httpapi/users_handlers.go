package httpapi

import "net/http"

type UsersHandler struct {
	Users UserService
}

func (h UsersHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	id, err := h.Users.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{
		"message":     "Signup successful",
		"username":    id.Username,
		"isAdmin":     id.IsAdmin,
		"isTempAdmin": id.IsTempAdmin,
	})
}

func (h UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	id, err := h.Users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{
		"message":     "Login successful",
		"username":    id.Username,
		"isAdmin":     id.IsAdmin,
		"isTempAdmin": id.IsTempAdmin,
	})
}

func (h UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Users.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"users": entries})
}

func (h UsersHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var req UpdateAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	if err := h.Users.SetAdmin(r.Context(), req.Username, req.IsAdmin); err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{
		"message":  "User updated successfully",
		"username": req.Username,
		"isAdmin":  req.IsAdmin,
	})
}

func (h UsersHandler) UpdateTempAdmin(w http.ResponseWriter, r *http.Request) {
	var req UpdateTempAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	if err := h.Users.SetTempAdmin(r.Context(), req.Username, req.IsTempAdmin); err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{
		"message":     "User updated successfully",
		"username":    req.Username,
		"isTempAdmin": req.IsTempAdmin,
	})
}
