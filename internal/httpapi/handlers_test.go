package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"jobportal-api/internal/docstore"
	"jobportal-api/internal/images"
	"jobportal-api/internal/listing"
	"jobportal-api/internal/users"
)

// memStore backs the real services with per-collection maps so handler
// tests run the whole stack short of the database driver.
type memStore struct {
	colls map[string]map[string]bson.M
	seq   int
}

func newMemStore() *memStore {
	return &memStore{colls: map[string]map[string]bson.M{}}
}

func (m *memStore) coll(name string) map[string]bson.M {
	c, ok := m.colls[name]
	if !ok {
		c = map[string]bson.M{}
		m.colls[name] = c
	}
	return c
}

func (m *memStore) Get(_ context.Context, coll, id string) (bson.M, error) {
	doc, ok := m.coll(coll)[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return doc, nil
}

func (m *memStore) Set(_ context.Context, coll, id string, doc bson.M) error {
	m.coll(coll)[id] = doc
	return nil
}

func (m *memStore) Update(_ context.Context, coll, id string, fields bson.M) error {
	doc, ok := m.coll(coll)[id]
	if !ok {
		return docstore.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (m *memStore) Delete(_ context.Context, coll, id string) error {
	if _, ok := m.coll(coll)[id]; !ok {
		return docstore.ErrNotFound
	}
	delete(m.coll(coll), id)
	return nil
}

func (m *memStore) Insert(_ context.Context, coll string, doc bson.M) (string, error) {
	m.seq++
	id := fmt.Sprintf("doc-%d", m.seq)
	m.coll(coll)[id] = doc
	return id, nil
}

func (m *memStore) FindOneByField(_ context.Context, coll, field string, value any) (docstore.Doc, error) {
	for id, doc := range m.coll(coll) {
		if doc[field] == value {
			return docstore.Doc{ID: id, Data: doc}, nil
		}
	}
	return docstore.Doc{}, docstore.ErrNotFound
}

func (m *memStore) All(_ context.Context, coll string) ([]docstore.Doc, error) {
	out := make([]docstore.Doc, 0, len(m.coll(coll)))
	for id, doc := range m.coll(coll) {
		out = append(out, docstore.Doc{ID: id, Data: doc})
	}
	return out, nil
}

type stubImages struct {
	entry images.Entry
}

func (s stubImages) GetOrFetch(_ context.Context, _ string) (images.Entry, error) {
	return s.entry, nil
}

func newTestHandler() http.Handler {
	store := newMemStore()
	logger := zap.NewNop()
	deps := Deps{
		Listings: listing.NewService(store, logger),
		Users:    users.NewService(store, logger),
		Images: stubImages{entry: images.Entry{
			ImageURL: "https://img.example/banner.png",
			LogoURL:  "https://img.example/logo.png",
		}},
		Logger: logger,
	}
	return Chain(NewMux(deps), Cors, RequestID, Recover(logger), AccessLog(logger))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decoding response %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func sampleSubmit() map[string]any {
	return map[string]any{
		"company": map[string]any{"name": "Acme", "description": "d", "type": "Tech"},
		"roles": []map[string]any{{
			"title":                 "SWE",
			"description":           "build",
			"salaryRange":           "10-15L",
			"educationRequirements": map[string]any{},
			"technicalSkills":       []string{"Go"},
			"eligibleDepartments":   []string{"CS"},
			"interviewRounds":       []any{},
			"resources":             []any{},
			"contactEmail":          "a@b.com",
		}},
	}
}

func TestSubmitThenGetJob(t *testing.T) {
	h := newTestHandler()

	w, resp := doJSON(t, h, http.MethodPost, "/submit-data", sampleSubmit())
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d body = %s", w.Code, w.Body.String())
	}
	uid, _ := resp["uid"].(string)
	if uid == "" {
		t.Fatalf("no uid in response: %v", resp)
	}

	w, resp = doJSON(t, h, http.MethodGet, "/get-job/"+uid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get-job status = %d", w.Code)
	}
	data := resp["data"].(map[string]any)
	company := data["company"].(map[string]any)
	if company["name"] != "Acme" {
		t.Errorf("company name = %v", company["name"])
	}
	roles := data["roles"].([]any)
	if len(roles) != 1 {
		t.Fatalf("expected one role, got %d", len(roles))
	}
	if title := roles[0].(map[string]any)["title"]; title != "SWE" {
		t.Errorf("role title = %v", title)
	}

	// The unwrapped variant returns the same document without the data key.
	w, resp = doJSON(t, h, http.MethodGet, "/get-job-data/"+uid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get-job-data status = %d", w.Code)
	}
	if _, wrapped := resp["data"]; wrapped {
		t.Error("get-job-data must not wrap the document")
	}
	if resp["company"].(map[string]any)["name"] != "Acme" {
		t.Errorf("unwrapped company: %v", resp["company"])
	}
}

func TestGetDataFlattensRows(t *testing.T) {
	h := newTestHandler()

	_, resp := doJSON(t, h, http.MethodPost, "/submit-data", sampleSubmit())
	uid := resp["uid"].(string)

	w, resp := doJSON(t, h, http.MethodGet, "/get-data", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get-data status = %d", w.Code)
	}
	rows := resp["data"].([]any)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0].(map[string]any)
	if row["uid"] != uid || row["companyName"] != "Acme" || row["roles"] != "SWE" || row["salary"] != "10-15L" {
		t.Errorf("unexpected row: %v", row)
	}
}

func TestCheckCompany(t *testing.T) {
	h := newTestHandler()
	doJSON(t, h, http.MethodPost, "/submit-data", sampleSubmit())

	w, resp := doJSON(t, h, http.MethodPost, "/check-company", map[string]any{"companyName": "acme"})
	if w.Code != http.StatusOK {
		t.Fatalf("check status = %d", w.Code)
	}
	if resp["exists"] != true {
		t.Errorf("expected collision: %v", resp)
	}

	w, resp = doJSON(t, h, http.MethodPost, "/check-company", map[string]any{"companyName": "Other"})
	if w.Code != http.StatusOK {
		t.Fatalf("check status = %d", w.Code)
	}
	if resp["exists"] != false {
		t.Errorf("expected no collision: %v", resp)
	}
}

func TestUpdateJob(t *testing.T) {
	h := newTestHandler()

	_, resp := doJSON(t, h, http.MethodPost, "/submit-data", sampleSubmit())
	uid := resp["uid"].(string)

	w, _ := doJSON(t, h, http.MethodPut, "/update-job/"+uid, map[string]any{
		"data": map[string]any{
			"company": map[string]any{"name": "Acme", "description": "d2", "type": "Tech"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d body = %s", w.Code, w.Body.String())
	}

	_, resp = doJSON(t, h, http.MethodGet, "/get-job/"+uid, nil)
	company := resp["data"].(map[string]any)["company"].(map[string]any)
	if company["description"] != "d2" {
		t.Errorf("description not merged: %v", company)
	}

	w, _ = doJSON(t, h, http.MethodPut, "/update-job/unknown-uid", map[string]any{"data": map[string]any{}})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown uid status = %d, want 404", w.Code)
	}
}

func TestUpdateCompanyRequiresUID(t *testing.T) {
	h := newTestHandler()

	w, _ := doJSON(t, h, http.MethodPost, "/update-company", map[string]any{
		"company": map[string]any{"name": "X", "description": "d", "type": "T"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing uid status = %d, want 400", w.Code)
	}

	w, _ = doJSON(t, h, http.MethodPost, "/update-company", map[string]any{
		"uid":     "unknown",
		"company": map[string]any{"name": "X", "description": "d", "type": "T"},
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown uid status = %d, want 404", w.Code)
	}
}

func TestDeleteJob(t *testing.T) {
	h := newTestHandler()

	_, resp := doJSON(t, h, http.MethodPost, "/submit-data", sampleSubmit())
	uid := resp["uid"].(string)

	w, _ := doJSON(t, h, http.MethodDelete, "/job-delete/"+uid, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w, _ = doJSON(t, h, http.MethodGet, "/get-job/"+uid, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
	w, _ = doJSON(t, h, http.MethodDelete, "/job-delete/"+uid, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestSignupLoginFlow(t *testing.T) {
	h := newTestHandler()

	w, resp := doJSON(t, h, http.MethodPost, "/api/signup", map[string]any{"username": "alice", "password": "pw1"})
	if w.Code != http.StatusOK {
		t.Fatalf("signup status = %d", w.Code)
	}
	if resp["isAdmin"] != false || resp["isTempAdmin"] != false {
		t.Errorf("fresh signup flags: %v", resp)
	}

	w, _ = doJSON(t, h, http.MethodPost, "/api/signup", map[string]any{"username": "alice", "password": "pw1"})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup status = %d, want 409", w.Code)
	}

	w, resp = doJSON(t, h, http.MethodPost, "/api/login", map[string]any{"username": "alice", "password": "pw1"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d", w.Code)
	}
	if resp["isAdmin"] != false {
		t.Errorf("login flags: %v", resp)
	}

	w, _ = doJSON(t, h, http.MethodPost, "/api/login", map[string]any{"username": "alice", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", w.Code)
	}
}

func TestUpdateAdminFlow(t *testing.T) {
	h := newTestHandler()
	doJSON(t, h, http.MethodPost, "/api/signup", map[string]any{"username": "alice", "password": "pw1"})

	w, _ := doJSON(t, h, http.MethodPost, "/api/update-user-admin", map[string]any{"username": "nobody", "isAdmin": true})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", w.Code)
	}

	w, _ = doJSON(t, h, http.MethodPost, "/api/update-user-admin", map[string]any{"username": "alice", "isAdmin": true})
	if w.Code != http.StatusOK {
		t.Fatalf("update admin status = %d", w.Code)
	}

	w, resp := doJSON(t, h, http.MethodGet, "/api/get-users", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get-users status = %d", w.Code)
	}
	entries := resp["users"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected one user, got %d", len(entries))
	}
	entry := entries[0].(map[string]any)
	if entry["isAdmin"] != true {
		t.Errorf("admin flag not reflected: %v", entry)
	}
	if _, leaked := entry["password"]; leaked {
		t.Error("password must not appear in the user list")
	}
}

func TestCompanyImage(t *testing.T) {
	h := newTestHandler()

	w, resp := doJSON(t, h, http.MethodGet, "/company-image/Acme", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("company-image status = %d", w.Code)
	}
	if resp["imageurl"] != "https://img.example/banner.png" || resp["logourl"] != "https://img.example/logo.png" {
		t.Errorf("unexpected pair: %v", resp)
	}
}

func TestRootAndRouting(t *testing.T) {
	h := newTestHandler()

	w, resp := doJSON(t, h, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("root status = %d", w.Code)
	}
	if resp["message"] != "Welcome to the Job Portal API!" {
		t.Errorf("welcome message: %v", resp)
	}

	w, _ = doJSON(t, h, http.MethodGet, "/no-such-route", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", w.Code)
	}

	req := httptest.NewRequest(http.MethodDelete, "/submit-data", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("wrong method status = %d, want 405", rec.Code)
	}
}

func TestMalformedJSON(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/submit-data", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestCorsPreflight(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodOptions, "/submit-data", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 204 {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("allow-origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

// recordingImages captures the names the handler asked for.
type recordingImages struct {
	entry images.Entry
	names []string
}

func (s *recordingImages) GetOrFetch(_ context.Context, name string) (images.Entry, error) {
	s.names = append(s.names, name)
	return s.entry, nil
}

func TestCompanyImageDecodesEscapedNames(t *testing.T) {
	stub := &recordingImages{entry: images.Entry{ImageURL: "b", LogoURL: "l"}}
	mux := NewMux(Deps{Images: stub, Logger: zap.NewNop()})

	for _, tc := range []struct {
		path string
		want string
	}{
		{"/company-image/Acme", "Acme"},
		{"/company-image/AT%26T", "AT&T"},
		{"/company-image/100%25%20Design", "100% Design"},
	} {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tc.path, rec.Code)
		}
	}

	if len(stub.names) != 3 || stub.names[0] != "Acme" || stub.names[1] != "AT&T" || stub.names[2] != "100% Design" {
		t.Errorf("decoded names = %v", stub.names)
	}
}

func TestMuxWithoutLogger(t *testing.T) {
	mux := NewMux(Deps{})

	req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", rec.Code)
	}
}

func TestSearchKeyRoutes(t *testing.T) {
	h := newTestHandler()

	// No key in the body never reaches the keychain.
	w, _ := doJSON(t, h, http.MethodPost, "/api/search-key", map[string]any{"key": "  "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty key status = %d, want 400", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/search-key", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET search-key status = %d, want 405", rec.Code)
	}
}
