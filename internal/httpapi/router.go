package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// NewMux wires every route to its handler. main() wraps the result in the
// middleware chain.
func NewMux(d Deps) *http.ServeMux {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	lh := ListingsHandler{Listings: d.Listings}
	mux.HandleFunc("/submit-data", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Submit,
	}))
	mux.HandleFunc("/check-company", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.CheckCompany,
	}))
	mux.HandleFunc("/get-data", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.List,
	}))
	mux.HandleFunc("/get-job/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.GetByPath, // expects /get-job/{uid}
	}))
	mux.HandleFunc("/get-job-data/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.GetDataByPath,
	}))
	mux.HandleFunc("/update-job/", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: lh.UpdateByPath,
	}))
	mux.HandleFunc("/update-company", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.UpdateCompany,
	}))
	mux.HandleFunc("/job-delete/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: lh.DeleteByPath,
	}))

	uh := UsersHandler{Users: d.Users}
	mux.HandleFunc("/api/login", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: uh.Login,
	}))
	mux.HandleFunc("/api/signup", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: uh.Signup,
	}))
	mux.HandleFunc("/api/get-users", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: uh.List,
	}))
	mux.HandleFunc("/api/update-user-admin", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: uh.UpdateAdmin,
	}))
	mux.HandleFunc("/api/update-user-tempadmin", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: uh.UpdateTempAdmin,
	}))

	sh := SecretsHandler{Account: d.SearchKeyAccount}
	mux.HandleFunc("/api/search-key", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetSearchKey,
		http.MethodDelete: sh.DeleteSearchKey,
	}))

	ih := ImagesHandler{Images: d.Images}
	mux.HandleFunc("/company-image/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.GetByPath,
	}))

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"ok": true, "time": time.Now().Format(time.RFC3339)})
		},
	}))

	// ServeMux routes every unknown path here, so the welcome message is
	// root-only by hand.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			logger.Debug("route not found",
				zap.String("method", r.Method), zap.String("path", r.URL.Path))
			WriteError(w, r, http.StatusNotFound, "not_found", "route not found")
			return
		}
		writeJSON(w, map[string]any{"message": "Welcome to the Job Portal API!"})
	})

	return mux
}
