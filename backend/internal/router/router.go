package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coursehub-dev/coursehub/backend/internal/setup"
	mw "github.com/coursehub-dev/coursehub/shared/middleware"
	"github.com/coursehub-dev/coursehub/shared/middleware/metrics"
)

// New creates and configures the mux router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	r.Use(handlers.CompressHandler)
	r.Use(metrics.Middleware)

	r.Use(handlers.CORS(
		handlers.AllowedOrigins([]string{deps.Config.Public.CorsOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-User-Id", "X-User-Name", "X-User-Avatar"}),
	))

	// JSON API only, so a strict CSP costs nothing
	r.Use(mw.SecurityHeadersWithCSP(false, "default-src 'none'; frame-ancestors 'none'"))
	r.Use(mw.Identity())

	// Wildcard OPTIONS handler so preflight requests don't 404
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/ws", h.ServeWs).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	community := api.PathPrefix("/community").Subrouter()
	community.HandleFunc("/trending", h.GetTrending).Methods("GET")
	community.HandleFunc("/activity", h.GetActivity).Methods("GET")
	community.HandleFunc("/dashboard", h.GetDashboard).Methods("GET")

	threads := api.PathPrefix("/threads").Subrouter()
	threads.HandleFunc("/{courseCode}", h.GetThread).Methods("GET")
	threads.HandleFunc("/{courseCode}/comments", h.ListComments).Methods("GET")
	threads.HandleFunc("/{courseCode}/comments", h.CreatePost).Methods("POST")
	threads.HandleFunc("/{courseCode}/comments/{commentId}/replies", h.CreateReply).Methods("POST")
	threads.HandleFunc("/{courseCode}/comments/{commentId}/like", h.ToggleLike).Methods("POST")

	return r
}
