package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mo-sami19/zynk/controllers"
	"github.com/mo-sami19/zynk/middleware"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// InitRouter wires the public surface. All content endpoints live under
// /v1; the health check stays at the root for container probes.
func InitRouter(c *controllers.Controller) *mux.Router {
	r := mux.NewRouter()

	r.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "zynk-gateway",
		})
	})).Methods(http.MethodGet)

	// CORS origins from CORS_ALLOWED_ORIGINS (comma-separated) plus defaults.
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	origins := []string{
		"https://zynk.sa", "https://www.zynk.sa",
		"http://localhost:3000", "http://localhost:8080", "http://127.0.0.1:3000",
	}
	if originsEnv != "" {
		for _, p := range strings.Split(originsEnv, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Accept-Language", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/v1").Subrouter()

	// Catch-all OPTIONS handler for CORS preflight.
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	// Write endpoints get a tighter limit than read traffic.
	writeLimiter := middleware.NewIPRateLimiter(30, time.Minute)

	api.Handle("/services", http.HandlerFunc(c.ListServices)).Methods(http.MethodGet)
	api.Handle("/services/{slug}", http.HandlerFunc(c.GetService)).Methods(http.MethodGet)

	api.Handle("/projects", http.HandlerFunc(c.ListProjects)).Methods(http.MethodGet)
	api.Handle("/projects/{slug}", http.HandlerFunc(c.GetProject)).Methods(http.MethodGet)

	api.Handle("/posts", http.HandlerFunc(c.ListPosts)).Methods(http.MethodGet)
	api.Handle("/posts/{slug}", http.HandlerFunc(c.GetPost)).Methods(http.MethodGet)

	api.Handle("/team", http.HandlerFunc(c.ListTeam)).Methods(http.MethodGet)
	api.Handle("/testimonials", http.HandlerFunc(c.ListTestimonials)).Methods(http.MethodGet)
	api.Handle("/pricing", http.HandlerFunc(c.ListPricing)).Methods(http.MethodGet)

	api.Handle("/partners", http.HandlerFunc(c.ListPartners)).Methods(http.MethodGet)
	api.Handle("/partners/types", http.HandlerFunc(c.GetPartnerTypes)).Methods(http.MethodGet)
	api.Handle("/partners/{slug}", http.HandlerFunc(c.GetPartner)).Methods(http.MethodGet)

	api.Handle("/settings", http.HandlerFunc(c.Settings)).Methods(http.MethodGet)
	api.Handle("/settings/{group}", http.HandlerFunc(c.SettingsGroup)).Methods(http.MethodGet)
	api.Handle("/seo/{type}/{slug}", http.HandlerFunc(c.Seo)).Methods(http.MethodGet)

	api.Handle("/contact", writeLimiter.Middleware(http.HandlerFunc(c.SubmitContact))).Methods(http.MethodPost)

	api.Handle("/chatbot", writeLimiter.Middleware(http.HandlerFunc(c.Chat))).Methods(http.MethodPost)
	api.Handle("/chatbot/rate", writeLimiter.Middleware(http.HandlerFunc(c.RateChat))).Methods(http.MethodPost)
	api.Handle("/chatbot/history/{session_id}", http.HandlerFunc(c.ChatHistory)).Methods(http.MethodGet)
	api.Handle("/chatbot/services", http.HandlerFunc(c.ChatbotServices)).Methods(http.MethodGet)

	return r
}
