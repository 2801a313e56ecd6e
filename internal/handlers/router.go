package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/festiloc/festiloc-server/internal/cache"
	"github.com/festiloc/festiloc-server/internal/catalog"
	"github.com/festiloc/festiloc-server/internal/chat"
	"github.com/festiloc/festiloc-server/internal/config"
	"github.com/festiloc/festiloc-server/internal/database"
	"github.com/festiloc/festiloc-server/internal/middleware"
	"github.com/festiloc/festiloc-server/internal/seo"
	"github.com/festiloc/festiloc-server/internal/storage"
	ws "github.com/festiloc/festiloc-server/internal/websocket"
)

// Deps collects everything the HTTP layer needs. Checker, Keywords and Chat
// may be nil when the corresponding API key is not configured; their routes
// then answer 503.
type Deps struct {
	DB       *database.DB
	Cfg      *config.Config
	Cache    *cache.Cache
	Catalog  *catalog.Service
	Checker  *seo.RankChecker
	Ranks    *seo.RankStore
	Keywords *seo.Generator
	Chat     *chat.Service
	Hub      *ws.Hub
	Storage  *storage.Store
}

// Router wraps the mux router and the service dependencies
type Router struct {
	*mux.Router
	Deps
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(deps Deps) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		Deps:   deps,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")

	// Public storefront API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/storefront", r.getStorefront).Methods("GET")
	api.HandleFunc("/products", r.listProducts).Methods("GET")
	api.HandleFunc("/products/{id}", r.getProduct).Methods("GET")
	api.HandleFunc("/products/{id}/similar", r.getSimilarProducts).Methods("GET")
	api.HandleFunc("/packages", r.listPackages).Methods("GET")
	api.HandleFunc("/packages/{id}", r.getPackage).Methods("GET")
	api.HandleFunc("/packages/{id}/quote.pdf", r.getPackageQuote).Methods("GET")
	api.HandleFunc("/realizations", r.listRealizations).Methods("GET")
	api.HandleFunc("/realizations/{id}", r.getRealization).Methods("GET")
	api.HandleFunc("/chat/{session}/history", r.getChatHistory).Methods("GET")

	// Chat widget websocket
	r.HandleFunc("/ws/chat", r.serveChatSocket)

	// Admin API (JWT protected)
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(middleware.Auth(deps.Cfg.JWTSecret))

	admin.HandleFunc("/products", r.createProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", r.updateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", r.deleteProduct).Methods("DELETE")

	admin.HandleFunc("/packages", r.createPackage).Methods("POST")
	admin.HandleFunc("/packages/{id}", r.updatePackage).Methods("PUT")
	admin.HandleFunc("/packages/{id}", r.deletePackage).Methods("DELETE")

	admin.HandleFunc("/realizations", r.createRealization).Methods("POST")
	admin.HandleFunc("/realizations/{id}", r.updateRealization).Methods("PUT")
	admin.HandleFunc("/realizations/{id}", r.deleteRealization).Methods("DELETE")

	admin.HandleFunc("/uploads", r.uploadImage).Methods("POST")

	admin.HandleFunc("/keywords", r.listKeywords).Methods("GET")
	admin.HandleFunc("/keywords", r.createKeyword).Methods("POST")
	admin.HandleFunc("/keywords/{id}", r.deleteKeyword).Methods("DELETE")
	admin.HandleFunc("/keywords/generate", r.generateKeywords).Methods("POST")

	admin.HandleFunc("/rankings", r.listRankings).Methods("GET")
	admin.HandleFunc("/rankings/check", r.checkRank).Methods("POST")
	admin.HandleFunc("/rankings/check-batch", r.checkRankBatch).Methods("POST")

	// Uploaded images
	if deps.Storage != nil {
		r.PathPrefix("/media/").Handler(
			http.StripPrefix("/media/", http.FileServer(http.Dir(deps.Storage.Root()))))
	}

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "festiloc-server",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// humanizeDBError rewrites recognized constraint violations for display;
// anything else passes through verbatim.
func humanizeDBError(err error) string {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "duplicate key"):
		return "Cette référence existe déjà."
	case strings.Contains(lower, "violates not-null"):
		return "Un champ obligatoire est manquant."
	default:
		return msg
	}
}
