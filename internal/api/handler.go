package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fuelpos/fuelpos/internal/pos"
	"github.com/fuelpos/fuelpos/internal/store"
)

type ctxKey string

const ctxToken ctxKey = "token"

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store      *store.Store
	pos        *pos.Service
	sessionTTL time.Duration
}

// New constructs a Handler.
func New(st *store.Store, posSvc *pos.Service, sessionTTLDays int) *Handler {
	return &Handler{
		store:      st,
		pos:        posSvc,
		sessionTTL: time.Duration(sessionTTLDays) * 24 * time.Hour,
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Post("/auth/setup", h.authSetup)
		r.Post("/auth/login", h.authLogin)

		r.Group(func(pr chi.Router) {
			pr.Use(h.authMiddleware)

			pr.Post("/auth/logout", h.authLogout)

			pr.Get("/bootstrap", h.bootstrap)

			pr.Get("/products", h.listProducts)
			pr.Put("/products", h.saveProducts)

			pr.Post("/customers", h.createCustomer)
			pr.Get("/customers", h.listOrFindCustomers)
			pr.Get("/customers/{cardNumber}", h.getCustomer)
			pr.Delete("/customers/{cardNumber}", h.deleteCustomer)

			pr.Post("/sales", h.recordSale)
			pr.Post("/redemptions", h.redeemPoints)

			pr.Get("/redeemables", h.listRedeemables)
			pr.Put("/redeemables", h.saveRedeemables)

			pr.Put("/settings/points", h.savePointsSettings)

			pr.Get("/notifications", h.listNotifications)
			pr.Post("/notifications", h.createNotification)
			pr.Delete("/notifications/{id}", h.deleteNotification)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondWorkflowError maps a workflow failure to a response. Domain failures
// surface their reason with a 400 (the lookup endpoints handle their own
// 404s); anything else is an infrastructure failure that must not leak
// internal detail.
func respondWorkflowError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if pos.KindOf(err) != "" {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
	respondError(w, http.StatusInternalServerError, fallback)
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
