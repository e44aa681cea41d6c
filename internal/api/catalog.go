package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fuelpos/fuelpos/domain"
	"github.com/fuelpos/fuelpos/internal/store"
	"github.com/fuelpos/fuelpos/internal/validate"
)

// Products

type productPayload struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	PricePerUnit  float64 `json:"pricePerUnit"`
	Unit          string  `json:"unit"`
	PurchasePrice float64 `json:"purchasePrice"`
	Stock         float64 `json:"stock"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.Queries().ListProducts(r.Context())
	if err != nil {
		log.Printf("GET /api/products failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) saveProducts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Products []productPayload `json:"products"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "products must be an array")
		return
	}

	var products []domain.Product
	err := h.store.WithTx(r.Context(), func(q *store.Queries) error {
		for _, item := range req.Products {
			if item.Name == "" {
				return errProductName
			}
			category := item.Category
			if category == "" {
				category = store.DeriveCategory(item.Name)
			}
			unit := item.Unit
			if unit == "" {
				unit = "L"
			}
			err := q.UpsertProduct(r.Context(), domain.Product{
				Name:          item.Name,
				Category:      category,
				PricePerUnit:  item.PricePerUnit,
				Unit:          unit,
				PurchasePrice: item.PurchasePrice,
				Stock:         item.Stock,
			})
			if err != nil {
				return err
			}
		}
		var err error
		products, err = q.ListProducts(r.Context())
		return err
	})
	if errors.Is(err, errProductName) {
		respondError(w, http.StatusBadRequest, "Product name is required")
		return
	}
	if err != nil {
		log.Printf("PUT /api/products failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save products")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": products})
}

var (
	errProductName    = errors.New("product name is required")
	errRedeemableName = errors.New("redeemable name is required")
)

// Customers

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		CardNumber string `json:"cardNumber"`
		Mobile     string `json:"mobile"`
		Barcode    string `json:"barcode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.CardNumber == "" {
		respondError(w, http.StatusBadRequest, "name and cardNumber are required")
		return
	}

	card, err := validate.CardNumber(req.CardNumber)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	mobile, err := validate.Mobile(req.Mobile)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	barcode, err := validate.Barcode(req.Barcode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := h.store.Queries()
	if _, err := q.CustomerByCard(r.Context(), card); err == nil {
		respondError(w, http.StatusConflict, "cardNumber already exists")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("POST /api/customers failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to add customer")
		return
	}
	if barcode != nil {
		if _, err := q.CustomerByBarcode(r.Context(), *barcode); err == nil {
			respondError(w, http.StatusConflict, "barcode already exists")
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("POST /api/customers failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to add customer")
			return
		}
	}

	customer, err := q.CreateCustomer(r.Context(), req.Name, card, barcode, mobile)
	if err != nil {
		log.Printf("POST /api/customers failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to add customer")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"customer": customer})
}

func (h *Handler) listOrFindCustomers(w http.ResponseWriter, r *http.Request) {
	cardNumber := r.URL.Query().Get("cardNumber")
	barcode := r.URL.Query().Get("barcode")
	q := h.store.Queries()

	if cardNumber == "" && barcode == "" {
		customers, err := q.ListCustomers(r.Context())
		if err != nil {
			log.Printf("GET /api/customers failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Failed to load customers")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"customers": customers})
		return
	}

	var (
		customer domain.Customer
		err      error
	)
	if cardNumber != "" {
		var card string
		card, err = validate.CardNumber(cardNumber)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		customer, err = q.CustomerByCard(r.Context(), card)
	} else {
		normalized, verr := validate.Barcode(barcode)
		if verr != nil || normalized == nil {
			respondError(w, http.StatusBadRequest, "barcode must be 1-128 characters")
			return
		}
		customer, err = q.CustomerByBarcode(r.Context(), *normalized)
	}
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		log.Printf("GET /api/customers failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load customers")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"customer": customer})
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	card, err := validate.CardNumber(chi.URLParam(r, "cardNumber"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	customer, err := h.store.Queries().CustomerByCard(r.Context(), card)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		log.Printf("GET /api/customers/{cardNumber} failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load customer")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"customer": customer})
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	card, err := validate.CardNumber(chi.URLParam(r, "cardNumber"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	customer, err := h.store.Queries().DeleteCustomerByCard(r.Context(), card)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		log.Printf("DELETE /api/customers/{cardNumber} failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"customer": customer})
}

// Redeemables

func (h *Handler) listRedeemables(w http.ResponseWriter, r *http.Request) {
	redeemables, err := h.store.Queries().ListRedeemables(r.Context())
	if err != nil {
		log.Printf("GET /api/redeemables failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load redeemables")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"redeemables": redeemables})
}

func (h *Handler) saveRedeemables(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Redeemables []struct {
			Name           string `json:"name"`
			PointsRequired int64  `json:"pointsRequired"`
			Stock          int64  `json:"stock"`
		} `json:"redeemables"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "redeemables must be an array")
		return
	}

	var redeemables []domain.Redeemable
	err := h.store.WithTx(r.Context(), func(q *store.Queries) error {
		for _, item := range req.Redeemables {
			if item.Name == "" {
				return errRedeemableName
			}
			err := q.UpsertRedeemable(r.Context(), domain.Redeemable{
				Name:           item.Name,
				PointsRequired: item.PointsRequired,
				Stock:          item.Stock,
			})
			if err != nil {
				return err
			}
		}
		var err error
		redeemables, err = q.ListRedeemables(r.Context())
		return err
	})
	if errors.Is(err, errRedeemableName) {
		respondError(w, http.StatusBadRequest, "Redeemable name is required")
		return
	}
	if err != nil {
		log.Printf("PUT /api/redeemables failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save redeemables")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"redeemables": redeemables})
}

// Settings

func (h *Handler) savePointsSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Petrol *float64 `json:"petrol"`
		Diesel *float64 `json:"diesel"`
		Oil    *float64 `json:"oil"`
		Amount *float64 `json:"amount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries := []struct {
		key   string
		value *float64
	}{
		{"petrol", req.Petrol},
		{"diesel", req.Diesel},
		{"oil", req.Oil},
		{"amount", req.Amount},
	}
	for _, entry := range entries {
		if entry.value == nil {
			respondError(w, http.StatusBadRequest, "Invalid value for "+entry.key)
			return
		}
	}

	err := h.store.WithTx(r.Context(), func(q *store.Queries) error {
		for _, entry := range entries {
			if err := q.UpsertSetting(r.Context(), entry.key, *entry.value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("PUT /api/settings/points failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Notifications

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.store.Queries().ListNotifications(r.Context())
	if err != nil {
		log.Printf("GET /api/notifications failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load notifications")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

func (h *Handler) createNotification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" || req.Message == "" {
		respondError(w, http.StatusBadRequest, "title and message are required")
		return
	}
	notification, err := h.store.Queries().CreateNotification(r.Context(), req.Title, req.Message)
	if err != nil {
		log.Printf("POST /api/notifications failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create notification")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"notification": notification})
}

func (h *Handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if err := h.store.Queries().DeleteNotification(r.Context(), id); err != nil {
		log.Printf("DELETE /api/notifications failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete notification")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Bootstrap

func (h *Handler) bootstrap(w http.ResponseWriter, r *http.Request) {
	fail := func(err error) {
		log.Printf("GET /api/bootstrap failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load bootstrap data")
	}

	q := h.store.Queries()
	products, err := q.ListProducts(r.Context())
	if err != nil {
		fail(err)
		return
	}
	customers, err := q.ListCustomers(r.Context())
	if err != nil {
		fail(err)
		return
	}
	redeemables, err := q.ListRedeemables(r.Context())
	if err != nil {
		fail(err)
		return
	}
	settings, err := q.PointsSettings(r.Context())
	if err != nil {
		fail(err)
		return
	}
	sales, err := q.ListSaleRecords(r.Context())
	if err != nil {
		fail(err)
		return
	}
	notifications, err := q.ListNotifications(r.Context())
	if err != nil {
		fail(err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"products":      products,
		"customers":     customers,
		"redeemables":   redeemables,
		"settings":      settings,
		"sales":         sales,
		"notifications": notifications,
	})
}
