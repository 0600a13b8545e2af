package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	cartservice "github.com/TheMiningKing/crypto-shopping-cart/internal/cart/service"
	"github.com/TheMiningKing/crypto-shopping-cart/internal/cart/session"
	catalogrepo "github.com/TheMiningKing/crypto-shopping-cart/internal/catalog/repository"
)

type CartHandler struct {
	carts   *session.Manager
	ledger  *cartservice.Ledger
	catalog catalogrepo.CatalogRepository
	timeout time.Duration
}

func NewCartHandler(carts *session.Manager, ledger *cartservice.Ledger, catalog catalogrepo.CatalogRepository, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		ledger:  ledger,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Option    string `json:"option,omitempty"`
}

type SetCurrencyRequestDTO struct {
	Currency string `json:"currency"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cart, err := h.carts.LoadOrCreate(ctx, getSessionID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.catalog.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalogrepo.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load product")
		return
	}
	if req.Option != "" && !product.HasOption(req.Option) {
		respondError(w, http.StatusBadRequest, "invalid_option", "product does not offer that option")
		return
	}

	sessionID := getSessionID(r.Context())
	cart, err := h.carts.LoadOrCreate(ctx, sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}

	h.ledger.AddItem(cart, product.CartProduct(), req.Option)

	if err := h.carts.Save(ctx, sessionID, cart); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not save cart")
		return
	}

	respondJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	option := r.URL.Query().Get("option")

	sessionID := getSessionID(r.Context())
	cart, err := h.carts.LoadOrCreate(ctx, sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}

	h.ledger.RemoveItem(cart, productID, option)

	if err := h.carts.Save(ctx, sessionID, cart); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not save cart")
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// SetCurrency switches the cart's preferred display currency. Only currencies
// the vendor has a wallet for are accepted.
func (h *CartHandler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SetCurrencyRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Currency == "" {
		respondError(w, http.StatusBadRequest, "invalid_currency", "currency is required")
		return
	}

	if _, err := h.catalog.GetWalletByCurrency(ctx, req.Currency); err != nil {
		if errors.Is(err, catalogrepo.ErrWalletNotFound) {
			respondError(w, http.StatusBadRequest, "invalid_currency", "no wallet accepts that currency")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "could not verify currency")
		return
	}

	sessionID := getSessionID(r.Context())
	cart, err := h.carts.LoadOrCreate(ctx, sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}

	cart.PreferredCurrency = req.Currency
	h.ledger.RecalculateTotals(cart)

	if err := h.carts.Save(ctx, sessionID, cart); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not save cart")
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
