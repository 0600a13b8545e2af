package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	catalogrepo "github.com/TheMiningKing/crypto-shopping-cart/internal/catalog/repository"
)

type ProductHandler struct {
	catalog catalogrepo.CatalogRepository
	timeout time.Duration
}

func NewProductHandler(catalog catalogrepo.CatalogRepository, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category := r.URL.Query().Get("category")

	var (
		products interface{}
		err      error
	)
	if category != "" {
		products, err = h.catalog.ListProductsByCategory(ctx, category)
	} else {
		products, err = h.catalog.ListProducts(ctx)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// GetProduct resolves the path segment as a friendly link first and falls
// back to the raw object id, matching the storefront's shareable URLs.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	key := chi.URLParam(r, "product")

	product, err := h.catalog.GetProductByFriendlyLink(ctx, key)
	if errors.Is(err, catalogrepo.ErrProductNotFound) {
		product, err = h.catalog.GetProductByID(ctx, key)
	}
	if err != nil {
		if errors.Is(err, catalogrepo.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	wallets, err := h.catalog.ListWallets(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load wallets")
		return
	}

	respondJSON(w, http.StatusOK, wallets)
}
