package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cartdomain "github.com/TheMiningKing/crypto-shopping-cart/internal/cart/domain"
	cartservice "github.com/TheMiningKing/crypto-shopping-cart/internal/cart/service"
	"github.com/TheMiningKing/crypto-shopping-cart/internal/cart/session"
	checkoutdomain "github.com/TheMiningKing/crypto-shopping-cart/internal/checkout/domain"
	checkoutservice "github.com/TheMiningKing/crypto-shopping-cart/internal/checkout/service"
	ordersdomain "github.com/TheMiningKing/crypto-shopping-cart/internal/orders/domain"
	ordersrepo "github.com/TheMiningKing/crypto-shopping-cart/internal/orders/repository"
)

// EventPublisher announces placed orders to downstream consumers.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *ordersdomain.Order) error
}

type CheckoutHandler struct {
	carts       *session.Manager
	ledger      *cartservice.Ledger
	coordinator *checkoutservice.Coordinator
	archive     ordersrepo.OrderRepository
	events      EventPublisher
	log         *zap.Logger
	timeout     time.Duration
}

func NewCheckoutHandler(
	carts *session.Manager,
	ledger *cartservice.Ledger,
	coordinator *checkoutservice.Coordinator,
	archive ordersrepo.OrderRepository,
	events EventPublisher,
	log *zap.Logger,
	timeout time.Duration,
) *CheckoutHandler {
	return &CheckoutHandler{
		carts:       carts,
		ledger:      ledger,
		coordinator: coordinator,
		archive:     archive,
		events:      events,
		log:         log,
		timeout:     timeout,
	}
}

type CheckoutResponseDTO struct {
	Status        string `json:"status"`
	OrderID       string `json:"order_id,omitempty"`
	Paid          bool   `json:"paid"`
	BuyerNotified bool   `json:"buyer_notified"`
	CartCleared   bool   `json:"cart_cleared"`
}

type CheckoutRejectedDTO struct {
	Status string            `json:"status"`
	Errors []string          `json:"errors"`
	Fields map[string]string `json:"fields"`
}

type ReceiptDTO struct {
	Order  cartdomain.Order            `json:"order"`
	Items  []cartdomain.LineItem       `json:"items"`
	Totals map[string]cartdomain.Total `json:"totals"`
}

// POST /cart/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := getSessionID(r.Context())
	cart, err := h.carts.LoadOrCreate(ctx, sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}

	// Submit may clear the cart, so the archive snapshot is taken up front.
	items := append([]cartdomain.LineItem(nil), cart.Items...)
	totals := make(map[string]cartdomain.Total, len(cart.Totals))
	for code, total := range cart.Totals {
		totals[code] = total
	}
	currency := cart.PreferredCurrency

	result, err := h.coordinator.Submit(ctx, cart, fields)
	if err != nil {
		if errors.Is(err, checkoutservice.ErrEmptyCart) {
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty, nothing to check out")
			return
		}
		if !errors.Is(err, checkoutservice.ErrNotifyFail) {
			h.log.Error("checkout submit", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "internal_error", "could not complete checkout")
			return
		}
		// The order was never delivered, so it must not linger on the cart
		// where the receipt view would treat it as placed. Items stay for
		// retry.
		cart.Order = nil
		if saveErr := h.carts.Save(ctx, sessionID, cart); saveErr != nil {
			h.log.Error("cart save after failed notification", zap.Error(saveErr))
		}
		h.log.Error("order notification", zap.Error(err))
		respondError(w, http.StatusBadGateway, "notification_failed", "order notification failed")
		return
	}

	if result.Status == checkoutdomain.StatusRejected {
		messages := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			messages = append(messages, e.Message)
		}
		respondJSON(w, http.StatusUnprocessableEntity, CheckoutRejectedDTO{
			Status: result.Status.String(),
			Errors: messages,
			Fields: result.Fields,
		})
		return
	}

	if err := h.carts.Save(ctx, sessionID, cart); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not save cart")
		return
	}

	archived := h.archiveOrder(ctx, sessionID, items, totals, currency, result)

	respondJSON(w, http.StatusOK, CheckoutResponseDTO{
		Status:        result.Status.String(),
		OrderID:       archived,
		Paid:          result.Paid,
		BuyerNotified: result.BuyerNotified,
		CartCleared:   result.CartCleared,
	})
}

// archiveOrder writes the durable order record and announces it. The customer
// already has their confirmation at this point, so failures are logged rather
// than surfaced.
func (h *CheckoutHandler) archiveOrder(
	ctx context.Context,
	sessionID string,
	items []cartdomain.LineItem,
	totals map[string]cartdomain.Total,
	currency string,
	result *checkoutservice.Result,
) string {
	status := ordersdomain.OrderStatusUnpaid
	if result.Paid {
		status = ordersdomain.OrderStatusPaid
	}

	order := &ordersdomain.Order{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Status:      status,
		Recipient:   result.Order.Recipient,
		Street:      result.Order.Street,
		City:        result.Order.City,
		Province:    result.Order.Province,
		Country:     result.Order.Country,
		Postcode:    result.Order.Postcode,
		Email:       result.Order.Email,
		Transaction: result.Order.Transaction,
		Contact:     result.Order.Contact,
	}

	for _, item := range items {
		snap := ordersdomain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Option:    item.Option,
			Currency:  currency,
		}
		if price, ok := item.Prices[currency]; ok {
			snap.UnitAmount = price.UnitAmount
		}
		order.Items = append(order.Items, snap)
	}
	for code, total := range totals {
		order.Totals = append(order.Totals, ordersdomain.OrderTotal{
			Currency:   code,
			UnitAmount: total.UnitAmount,
		})
	}

	if err := h.archive.CreateOrder(ctx, order); err != nil {
		h.log.Error("order archive", zap.String("order_id", order.ID.String()), zap.Error(err))
		return ""
	}

	if err := h.events.PublishOrderPlaced(ctx, order); err != nil {
		h.log.Error("order event publish", zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	return order.ID.String()
}

// GET /cart/receipt
//
// Serving the receipt consumes it: paid carts keep their contents until this
// view renders, then reset.
func (h *CheckoutHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	cart, err := h.carts.LoadOrCreate(ctx, sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}

	if cart.Order == nil {
		respondError(w, http.StatusNotFound, "no_receipt", "No receipt here. Why not place an order?")
		return
	}

	receipt := ReceiptDTO{
		Order:  *cart.Order,
		Items:  cart.Items,
		Totals: cart.Totals,
	}

	h.ledger.Reset(cart)
	if err := h.carts.Save(ctx, sessionID, cart); err != nil {
		h.log.Error("cart save after receipt", zap.Error(err))
	}

	respondJSON(w, http.StatusOK, receipt)
}
