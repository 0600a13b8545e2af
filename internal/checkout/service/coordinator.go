package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	cartdomain "github.com/TheMiningKing/crypto-shopping-cart/internal/cart/domain"
	cartservice "github.com/TheMiningKing/crypto-shopping-cart/internal/cart/service"
	"github.com/TheMiningKing/crypto-shopping-cart/internal/checkout/domain"
)

// Notifier delivers order notifications. The coordinator decides whether each
// recipient gets one; composition and transport live behind this interface.
type Notifier interface {
	NotifyVendor(ctx context.Context, cart *cartdomain.Cart, order cartdomain.Order) error
	NotifyBuyer(ctx context.Context, cart *cartdomain.Cart, order cartdomain.Order) error
}

// Policy holds the deployment decisions the coordinator must not hardcode.
// Historically the storefront both did and did not empty the cart right away
// on paid orders (paid orders route to a receipt view first), so the timing
// is explicit configuration.
type Policy struct {
	// ResetPaidCarts empties the cart immediately after a paid order's
	// notifications succeed. When false the cart keeps its items and order
	// until the receipt is served.
	ResetPaidCarts bool
}

// Result is the outcome of one checkout submission.
type Result struct {
	Status domain.Status

	// Rejected: the validation errors plus the submitted fields, untouched,
	// so the caller can re-render the form with input preserved.
	Errors []domain.ValidationError
	Fields map[string]string

	// Completed:
	Order         *cartdomain.Order
	Paid          bool
	BuyerNotified bool
	CartCleared   bool
}

// Coordinator drives a submission through
// Shopping -> Validating -> {Rejected, Accepted} -> Notifying -> Completed.
type Coordinator struct {
	ledger    *cartservice.Ledger
	validator *Validator
	notifier  Notifier
	policy    Policy
	log       *zap.Logger
}

func NewCoordinator(ledger *cartservice.Ledger, validator *Validator, notifier Notifier, policy Policy, log *zap.Logger) *Coordinator {
	return &Coordinator{
		ledger:    ledger,
		validator: validator,
		notifier:  notifier,
		policy:    policy,
		log:       log,
	}
}

// Submit validates the submitted fields against the cart and, if acceptable,
// attaches the order, triggers notifications and reports the outcome. On
// validation failure the submitted fields come back verbatim in the result.
// A notification error is returned as-is; the cart is never emptied on a
// failed send.
func (c *Coordinator) Submit(ctx context.Context, cart *cartdomain.Cart, fields map[string]string) (*Result, error) {
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if errs := c.validator.Validate(fields); len(errs) > 0 {
		c.log.Info("checkout rejected", zap.Int("errors", len(errs)))
		return &Result{
			Status: domain.StatusRejected,
			Errors: errs,
			Fields: fields,
		}, nil
	}

	order := cartdomain.OrderFromFields(fields)
	c.ledger.Purchase(cart, order)

	paid := order.Paid()
	notifyBuyer := strings.TrimSpace(order.Email) != ""

	if err := c.notifier.NotifyVendor(ctx, cart, order); err != nil {
		return &Result{Status: domain.StatusNotifying, Order: cart.Order, Paid: paid},
			fmt.Errorf("vendor notification: %w: %w", ErrNotifyFail, err)
	}

	if notifyBuyer {
		if err := c.notifier.NotifyBuyer(ctx, cart, order); err != nil {
			return &Result{Status: domain.StatusNotifying, Order: cart.Order, Paid: paid},
				fmt.Errorf("buyer notification: %w: %w", ErrNotifyFail, err)
		}
	}

	result := &Result{
		Status:        domain.StatusCompleted,
		Order:         cart.Order,
		Paid:          paid,
		BuyerNotified: notifyBuyer,
	}

	if !paid || c.policy.ResetPaidCarts {
		c.ledger.Reset(cart)
		result.CartCleared = true
	}

	c.log.Info("checkout completed",
		zap.Bool("paid", paid),
		zap.Bool("buyer_notified", notifyBuyer),
		zap.Bool("cart_cleared", result.CartCleared))

	return result, nil
}
