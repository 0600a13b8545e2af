package mailer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	cartdomain "github.com/TheMiningKing/crypto-shopping-cart/internal/cart/domain"
	catalogdomain "github.com/TheMiningKing/crypto-shopping-cart/internal/catalog/domain"
)

// Message is a composed notification, independent of transport. Sender
// implementations map it onto whatever wire format they speak.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
	Embeds  []Embed
}

// Embed is an inline attachment referenced from the HTML body by cid. Either
// Path or Content is set, never both.
type Embed struct {
	Name        string
	Path        string
	Content     []byte
	ContentType string
}

type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// WalletDirectory resolves the payment wallet for a currency.
type WalletDirectory interface {
	GetWalletByCurrency(ctx context.Context, currency string) (*catalogdomain.Wallet, error)
}

const (
	subjectVendorPaid   = "New order received"
	subjectVendorUnpaid = "New order received - unpaid"
	subjectBuyerPaid    = "Order received - here is your receipt"
	subjectBuyerUnpaid  = "Order received - payment instructions"
)

// Mailer composes and dispatches the vendor and buyer order notifications.
// Which recipients get one is the checkout coordinator's decision; the Mailer
// only composes and sends what it is asked to.
type Mailer struct {
	sender     Sender
	wallets    WalletDirectory
	vendorAddr string
	imagesDir  string
	log        *zap.Logger
}

func New(sender Sender, wallets WalletDirectory, vendorAddr, imagesDir string, log *zap.Logger) *Mailer {
	return &Mailer{
		sender:     sender,
		wallets:    wallets,
		vendorAddr: vendorAddr,
		imagesDir:  imagesDir,
		log:        log,
	}
}

// NotifyVendor mails the vendor about a new order. The reply-to-able From is
// the buyer's address when one was given.
func (m *Mailer) NotifyVendor(ctx context.Context, cart *cartdomain.Cart, order cartdomain.Order) error {
	view, err := m.buildView(ctx, cart, order)
	if err != nil {
		return err
	}

	from := m.vendorAddr
	if strings.TrimSpace(order.Email) != "" {
		from = order.Email
	}

	subject := subjectVendorUnpaid
	if order.Paid() {
		subject = subjectVendorPaid
	}

	msg := &Message{
		From:    from,
		To:      m.vendorAddr,
		Subject: subject,
		Text:    renderVendorText(view),
		HTML:    renderVendorHTML(view),
		Embeds:  m.embeds(cart, order),
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("vendor mail: %w", err)
	}
	return nil
}

// NotifyBuyer mails the buyer their receipt (paid) or payment instructions
// (unpaid). Callers only invoke this when the order carries an email.
func (m *Mailer) NotifyBuyer(ctx context.Context, cart *cartdomain.Cart, order cartdomain.Order) error {
	view, err := m.buildView(ctx, cart, order)
	if err != nil {
		return err
	}

	subject := subjectBuyerUnpaid
	if order.Paid() {
		subject = subjectBuyerPaid
	}

	msg := &Message{
		From:    m.vendorAddr,
		To:      order.Email,
		Subject: subject,
		Text:    renderBuyerText(view),
		HTML:    renderBuyerHTML(view),
		Embeds:  m.embeds(cart, order),
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("buyer mail: %w", err)
	}
	return nil
}

func (m *Mailer) buildView(ctx context.Context, cart *cartdomain.Cart, order cartdomain.Order) (*orderView, error) {
	currency := cart.PreferredCurrency

	address := ""
	wallet, err := m.wallets.GetWalletByCurrency(ctx, currency)
	if err != nil {
		// a missing wallet shouldn't hold an order notification hostage
		m.log.Warn("no wallet for preferred currency", zap.String("currency", currency), zap.Error(err))
	} else {
		address = wallet.Address
	}

	view := &orderView{
		Currency: currency,
		Wallet:   address,
		Order:    order,
		Paid:     order.Paid(),
	}

	for i, item := range cart.Items {
		iv := itemView{
			N:      i + 1,
			Name:   item.Name,
			Option: item.Option,
			Image:  item.Image,
		}
		if price, ok := item.Prices[currency]; ok {
			iv.Price = price.Display.String()
		}
		view.Items = append(view.Items, iv)
	}

	if total, ok := cart.Totals[currency]; ok {
		view.Total = total.Display.String()
	} else {
		view.Total = "0"
	}

	return view, nil
}

func (m *Mailer) embeds(cart *cartdomain.Cart, order cartdomain.Order) []Embed {
	var embeds []Embed
	seen := map[string]bool{}
	for _, item := range cart.Items {
		if item.Image == "" || seen[item.Image] {
			continue
		}
		seen[item.Image] = true
		embeds = append(embeds, Embed{
			Name: item.Image,
			Path: filepath.Join(m.imagesDir, item.Image),
		})
	}

	if order.Paid() {
		png, err := qrcode.Encode(order.Transaction, qrcode.Medium, 256)
		if err != nil {
			m.log.Warn("qr code generation failed", zap.Error(err))
		} else {
			embeds = append(embeds, Embed{
				Name:        "qr.png",
				Content:     png,
				ContentType: "image/png",
			})
		}
	}

	return embeds
}
