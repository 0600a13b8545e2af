package mailer

import (
	"fmt"
	"html"
	"strings"

	cartdomain "github.com/TheMiningKing/crypto-shopping-cart/internal/cart/domain"
)

type itemView struct {
	N      int
	Name   string
	Option string
	Image  string
	Price  string
}

type orderView struct {
	Items    []itemView
	Total    string
	Currency string
	Wallet   string
	Order    cartdomain.Order
	Paid     bool
}

func (v itemView) line() string {
	if v.Option != "" {
		return fmt.Sprintf("%d. %s - %s, %s", v.N, v.Name, v.Option, v.Price)
	}
	return fmt.Sprintf("%d. %s, %s", v.N, v.Name, v.Price)
}

func renderVendorText(v *orderView) string {
	var b strings.Builder
	b.WriteString("New order!\n\n")
	writeItemsText(&b, v)

	if v.Paid {
		fmt.Fprintf(&b, "%s %s was sent to %s\n", v.Total, v.Currency, v.Wallet)
		fmt.Fprintf(&b, "Transaction ID: %s\n\n", v.Order.Transaction)
	} else {
		fmt.Fprintf(&b, "Awaiting payment of %s %s to %s\n\n", v.Total, v.Currency, v.Wallet)
	}

	b.WriteString("Shipping details:\n")
	writeShippingText(&b, v.Order)

	if strings.TrimSpace(v.Order.Email) != "" {
		b.WriteString(v.Order.Email + "\n")
	} else {
		b.WriteString("Customer declined email contact.\n")
	}

	return b.String()
}

func renderBuyerText(v *orderView) string {
	var b strings.Builder
	b.WriteString("Thank you!\n\n")
	writeItemsText(&b, v)

	if v.Paid {
		fmt.Fprintf(&b, "%s %s was sent to %s\n", v.Total, v.Currency, v.Wallet)
		fmt.Fprintf(&b, "Transaction ID: %s\n\n", v.Order.Transaction)
		b.WriteString("Print this receipt for your records.\n\n")
	} else {
		fmt.Fprintf(&b, "Send %s %s to %s\n", v.Total, v.Currency, v.Wallet)
		b.WriteString("When your transaction is verified, you will receive confirmation" +
			" and a tracking number once your order is processed\n\n")
	}

	b.WriteString("Your order will be shipped to:\n")
	writeShippingText(&b, v.Order)

	if !v.Paid {
		b.WriteString("Reply to this email with your transaction ID and any questions\n")
	}

	return b.String()
}

func writeItemsText(b *strings.Builder, v *orderView) {
	for _, item := range v.Items {
		b.WriteString(item.line() + "\n")
	}
	fmt.Fprintf(b, "TOTAL: %s %s\n\n", v.Total, v.Currency)
}

func writeShippingText(b *strings.Builder, o cartdomain.Order) {
	b.WriteString(o.Recipient + "\n")
	b.WriteString(o.Street + "\n")
	fmt.Fprintf(b, "%s, %s %s\n", o.City, o.Province, o.Postcode)
	b.WriteString(o.Country + "\n")
}

func renderVendorHTML(v *orderView) string {
	var b strings.Builder
	b.WriteString("<h3>New order!</h3>\n")
	writeItemsHTML(&b, v)

	if v.Paid {
		fmt.Fprintf(&b, "<p>%s %s was sent to %s</p>\n",
			v.Total, v.Currency, html.EscapeString(v.Wallet))
		writeTransactionHTML(&b, v.Order.Transaction)
	} else {
		fmt.Fprintf(&b, "<p>Awaiting payment of %s %s to %s</p>\n",
			v.Total, v.Currency, html.EscapeString(v.Wallet))
	}

	b.WriteString("<h4>Shipping details:</h4>\n")
	writeShippingHTML(&b, v.Order)

	if strings.TrimSpace(v.Order.Email) != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(v.Order.Email))
	} else {
		b.WriteString("<p>Customer declined email contact.</p>\n")
	}

	return b.String()
}

func renderBuyerHTML(v *orderView) string {
	var b strings.Builder
	b.WriteString("<h3>Thank you!</h3>\n")
	writeItemsHTML(&b, v)

	if v.Paid {
		fmt.Fprintf(&b, "<p>%s %s was sent to %s</p>\n",
			v.Total, v.Currency, html.EscapeString(v.Wallet))
		writeTransactionHTML(&b, v.Order.Transaction)
		b.WriteString("<p>Print this receipt for your records.</p>\n")
	} else {
		fmt.Fprintf(&b, "<p>Send %s %s to %s</p>\n",
			v.Total, v.Currency, html.EscapeString(v.Wallet))
		b.WriteString("<p>When your transaction is verified, you will receive confirmation" +
			" and a tracking number once your order is processed</p>\n")
	}

	b.WriteString("<h4>Your order will be shipped to:</h4>\n")
	writeShippingHTML(&b, v.Order)

	if !v.Paid {
		b.WriteString("<p>Reply to this email with your transaction ID and any questions</p>\n")
	}

	return b.String()
}

func writeItemsHTML(b *strings.Builder, v *orderView) {
	b.WriteString("<table>\n")
	for _, item := range v.Items {
		b.WriteString("<tr>")
		if item.Image != "" {
			fmt.Fprintf(b, `<td><img src="cid:%s" width="100"></td>`, item.Image)
		}
		name := html.EscapeString(item.Name)
		if item.Option != "" {
			fmt.Fprintf(b, "<td>%s - %s</td>", name, html.EscapeString(item.Option))
		} else {
			fmt.Fprintf(b, "<td>%s</td>", name)
		}
		fmt.Fprintf(b, "<td>%s</td>", item.Price)
		b.WriteString("</tr>\n")
	}
	fmt.Fprintf(b, "<tr><td>Total: %s %s</td></tr>\n", v.Total, v.Currency)
	b.WriteString("</table>\n")
}

func writeTransactionHTML(b *strings.Builder, transaction string) {
	fmt.Fprintf(b, "<p>Transaction ID: %s</p>\n", html.EscapeString(transaction))
	b.WriteString(`<img src="cid:qr.png">` + "\n")
}

func writeShippingHTML(b *strings.Builder, o cartdomain.Order) {
	fmt.Fprintf(b, "<p>%s<br>%s<br>%s, %s %s<br>%s</p>\n",
		html.EscapeString(o.Recipient),
		html.EscapeString(o.Street),
		html.EscapeString(o.City),
		html.EscapeString(o.Province),
		html.EscapeString(o.Postcode),
		html.EscapeString(o.Country))
}
