package service

import (
	"strings"

	"github.com/TheMiningKing/crypto-shopping-cart/internal/checkout/domain"
)

// FieldConfig declares which order fields a deployment requires and how they
// read in error messages. The declaration order of Required is the order
// fields appear in the combined error message.
type FieldConfig struct {
	Required []string
	Labels   map[string]string
}

// DefaultFieldConfig matches the stock deployment: shipping fields required,
// transaction id optional (the no-email conditional rule covers it).
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Required: []string{"recipient", "street", "city", "province", "country", "postcode"},
		Labels: map[string]string{
			"postcode":    "postal code",
			"transaction": "transaction ID",
		},
	}
}

// Validator inspects submitted order fields and reports what's missing.
type Validator struct {
	cfg                 FieldConfig
	transactionRequired bool
}

func NewValidator(cfg FieldConfig) *Validator {
	v := &Validator{cfg: cfg}
	for _, f := range cfg.Required {
		if f == "transaction" {
			v.transactionRequired = true
		}
	}
	return v
}

// Validate returns nil when the submission is acceptable, otherwise an
// ordered list of errors: missing required fields are folded into one
// combined message first, then any conditional email/transaction rule.
func (v *Validator) Validate(fields map[string]string) []domain.ValidationError {
	var errs []domain.ValidationError

	var message strings.Builder
	for _, field := range v.cfg.Required {
		if strings.TrimSpace(fields[field]) != "" {
			continue
		}
		label := field
		if renamed, ok := v.cfg.Labels[field]; ok {
			label = renamed
		}
		if message.Len() == 0 {
			message.WriteString("You must provide " + article(label) + " " + label)
		} else {
			message.WriteString(", " + label)
		}
	}
	if message.Len() > 0 {
		errs = append(errs, domain.ValidationError{Message: message.String()})
	}

	contact := truthy(fields["contact"])
	emailBlank := strings.TrimSpace(fields["email"]) == ""

	if contact && emailBlank {
		errs = append(errs, domain.ValidationError{
			Message: "You requested email confirmation. You must provide an email.",
		})
	}
	if !v.transactionRequired && !contact && emailBlank && strings.TrimSpace(fields["transaction"]) == "" {
		errs = append(errs, domain.ValidationError{
			Message: "You must provide a transaction ID if not completing order via email",
		})
	}

	return errs
}

func article(label string) string {
	switch label[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

func truthy(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	return v != "" && v != "0" && v != "false"
}
