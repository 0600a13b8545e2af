package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeOrderFields() map[string]string {
	return map[string]string{
		"recipient":   "Anonymous",
		"street":      "123 Fake St",
		"city":        "The C-Spot",
		"province":    "AB",
		"country":     "Canada",
		"postcode":    "T1K-5B3",
		"email":       "me@example.com",
		"transaction": "0x50m3crazy1d",
		"contact":     "1",
	}
}

func TestValidate_AllFieldsPresent(t *testing.T) {
	v := NewValidator(DefaultFieldConfig())
	assert.Nil(t, v.Validate(completeOrderFields()))
}

func TestValidate_SingleMissingField(t *testing.T) {
	v := NewValidator(DefaultFieldConfig())

	fields := completeOrderFields()
	fields["recipient"] = "  "

	errs := v.Validate(fields)
	require.Len(t, errs, 1)
	assert.Equal(t, "You must provide a recipient", errs[0].Message)
}

func TestValidate_PostcodeRenamed(t *testing.T) {
	v := NewValidator(DefaultFieldConfig())

	fields := completeOrderFields()
	fields["postcode"] = ""

	errs := v.Validate(fields)
	require.Len(t, errs, 1)
	assert.Equal(t, "You must provide a postal code", errs[0].Message)
}

func TestValidate_ChainsMissingFieldsInDeclaredOrder(t *testing.T) {
	v := NewValidator(FieldConfig{
		Required: []string{"recipient", "street", "city"},
	})

	errs := v.Validate(map[string]string{"email": "me@example.com"})
	require.Len(t, errs, 1)
	assert.Equal(t, "You must provide a recipient, street, city", errs[0].Message)
}

func TestValidate_AllBlank(t *testing.T) {
	v := NewValidator(DefaultFieldConfig())

	errs := v.Validate(map[string]string{"contact": "1"})
	require.Len(t, errs, 2)
	assert.Equal(t,
		"You must provide a recipient, street, city, province, country, postal code",
		errs[0].Message)
	assert.Equal(t,
		"You requested email confirmation. You must provide an email.",
		errs[1].Message)
}

func TestValidate_EmailConfirmationRequested(t *testing.T) {
	v := NewValidator(DefaultFieldConfig())

	fields := completeOrderFields()
	fields["email"] = "   "

	errs := v.Validate(fields)
	require.Len(t, errs, 1)
	assert.Equal(t, "You requested email confirmation. You must provide an email.", errs[0].Message)
}

func TestValidate_NoContactNoEmailNoTransaction(t *testing.T) {
	v := NewValidator(DefaultFieldConfig())

	fields := completeOrderFields()
	fields["contact"] = ""
	fields["email"] = ""
	fields["transaction"] = "  "

	errs := v.Validate(fields)
	require.Len(t, errs, 1)
	assert.Equal(t, "You must provide a transaction ID if not completing order via email", errs[0].Message)
}

func TestValidate_NoContactNoEmailWithTransaction(t *testing.T) {
	v := NewValidator(DefaultFieldConfig())

	fields := completeOrderFields()
	fields["contact"] = "0"
	fields["email"] = "  "

	assert.Nil(t, v.Validate(fields))
}

func TestValidate_TransactionRequiredDeployment(t *testing.T) {
	cfg := DefaultFieldConfig()
	cfg.Required = append([]string{"transaction"}, cfg.Required...)
	v := NewValidator(cfg)

	fields := completeOrderFields()
	fields["transaction"] = "  "
	fields["country"] = "  "

	errs := v.Validate(fields)
	require.Len(t, errs, 1)
	assert.Equal(t, "You must provide a transaction ID, country", errs[0].Message)

	// the transaction-or-email rule never fires when transaction is required
	fields = completeOrderFields()
	fields["contact"] = ""
	fields["email"] = ""
	assert.Nil(t, v.Validate(fields))
}

func TestValidate_EmailLabelGetsAn(t *testing.T) {
	v := NewValidator(FieldConfig{Required: []string{"email"}})

	errs := v.Validate(map[string]string{})
	require.Len(t, errs, 1)
	assert.Equal(t, "You must provide an email", errs[0].Message)
}
