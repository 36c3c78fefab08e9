package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type accountTypeField struct {
	Type string `validate:"account_type"`
}

type transactionTypeField struct {
	Type string `validate:"transaction_type"`
}

type hexColorField struct {
	Color string `validate:"hex_color"`
}

type amountField struct {
	Amount string `validate:"amount"`
}

func TestGetValidator_ReturnsSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}

func TestAccountTypeRule(t *testing.T) {
	v := GetValidator().GetValidate()

	for _, valid := range []string{"checking", "savings", "credit_card", "investment", "other"} {
		assert.NoError(t, v.Struct(accountTypeField{Type: valid}), valid)
	}

	for _, invalid := range []string{"cryptowallet", "Checking", ""} {
		assert.Error(t, v.Struct(accountTypeField{Type: invalid}), invalid)
	}
}

func TestTransactionTypeRule(t *testing.T) {
	v := GetValidator().GetValidate()

	assert.NoError(t, v.Struct(transactionTypeField{Type: "income"}))
	assert.NoError(t, v.Struct(transactionTypeField{Type: "expense"}))

	for _, invalid := range []string{"transfer", "Income", ""} {
		assert.Error(t, v.Struct(transactionTypeField{Type: invalid}), invalid)
	}
}

func TestHexColorRule(t *testing.T) {
	v := GetValidator().GetValidate()

	for _, valid := range []string{"#10b981", "#FFF", "#a855F7"} {
		assert.NoError(t, v.Struct(hexColorField{Color: valid}), valid)
	}

	for _, invalid := range []string{"purple", "10b981", "#10b98", "#10b9811", ""} {
		assert.Error(t, v.Struct(hexColorField{Color: invalid}), invalid)
	}
}

func TestAmountRule(t *testing.T) {
	v := GetValidator().GetValidate()

	for _, valid := range []string{"0", "42.50", "1500", "0.01", "999999.99"} {
		assert.NoError(t, v.Struct(amountField{Amount: valid}), valid)
	}

	for _, invalid := range []string{"-5", "-0.01", "abc", "1.999", ""} {
		assert.Error(t, v.Struct(amountField{Amount: invalid}), invalid)
	}
}
