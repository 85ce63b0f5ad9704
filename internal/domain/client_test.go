package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingWizard/pkg/phone"
)

func validClient() ClientDetails {
	return ClientDetails{
		FirstName:  "Ana",
		LastName:   "Lima",
		Email:      "ana@x.com",
		Phone:      "(11) 91234-5678",
		AgreeTerms: true,
	}
}

func TestValidate_Valid(t *testing.T) {
	c := validClient()
	assert.True(t, c.Validate().IsEmpty())

	c.Phone = "(11) 1234-5678"
	assert.True(t, c.Validate().IsEmpty())
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *ClientDetails)
		want   ErrorMap
	}{
		{"blank first name", func(c *ClientDetails) { c.FirstName = "   " }, ErrorMap{FirstName: MsgFirstNameRequired}},
		{"empty last name", func(c *ClientDetails) { c.LastName = "" }, ErrorMap{LastName: MsgLastNameRequired}},
		{"missing email", func(c *ClientDetails) { c.Email = "" }, ErrorMap{Email: MsgEmailRequired}},
		{"email without tld", func(c *ClientDetails) { c.Email = "ana@x" }, ErrorMap{Email: MsgEmailInvalid}},
		{"email with spaces", func(c *ClientDetails) { c.Email = "ana lima@x.com" }, ErrorMap{Email: MsgEmailInvalid}},
		{"missing phone", func(c *ClientDetails) { c.Phone = "" }, ErrorMap{Phone: MsgPhoneRequired}},
		{"unformatted phone", func(c *ClientDetails) { c.Phone = "11999999999" }, ErrorMap{Phone: MsgPhoneInvalid}},
		{"terms not accepted", func(c *ClientDetails) { c.AgreeTerms = false }, ErrorMap{AgreeTerms: MsgTermsRequired}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClient()
			tt.mutate(&c)
			assert.Equal(t, tt.want, c.Validate())
		})
	}
}

func TestValidate_OptionalFieldsIgnored(t *testing.T) {
	c := validClient()
	c.Notes = ""
	c.AcceptMarketing = false
	c.CreateAccount = false
	assert.True(t, c.Validate().IsEmpty())
}

func TestValidate_PhoneFixedByFormatting(t *testing.T) {
	c := ClientDetails{FirstName: "Ana", LastName: "Lima", Email: "ana@x.com", Phone: "11999999999", AgreeTerms: true}
	assert.Equal(t, MsgPhoneInvalid, c.Validate().Phone)

	c.Phone = phone.Format(c.Phone)
	assert.Equal(t, "(11) 99999-9999", c.Phone)
	assert.True(t, c.Validate().IsEmpty())
}

func TestNormalized(t *testing.T) {
	c := ClientDetails{
		FirstName:  "  Ana ",
		LastName:   "Lima\t",
		Email:      " ana@x.com ",
		Phone:      " (11) 99999-9999\n",
		Notes:      " sem pressa ",
		AgreeTerms: true,
	}
	assert.Equal(t, MsgPhoneInvalid, c.Validate().Phone)

	n := c.Normalized()
	assert.Equal(t, "Ana", n.FirstName)
	assert.Equal(t, "Lima", n.LastName)
	assert.Equal(t, "ana@x.com", n.Email)
	assert.Equal(t, "(11) 99999-9999", n.Phone)
	assert.Equal(t, "sem pressa", n.Notes)
	assert.True(t, n.AgreeTerms)
	assert.True(t, n.Validate().IsEmpty())

	// Исходное значение не меняется
	assert.Equal(t, " ana@x.com ", c.Email)
}

func TestErrorMap_Clear(t *testing.T) {
	errs := ErrorMap{FirstName: "x", Phone: "y", General: "z"}

	assert.True(t, errs.Clear(FieldPhone))
	assert.Equal(t, ErrorMap{FirstName: "x", General: "z"}, errs)
	assert.True(t, errs.HasFieldErrors())

	assert.False(t, errs.Clear(ClientField("notes")))
	assert.True(t, errs.Clear(FieldFirstName))
	assert.False(t, errs.HasFieldErrors())
	assert.False(t, errs.IsEmpty())
}

func TestParseClientField(t *testing.T) {
	f, ok := ParseClientField("email")
	assert.True(t, ok)
	assert.Equal(t, FieldEmail, f)

	_, ok = ParseClientField("notes")
	assert.False(t, ok)
}
