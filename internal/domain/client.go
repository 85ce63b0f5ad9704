package domain

import (
	"regexp"
	"strings"

	"github.com/m04kA/SMC-BookingWizard/pkg/phone"
)

// ClientField поле формы клиента
type ClientField string

const (
	FieldFirstName  ClientField = "firstName"
	FieldLastName   ClientField = "lastName"
	FieldEmail      ClientField = "email"
	FieldPhone      ClientField = "phone"
	FieldAgreeTerms ClientField = "agreeTerms"
)

// Сообщения валидации показываются клиенту как есть
const (
	MsgFirstNameRequired = "Informe seu nome"
	MsgLastNameRequired  = "Informe seu sobrenome"
	MsgEmailRequired     = "Informe seu e-mail"
	MsgEmailInvalid      = "E-mail inválido"
	MsgPhoneRequired     = "Informe seu telefone"
	MsgPhoneInvalid      = "Telefone deve estar no formato (DD) DDDDD-DDDD"
	MsgTermsRequired     = "É necessário aceitar os termos de uso"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ClientDetails контактные данные клиента
type ClientDetails struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Notes     string

	AgreeTerms      bool // обязательно
	AcceptMarketing bool
	CreateAccount   bool
}

// FullName возвращает имя и фамилию
func (c *ClientDetails) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// Normalized возвращает копию с обрезанными пробелами в текстовых полях.
// Черновик хранит данные в том виде, в котором они проверены.
func (c ClientDetails) Normalized() ClientDetails {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Notes = strings.TrimSpace(c.Notes)
	return c
}

// Validate проверяет обязательные поля. Пустая карта - форму можно отправлять.
func (c *ClientDetails) Validate() ErrorMap {
	var errs ErrorMap

	if strings.TrimSpace(c.FirstName) == "" {
		errs.FirstName = MsgFirstNameRequired
	}

	if strings.TrimSpace(c.LastName) == "" {
		errs.LastName = MsgLastNameRequired
	}

	switch email := strings.TrimSpace(c.Email); {
	case email == "":
		errs.Email = MsgEmailRequired
	case !emailPattern.MatchString(email):
		errs.Email = MsgEmailInvalid
	}

	switch {
	case strings.TrimSpace(c.Phone) == "":
		errs.Phone = MsgPhoneRequired
	case !phone.IsValid(c.Phone):
		errs.Phone = MsgPhoneInvalid
	}

	if !c.AgreeTerms {
		errs.AgreeTerms = MsgTermsRequired
	}

	return errs
}

// ErrorMap ошибки формы по полям плюс общая ошибка финализации
type ErrorMap struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	AgreeTerms string `json:"agreeTerms,omitempty"`
	General    string `json:"general,omitempty"`
}

// IsEmpty returns true when there are no errors at all
func (e ErrorMap) IsEmpty() bool {
	return e == ErrorMap{}
}

// HasFieldErrors returns true when at least one field is invalid
func (e ErrorMap) HasFieldErrors() bool {
	fields := e
	fields.General = ""
	return !fields.IsEmpty()
}

// Clear сбрасывает ошибку одного поля. Возвращает false для неизвестного поля.
func (e *ErrorMap) Clear(field ClientField) bool {
	switch field {
	case FieldFirstName:
		e.FirstName = ""
	case FieldLastName:
		e.LastName = ""
	case FieldEmail:
		e.Email = ""
	case FieldPhone:
		e.Phone = ""
	case FieldAgreeTerms:
		e.AgreeTerms = ""
	default:
		return false
	}
	return true
}

// ParseClientField проверяет имя поля формы
func ParseClientField(s string) (ClientField, bool) {
	switch f := ClientField(s); f {
	case FieldFirstName, FieldLastName, FieldEmail, FieldPhone, FieldAgreeTerms:
		return f, true
	default:
		return "", false
	}
}
