package booking_session

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/service/sessions"
	"github.com/m04kA/SMC-BookingWizard/pkg/ptr"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// SelectServiceRequest тело POST /sessions/{sessionId}/service
type SelectServiceRequest struct {
	ServiceID int64 `json:"serviceId"`
}

// SelectDateRequest тело POST /sessions/{sessionId}/date
type SelectDateRequest struct {
	Date string `json:"date"`
}

// ToDate разбирает дату YYYY-MM-DD
func (r *SelectDateRequest) ToDate() (time.Time, error) {
	return time.Parse(domain.DateFormat, r.Date)
}

// SelectTimeRequest тело POST /sessions/{sessionId}/time
type SelectTimeRequest struct {
	Time string `json:"time"`
}

// ToSlot разбирает время HH:MM
func (r *SelectTimeRequest) ToSlot() (types.TimeString, error) {
	slot := types.TimeString(r.Time)
	if err := slot.Validate(); err != nil {
		return "", err
	}
	return slot, nil
}

// ClientRequest данные клиента, тело POST /sessions/{sessionId}/details
type ClientRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Notes           string `json:"notes,omitempty"`
	AgreeTerms      bool   `json:"agreeTerms"`
	AcceptMarketing bool   `json:"acceptMarketing"`
	CreateAccount   bool   `json:"createAccount"`
}

// ToDomain конвертирует запрос в доменную модель
func (r *ClientRequest) ToDomain() domain.ClientDetails {
	return domain.ClientDetails{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Phone:           r.Phone,
		Notes:           r.Notes,
		AgreeTerms:      r.AgreeTerms,
		AcceptMarketing: r.AcceptMarketing,
		CreateAccount:   r.CreateAccount,
	}
}

// ServiceResponse услуга в черновике
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Category        string  `json:"category"`
}

// DraftResponse черновик бронирования, незаполненные поля - null
type DraftResponse struct {
	Service *ServiceResponse `json:"service"`
	Date    *string          `json:"date"`
	Time    *string          `json:"time"`
	Client  *ClientRequest   `json:"client"`
}

// ConfirmedResponse подтвержденное бронирование
type ConfirmedResponse struct {
	ID          int64           `json:"id"`
	Reference   string          `json:"reference"`
	Service     ServiceResponse `json:"service"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Client      ClientRequest   `json:"client"`
	Status      string          `json:"status"`
	SubmittedAt time.Time       `json:"submittedAt"`
}

// StateResponse состояние мастера сессии
type StateResponse struct {
	SessionID     string             `json:"sessionId"`
	Applied       bool               `json:"applied"`
	Step          int                `json:"step"`
	StepName      string             `json:"stepName"`
	Progress      float64            `json:"progress"`
	Draft         DraftResponse      `json:"draft"`
	Slots         []string           `json:"slots"`
	DateAvailable bool               `json:"dateAvailable"`
	Errors        domain.ErrorMap    `json:"errors"`
	Submitting    bool               `json:"submitting"`
	Confirmed     *ConfirmedResponse `json:"confirmed"`
}

// FromResult конвертирует результат сервиса сессий в HTTP модель
func FromResult(res *sessions.Result) *StateResponse {
	state := res.State

	slots := make([]string, len(state.Slots))
	for i, s := range state.Slots {
		slots[i] = s.String()
	}

	resp := &StateResponse{
		SessionID:     res.SessionID,
		Applied:       res.Applied,
		Step:          int(state.Step),
		StepName:      state.Step.String(),
		Progress:      state.Progress,
		Slots:         slots,
		DateAvailable: state.DateAvailable,
		Errors:        state.Errors,
		Submitting:    state.Submitting,
	}

	draft := state.Draft
	if draft.Service != nil {
		resp.Draft.Service = ptr.Ptr(fromService(*draft.Service))
	}
	if draft.Date != nil {
		resp.Draft.Date = ptr.Ptr(draft.Date.Format(domain.DateFormat))
	}
	if draft.Time != nil {
		resp.Draft.Time = ptr.Ptr(draft.Time.String())
	}
	if draft.Client != nil {
		resp.Draft.Client = ptr.Ptr(fromClient(*draft.Client))
	}

	if c := state.Confirmed; c != nil {
		resp.Confirmed = &ConfirmedResponse{
			ID:          c.ID,
			Reference:   c.Reference,
			Service:     fromService(c.Service),
			Date:        c.Date.Format(domain.DateFormat),
			Time:        c.Time.String(),
			Client:      fromClient(c.Client),
			Status:      string(c.Status),
			SubmittedAt: c.SubmittedAt,
		}
	}

	return resp
}

func fromService(s domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Category:        s.Category,
	}
}

func fromClient(c domain.ClientDetails) ClientRequest {
	return ClientRequest{
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		Notes:           c.Notes,
		AgreeTerms:      c.AgreeTerms,
		AcceptMarketing: c.AcceptMarketing,
		CreateAccount:   c.CreateAccount,
	}
}
