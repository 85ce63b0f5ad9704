package export

import (
	"fmt"
	"net/url"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/phone"
)

const (
	icsTimeFormat      = "20060102T150405"
	icsProductID       = "-//SMC//BookingWizard//PT"
	googleCalendarBase = "https://calendar.google.com/calendar/render"
	whatsAppBase       = "https://wa.me/"
)

// Service экспорт подтвержденного бронирования во внешние календари и мессенджер.
// Бронирование только читается.
type Service struct {
	cfg Config
}

// NewService создает новый экземпляр сервиса экспорта
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// ICS формирует событие iCalendar (RFC 5545).
// Время события плавающее (без часового пояса), как и слоты салона.
func (s *Service) ICS(booking *domain.ConfirmedBooking) ([]byte, error) {
	start, end, err := bounds(booking)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetProductId(icsProductID)
	cal.SetMethod(ics.MethodPublish)

	event := cal.AddEvent(booking.Reference)
	event.SetDtStampTime(booking.SubmittedAt)
	// SetStartAt/SetEndAt переводят время в UTC, слоты салона пишем как есть
	event.SetProperty(ics.ComponentPropertyDtStart, start.Format(icsTimeFormat))
	event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(icsTimeFormat))
	event.SetSummary(s.summary(booking))
	event.SetDescription(s.description(booking))
	if s.cfg.Location != "" {
		event.SetLocation(s.cfg.Location)
	}
	event.SetStatus(ics.ObjectStatusConfirmed)

	return []byte(cal.Serialize()), nil
}

// GoogleCalendarURL формирует ссылку на создание события в Google Calendar
func (s *Service) GoogleCalendarURL(booking *domain.ConfirmedBooking) (string, error) {
	start, end, err := bounds(booking)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", s.summary(booking))
	q.Set("dates", start.Format(icsTimeFormat)+"/"+end.Format(icsTimeFormat))
	q.Set("details", s.description(booking))
	if s.cfg.Location != "" {
		q.Set("location", s.cfg.Location)
	}

	return googleCalendarBase + "?" + q.Encode(), nil
}

// WhatsAppURL формирует ссылку wa.me на чат с салоном с готовым сообщением
func (s *Service) WhatsAppURL(booking *domain.ConfirmedBooking) (string, error) {
	number := phone.Digits(s.cfg.WhatsAppNumber)
	if number == "" {
		return "", ErrNoContactNumber
	}

	message := fmt.Sprintf(
		"Olá! Gostaria de falar sobre meu agendamento: %s em %s às %s. Código: %s",
		booking.Service.Name,
		booking.Date.Format("02/01/2006"),
		booking.Time,
		booking.Reference,
	)

	return whatsAppBase + number + "?" + url.Values{"text": {message}}.Encode(), nil
}

// Links собирает все ссылки экспорта. icsURL - адрес файла .ics в API.
// Без настроенного номера WhatsApp ссылка на чат опускается.
func (s *Service) Links(booking *domain.ConfirmedBooking, icsURL string) (*Links, error) {
	google, err := s.GoogleCalendarURL(booking)
	if err != nil {
		return nil, err
	}

	links := &Links{GoogleCalendar: google, ICS: icsURL}

	whatsApp, err := s.WhatsAppURL(booking)
	switch {
	case err == nil:
		links.WhatsApp = whatsApp
	case err != ErrNoContactNumber:
		return nil, err
	}

	return links, nil
}

func (s *Service) summary(booking *domain.ConfirmedBooking) string {
	if s.cfg.SalonName == "" {
		return booking.Service.Name
	}
	return fmt.Sprintf("%s - %s", booking.Service.Name, s.cfg.SalonName)
}

func (s *Service) description(booking *domain.ConfirmedBooking) string {
	return fmt.Sprintf(
		"Cliente: %s\nServiço: %s (%d min)\nValor: R$ %.2f\nCódigo: %s",
		booking.Client.FullName(),
		booking.Service.Name,
		booking.Service.DurationMinutes,
		booking.Service.Price,
		booking.Reference,
	)
}

func bounds(booking *domain.ConfirmedBooking) (time.Time, time.Time, error) {
	start, err := booking.StartsAt()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}
	end, err := booking.EndsAt()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}
	return start, end, nil
}
