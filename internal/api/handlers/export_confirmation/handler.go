package export_confirmation

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/service/sessions"
)

const (
	msgSessionNotFound = "сессия не найдена или истекла"
	msgNotConfirmed    = "бронирование еще не подтверждено"
)

type Handler struct {
	sessions SessionService
	exporter Exporter
	logger   Logger
}

func NewHandler(sessions SessionService, exporter Exporter, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		exporter: exporter,
		logger:   logger,
	}
}

// ICS GET /api/v1/sessions/{sessionId}/confirmation/calendar.ics
func (h *Handler) ICS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	booking, ok := h.confirmed(w, "GET /sessions/{id}/confirmation/calendar.ics", id)
	if !ok {
		return
	}

	data, err := h.exporter.ICS(booking)
	if err != nil {
		h.logger.Error("GET /sessions/{id}/confirmation/calendar.ics - Failed to build ICS: session_id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="agendamento-%s.ics"`, booking.Reference))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)

	h.logger.Info("GET /sessions/{id}/confirmation/calendar.ics - ICS exported: session_id=%s, reference=%s", id, booking.Reference)
}

// Links GET /api/v1/sessions/{sessionId}/confirmation/links
func (h *Handler) Links(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	booking, ok := h.confirmed(w, "GET /sessions/{id}/confirmation/links", id)
	if !ok {
		return
	}

	icsURL := fmt.Sprintf("/api/v1/sessions/%s/confirmation/calendar.ics", id)
	links, err := h.exporter.Links(booking, icsURL)
	if err != nil {
		h.logger.Error("GET /sessions/{id}/confirmation/links - Failed to build links: session_id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /sessions/{id}/confirmation/links - Links built: session_id=%s, reference=%s", id, booking.Reference)
	handlers.RespondJSON(w, http.StatusOK, links)
}

func (h *Handler) confirmed(w http.ResponseWriter, route, id string) (*domain.ConfirmedBooking, bool) {
	booking, err := h.sessions.Confirmed(id)
	if err == nil {
		return booking, true
	}

	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: session_id=%s", route, id)
		handlers.RespondNotFound(w, msgSessionNotFound)
	case errors.Is(err, sessions.ErrNotConfirmed):
		h.logger.Warn("%s - Booking not confirmed: session_id=%s", route, id)
		handlers.RespondConflict(w, msgNotConfirmed)
	default:
		h.logger.Error("%s - Failed: session_id=%s, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
	return nil, false
}
