package booking_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/service/sessions"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgSessionNotFound     = "сессия не найдена или истекла"
	msgServiceNotFound     = "услуга не найдена"
	msgSubmissionInFlight  = "бронирование уже отправлено, дождитесь ответа"
	msgSubmissionDiscarded = "отправка отменена: мастер вернулся на предыдущий шаг"
	msgInvalidField        = "неизвестное поле формы"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Start POST /api/v1/sessions
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	res := h.service.Start()

	h.logger.Info("POST /sessions - Session started: session_id=%s", res.SessionID)
	handlers.RespondJSON(w, http.StatusCreated, FromResult(res))
}

// Get GET /api/v1/sessions/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	res, err := h.service.State(id)
	h.respond(w, "GET /sessions/{id}", id, res, err)
}

// Delete DELETE /api/v1/sessions/{sessionId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	if err := h.service.Delete(id); err != nil {
		h.respondError(w, "DELETE /sessions/{id}", id, err)
		return
	}

	h.logger.Info("DELETE /sessions/{id} - Session closed: session_id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

// SelectService POST /api/v1/sessions/{sessionId}/service
func (h *Handler) SelectService(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	var req SelectServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/service - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.ServiceID <= 0 {
		h.logger.Warn("POST /sessions/{id}/service - Invalid service ID: %d", req.ServiceID)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	res, err := h.service.SelectService(r.Context(), id, req.ServiceID)
	h.respond(w, "POST /sessions/{id}/service", id, res, err)
}

// SelectDate POST /api/v1/sessions/{sessionId}/date
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/date - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	date, err := req.ToDate()
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/date - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	res, err := h.service.SelectDate(r.Context(), id, date)
	h.respond(w, "POST /sessions/{id}/date", id, res, err)
}

// SelectTime POST /api/v1/sessions/{sessionId}/time
func (h *Handler) SelectTime(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	var req SelectTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/time - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	slot, err := req.ToSlot()
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/time - Invalid time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	res, err := h.service.SelectTime(r.Context(), id, slot)
	h.respond(w, "POST /sessions/{id}/time", id, res, err)
}

// SubmitDetails POST /api/v1/sessions/{sessionId}/details
// Ошибки валидации полей возвращаются в errors со статусом 200 и applied=false.
func (h *Handler) SubmitDetails(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	var req ClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/details - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	res, err := h.service.SubmitDetails(r.Context(), id, req.ToDomain())
	h.respond(w, "POST /sessions/{id}/details", id, res, err)
}

// GoBack POST /api/v1/sessions/{sessionId}/back
func (h *Handler) GoBack(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	res, err := h.service.GoBack(id)
	h.respond(w, "POST /sessions/{id}/back", id, res, err)
}

// StartNewBooking POST /api/v1/sessions/{sessionId}/new
func (h *Handler) StartNewBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	res, err := h.service.StartNewBooking(id)
	h.respond(w, "POST /sessions/{id}/new", id, res, err)
}

// ClearFieldError DELETE /api/v1/sessions/{sessionId}/errors/{field}
func (h *Handler) ClearFieldError(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["sessionId"]

	res, err := h.service.ClearFieldError(id, vars["field"])
	h.respond(w, "DELETE /sessions/{id}/errors/{field}", id, res, err)
}

func (h *Handler) respond(w http.ResponseWriter, route, id string, res *sessions.Result, err error) {
	if err != nil {
		h.respondError(w, route, id, err)
		return
	}

	h.logger.Info("%s - session_id=%s, step=%s, applied=%t", route, id, res.State.Step, res.Applied)
	handlers.RespondJSON(w, http.StatusOK, FromResult(res))
}

func (h *Handler) respondError(w http.ResponseWriter, route, id string, err error) {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: session_id=%s", route, id)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, sessions.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: session_id=%s", route, id)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, sessions.ErrSubmissionInFlight):
		h.logger.Warn("%s - Submission in flight: session_id=%s", route, id)
		handlers.RespondConflict(w, msgSubmissionInFlight)

	case errors.Is(err, sessions.ErrSubmissionDiscarded):
		h.logger.Warn("%s - Submission discarded: session_id=%s", route, id)
		handlers.RespondConflict(w, msgSubmissionDiscarded)

	case errors.Is(err, sessions.ErrInvalidField):
		h.logger.Warn("%s - Invalid field: session_id=%s, error=%v", route, id, err)
		handlers.RespondBadRequest(w, msgInvalidField)

	default:
		h.logger.Error("%s - Failed: session_id=%s, error=%v", route, id, err)
		handlers.RespondInternalError(w)
	}
}
