package get_month_calendar

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

const (
	msgInvalidYear     = "некорректный год"
	msgInvalidMonth    = "некорректный месяц, ожидается 1-12"
	msgInvalidSelected = "некорректный формат выбранной даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	engine AvailabilityEngine
	logger Logger
}

func NewHandler(engine AvailabilityEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Handle GET /api/v1/calendar/{year}/{month}
// Query params: selected (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil || year < 1 || year > 9999 {
		h.logger.Warn("GET /calendar/{year}/{month} - Invalid year: %s", vars["year"])
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		h.logger.Warn("GET /calendar/{year}/{month} - Invalid month: %s", vars["month"])
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	var selected *time.Time
	if s := r.URL.Query().Get("selected"); s != "" {
		date, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			h.logger.Warn("GET /calendar/{year}/{month} - Invalid selected date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSelected)
			return
		}
		selected = &date
	}

	grid, err := h.engine.MonthCalendar(year, time.Month(month), selected)
	if err != nil {
		h.logger.Error("GET /calendar/{year}/{month} - Failed to build calendar: year=%d, month=%d, error=%v", year, month, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar/{year}/{month} - Calendar built: year=%d, month=%d", year, month)
	handlers.RespondJSON(w, http.StatusOK, FromDomainGrid(year, month, grid))
}
