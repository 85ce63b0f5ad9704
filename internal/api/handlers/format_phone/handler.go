package format_phone

import (
	"net/http"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/pkg/phone"
)

// PhoneResponse HTTP response model
type PhoneResponse struct {
	Formatted string `json:"formatted"`
	Valid     bool   `json:"valid"`
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/phone/format
// Query params: value - номер в любом виде, форматируется по мере ввода
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	formatted := phone.Format(r.URL.Query().Get("value"))

	handlers.RespondJSON(w, http.StatusOK, PhoneResponse{
		Formatted: formatted,
		Valid:     phone.IsValid(formatted),
	})
}
