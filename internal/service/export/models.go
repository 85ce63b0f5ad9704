package export

// Config данные салона для экспорта
type Config struct {
	SalonName      string
	Location       string
	WhatsAppNumber string // международный формат, нецифровые символы игнорируются
}

// Links ссылки на экспорт подтвержденного бронирования
type Links struct {
	GoogleCalendar string `json:"google_calendar"`
	WhatsApp       string `json:"whatsapp,omitempty"`
	ICS            string `json:"ics"`
}
