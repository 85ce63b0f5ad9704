package domain

// Service услуга из каталога. Только для чтения, источник - каталог.
type Service struct {
	ID              int64
	Name            string
	Description     string
	Price           float64 // в денежных единицах (R$)
	DurationMinutes int
	Category        string
}
