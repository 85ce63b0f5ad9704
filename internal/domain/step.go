package domain

// Step шаг мастера бронирования
type Step int

const (
	StepSelectService  Step = 1
	StepSelectDateTime Step = 2
	StepEnterDetails   Step = 3
	StepConfirmed      Step = 4
)

// TotalSteps количество шагов мастера
const TotalSteps = 4

// String возвращает имя шага
func (s Step) String() string {
	switch s {
	case StepSelectService:
		return "selecting_service"
	case StepSelectDateTime:
		return "selecting_date_time"
	case StepEnterDetails:
		return "entering_details"
	case StepConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Progress доля пройденных шагов (currentStep / totalSteps)
func (s Step) Progress() float64 {
	return float64(s) / float64(TotalSteps)
}

// IsTerminal возвращает true для подтвержденного бронирования
func (s Step) IsTerminal() bool {
	return s == StepConfirmed
}
