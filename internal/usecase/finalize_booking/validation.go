package finalize_booking

import "github.com/m04kA/SMC-BookingWizard/pkg/types"

// slotOnGrid проверяет, что слот входит в каноническую сетку
func slotOnGrid(grid []types.TimeString, slot types.TimeString) bool {
	for _, s := range grid {
		if s == slot {
			return true
		}
	}
	return false
}
