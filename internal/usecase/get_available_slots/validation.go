package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidDateRange)
	}

	if int(req.To.Sub(req.From).Hours()/24) > domain.MaxSlotRangeDays {
		return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidDateRange, domain.MaxSlotRangeDays)
	}

	return nil
}
