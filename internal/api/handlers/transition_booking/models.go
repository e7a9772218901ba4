package transition_booking

import (
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

// TransitionBookingRequest HTTP request model
// Тело запроса опционально: paymentStatus учитывается только при action=confirm
type TransitionBookingRequest struct {
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *TransitionBookingRequest) ToServiceRequest(userID int64, action string) *models.TransitionRequest {
	return &models.TransitionRequest{
		UserID:        userID,
		Action:        models.Action(action),
		PaymentStatus: r.PaymentStatus,
	}
}
