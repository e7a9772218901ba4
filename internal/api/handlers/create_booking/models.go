package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-VenueService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID         int64   `json:"venueId"`
	StartTime       string  `json:"startTime"` // RFC3339
	EndTime         string  `json:"endTime"`   // RFC3339
	AttendeeCount   int     `json:"attendeeCount"`
	Purpose         string  `json:"purpose"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	Reference   string `json:"reference"`
	VenueID     int64  `json:"venueId"`
	OrganizerID int64  `json:"organizerId"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	AttendeeCount   int     `json:"attendeeCount"`
	Purpose         string  `json:"purpose"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	Price PriceResponse `json:"price"`

	CreatedAt       string `json:"createdAt"`       // ISO 8601 format
	StatusChangedAt string `json:"statusChangedAt"` // ISO 8601 format
}

// PriceResponse разбивка цены бронирования
type PriceResponse struct {
	HourlyRate float64 `json:"hourlyRate"`
	Hours      int     `json:"hours"`
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"serviceFee"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(organizerID int64) (*createBooking.Request, error) {
	// Парсим начало интервала
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	// Парсим конец интервала
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		OrganizerID:     organizerID,
		VenueID:         r.VenueID,
		StartTime:       start,
		EndTime:         end,
		AttendeeCount:   r.AttendeeCount,
		Purpose:         r.Purpose,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		VenueID:         resp.VenueID,
		OrganizerID:     resp.OrganizerID,
		StartTime:       resp.StartTime,
		EndTime:         resp.EndTime,
		AttendeeCount:   resp.AttendeeCount,
		Purpose:         resp.Purpose,
		SpecialRequests: resp.SpecialRequests,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		Price: PriceResponse{
			HourlyRate: resp.HourlyRate,
			Hours:      resp.Hours,
			Subtotal:   resp.Subtotal,
			ServiceFee: resp.ServiceFee,
			Tax:        resp.Tax,
			Total:      resp.Total,
		},
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		StatusChangedAt: resp.StatusChangedAt.Format(time.RFC3339),
	}
}
