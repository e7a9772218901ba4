package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidAction возвращается при некорректном действии над бронированием
	ErrInvalidAction = errors.New("invalid booking action")

	// ErrInvalidPaymentStatus возвращается при некорректном платежном статусе
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Action действие над жизненным циклом бронирования
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

// Request модели

// TransitionRequest запрос на перевод бронирования в новый статус
type TransitionRequest struct {
	UserID int64  `json:"userId"`
	Action Action `json:"action"`

	// PaymentStatus учитывается только при action=confirm: paid или processing
	// Если не указан, подтверждение фиксирует оплату (paid)
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}

// GetOrganizerBookingsRequest запрос на получение бронирований организатора
type GetOrganizerBookingsRequest struct {
	UserID      int64   `json:"userId"`
	OrganizerID int64   `json:"organizerId"`
	Status      *string `json:"status,omitempty"`
}

// GetVenueBookingsRequest запрос на получение бронирований площадки
type GetVenueBookingsRequest struct {
	UserID          int64      `json:"userId"`
	VenueID         int64      `json:"venueId"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и завершённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVenueBookingsRequest) ToDomainFilter() (domain.VenueBookingsFilter, error) {
	filter := domain.VenueBookingsFilter{
		VenueID:         r.VenueID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
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

	CreatedAt       time.Time `json:"createdAt"`
	StatusChangedAt time.Time `json:"statusChangedAt"`
}

// PriceResponse разбивка цены, зафиксированная при создании бронирования
type PriceResponse struct {
	HourlyRate float64 `json:"hourlyRate"`
	Hours      int     `json:"hours"`
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"serviceFee"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		Reference:       b.Reference,
		VenueID:         b.VenueID,
		OrganizerID:     b.OrganizerID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		AttendeeCount:   b.AttendeeCount,
		Purpose:         b.Purpose,
		SpecialRequests: b.SpecialRequests,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		Price: PriceResponse{
			HourlyRate: b.Price.HourlyRate,
			Hours:      b.Price.Hours,
			Subtotal:   b.Price.Subtotal,
			ServiceFee: b.Price.ServiceFee,
			Tax:        b.Price.Tax,
			Total:      b.Price.Total,
		},
		CreatedAt:       b.CreatedAt,
		StatusChangedAt: b.StatusChangedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus
// При подтверждении допустимы только paid и processing
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)
	if s != domain.PaymentPaid && s != domain.PaymentProcessing {
		return "", ErrInvalidPaymentStatus
	}
	return s, nil
}

// ValidAction проверяет, что действие известно машине состояний
func ValidAction(a Action) bool {
	switch a {
	case ActionConfirm, ActionCancel, ActionComplete:
		return true
	}
	return false
}
