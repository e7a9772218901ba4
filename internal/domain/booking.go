package domain

import "time"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	PaymentUnpaid     PaymentStatus = "unpaid"
	PaymentProcessing PaymentStatus = "processing"
	PaymentPaid       PaymentStatus = "paid"
	PaymentRefunded   PaymentStatus = "refunded"
)

// allowedTransitions defines the booking state machine.
// Transitions only move forward; cancelled and completed are terminal.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

// Booking represents a venue booking in the system
type Booking struct {
	ID          int64
	Reference   string // human-readable booking code, unique
	VenueID     int64
	OrganizerID int64

	StartTime time.Time
	EndTime   time.Time

	AttendeeCount   int
	Purpose         string
	SpecialRequests *string

	Status        BookingStatus
	PaymentStatus PaymentStatus

	// Price breakdown, computed from the authoritative venue rate at
	// creation time and immutable afterwards
	Price PriceBreakdown

	CreatedAt       time.Time
	StatusChangedAt time.Time
}

// IsActive returns true if the booking blocks its time slot
// (pending and confirmed bookings count against availability)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further transitions are permitted
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanTransitionTo returns true if the state machine permits moving to next
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Overlaps reports whether the booking interval overlaps [start, end)
// under half-open interval semantics: two intervals [a,b) and [c,d)
// overlap iff a < d and c < b
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// IsFinished returns true if the booked interval lies entirely in the past
func (b *Booking) IsFinished(now time.Time) bool {
	return !b.EndTime.After(now)
}

// VenueBookingsFilter фильтр для получения бронирований площадки
type VenueBookingsFilter struct {
	VenueID         int64          // Обязательный параметр
	From            *time.Time     // Начало периода (опционально)
	To              *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и завершённые бронирования
	ForUpdate       bool           // Блокировать строки (SELECT ... FOR UPDATE), только внутри транзакции
}

// ActiveStatuses statuses that block availability
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses statuses excluded from availability checks
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}

// ValidStatus returns true if s is a known booking status
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}
