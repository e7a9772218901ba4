package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/integrations/venueservice"
	"github.com/m04kA/SMC-VenueService/internal/reservation"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
)

// UseCase создание бронирования
type UseCase struct {
	repo         BookingRepository
	venueClient  VenueServiceClient
	txManager    TransactionManager
	coordinator  ReservationCoordinator
	timeProvider TimeProvider
	logger       Logger
	slotDuration time.Duration
	taxRate      float64
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	repo BookingRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	coordinator ReservationCoordinator,
	timeProvider TimeProvider,
	logger Logger,
	slotDurationMinutes int,
	taxRate float64,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	return &UseCase{
		repo:         repo,
		venueClient:  venueClient,
		txManager:    txManager,
		coordinator:  coordinator,
		timeProvider: timeProvider,
		logger:       logger,
		slotDuration: time.Duration(slotDurationMinutes) * time.Minute,
		taxRate:      taxRate,
	}
}

// Execute создает бронирование слота
//
// Проверки читаемости (площадка, вместимость, сетка слотов, цена) выполняются
// до входа в эксклюзивную секцию. Проверка занятости слота и вставка записи
// выполняются внутри секции площадки, в serializable-транзакции с блокировкой
// конфликтующих строк, так что из конкурирующих запросов на один слот
// успешным оказывается ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("[CreateBooking] Validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем площадку из VenueService
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueservice.ErrVenueNotFound) {
			uc.logger.Warn("[CreateBooking] Venue %d not found", req.VenueID)
			return nil, fmt.Errorf("%w: venueID %d", ErrVenueNotFound, req.VenueID)
		}
		uc.logger.Error("[CreateBooking] Failed to get venue %d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Проверяем вместимость площадки
	if req.AttendeeCount > venue.Capacity {
		uc.logger.Warn("[CreateBooking] Attendee count %d exceeds capacity %d of venue %d",
			req.AttendeeCount, venue.Capacity, req.VenueID)
		return nil, fmt.Errorf("%w: %d attendees, capacity %d", ErrCapacityExceeded, req.AttendeeCount, venue.Capacity)
	}

	// 4. Проверяем, что интервал лежит на сетке слотов площадки
	if err := validateSlot(venue.OperatingHours, req.StartTime, req.EndTime, uc.slotDuration, now); err != nil {
		uc.logger.Warn("[CreateBooking] Slot validation failed for venue %d: %v", req.VenueID, err)
		return nil, err
	}

	// 5. Рассчитываем и фиксируем цену
	price, err := domain.CalculatePrice(venue.HourlyRate, req.StartTime, req.EndTime, uc.taxRate)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDuration) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
		}
		uc.logger.Error("[CreateBooking] Failed to calculate price for venue %d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to calculate price: %v", ErrInternal, err)
	}

	booking := &domain.Booking{
		Reference:       newReference(),
		VenueID:         req.VenueID,
		OrganizerID:     req.OrganizerID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		AttendeeCount:   req.AttendeeCount,
		Purpose:         req.Purpose,
		SpecialRequests: req.SpecialRequests,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentUnpaid,
		Price:           price,
	}

	// 6. Проверка занятости и вставка в эксклюзивной секции площадки
	var created *domain.Booking
	err = uc.coordinator.WithReservation(ctx, req.VenueID, func(ctx context.Context) error {
		return uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
			existing, err := uc.repo.GetByVenueWithFilter(ctx, domain.VenueBookingsFilter{
				VenueID:   req.VenueID,
				From:      ptr.Ptr(req.StartTime),
				To:        ptr.Ptr(req.EndTime),
				ForUpdate: true,
			})
			if err != nil {
				return fmt.Errorf("failed to get active bookings: %w", err)
			}

			if countOverlapping(req.StartTime, req.EndTime, existing) > 0 {
				return fmt.Errorf("%w: venueID %d, start %s", ErrVenueUnavailable,
					req.VenueID, req.StartTime.Format(time.RFC3339))
			}

			created, err = uc.repo.Create(ctx, booking)
			if err != nil {
				return fmt.Errorf("failed to create booking: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, ErrVenueUnavailable) {
			uc.logger.Info("[CreateBooking] Slot taken for venue %d at %s",
				req.VenueID, req.StartTime.Format(time.RFC3339))
			return nil, err
		}
		if errors.Is(err, reservation.ErrReservationTimeout) {
			uc.logger.Warn("[CreateBooking] Reservation section timeout for venue %d", req.VenueID)
			return nil, fmt.Errorf("%w: venueID %d", ErrReservationTimeout, req.VenueID)
		}
		uc.logger.Error("[CreateBooking] Failed to create booking for venue %d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("[CreateBooking] Booking %s created: venue %d, organizer %d, start %s",
		created.Reference, created.VenueID, created.OrganizerID, created.StartTime.Format(time.RFC3339))

	return toResponse(created), nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
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
		HourlyRate:      b.Price.HourlyRate,
		Hours:           b.Price.Hours,
		Subtotal:        b.Price.Subtotal,
		ServiceFee:      b.Price.ServiceFee,
		Tax:             b.Price.Tax,
		Total:           b.Price.Total,
		CreatedAt:       b.CreatedAt,
		StatusChangedAt: b.StatusChangedAt,
	}
}
