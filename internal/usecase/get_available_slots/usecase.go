package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueClient "github.com/m04kA/SMC-VenueService/internal/integrations/venueservice"
	"github.com/m04kA/SMC-VenueService/pkg/ptr"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	venueClient  VenueServiceClient
	slotDuration time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueClient VenueServiceClient,
	slotDuration time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueClient:  venueClient,
		slotDuration: slotDuration,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Функция чистая относительно хранилища - повторный вызов с теми же входными
// данными и тем же состоянием бронирований возвращает тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: venue=%d, from=%s, to=%s",
		req.VenueID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем площадку
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailableSlots: venue id=%d not found", req.VenueID)
			return nil, fmt.Errorf("%w: venue_id=%d", ErrVenueNotFound, req.VenueID)
		}
		uc.logger.Error("GetAvailableSlots: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Генерируем кандидатные слоты по рабочим часам площадки
	candidates, err := generateCandidateSlots(
		req.VenueID,
		venue.OperatingHours,
		req.From,
		req.To,
		uc.slotDuration,
		now,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 5. Получаем активные бронирования за диапазон
	// Запас в двое суток по верхней границе покрывает слоты,
	// переходящие через полночь последнего дня
	rangeFrom := startOfDay(req.From)
	rangeTo := startOfDay(req.To).AddDate(0, 0, 2)

	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, domain.VenueBookingsFilter{
		VenueID: req.VenueID,
		From:    ptr.Ptr(rangeFrom),
		To:      ptr.Ptr(rangeTo),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Отбрасываем занятые слоты
	available := filterAvailable(candidates, bookings)

	uc.logger.Info("GetAvailableSlots: venue=%d, %d candidate slots, %d available",
		req.VenueID, len(candidates), len(available))

	slots := make([]Slot, len(available))
	for i, s := range available {
		slots[i] = Slot{StartTime: s.StartTime, EndTime: s.EndTime}
	}

	return &Response{
		VenueID: req.VenueID,
		From:    req.From,
		To:      req.To,
		Slots:   slots,
	}, nil
}
