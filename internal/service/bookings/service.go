package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	venueClient "github.com/m04kA/SMC-VenueService/internal/integrations/venueservice"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	venueClient  VenueServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	venueClient VenueServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		bookingRepo:  bookingRepo,
		venueClient:  venueClient,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - организатор видит своё бронирование,
// менеджер площадки видит бронирования своей площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkBookingAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetOrganizerBookings получает историю бронирований организатора
// Организатор видит только собственные бронирования
// Опционально фильтрует по статусу
func (s *Service) GetOrganizerBookings(ctx context.Context, req *models.GetOrganizerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOrganizerBookings: fetching bookings for organizer=%d, status=%v", req.OrganizerID, req.Status)

	if req.UserID != req.OrganizerID {
		s.logger.Warn("GetOrganizerBookings: access denied for user=%d to organizer=%d history", req.UserID, req.OrganizerID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetOrganizerBookings: invalid status=%s for organizer=%d", *req.Status, req.OrganizerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByOrganizerID(ctx, req.OrganizerID, domainStatus)
	if err != nil {
		s.logger.Error("GetOrganizerBookings: repository error for organizer=%d: %v", req.OrganizerID, err)
		return nil, fmt.Errorf("%w: GetOrganizerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOrganizerBookings: successfully fetched %d bookings for organizer=%d", len(bookings), req.OrganizerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetVenueBookings получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований
// Доступно только владельцу и менеджерам площадки
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetVenueBookings: fetching bookings for venue=%d, user=%d", req.VenueID, req.UserID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа менеджера площадки
	if _, err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: successfully fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}

// Transition переводит бронирование в новый статус по действию confirm/cancel/complete
//
// Машина состояний движется только вперёд: pending -> confirmed -> completed,
// отмена возможна из pending и confirmed. Повтор действия, которое уже привело
// бронирование в целевой статус, считается успехом и записи не меняет
//
// Права доступа:
//   - confirm, complete - только владелец или менеджер площадки
//   - cancel - организатор бронирования либо менеджер площадки
func (s *Service) Transition(ctx context.Context, bookingID int64, req *models.TransitionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Transition: applying action=%s to booking id=%d by user=%d", req.Action, bookingID, req.UserID)

	if !models.ValidAction(req.Action) {
		s.logger.Warn("Transition: unknown action=%s for booking id=%d", req.Action, bookingID)
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	var result *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}

		newStatus, newPayment, err := s.applyAction(ctx, booking, req)
		if err != nil {
			return err
		}

		// Повтор уже применённого действия - успех без изменения записи
		if newStatus == booking.Status && newPayment == booking.PaymentStatus {
			result = booking
			return nil
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus, newPayment); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}

		booking.Status = newStatus
		booking.PaymentStatus = newPayment
		booking.StatusChangedAt = s.timeProvider.Now()
		result = booking
		return nil
	})
	if err != nil {
		s.logger.Warn("Transition: action=%s failed for booking id=%d: %v", req.Action, bookingID, err)
		return nil, err
	}

	s.logger.Info("Transition: booking id=%d is now status=%s, payment=%s", bookingID, result.Status, result.PaymentStatus)
	return models.FromDomainBooking(result), nil
}

// applyAction вычисляет целевые статусы для действия и проверяет права доступа
func (s *Service) applyAction(ctx context.Context, booking *domain.Booking, req *models.TransitionRequest) (domain.BookingStatus, domain.PaymentStatus, error) {
	switch req.Action {
	case models.ActionConfirm:
		if _, err := s.checkManagerAccess(ctx, booking.VenueID, req.UserID); err != nil {
			return "", "", err
		}

		payment := domain.PaymentPaid
		if req.PaymentStatus != nil {
			p, err := models.ToDomainPaymentStatus(*req.PaymentStatus)
			if err != nil {
				return "", "", fmt.Errorf("%w: invalid payment status %q", ErrInvalidInput, *req.PaymentStatus)
			}
			payment = p
		}

		if booking.Status == domain.StatusConfirmed {
			return domain.StatusConfirmed, booking.PaymentStatus, nil
		}
		if !booking.CanTransitionTo(domain.StatusConfirmed) {
			return "", "", fmt.Errorf("%w: %s -> confirmed", ErrInvalidTransition, booking.Status)
		}
		return domain.StatusConfirmed, payment, nil

	case models.ActionCancel:
		if err := s.checkBookingAccess(ctx, booking, req.UserID); err != nil {
			return "", "", err
		}

		if booking.Status == domain.StatusCancelled {
			return domain.StatusCancelled, booking.PaymentStatus, nil
		}
		if !booking.CanTransitionTo(domain.StatusCancelled) {
			return "", "", fmt.Errorf("%w: %s -> cancelled", ErrInvalidTransition, booking.Status)
		}

		// Оплаченное бронирование при отмене уходит в возврат
		payment := booking.PaymentStatus
		if payment == domain.PaymentPaid {
			payment = domain.PaymentRefunded
		}
		return domain.StatusCancelled, payment, nil

	case models.ActionComplete:
		if _, err := s.checkManagerAccess(ctx, booking.VenueID, req.UserID); err != nil {
			return "", "", err
		}

		if booking.Status == domain.StatusCompleted {
			return domain.StatusCompleted, booking.PaymentStatus, nil
		}
		if !booking.CanTransitionTo(domain.StatusCompleted) {
			return "", "", fmt.Errorf("%w: %s -> completed", ErrInvalidTransition, booking.Status)
		}
		if !booking.IsFinished(s.timeProvider.Now()) {
			return "", "", fmt.Errorf("%w: booking ends at %s", ErrPrematureCompletion, booking.EndTime.Format(domain.DateFormat+" "+domain.TimeFormat))
		}
		return domain.StatusCompleted, booking.PaymentStatus, nil
	}

	return "", "", fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
}

// Вспомогательные методы

// checkBookingAccess проверяет, что пользователь имеет доступ к бронированию
// Доступ есть у организатора бронирования и у менеджеров площадки
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.OrganizerID == userID {
		return nil
	}

	if _, err := s.checkManagerAccess(ctx, booking.VenueID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является владельцем или менеджером площадки
func (s *Service) checkManagerAccess(ctx context.Context, venueID int64, userID int64) (*venueClient.Venue, error) {
	venue, err := s.venueClient.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("checkManagerAccess: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: checkManagerAccess - failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsManagedBy(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of venue=%d", userID, venueID)
		return nil, ErrAccessDenied
	}

	return venue, nil
}
