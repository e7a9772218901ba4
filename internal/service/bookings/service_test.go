package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueService/internal/integrations/venueservice"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

const (
	organizerID = int64(7)
	ownerID     = int64(100)
	managerID   = int64(101)
	strangerID  = int64(999)
)

var slotStart = time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)

type mockRepo struct {
	booking *domain.Booking
	list    []*domain.Booking
	err     error

	updatedStatus  *domain.BookingStatus
	updatedPayment *domain.PaymentStatus
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *m.booking
	return &copied, nil
}

func (m *mockRepo) GetByOrganizerID(ctx context.Context, organizerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return m.list, m.err
}

func (m *mockRepo) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	return m.list, m.err
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus domain.PaymentStatus) error {
	m.updatedStatus = &status
	m.updatedPayment = &paymentStatus
	return nil
}

type mockVenueClient struct {
	venue *venueservice.Venue
	err   error
}

func (m *mockVenueClient) GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error) {
	return m.venue, m.err
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testVenue() *venueservice.Venue {
	return &venueservice.Venue{
		ID:         42,
		OwnerID:    ownerID,
		ManagerIDs: []int64{managerID},
	}
}

func testBooking(status domain.BookingStatus, payment domain.PaymentStatus) *domain.Booking {
	return &domain.Booking{
		ID:            1,
		Reference:     "VB-0123456789AB",
		VenueID:       42,
		OrganizerID:   organizerID,
		StartTime:     slotStart,
		EndTime:       slotStart.Add(4 * time.Hour),
		AttendeeCount: 10,
		Purpose:       "corporate offsite",
		Status:        status,
		PaymentStatus: payment,
	}
}

func newTestService(repo *mockRepo, now time.Time) *Service {
	return NewService(
		repo,
		&mockVenueClient{venue: testVenue()},
		passthroughTxManager{},
		&fixedTimeProvider{now: now},
		nopLogger{},
	)
}

func TestService_GetByID_Access(t *testing.T) {
	repo := &mockRepo{booking: testBooking(domain.StatusPending, domain.PaymentUnpaid)}
	svc := newTestService(repo, slotStart)

	// Организатор видит своё бронирование
	resp, err := svc.GetByID(context.Background(), 1, organizerID)
	require.NoError(t, err)
	assert.Equal(t, "VB-0123456789AB", resp.Reference)

	// Владелец и менеджер площадки видят бронирования площадки
	_, err = svc.GetByID(context.Background(), 1, ownerID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 1, managerID)
	assert.NoError(t, err)

	// Посторонний пользователь доступа не имеет
	_, err = svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := newTestService(&mockRepo{}, slotStart)

	_, err := svc.GetByID(context.Background(), 404, organizerID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetOrganizerBookings(t *testing.T) {
	repo := &mockRepo{list: []*domain.Booking{testBooking(domain.StatusConfirmed, domain.PaymentPaid)}}
	svc := newTestService(repo, slotStart)

	resp, err := svc.GetOrganizerBookings(context.Background(), &models.GetOrganizerBookingsRequest{
		UserID:      organizerID,
		OrganizerID: organizerID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	// Чужую историю смотреть нельзя
	_, err = svc.GetOrganizerBookings(context.Background(), &models.GetOrganizerBookingsRequest{
		UserID:      strangerID,
		OrganizerID: organizerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Некорректный статус фильтра
	bad := "unknown"
	_, err = svc.GetOrganizerBookings(context.Background(), &models.GetOrganizerBookingsRequest{
		UserID:      organizerID,
		OrganizerID: organizerID,
		Status:      &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetVenueBookings_ManagerOnly(t *testing.T) {
	repo := &mockRepo{list: []*domain.Booking{testBooking(domain.StatusPending, domain.PaymentUnpaid)}}
	svc := newTestService(repo, slotStart)

	resp, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		UserID:  managerID,
		VenueID: 42,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		UserID:  organizerID,
		VenueID: 42,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Transition_Confirm(t *testing.T) {
	t.Run("manager confirms pending", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusPending, domain.PaymentUnpaid)}
		svc := newTestService(repo, slotStart)

		resp, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: managerID,
			Action: models.ActionConfirm,
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
		require.NotNil(t, repo.updatedStatus)
		assert.Equal(t, domain.StatusConfirmed, *repo.updatedStatus)
	})

	t.Run("explicit processing payment", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusPending, domain.PaymentUnpaid)}
		svc := newTestService(repo, slotStart)

		processing := "processing"
		resp, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID:        managerID,
			Action:        models.ActionConfirm,
			PaymentStatus: &processing,
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.PaymentProcessing), resp.PaymentStatus)
	})

	t.Run("replay is a no-op success", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusConfirmed, domain.PaymentPaid)}
		svc := newTestService(repo, slotStart)

		resp, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: managerID,
			Action: models.ActionConfirm,
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Nil(t, repo.updatedStatus)
	})

	t.Run("organizer cannot confirm", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusPending, domain.PaymentUnpaid)}
		svc := newTestService(repo, slotStart)

		_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: organizerID,
			Action: models.ActionConfirm,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("cannot confirm cancelled", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusCancelled, domain.PaymentRefunded)}
		svc := newTestService(repo, slotStart)

		_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: managerID,
			Action: models.ActionConfirm,
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("invalid payment status", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusPending, domain.PaymentUnpaid)}
		svc := newTestService(repo, slotStart)

		refunded := "refunded"
		_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID:        managerID,
			Action:        models.ActionConfirm,
			PaymentStatus: &refunded,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Transition_Cancel(t *testing.T) {
	t.Run("organizer cancels pending", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusPending, domain.PaymentUnpaid)}
		svc := newTestService(repo, slotStart)

		resp, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: organizerID,
			Action: models.ActionCancel,
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		assert.Equal(t, string(domain.PaymentUnpaid), resp.PaymentStatus)
	})

	t.Run("paid booking is refunded on cancel", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusConfirmed, domain.PaymentPaid)}
		svc := newTestService(repo, slotStart)

		resp, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: managerID,
			Action: models.ActionCancel,
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		assert.Equal(t, string(domain.PaymentRefunded), resp.PaymentStatus)
	})

	t.Run("replay is a no-op success", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusCancelled, domain.PaymentRefunded)}
		svc := newTestService(repo, slotStart)

		resp, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: organizerID,
			Action: models.ActionCancel,
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		assert.Nil(t, repo.updatedStatus)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusPending, domain.PaymentUnpaid)}
		svc := newTestService(repo, slotStart)

		_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: strangerID,
			Action: models.ActionCancel,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("cannot cancel completed", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusCompleted, domain.PaymentPaid)}
		svc := newTestService(repo, slotStart)

		_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: managerID,
			Action: models.ActionCancel,
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestService_Transition_Complete(t *testing.T) {
	t.Run("manager completes finished booking", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusConfirmed, domain.PaymentPaid)}
		svc := newTestService(repo, slotStart.Add(5*time.Hour))

		resp, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: managerID,
			Action: models.ActionComplete,
		})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	})

	t.Run("premature completion rejected", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusConfirmed, domain.PaymentPaid)}
		svc := newTestService(repo, slotStart.Add(time.Hour))

		_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: managerID,
			Action: models.ActionComplete,
		})
		assert.ErrorIs(t, err, ErrPrematureCompletion)
	})

	t.Run("cannot complete pending", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusPending, domain.PaymentUnpaid)}
		svc := newTestService(repo, slotStart.Add(5*time.Hour))

		_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: managerID,
			Action: models.ActionComplete,
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("organizer cannot complete", func(t *testing.T) {
		repo := &mockRepo{booking: testBooking(domain.StatusConfirmed, domain.PaymentPaid)}
		svc := newTestService(repo, slotStart.Add(5*time.Hour))

		_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
			UserID: organizerID,
			Action: models.ActionComplete,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestService_Transition_UnknownAction(t *testing.T) {
	repo := &mockRepo{booking: testBooking(domain.StatusPending, domain.PaymentUnpaid)}
	svc := newTestService(repo, slotStart)

	_, err := svc.Transition(context.Background(), 1, &models.TransitionRequest{
		UserID: managerID,
		Action: "archive",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Transition_NotFound(t *testing.T) {
	svc := newTestService(&mockRepo{}, slotStart)

	_, err := svc.Transition(context.Background(), 404, &models.TransitionRequest{
		UserID: managerID,
		Action: models.ActionCancel,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
