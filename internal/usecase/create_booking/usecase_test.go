package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/integrations/venueservice"
	"github.com/m04kA/SMC-VenueService/internal/reservation"
)

// memoryRepo хранит бронирования в памяти, имитируя поведение базы
type memoryRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (m *memoryRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	stored := *b
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	stored.StatusChangedAt = stored.CreatedAt
	m.bookings = append(m.bookings, &stored)

	result := stored
	return &result, nil
}

func (m *memoryRepo) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*domain.Booking
	for _, b := range m.bookings {
		if b.VenueID != filter.VenueID || !b.IsActive() {
			continue
		}
		if filter.From != nil && !b.EndTime.After(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartTime.Before(*filter.To) {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

type mockVenueClient struct {
	venue *venueservice.Venue
	err   error
}

func (m *mockVenueClient) GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error) {
	return m.venue, m.err
}

// passthroughTxManager выполняет функцию без настоящей транзакции:
// атомарность в тестах обеспечивает координатор резервирования
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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
		Name:       "Loft on Main",
		HourlyRate: 1200,
		Capacity:   50,
		OwnerID:    100,
		OperatingHours: venueservice.WeeklyHours{
			Monday: openDay("09:00", "22:00"),
		},
	}
}

func newTestUseCase(repo BookingRepository, venue *venueservice.Venue) *UseCase {
	return NewUseCase(
		repo,
		&mockVenueClient{venue: venue},
		passthroughTxManager{},
		reservation.NewCoordinator(3*time.Second),
		&fixedTimeProvider{now: monday.Add(-24 * time.Hour)},
		nopLogger{},
		240,
		640.0/7200.0,
	)
}

func validRequest() *Request {
	return &Request{
		OrganizerID:   7,
		VenueID:       42,
		StartTime:     monday.Add(9 * time.Hour),
		EndTime:       monday.Add(13 * time.Hour),
		AttendeeCount: 10,
		Purpose:       "corporate offsite",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &memoryRepo{}
	uc := newTestUseCase(repo, testVenue())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Regexp(t, `^VB-[0-9A-F]{12}$`, resp.Reference)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentUnpaid), resp.PaymentStatus)

	// Цена фиксируется при создании
	assert.Equal(t, 1200.0, resp.HourlyRate)
	assert.Equal(t, 4, resp.Hours)
	assert.Equal(t, 4800.0, resp.Subtotal)
	assert.Equal(t, 240.0, resp.ServiceFee)
	assert.Equal(t, 426.67, resp.Tax)
	assert.Equal(t, 5466.67, resp.Total)

	require.Len(t, repo.bookings, 1)
	stored := repo.bookings[0]
	assert.Equal(t, resp.Total, stored.Price.Total)
	assert.Equal(t, resp.Subtotal, stored.Price.Subtotal)
}

func TestUseCase_Execute_VenueNotFound(t *testing.T) {
	uc := NewUseCase(
		&memoryRepo{},
		&mockVenueClient{err: venueservice.ErrVenueNotFound},
		passthroughTxManager{},
		reservation.NewCoordinator(time.Second),
		&fixedTimeProvider{now: monday.Add(-24 * time.Hour)},
		nopLogger{},
		240,
		0,
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestUseCase_Execute_CapacityExceeded(t *testing.T) {
	uc := newTestUseCase(&memoryRepo{}, testVenue())

	req := validRequest()
	req.AttendeeCount = 51

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestUseCase_Execute_InvalidSlot(t *testing.T) {
	uc := newTestUseCase(&memoryRepo{}, testVenue())

	req := validRequest()
	req.StartTime = monday.Add(10 * time.Hour)
	req.EndTime = monday.Add(14 * time.Hour)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestUseCase_Execute_SlotTaken(t *testing.T) {
	repo := &memoryRepo{}
	uc := newTestUseCase(repo, testVenue())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Повторное бронирование того же слота другим организатором
	req := validRequest()
	req.OrganizerID = 8

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVenueUnavailable)
}

func TestUseCase_Execute_AdjacentSlotsAllowed(t *testing.T) {
	repo := &memoryRepo{}
	uc := newTestUseCase(repo, testVenue())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Соседний слот 13:00-17:00 не конфликтует с [09:00, 13:00)
	req := validRequest()
	req.StartTime = monday.Add(13 * time.Hour)
	req.EndTime = monday.Add(17 * time.Hour)

	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	repo := &memoryRepo{}
	uc := newTestUseCase(repo, testVenue())

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.OrganizerID = int64(i + 1)
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	// Из конкурирующих запросов на один слот успешен ровно один
	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrVenueUnavailable):
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)
	assert.Len(t, repo.bookings, 1)
}

func TestUseCase_Execute_ReservationTimeout(t *testing.T) {
	repo := &memoryRepo{}
	coordinator := reservation.NewCoordinator(50 * time.Millisecond)

	uc := NewUseCase(
		repo,
		&mockVenueClient{venue: testVenue()},
		passthroughTxManager{},
		coordinator,
		&fixedTimeProvider{now: monday.Add(-24 * time.Hour)},
		nopLogger{},
		240,
		0,
	)

	// Занимаем секцию площадки и держим дольше таймаута
	release := make(chan struct{})
	go func() {
		_ = coordinator.WithReservation(context.Background(), 42, func(ctx context.Context) error {
			<-release
			return nil
		})
	}()
	time.Sleep(10 * time.Millisecond)

	_, err := uc.Execute(context.Background(), validRequest())
	close(release)

	assert.ErrorIs(t, err, ErrReservationTimeout)
}
