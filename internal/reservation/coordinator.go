package reservation

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultAcquireTimeout время ожидания секции по умолчанию
const DefaultAcquireTimeout = 3 * time.Second

// Coordinator сериализует попытки создания бронирования по площадкам
//
// Гранулярность блокировки - площадка целиком, а не отдельный слот:
// повторная проверка доступности внутри секции дешёвая, а конкуренция
// за одну площадку ожидается низкой
type Coordinator struct {
	mu             sync.Mutex
	venues         map[int64]chan struct{}
	acquireTimeout time.Duration
}

// NewCoordinator создает новый координатор резервирования
// acquireTimeout <= 0 заменяется на DefaultAcquireTimeout
func NewCoordinator(acquireTimeout time.Duration) *Coordinator {
	if acquireTimeout <= 0 {
		acquireTimeout = DefaultAcquireTimeout
	}
	return &Coordinator{
		venues:         make(map[int64]chan struct{}),
		acquireTimeout: acquireTimeout,
	}
}

// WithReservation выполняет fn внутри эксклюзивной секции площадки
//
// Секция освобождается на всех путях выхода, включая ошибку и панику в fn.
// Если секцию не удалось получить за acquireTimeout, возвращается
// ErrReservationTimeout - медленный вызов не может бесконечно блокировать остальных
func (c *Coordinator) WithReservation(ctx context.Context, venueID int64, fn func(ctx context.Context) error) error {
	sem := c.semaphore(venueID)

	timer := time.NewTimer(c.acquireTimeout)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
		defer func() { <-sem }()
		return fn(ctx)
	case <-timer.C:
		return fmt.Errorf("%w: venue_id=%d, timeout=%s", ErrReservationTimeout, venueID, c.acquireTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// semaphore возвращает семафор площадки, создавая его при первом обращении
func (c *Coordinator) semaphore(venueID int64) chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	sem, ok := c.venues[venueID]
	if !ok {
		sem = make(chan struct{}, 1)
		c.venues[venueID] = sem
	}
	return sem
}
