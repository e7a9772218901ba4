package reservation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_MutualExclusion(t *testing.T) {
	c := NewCoordinator(5 * time.Second)

	var inside int32
	var maxInside int32

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.WithReservation(context.Background(), 42, func(ctx context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				if n > atomic.LoadInt32(&maxInside) {
					atomic.StoreInt32(&maxInside, n)
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Внутри секции одной площадки - не более одной горутины
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInside))
}

func TestCoordinator_IndependentVenues(t *testing.T) {
	c := NewCoordinator(100 * time.Millisecond)

	blocked := make(chan struct{})
	entered := make(chan struct{})

	go func() {
		_ = c.WithReservation(context.Background(), 1, func(ctx context.Context) error {
			close(entered)
			<-blocked
			return nil
		})
	}()
	<-entered

	// Секция другой площадки свободна
	err := c.WithReservation(context.Background(), 2, func(ctx context.Context) error {
		return nil
	})
	assert.NoError(t, err)

	close(blocked)
}

func TestCoordinator_AcquireTimeout(t *testing.T) {
	c := NewCoordinator(30 * time.Millisecond)

	release := make(chan struct{})
	entered := make(chan struct{})

	go func() {
		_ = c.WithReservation(context.Background(), 42, func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	err := c.WithReservation(context.Background(), 42, func(ctx context.Context) error {
		t.Error("section must not be entered after timeout")
		return nil
	})
	assert.ErrorIs(t, err, ErrReservationTimeout)

	close(release)
}

func TestCoordinator_ContextCancelled(t *testing.T) {
	c := NewCoordinator(5 * time.Second)

	release := make(chan struct{})
	entered := make(chan struct{})

	go func() {
		_ = c.WithReservation(context.Background(), 42, func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.WithReservation(ctx, 42, func(ctx context.Context) error {
		t.Error("section must not be entered after cancellation")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
}

func TestCoordinator_ReleasedOnError(t *testing.T) {
	c := NewCoordinator(time.Second)

	wantErr := errors.New("boom")
	err := c.WithReservation(context.Background(), 42, func(ctx context.Context) error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	// Секция освобождена и доступна следующему вызову
	err = c.WithReservation(context.Background(), 42, func(ctx context.Context) error {
		return nil
	})
	assert.NoError(t, err)
}
