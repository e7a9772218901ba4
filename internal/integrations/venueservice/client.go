package venueservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с VenueService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger

	// Опциональный кэш ответов в Redis
	rdb      *redis.Client
	cacheTTL time.Duration
}

// NewClient создает новый экземпляр клиента VenueService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// UseRedisCache включает кэширование ответов GetVenue в Redis с указанным TTL
// Кэш снижает нагрузку на VenueService при частых запросах доступных слотов
func (c *Client) UseRedisCache(rdb *redis.Client, ttl time.Duration) {
	c.rdb = rdb
	c.cacheTTL = ttl
}

// GetVenue получает площадку по ID
// Возвращает ErrVenueNotFound, если площадка отсутствует в каталоге
func (c *Client) GetVenue(ctx context.Context, venueID int64) (*Venue, error) {
	if venue, ok := c.cachedVenue(ctx, venueID); ok {
		return venue, nil
	}

	url := fmt.Sprintf("%s/internal/venues/%d", c.baseURL, venueID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid venue ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: venue_id=%d", ErrVenueNotFound, venueID)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var venue Venue
	if err := json.NewDecoder(resp.Body).Decode(&venue); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.storeVenue(ctx, &venue)

	return &venue, nil
}

// cachedVenue пытается прочитать площадку из Redis кэша
// Любая ошибка кэша трактуется как cache miss
func (c *Client) cachedVenue(ctx context.Context, venueID int64) (*Venue, bool) {
	if c.rdb == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, venueCacheKey(venueID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("GetVenue: cache read failed for venue_id=%d: %v", venueID, err)
		}
		return nil, false
	}

	var venue Venue
	if err := json.Unmarshal(data, &venue); err != nil {
		c.log.Warn("GetVenue: cache entry corrupted for venue_id=%d: %v", venueID, err)
		return nil, false
	}

	return &venue, true
}

// storeVenue сохраняет площадку в Redis кэш
// Ошибки записи только логируются - кэш не критичен для работы сервиса
func (c *Client) storeVenue(ctx context.Context, venue *Venue) {
	if c.rdb == nil {
		return
	}

	data, err := json.Marshal(venue)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, venueCacheKey(venue.ID), data, c.cacheTTL).Err(); err != nil {
		c.log.Warn("GetVenue: cache write failed for venue_id=%d: %v", venue.ID, err)
	}
}

func venueCacheKey(venueID int64) string {
	return fmt.Sprintf("venueservice:venue:%d", venueID)
}
