package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	venueClient "github.com/m04kA/SMC-VenueService/internal/integrations/venueservice"
)

// UseCase use case для расчета стоимости бронирования
//
// Цена всегда считается от авторитетной почасовой ставки из каталога площадок,
// никогда не принимается от клиента
type UseCase struct {
	venueClient VenueServiceClient
	taxRate     float64
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// taxRate - ставка налога из конфигурации
func NewUseCase(venueClient VenueServiceClient, taxRate float64, logger Logger) *UseCase {
	return &UseCase{
		venueClient: venueClient,
		taxRate:     taxRate,
		logger:      logger,
	}
}

// Execute выполняет расчет цены за интервал [StartTime, EndTime)
// Расчет детерминирован: одинаковые входные данные дают одинаковую разбивку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: venue=%d, start=%s, end=%s",
		req.VenueID, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if req.VenueID <= 0 {
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	// 2. Получаем площадку (авторитетный источник почасовой ставки)
	venue, err := uc.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			uc.logger.Warn("QuotePrice: venue id=%d not found", req.VenueID)
			return nil, fmt.Errorf("%w: venue_id=%d", ErrVenueNotFound, req.VenueID)
		}
		uc.logger.Error("QuotePrice: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Считаем разбивку цены
	price, err := domain.CalculatePrice(venue.HourlyRate, req.StartTime, req.EndTime, uc.taxRate)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDuration) {
			uc.logger.Warn("QuotePrice: invalid duration for venue id=%d: %v", req.VenueID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
		}
		return nil, fmt.Errorf("%w: failed to calculate price: %v", ErrInternal, err)
	}

	uc.logger.Info("QuotePrice: venue=%d, hours=%d, total=%.2f", req.VenueID, price.Hours, price.Total)

	return &Response{
		VenueID:    req.VenueID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		HourlyRate: price.HourlyRate,
		Hours:      price.Hours,
		Subtotal:   price.Subtotal,
		ServiceFee: price.ServiceFee,
		Tax:        price.Tax,
		Total:      price.Total,
	}, nil
}
