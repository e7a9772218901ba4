package quote_price

import (
	"time"

	quotePrice "github.com/m04kA/SMC-VenueService/internal/usecase/quote_price"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	VenueID   int64     `json:"venueId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`

	HourlyRate float64 `json:"hourlyRate"`
	Hours      int     `json:"hours"`
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"serviceFee"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	return &QuoteResponse{
		VenueID:    resp.VenueID,
		StartTime:  resp.StartTime,
		EndTime:    resp.EndTime,
		HourlyRate: resp.HourlyRate,
		Hours:      resp.Hours,
		Subtotal:   resp.Subtotal,
		ServiceFee: resp.ServiceFee,
		Tax:        resp.Tax,
		Total:      resp.Total,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(venueID int64, startStr, endStr string) (*quotePrice.Request, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, err
	}

	return &quotePrice.Request{
		VenueID:   venueID,
		StartTime: start,
		EndTime:   end,
	}, nil
}
