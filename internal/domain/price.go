package domain

import (
	"errors"
	"math"
	"time"
)

// ServiceFeeRate fixed platform fee applied to the subtotal (5%)
const ServiceFeeRate = 0.05

// ErrInvalidDuration is returned when a booking interval is not a
// positive whole number of hours
var ErrInvalidDuration = errors.New("pricing: duration must be a positive whole number of hours")

// PriceBreakdown holds the derived price of a booking.
// All monetary values are rounded to two decimal places.
type PriceBreakdown struct {
	HourlyRate float64
	Hours      int
	Subtotal   float64
	ServiceFee float64
	Tax        float64
	Total      float64
}

// CalculatePrice derives the price breakdown for the interval [start, end)
// at the given hourly rate. The tax rate is injected configuration, never
// hardcoded. Partial hours are rejected.
//
// Rounding uses round-half-even and is applied once per component at the
// end, not to intermediate terms, so Total always equals
// Subtotal + ServiceFee + Tax exactly.
func CalculatePrice(hourlyRate float64, start, end time.Time, taxRate float64) (PriceBreakdown, error) {
	duration := end.Sub(start)
	if duration <= 0 || duration%time.Hour != 0 {
		return PriceBreakdown{}, ErrInvalidDuration
	}
	hours := int(duration / time.Hour)

	rawSubtotal := hourlyRate * float64(hours)

	subtotal := roundHalfEven(rawSubtotal)
	serviceFee := roundHalfEven(rawSubtotal * ServiceFeeRate)
	tax := roundHalfEven(rawSubtotal * taxRate)
	total := roundHalfEven(subtotal + serviceFee + tax)

	return PriceBreakdown{
		HourlyRate: hourlyRate,
		Hours:      hours,
		Subtotal:   subtotal,
		ServiceFee: serviceFee,
		Tax:        tax,
		Total:      total,
	}, nil
}

// roundHalfEven rounds to two decimal places using banker's rounding
// to avoid cumulative drift
func roundHalfEven(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
