package get_venue_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
// from и to задаются датами YYYY-MM-DD, to интерпретируется включительно
func ToServiceRequest(venueID, userID int64, query url.Values) (*models.GetVenueBookingsRequest, error) {
	req := &models.GetVenueBookingsRequest{
		UserID:  userID,
		VenueID: venueID,
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		// Конец периода - начало следующего дня, граница исключается
		to = to.AddDate(0, 0, 1)
		req.To = &to
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if includeStr := query.Get("includeInactive"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = include
	}

	return req, nil
}
