package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-VenueService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	VenueID int64           `json:"venueId"`
	From    string          `json:"from"`
	To      string          `json:"to"`
	Slots   []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
	}

	return &AvailableSlotsResponse{
		VenueID: resp.VenueID,
		From:    resp.From.Format(domain.DateFormat),
		To:      resp.To.Format(domain.DateFormat),
		Slots:   slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// Если to не указан, возвращаются слоты одного дня from
func ToUseCaseRequest(venueID int64, fromStr, toStr string) (*getAvailableSlots.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	to := from
	if toStr != "" {
		to, err = time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		VenueID: venueID,
		From:    from,
		To:      to,
	}, nil
}
