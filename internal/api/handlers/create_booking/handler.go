package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-VenueService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVenueNotFound      = "площадка не найдена"
	msgVenueUnavailable   = "выбранный слот уже занят"
	msgCapacityExceeded   = "число участников превышает вместимость площадки"
	msgInvalidSlot        = "интервал не совпадает с доступным слотом площадки"
	msgReservationTimeout = "площадка перегружена запросами, повторите попытку"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	organizerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(organizerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrVenueUnavailable):
			h.logger.Warn("POST /bookings - Slot not available: organizer_id=%d, venue_id=%d", organizerID, req.VenueID)
			handlers.RespondError(w, http.StatusConflict, msgVenueUnavailable)

		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: organizer_id=%d, venue_id=%d, attendees=%d",
				organizerID, req.VenueID, req.AttendeeCount)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: organizer_id=%d, venue_id=%d", organizerID, req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrReservationTimeout):
			h.logger.Warn("POST /bookings - Reservation timeout: organizer_id=%d, venue_id=%d", organizerID, req.VenueID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgReservationTimeout)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: organizer_id=%d, venue_id=%d, error=%v",
				organizerID, req.VenueID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: organizer_id=%d, venue_id=%d, error=%v",
				organizerID, req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s, organizer_id=%d, venue_id=%d",
		result.ID, result.Reference, organizerID, req.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
