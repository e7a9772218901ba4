package transition_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgNotFound            = "бронирование не найдено"
	msgVenueNotFound       = "площадка не найдена"
	msgForbidden           = "доступ запрещен"
	msgInvalidTransition   = "переход статуса недопустим"
	msgPrematureCompletion = "бронирование ещё не завершилось"
	msgInvalidInput        = "некорректные данные запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{action}
// action: confirm, cancel или complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем bookingId из URL
	bookingIDStr := vars["bookingId"]
	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/{action} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	action := vars["action"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/{action} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело запроса опционально
	var req TransitionBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{id}/{action} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Выполняем переход (сервис сам проверит права доступа и машину состояний)
	booking, err := h.service.Transition(r.Context(), bookingID, req.ToServiceRequest(userID, action))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/{action} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrVenueNotFound):
			h.logger.Warn("PATCH /bookings/{id}/{action} - Venue not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/{action} - Access denied: booking_id=%d, user_id=%d, action=%s",
				bookingID, userID, action)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/{action} - Invalid transition: booking_id=%d, action=%s",
				bookingID, action)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, bookings.ErrPrematureCompletion):
			h.logger.Warn("PATCH /bookings/{id}/{action} - Premature completion: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgPrematureCompletion)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/{action} - Invalid input: booking_id=%d, action=%s, error=%v",
				bookingID, action, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/{action} - Failed to transition booking: booking_id=%d, action=%s, error=%v",
				bookingID, action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/{action} - Booking transitioned successfully: booking_id=%d, action=%s, status=%s",
		bookingID, action, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
