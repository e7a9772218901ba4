package get_organizer_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

const (
	msgInvalidOrganizerID = "некорректный ID организатора"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidStatus      = "некорректный статус бронирования"
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

// Handle GET /api/v1/organizers/{organizerId}/bookings
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем organizerId из URL
	organizerIDStr := vars["organizerId"]
	organizerID, err := strconv.ParseInt(organizerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizers/{id}/bookings - Invalid organizer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrganizerID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /organizers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetOrganizerBookingsRequest{
		UserID:      userID,
		OrganizerID: organizerID,
	}

	// Извлекаем status из query параметров (опционально)
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	// Получаем бронирования (сервис сам проверит права доступа)
	result, err := h.service.GetOrganizerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /organizers/{id}/bookings - Access denied: organizer_id=%d, user_id=%d", organizerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /organizers/{id}/bookings - Invalid status: organizer_id=%d, error=%v", organizerID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /organizers/{id}/bookings - Failed to get bookings: organizer_id=%d, error=%v", organizerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizers/{id}/bookings - Bookings retrieved successfully: organizer_id=%d, count=%d",
		organizerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
