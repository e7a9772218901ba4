package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-VenueService/internal/usecase/get_available_slots"
)

const (
	msgInvalidVenueID   = "некорректный ID площадки"
	msgMissingFrom      = "параметр from обязателен"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange = "некорректный диапазон дат"
	msgVenueNotFound    = "площадка не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/available-slots
// Query params: from (required, YYYY-MM-DD), to (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем venueId из URL
	venueIDStr := vars["venueId"]
	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/available-slots - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Извлекаем from из query параметров
	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /venues/{id}/available-slots - Missing from date")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	toStr := r.URL.Query().Get("to")

	// Формируем запрос к use case (с парсингом дат)
	useCaseReq, err := ToUseCaseRequest(venueID, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/available-slots - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDateRange),
			errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/available-slots - Invalid date range: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /venues/{id}/available-slots - Failed to get slots: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /venues/{id}/available-slots - Slots retrieved successfully: venue_id=%d, slots_count=%d",
		venueID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
