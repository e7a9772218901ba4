package quote_price

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-VenueService/internal/api/handlers"
	quotePrice "github.com/m04kA/SMC-VenueService/internal/usecase/quote_price"
)

const (
	msgInvalidVenueID  = "некорректный ID площадки"
	msgMissingInterval = "параметры start и end обязательны"
	msgInvalidTime     = "некорректный формат времени, ожидается RFC3339"
	msgInvalidDuration = "длительность должна быть положительным целым числом часов"
	msgVenueNotFound   = "площадка не найдена"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/quote
// Query params: start (required, RFC3339), end (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем venueId из URL
	venueIDStr := vars["venueId"]
	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/quote - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /venues/{id}/quote - Missing start or end: venue_id=%d", venueID)
		handlers.RespondBadRequest(w, msgMissingInterval)
		return
	}

	// Формируем запрос к use case (с парсингом времени)
	useCaseReq, err := ToUseCaseRequest(venueID, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/quote - Invalid time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/quote - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, quotePrice.ErrInvalidDuration),
			errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/quote - Invalid interval: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /venues/{id}/quote - Failed to quote price: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /venues/{id}/quote - Price quoted successfully: venue_id=%d, total=%.2f",
		venueID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, response)
}
