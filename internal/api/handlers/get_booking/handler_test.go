package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings/models"
)

type mockService struct {
	booking *models.BookingResponse
	err     error

	gotBookingID int64
	gotUserID    int64
}

func (m *mockService) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	m.gotBookingID = id
	m.gotUserID = userID
	return m.booking, m.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// doRequest прогоняет запрос через Auth middleware и handler, как в main.go
func doRequest(t *testing.T, svc BookingService, bookingID, userID string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(svc, nopLogger{})

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle_Success(t *testing.T) {
	svc := &mockService{booking: &models.BookingResponse{
		ID:        15,
		Reference: "VB-0A1B2C3D4E5F",
		VenueID:   42,
		Status:    "confirmed",
	}}

	rec := doRequest(t, svc, "15", "7")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(15), svc.gotBookingID)
	assert.Equal(t, int64(7), svc.gotUserID)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VB-0A1B2C3D4E5F", resp.Reference)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandler_Handle_InvalidBookingID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"не число", "abc"},
		{"ноль", "0"},
		{"отрицательный", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			rec := doRequest(t, svc, tt.id, "7")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, svc.gotBookingID)
		})
	}
}

func TestHandler_Handle_NotFound(t *testing.T) {
	svc := &mockService{err: bookings.ErrBookingNotFound}
	rec := doRequest(t, svc, "404", "7")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Handle_AccessDenied(t *testing.T) {
	svc := &mockService{err: bookings.ErrAccessDenied}
	rec := doRequest(t, svc, "15", "999")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandler_Handle_MissingUserID(t *testing.T) {
	svc := &mockService{}
	rec := doRequest(t, svc, "15", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, svc.gotBookingID)
}
