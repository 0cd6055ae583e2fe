package confirm_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/booking-engine/internal/api/middleware"
	confirmBooking "github.com/salonhub/booking-engine/internal/usecase/confirm_booking"
)

type fakeUseCase struct {
	resp       *confirmBooking.Response
	err        error
	customerID string
}

func (f *fakeUseCase) Execute(_ context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error) {
	f.customerID = req.CustomerID
	return f.resp, f.err
}

type countingMetrics struct {
	confirmed, conflicts, failures int
}

func (m *countingMetrics) IncConfirmed() { m.confirmed++ }
func (m *countingMetrics) IncConflict()  { m.conflicts++ }
func (m *countingMetrics) IncFailure()   { m.failures++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc ConfirmBookingUseCase, m BookingMetrics) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, m, nopLogger{})
	handler := middleware.Auth(http.HandlerFunc(h.Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/confirm", nil)
	req.Header.Set("X-Customer-ID", "cust-1")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) ConfirmBookingResponse {
	t.Helper()
	var body ConfirmBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &confirmBooking.Response{
		BookingID: 1,
		Code:      "K7M2XQ",
		StartsAt:  time.Date(2026, time.March, 5, 15, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2026, time.March, 5, 16, 0, 0, 0, time.UTC),
		Message:   "Запись подтверждена! Код записи: K7M2XQ",
	}}
	m := &countingMetrics{}

	rec := doRequest(t, uc, m)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cust-1", uc.customerID)

	body := decodeBody(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "K7M2XQ", body.BookingCode)
	assert.Empty(t, body.ErrorKind)
	assert.Equal(t, 1, m.confirmed)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"no active session", confirmBooking.ErrNoActiveSession, http.StatusNotFound, kindNoActiveSession},
		{"slot in past", confirmBooking.ErrSlotInPast, http.StatusBadRequest, kindSlotInPast},
		{"slot taken", confirmBooking.ErrSlotTaken, http.StatusConflict, kindSlotTaken},
		{"transient exhausted", confirmBooking.ErrTransient, http.StatusServiceUnavailable, kindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, &countingMetrics{})

			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decodeBody(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantKind, body.ErrorKind)
			assert.Empty(t, body.BookingCode)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandle_ConflictCountsMetric(t *testing.T) {
	m := &countingMetrics{}
	doRequest(t, &fakeUseCase{err: confirmBooking.ErrSlotTaken}, m)

	assert.Equal(t, 1, m.conflicts)
	assert.Zero(t, m.confirmed)
	assert.Zero(t, m.failures)
}

func TestHandle_MissingCustomerHeader(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, &countingMetrics{}, nopLogger{})
	handler := middleware.Auth(http.HandlerFunc(h.Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/confirm", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
