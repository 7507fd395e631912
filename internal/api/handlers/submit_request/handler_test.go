package submit_request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	submitRequest "github.com/m04kA/SMC-ClinicService/internal/usecase/submit_request"
)

type fakeUseCase struct {
	err  error
	last *submitRequest.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *submitRequest.Request) (*submitRequest.Response, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	requestedAt, _ := req.StartTime.On(req.Date, time.UTC)
	return &submitRequest.Response{
		ID:          7,
		Reference:   "0b8c7c2e-6d0e-4f7b-9a55-3a1f0c1d2e3f",
		Status:      "pending",
		RequestedAt: requestedAt,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"contactName":"Anna","contactPhone":"+79990000000","petName":"Barsik","reason":"vaccination","date":"2025-06-10","startTime":"10:30"}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := post(NewHandler(uc, time.UTC, nopLogger{}), validBody)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp SubmitRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2025-06-10", resp.Date)
	assert.Equal(t, "10:30", resp.StartTime)
	assert.NotEmpty(t, resp.Reference)

	require.NotNil(t, uc.last)
	assert.Equal(t, "Barsik", uc.last.PetName)
	assert.Equal(t, "10:30", uc.last.StartTime.String())
}

func TestHandle_BadPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"unknown field", `{"contactName":"Anna","admin":true}`},
		{"bad date", strings.Replace(validBody, "2025-06-10", "10.06.2025", 1)},
		{"bad time", strings.Replace(validBody, "10:30", "25:99", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := post(NewHandler(uc, time.UTC, nopLogger{}), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.last)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantReason string
	}{
		{submitRequest.ErrInvalidInput, http.StatusBadRequest, ""},
		{submitRequest.ErrDayNotEligible, http.StatusBadRequest, "day_not_eligible"},
		{submitRequest.ErrDateInPast, http.StatusBadRequest, "date_in_past"},
		{submitRequest.ErrDailyCapReached, http.StatusConflict, "daily_cap_reached"},
		{submitRequest.ErrSlotNotAvailable, http.StatusConflict, "slot_not_available"},
		{submitRequest.ErrAvailabilityUnknown, http.StatusServiceUnavailable, ""},
		{submitRequest.ErrInternal, http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &fakeUseCase{err: fmt.Errorf("%w: wrapped", tt.err)}
			rec := post(NewHandler(uc, time.UTC, nopLogger{}), validBody)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
