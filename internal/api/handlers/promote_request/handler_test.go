package promote_request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
	promoteRequest "github.com/m04kA/SMC-ClinicService/internal/usecase/promote_request"
)

type fakeUseCase struct {
	resp *promoteRequest.Response
	err  error
	last *promoteRequest.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *promoteRequest.Request) (*promoteRequest.Response, error) {
	f.last = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var desk = domain.Actor{StaffID: "desk-1", Role: domain.RoleReceptionist}

func serve(uc *fakeUseCase, withActor bool, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/requests/{id}/promote", NewHandler(uc, time.UTC, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests/5/promote", strings.NewReader(body))
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), desk))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const body = `{"resourceId":2,"serviceType":"consultation"}`

func TestHandle_CreatedAndReused(t *testing.T) {
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &promoteRequest.Response{
		RequestID: 5, RequestStatus: "confirmed", AppointmentID: 11, ResourceID: 2,
		ScheduledAt: start, EndsAt: start.Add(30 * time.Minute), DurationMinutes: 30, ServiceType: "consultation",
	}}

	rec := serve(uc, true, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(5), uc.last.RequestID)
	assert.Equal(t, "desk-1", uc.last.Actor.StaffID)

	var resp PromoteRequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "10:30", resp.EndTime)

	uc.resp.Reused = true
	rec = serve(uc, true, body)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_RequiresActor(t *testing.T) {
	rec := serve(&fakeUseCase{}, false, body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_OverlapReturnsConflictDetails(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 45, 0, 0, time.UTC)
	conflict := &check.ConflictError{ResourceID: 2, AppointmentID: 3, Start: start, End: start.Add(30 * time.Minute)}
	uc := &fakeUseCase{err: fmt.Errorf("%w: %w", promoteRequest.ErrScheduleDenied, conflict)}

	rec := serve(uc, true, body)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Reason  string                   `json:"reason"`
		Details handlers.ConflictDetails `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "resource_overlap", resp.Reason)
	assert.Equal(t, int64(3), resp.Details.AppointmentID)
	assert.Equal(t, "2025-06-10 09:45", resp.Details.Start)
	assert.Equal(t, "2025-06-10 10:15", resp.Details.End)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{promoteRequest.ErrInvalidInput, http.StatusBadRequest},
		{promoteRequest.ErrForbidden, http.StatusForbidden},
		{promoteRequest.ErrRequestNotFound, http.StatusNotFound},
		{promoteRequest.ErrRequestNotPending, http.StatusConflict},
		{promoteRequest.ErrResourceNotFound, http.StatusNotFound},
		{promoteRequest.ErrPetNotOwned, http.StatusBadRequest},
		{fmt.Errorf("%w: %w", promoteRequest.ErrScheduleDenied, check.ErrAfterClosing), http.StatusConflict},
		{fmt.Errorf("%w: %w", promoteRequest.ErrScheduleDenied, check.ErrUnknownServiceType), http.StatusBadRequest},
		{promoteRequest.ErrPartialFailure, http.StatusConflict},
		{promoteRequest.ErrCompensationFailed, http.StatusInternalServerError},
		{promoteRequest.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, true, body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/requests/{id}/promote", NewHandler(&fakeUseCase{}, time.UTC, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests/abc/promote", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), desk))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
