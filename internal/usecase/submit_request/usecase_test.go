package submit_request

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

type fakeRequestRepo struct {
	created []*domain.AppointmentRequest
	err     error
}

func (f *fakeRequestRepo) Create(_ context.Context, req *domain.AppointmentRequest) (*domain.AppointmentRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	req.ID = int64(len(f.created) + 1)
	f.created = append(f.created, req)
	return req, nil
}

type fakeAvailability struct {
	resp *get_available_slots.Response
	err  error
}

func (f fakeAvailability) Execute(context.Context, *get_available_slots.Request) (*get_available_slots.Response, error) {
	return f.resp, f.err
}

type fakeTx struct{ calls int }

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakePublisher struct{ events []domain.ChangeEvent }

func (f *fakePublisher) Publish(_ context.Context, e domain.ChangeEvent) {
	f.events = append(f.events, e)
}

type fixedReference string

func (f fixedReference) NewReference() string { return string(f) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var day = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func testSettings() domain.ScheduleSettings {
	return domain.ScheduleSettings{
		Location:          time.FixedZone("clinic", 3*60*60),
		OpeningTime:       "09:00",
		LastSlotStart:     "16:00",
		ClosingTime:       "17:00",
		SlotStepMinutes:   30,
		WeekdayFrom:       time.Monday,
		WeekdayTo:         time.Saturday,
		DailyRequestLimit: 2,
	}
}

func validRequest() *Request {
	return &Request{
		ContactName:  "  Anna  ",
		ContactPhone: ptr.Ptr("+7 900 000 00 00"),
		PetName:      "Barsik",
		Reason:       "vaccination",
		Date:         day,
		StartTime:    "10:00",
	}
}

func newUseCase(repo *fakeRequestRepo, avail fakeAvailability) (*UseCase, *fakePublisher, *fakeTx) {
	pub := &fakePublisher{}
	tx := &fakeTx{}
	uc := NewUseCase(repo, avail, tx, pub, testSettings(), nopLogger{})
	uc.references = fixedReference("5b0c8a3e-7f5e-4b8f-9d2a-1c3e4f5a6b7c")
	return uc, pub, tx
}

func offered(slots ...types.TimeString) fakeAvailability {
	return fakeAvailability{resp: &get_available_slots.Response{Date: day, Slots: slots}}
}

func TestExecute_CreatesPendingRequest(t *testing.T) {
	repo := &fakeRequestRepo{}
	uc, pub, tx := newUseCase(repo, offered("09:30", "10:00"))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "5b0c8a3e-7f5e-4b8f-9d2a-1c3e4f5a6b7c", resp.Reference)
	assert.Equal(t, 1, tx.calls)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, "Anna", created.ContactName)
	// 10:00 по времени клиники (UTC+3) = 07:00 UTC
	assert.True(t, created.RequestedAt.Equal(time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC)))

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.CollectionRequests, pub.events[0].Collection)
	assert.Equal(t, domain.ChangeCreated, pub.events[0].Action)
}

func TestExecute_ScenarioA_CapReached(t *testing.T) {
	repo := &fakeRequestRepo{}
	uc, pub, _ := newUseCase(repo, fakeAvailability{resp: &get_available_slots.Response{
		Date: day, Slots: []types.TimeString{}, Reason: get_available_slots.ReasonDailyCapReached, RequestsCount: 2, DailyLimit: 2,
	}})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDailyCapReached)
	assert.Empty(t, repo.created)
	assert.Empty(t, pub.events)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		avail  fakeAvailability
		target error
	}{
		{
			name:   "slot already claimed",
			avail:  offered("09:30"),
			target: ErrSlotNotAvailable,
		},
		{
			name:   "day not eligible",
			avail:  fakeAvailability{resp: &get_available_slots.Response{Reason: get_available_slots.ReasonDayNotEligible}},
			target: ErrDayNotEligible,
		},
		{
			name:   "date in past",
			avail:  fakeAvailability{resp: &get_available_slots.Response{Reason: get_available_slots.ReasonDateInPast}},
			target: ErrDateInPast,
		},
		{
			name:   "store unavailable",
			avail:  fakeAvailability{err: get_available_slots.ErrAvailabilityUnknown},
			target: ErrAvailabilityUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRequestRepo{}
			uc, _, _ := newUseCase(repo, tt.avail)

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.target)
			assert.Empty(t, repo.created)
		})
	}
}

func TestExecute_StoreWriteFailure(t *testing.T) {
	repo := &fakeRequestRepo{err: errors.New("disk full")}
	uc, pub, _ := newUseCase(repo, offered("10:00"))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, pub.events)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"missing contact name", func(r *Request) { r.ContactName = " " }},
		{"missing pet name", func(r *Request) { r.PetName = "" }},
		{"no phone or email", func(r *Request) { r.ContactPhone = ptr.Ptr("  ") }},
		{"bad email", func(r *Request) { r.ContactPhone = nil; r.ContactEmail = ptr.Ptr("not-an-email") }},
		{"missing date", func(r *Request) { r.Date = time.Time{} }},
		{"bad time", func(r *Request) { r.StartTime = "9am" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}

	req := validRequest()
	req.ContactPhone = nil
	req.ContactEmail = ptr.Ptr(" anna@example.com ")
	require.NoError(t, validateRequest(req))
	assert.Equal(t, "anna@example.com", *req.ContactEmail)
}
