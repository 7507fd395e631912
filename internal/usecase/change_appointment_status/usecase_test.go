package change_appointment_status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	resourceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/resource"
	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

type fakeAppointments struct {
	items     map[int64]*domain.Appointment
	updateErr error
	updated   []int64
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointments) Update(_ context.Context, a *domain.Appointment) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	cp := *a
	f.items[a.ID] = &cp
	f.updated = append(f.updated, a.ID)
	return nil
}

type fakeResources struct {
	bumps  []int64
	active map[int64]bool
}

func (f *fakeResources) BumpScheduleVersion(_ context.Context, id int64) (int64, error) {
	if !f.active[id] {
		return 0, resourceRepo.ErrResourceNotFound
	}
	f.bumps = append(f.bumps, id)
	return int64(len(f.bumps)), nil
}

type fakeChecker struct {
	err   error
	calls []*check.Request
}

func (f *fakeChecker) Require(_ context.Context, req *check.Request) (*check.Decision, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &check.Decision{Allowed: true, ResourceID: req.ResourceID, DurationMinutes: 180}, nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct{ events []domain.ChangeEvent }

func (f *fakePublisher) Publish(_ context.Context, e domain.ChangeEvent) {
	f.events = append(f.events, e)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	at        = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	reception = domain.Actor{StaffID: "desk-1", Role: domain.RoleReceptionist}
	groomer   = domain.Actor{StaffID: "groomer-1", Role: domain.RoleGroomer, ResourceID: ptr.Ptr(int64(2))}
)

type fixture struct {
	appointments *fakeAppointments
	resources    *fakeResources
	checker      *fakeChecker
	publisher    *fakePublisher
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		appointments: &fakeAppointments{items: map[int64]*domain.Appointment{
			1: {ID: 1, ScheduledAt: at, DurationMinutes: 180, ServiceType: "grooming", Status: domain.AppointmentPending},
			2: {ID: 2, ScheduledAt: at, DurationMinutes: 180, ServiceType: "grooming", Status: domain.AppointmentScheduled, ResourceID: ptr.Ptr(int64(2))},
			3: {ID: 3, ScheduledAt: at, DurationMinutes: 180, ServiceType: "grooming", Status: domain.AppointmentCancelled, ResourceID: ptr.Ptr(int64(2))},
			4: {ID: 4, ScheduledAt: at, DurationMinutes: 30, ServiceType: "consultation", Status: domain.AppointmentCancelled},
			5: {ID: 5, ScheduledAt: at, DurationMinutes: 30, ServiceType: "consultation", Status: domain.AppointmentDone, ResourceID: ptr.Ptr(int64(2))},
			6: {ID: 6, ScheduledAt: at, DurationMinutes: 30, ServiceType: "consultation", Status: domain.AppointmentScheduled, ResourceID: ptr.Ptr(int64(3))},
		}},
		resources: &fakeResources{active: map[int64]bool{2: true, 3: true}},
		checker:   &fakeChecker{},
		publisher: &fakePublisher{},
	}
	settings := domain.ScheduleSettings{Location: time.UTC}
	f.uc = NewUseCase(f.appointments, f.resources, f.checker, fakeTx{}, f.publisher, settings, nopLogger{})
	return f
}

func TestExecute_ScheduleRunsDetectorExcludingSelf(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor: reception, AppointmentID: 1, Action: domain.ActionSchedule, ResourceID: ptr.Ptr(int64(2)),
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.PreviousStatus)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, int64(2), *resp.ResourceID)
	assert.Equal(t, at.Add(3*time.Hour), resp.EndsAt)

	assert.Equal(t, []int64{2}, f.resources.bumps)
	require.Len(t, f.checker.calls, 1)
	call := f.checker.calls[0]
	assert.Equal(t, int64(2), call.ResourceID)
	assert.Equal(t, "09:00", call.StartTime.String())
	assert.Equal(t, "grooming", call.ServiceType)
	require.NotNil(t, call.ExcludeAppointmentID)
	assert.Equal(t, int64(1), *call.ExcludeAppointmentID)

	assert.Equal(t, domain.AppointmentScheduled, f.appointments.items[1].Status)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.CollectionAppointments, f.publisher.events[0].Collection)
	assert.Equal(t, domain.ChangeUpdated, f.publisher.events[0].Action)
}

func TestExecute_ScheduleDeniedLeavesAppointmentUntouched(t *testing.T) {
	f := newFixture()
	f.checker.err = &check.ConflictError{ResourceID: 2, AppointmentID: 6, Start: at, End: at.Add(time.Hour)}

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor: reception, AppointmentID: 1, Action: domain.ActionSchedule, ResourceID: ptr.Ptr(int64(2)),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScheduleDenied)
	assert.ErrorIs(t, err, check.ErrResourceConflict)

	var conflict *check.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(6), conflict.AppointmentID)

	assert.Empty(t, f.appointments.updated)
	assert.Equal(t, domain.AppointmentPending, f.appointments.items[1].Status)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_NonBlockingTargetsSkipDetector(t *testing.T) {
	tests := []struct {
		name   string
		id     int64
		action domain.AppointmentAction
		want   string
	}{
		{name: "reject pending", id: 1, action: domain.ActionReject, want: "rejected"},
		{name: "cancel pending", id: 1, action: domain.ActionCancel, want: "cancelled"},
		{name: "complete scheduled", id: 2, action: domain.ActionComplete, want: "done"},
		{name: "cancel scheduled", id: 2, action: domain.ActionCancel, want: "cancelled"},
		{name: "revert without resource", id: 4, action: domain.ActionRevert, want: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			resp, err := f.uc.Execute(context.Background(), &Request{Actor: reception, AppointmentID: tt.id, Action: tt.action})
			require.NoError(t, err)

			assert.Equal(t, tt.want, resp.Status)
			assert.Empty(t, f.checker.calls)
			assert.Empty(t, f.resources.bumps)
		})
	}
}

func TestExecute_RevertWithResourceRechecksCalendar(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: reception, AppointmentID: 3, Action: domain.ActionRevert})
	require.NoError(t, err)

	assert.Equal(t, "scheduled", resp.Status)
	require.Len(t, f.checker.calls, 1)
	assert.Equal(t, int64(3), *f.checker.calls[0].ExcludeAppointmentID)
}

func TestExecute_RevertIntoConflictIsDenied(t *testing.T) {
	f := newFixture()
	f.checker.err = &check.ConflictError{ResourceID: 2, AppointmentID: 2, Start: at, End: at.Add(3 * time.Hour)}

	_, err := f.uc.Execute(context.Background(), &Request{Actor: reception, AppointmentID: 3, Action: domain.ActionRevert})
	assert.ErrorIs(t, err, ErrScheduleDenied)
	assert.Equal(t, domain.AppointmentCancelled, f.appointments.items[3].Status)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		prepare func(f *fixture)
		wantErr error
	}{
		{
			name:    "unknown appointment",
			req:     &Request{Actor: reception, AppointmentID: 99, Action: domain.ActionCancel},
			wantErr: ErrAppointmentNotFound,
		},
		{
			name:    "terminal status",
			req:     &Request{Actor: reception, AppointmentID: 5, Action: domain.ActionCancel},
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "complete pending",
			req:     &Request{Actor: reception, AppointmentID: 1, Action: domain.ActionComplete},
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "schedule without resource",
			req:     &Request{Actor: reception, AppointmentID: 1, Action: domain.ActionSchedule},
			wantErr: ErrResourceRequired,
		},
		{
			name:    "unknown action",
			req:     &Request{Actor: reception, AppointmentID: 1, Action: "archive"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "resource with non schedule action",
			req:     &Request{Actor: reception, AppointmentID: 1, Action: domain.ActionCancel, ResourceID: ptr.Ptr(int64(2))},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "groomer on foreign calendar",
			req:     &Request{Actor: groomer, AppointmentID: 6, Action: domain.ActionCancel},
			wantErr: ErrForbidden,
		},
		{
			name:    "groomer assigns another resource",
			req:     &Request{Actor: groomer, AppointmentID: 1, Action: domain.ActionSchedule, ResourceID: ptr.Ptr(int64(3))},
			wantErr: ErrForbidden,
		},
		{
			name:    "inactive resource",
			req:     &Request{Actor: reception, AppointmentID: 1, Action: domain.ActionSchedule, ResourceID: ptr.Ptr(int64(8))},
			wantErr: ErrResourceNotFound,
		},
		{
			name:    "update fails",
			req:     &Request{Actor: reception, AppointmentID: 2, Action: domain.ActionComplete},
			prepare: func(f *fixture) { f.appointments.updateErr = errors.New("connection reset") },
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.prepare != nil {
				tt.prepare(f)
			}

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestExecute_GroomerManagesOwnCalendar(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: groomer, AppointmentID: 2, Action: domain.ActionComplete})
	require.NoError(t, err)
	assert.Equal(t, "done", resp.Status)
}
