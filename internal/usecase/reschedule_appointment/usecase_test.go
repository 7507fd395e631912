package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

type fakeAppointments struct {
	items   map[int64]*domain.Appointment
	updated []int64
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
	cp := *a
	f.items[a.ID] = &cp
	f.updated = append(f.updated, a.ID)
	return nil
}

type fakeResources struct{ bumps []int64 }

func (f *fakeResources) BumpScheduleVersion(_ context.Context, id int64) (int64, error) {
	f.bumps = append(f.bumps, id)
	return 1, nil
}

type fakeCatalog struct{}

func (fakeCatalog) Catalog(context.Context) (domain.DurationCatalog, error) {
	return domain.DurationCatalog{"consultation": 30, "dental": 60}, nil
}

// fakeChecker разрешает интервал, вычисляя его как настоящий детектор
type fakeChecker struct {
	err   error
	calls []*check.Request
}

func (f *fakeChecker) Require(_ context.Context, req *check.Request) (*check.Decision, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	duration, ok := fakeCatalogDurations[req.ServiceType]
	if !ok {
		return nil, check.ErrUnknownServiceType
	}
	start, _ := req.StartTime.On(req.Date, time.UTC)
	return &check.Decision{
		Allowed:         true,
		ResourceID:      req.ResourceID,
		Start:           start,
		End:             start.Add(time.Duration(duration) * time.Minute),
		DurationMinutes: duration,
	}, nil
}

var fakeCatalogDurations = map[string]int{"consultation": 30, "dental": 60}

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
	day       = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	nextDay   = day.AddDate(0, 0, 1)
	reception = domain.Actor{StaffID: "desk-1", Role: domain.RoleReceptionist}
	vet       = domain.Actor{StaffID: "vet-1", Role: domain.RoleVeterinarian, ResourceID: ptr.Ptr(int64(1))}
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
			1: {ID: 1, ScheduledAt: day.Add(10 * time.Hour), DurationMinutes: 30, ServiceType: "consultation", Status: domain.AppointmentScheduled, ResourceID: ptr.Ptr(int64(1))},
			2: {ID: 2, ScheduledAt: day.Add(10 * time.Hour), DurationMinutes: 30, ServiceType: "consultation", Status: domain.AppointmentPending},
			3: {ID: 3, ScheduledAt: day.Add(10 * time.Hour), DurationMinutes: 30, ServiceType: "consultation", Status: domain.AppointmentDone, ResourceID: ptr.Ptr(int64(1))},
			4: {ID: 4, ScheduledAt: day.Add(10 * time.Hour), DurationMinutes: 30, ServiceType: "consultation", Status: domain.AppointmentScheduled, ResourceID: ptr.Ptr(int64(2))},
		}},
		resources: &fakeResources{},
		checker:   &fakeChecker{},
		publisher: &fakePublisher{},
	}
	settings := domain.ScheduleSettings{Location: time.UTC}
	f.uc = NewUseCase(f.appointments, f.resources, fakeCatalog{}, f.checker, fakeTx{}, f.publisher, settings, nopLogger{})
	return f
}

func TestExecute_MovesScheduledExcludingItself(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor: reception, AppointmentID: 1, Date: nextDay, StartTime: types.MustTimeString("11:30"),
	})
	require.NoError(t, err)

	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, nextDay.Add(11*time.Hour+30*time.Minute), resp.ScheduledAt)
	assert.Equal(t, nextDay.Add(12*time.Hour), resp.EndsAt)

	require.Len(t, f.checker.calls, 1)
	assert.Equal(t, int64(1), *f.checker.calls[0].ExcludeAppointmentID)
	assert.Equal(t, []int64{1}, f.resources.bumps)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.ChangeUpdated, f.publisher.events[0].Action)
}

func TestExecute_ChangesServiceAndResource(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:         reception,
		AppointmentID: 1,
		Date:          day,
		StartTime:     types.MustTimeString("10:00"),
		ServiceType:   ptr.Ptr(" Dental "),
		ResourceID:    ptr.Ptr(int64(2)),
	})
	require.NoError(t, err)

	assert.Equal(t, "dental", resp.ServiceType)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, int64(2), *resp.ResourceID)
	assert.Equal(t, []int64{2}, f.resources.bumps)
	assert.Equal(t, int64(2), f.checker.calls[0].ResourceID)
}

func TestExecute_PendingSkipsDetector(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor: reception, AppointmentID: 2, Date: nextDay, StartTime: types.MustTimeString("09:00"), ServiceType: ptr.Ptr("dental"),
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, nextDay.Add(9*time.Hour), resp.ScheduledAt)
	assert.Empty(t, f.checker.calls)
	assert.Empty(t, f.resources.bumps)
}

func TestExecute_ConflictKeepsOldTime(t *testing.T) {
	f := newFixture()
	f.checker.err = &check.ConflictError{ResourceID: 1, AppointmentID: 7}

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor: reception, AppointmentID: 1, Date: nextDay, StartTime: types.MustTimeString("11:30"),
	})
	assert.ErrorIs(t, err, ErrScheduleDenied)
	assert.ErrorIs(t, err, check.ErrResourceConflict)
	assert.Equal(t, day.Add(10*time.Hour), f.appointments.items[1].ScheduledAt)
	assert.Empty(t, f.appointments.updated)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"unknown appointment", &Request{Actor: reception, AppointmentID: 42, Date: day, StartTime: "10:00"}, ErrAppointmentNotFound},
		{"terminal status", &Request{Actor: reception, AppointmentID: 3, Date: day, StartTime: "10:00"}, ErrNotReschedulable},
		{"missing date", &Request{Actor: reception, AppointmentID: 1, StartTime: "10:00"}, ErrInvalidInput},
		{"bad time", &Request{Actor: reception, AppointmentID: 1, Date: day, StartTime: "25:00"}, ErrInvalidInput},
		{"blank service", &Request{Actor: reception, AppointmentID: 1, Date: day, StartTime: "10:00", ServiceType: ptr.Ptr(" ")}, ErrInvalidInput},
		{"unknown service scheduled", &Request{Actor: reception, AppointmentID: 1, Date: day, StartTime: "10:00", ServiceType: ptr.Ptr("massage")}, ErrUnknownServiceType},
		{"unknown service pending", &Request{Actor: reception, AppointmentID: 2, Date: day, StartTime: "10:00", ServiceType: ptr.Ptr("massage")}, ErrUnknownServiceType},
		{"vet on foreign calendar", &Request{Actor: vet, AppointmentID: 4, Date: day, StartTime: "10:00"}, ErrForbidden},
		{"vet moves to foreign resource", &Request{Actor: vet, AppointmentID: 1, Date: day, StartTime: "10:00", ResourceID: ptr.Ptr(int64(2))}, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.appointments.updated)
		})
	}
}
