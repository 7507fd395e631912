package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	clientRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/client"
	resourceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/resource"
	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

type fakeAppointments struct {
	items  []*domain.Appointment
	nextID int64
}

func (f *fakeAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	a.ID = f.nextID
	f.items = append(f.items, a)
	return a, nil
}

type fakeResources struct{ bumps []int64 }

func (f *fakeResources) BumpScheduleVersion(_ context.Context, id int64) (int64, error) {
	if id == 9 {
		return 0, resourceRepo.ErrResourceNotFound
	}
	f.bumps = append(f.bumps, id)
	return 1, nil
}

type fakeCatalog struct{ err error }

func (f fakeCatalog) Catalog(context.Context) (domain.DurationCatalog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return domain.DurationCatalog{"consultation": 30, "grooming": 180}, nil
}

type fakeClients struct{}

func (fakeClients) GetClientByID(_ context.Context, id int64) (*domain.Client, error) {
	if id == 10 || id == 11 {
		return &domain.Client{ID: id}, nil
	}
	return nil, clientRepo.ErrClientNotFound
}

func (fakeClients) GetPetByID(_ context.Context, id int64) (*domain.Pet, error) {
	if id == 20 {
		return &domain.Pet{ID: 20, ClientID: 10, Name: "Barsik"}, nil
	}
	return nil, clientRepo.ErrPetNotFound
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
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	return &check.Decision{Allowed: true, ResourceID: req.ResourceID, Start: start, End: start.Add(3 * time.Hour), DurationMinutes: 180}, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	day       = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	reception = domain.Actor{StaffID: "desk-1", Role: domain.RoleReceptionist}
	groomer   = domain.Actor{StaffID: "groomer-1", Role: domain.RoleGroomer, ResourceID: ptr.Ptr(int64(2))}
)

type fixture struct {
	appointments *fakeAppointments
	resources    *fakeResources
	checker      *fakeChecker
	tx           *fakeTx
	publisher    *fakePublisher
	catalog      fakeCatalog
}

func newFixture() *fixture {
	return &fixture{
		appointments: &fakeAppointments{},
		resources:    &fakeResources{},
		checker:      &fakeChecker{},
		tx:           &fakeTx{},
		publisher:    &fakePublisher{},
	}
}

func (f *fixture) useCase() *UseCase {
	settings := domain.ScheduleSettings{Location: time.UTC}
	return NewUseCase(f.appointments, f.resources, f.catalog, fakeClients{}, f.checker, f.tx, f.publisher, settings, nopLogger{})
}

func guestRequest() *Request {
	return &Request{
		Actor:       reception,
		GuestOwner:  ptr.Ptr(" Anna "),
		GuestPet:    ptr.Ptr("Barsik"),
		Date:        day,
		StartTime:   types.MustTimeString("09:00"),
		ServiceType: "Grooming",
		Reason:      "full grooming",
	}
}

func TestExecute_PendingWithoutResource(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase().Execute(context.Background(), guestRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.ResourceID)
	assert.Equal(t, 180, resp.DurationMinutes)
	assert.Equal(t, day.Add(9*time.Hour), resp.ScheduledAt)
	assert.Equal(t, "grooming", resp.ServiceType)

	assert.Empty(t, f.checker.calls)
	assert.Equal(t, 0, f.tx.calls)

	require.Len(t, f.appointments.items, 1)
	assert.Equal(t, "Anna", *f.appointments.items[0].GuestOwner)
	assert.Equal(t, "desk-1", f.appointments.items[0].CreatedBy)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.ChangeCreated, f.publisher.events[0].Action)
}

func TestExecute_ScheduledWithResource(t *testing.T) {
	f := newFixture()
	req := guestRequest()
	req.ResourceID = ptr.Ptr(int64(2))

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, int64(2), *resp.ResourceID)
	assert.Equal(t, 180, resp.DurationMinutes)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []int64{2}, f.resources.bumps)
	require.Len(t, f.checker.calls, 1)
	assert.Nil(t, f.checker.calls[0].ExcludeAppointmentID)
}

func TestExecute_OverlapWritesNothing(t *testing.T) {
	f := newFixture()
	f.checker.err = &check.ConflictError{ResourceID: 2, AppointmentID: 5}
	req := guestRequest()
	req.ResourceID = ptr.Ptr(int64(2))

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleDenied)
	assert.ErrorIs(t, err, check.ErrResourceConflict)
	assert.Empty(t, f.appointments.items)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_RegisteredClient(t *testing.T) {
	f := newFixture()
	req := guestRequest()
	req.GuestOwner, req.GuestPet = nil, nil
	req.ClientID = ptr.Ptr(int64(10))
	req.PetID = ptr.Ptr(int64(20))

	_, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)

	appt := f.appointments.items[0]
	assert.Equal(t, int64(10), *appt.ClientID)
	assert.Equal(t, int64(20), *appt.PetID)
	assert.False(t, appt.IsGuest())
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		prepare func(f *fixture)
		wantErr error
	}{
		{"no owner", func(r *Request) { r.GuestOwner = ptr.Ptr("  ") }, nil, ErrInvalidInput},
		{"client and guest", func(r *Request) { r.ClientID = ptr.Ptr(int64(10)) }, nil, ErrInvalidInput},
		{"pet without client", func(r *Request) { r.PetID = ptr.Ptr(int64(20)) }, nil, ErrInvalidInput},
		{"bad time", func(r *Request) { r.StartTime = "9am" }, nil, ErrInvalidInput},
		{"no service", func(r *Request) { r.ServiceType = " " }, nil, ErrInvalidInput},
		{"unknown service pending", func(r *Request) { r.ServiceType = "massage" }, nil, ErrUnknownServiceType},
		{
			name: "unknown service scheduled",
			mutate: func(r *Request) {
				r.ResourceID = ptr.Ptr(int64(2))
				r.ServiceType = "massage"
			},
			prepare: func(f *fixture) { f.checker.err = fmtUnknown() },
			wantErr: ErrUnknownServiceType,
		},
		{"catalog failure", nil, func(f *fixture) { f.catalog.err = errors.New("db down") }, ErrInternal},
		{"unknown client", func(r *Request) { r.GuestOwner = nil; r.ClientID = ptr.Ptr(int64(99)) }, nil, ErrClientNotFound},
		{
			name: "pet of another client",
			mutate: func(r *Request) {
				r.GuestOwner = nil
				r.ClientID = ptr.Ptr(int64(11))
				r.PetID = ptr.Ptr(int64(20))
			},
			wantErr: ErrPetNotOwned,
		},
		{"unknown resource", func(r *Request) { r.ResourceID = ptr.Ptr(int64(9)) }, nil, ErrResourceNotFound},
		{"after closing", func(r *Request) { r.ResourceID = ptr.Ptr(int64(2)) }, func(f *fixture) { f.checker.err = check.ErrAfterClosing }, ErrScheduleDenied},
		{"groomer assigns other resource", func(r *Request) { r.Actor = groomer; r.ResourceID = ptr.Ptr(int64(3)) }, nil, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.prepare != nil {
				tt.prepare(f)
			}
			req := guestRequest()
			if tt.mutate != nil {
				tt.mutate(req)
			}

			_, err := f.useCase().Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.appointments.items)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func fmtUnknown() error {
	return errors.Join(check.ErrUnknownServiceType, errors.New(`"massage"`))
}
