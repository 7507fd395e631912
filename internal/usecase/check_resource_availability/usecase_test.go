package check_resource_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

type fakeAppointments struct {
	items  []*domain.Appointment
	err    error
	calls  int
	filter domain.AppointmentsFilter
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.calls++
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Appointment, 0)
	for _, a := range f.items {
		if filter.ResourceID != nil && (a.ResourceID == nil || *a.ResourceID != *filter.ResourceID) {
			continue
		}
		if filter.ExcludeID != nil && a.ID == *filter.ExcludeID {
			continue
		}
		if !a.IsBlocking() {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeResources struct {
	items map[int64]*domain.Resource
}

func (f *fakeResources) GetByID(_ context.Context, id int64) (*domain.Resource, error) {
	if r, ok := f.items[id]; ok {
		return r, nil
	}
	return nil, resourceRepo.ErrResourceNotFound
}

type fakeCatalog struct {
	catalog domain.DurationCatalog
	err     error
}

func (f fakeCatalog) Catalog(context.Context) (domain.DurationCatalog, error) {
	return f.catalog, f.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	day = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	now = time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)
)

func at(hh, mm int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, time.UTC)
}

func testSettings() domain.ScheduleSettings {
	return domain.ScheduleSettings{
		Location:          time.UTC,
		OpeningTime:       "09:00",
		LastSlotStart:     "16:00",
		ClosingTime:       "17:00",
		SlotStepMinutes:   30,
		WeekdayFrom:       time.Monday,
		WeekdayTo:         time.Saturday,
		DailyRequestLimit: 8,
	}
}

func testCatalog() domain.DurationCatalog {
	return domain.DurationCatalog{"consultation": 30, "grooming": 180, "surgery": 120}
}

func scheduled(id, resourceID int64, start time.Time, minutes int) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		ResourceID:      ptr.Ptr(resourceID),
		ScheduledAt:     start,
		DurationMinutes: minutes,
		Status:          domain.AppointmentScheduled,
	}
}

func newUseCase(appts *fakeAppointments) *UseCase {
	resources := &fakeResources{items: map[int64]*domain.Resource{
		1: {ID: 1, Name: "Dr. Ivanova", Active: true},
		2: {ID: 2, Name: "Groomer", Active: true},
		9: {ID: 9, Name: "Retired", Active: false},
	}}
	uc := NewUseCase(appts, resources, fakeCatalog{catalog: testCatalog()}, testSettings(), nil, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_ScenarioC_GroomingOverlap(t *testing.T) {
	// Груминг 10:00-13:00 уже стоит; консультация в 11:00 пересекается
	appts := &fakeAppointments{items: []*domain.Appointment{scheduled(42, 2, at(10, 0), 180)}}
	uc := newUseCase(appts)

	decision, err := uc.Execute(context.Background(), &Request{
		ResourceID: 2, Date: day, StartTime: "11:00", ServiceType: "consultation",
	})
	require.NoError(t, err)

	assert.False(t, decision.Allowed)
	assert.Equal(t, CodeResourceOverlap, decision.Code)
	require.NotNil(t, decision.Conflict)
	assert.Equal(t, int64(42), decision.Conflict.AppointmentID)
	assert.Equal(t, at(13, 0), decision.Conflict.End)
	assert.NotEmpty(t, decision.Reason)

	var conflict *ConflictError
	require.ErrorAs(t, decision.Err(), &conflict)
	assert.ErrorIs(t, decision.Err(), ErrResourceConflict)
	assert.Equal(t, int64(42), conflict.AppointmentID)
}

func TestExecute_BoundaryIsAllowed(t *testing.T) {
	appts := &fakeAppointments{items: []*domain.Appointment{scheduled(42, 2, at(10, 0), 180)}}
	uc := newUseCase(appts)

	// Начало ровно в момент окончания существующей записи
	decision, err := uc.Execute(context.Background(), &Request{
		ResourceID: 2, Date: day, StartTime: "13:00", ServiceType: "consultation",
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, at(13, 0), decision.Start)
	assert.Equal(t, at(13, 30), decision.End)
	assert.Equal(t, 30, decision.DurationMinutes)
	assert.NoError(t, decision.Err())

	// Окончание ровно в момент начала существующей записи
	decision, err = uc.Execute(context.Background(), &Request{
		ResourceID: 2, Date: day, StartTime: "09:30", ServiceType: "consultation",
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestExecute_OtherResourceDoesNotConflict(t *testing.T) {
	appts := &fakeAppointments{items: []*domain.Appointment{scheduled(42, 2, at(10, 0), 180)}}
	uc := newUseCase(appts)

	decision, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1, Date: day, StartTime: "11:00", ServiceType: "consultation",
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestExecute_ExcludeSelf(t *testing.T) {
	appts := &fakeAppointments{items: []*domain.Appointment{scheduled(42, 2, at(10, 0), 180)}}
	uc := newUseCase(appts)

	decision, err := uc.Execute(context.Background(), &Request{
		ResourceID: 2, Date: day, StartTime: "10:30", ServiceType: "grooming",
		ExcludeAppointmentID: ptr.Ptr(int64(42)),
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, int64(42), *appts.filter.ExcludeID)
}

func TestExecute_UnknownServiceTypeFailsClosed(t *testing.T) {
	appts := &fakeAppointments{}
	uc := newUseCase(appts)

	decision, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1, Date: day, StartTime: "10:00", ServiceType: "acupuncture",
	})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, CodeUnknownServiceType, decision.Code)
	assert.ErrorIs(t, decision.Err(), ErrUnknownServiceType)
	assert.Zero(t, appts.calls, "calendar must not be read for an invalid interval")
}

func TestExecute_InPast(t *testing.T) {
	uc := newUseCase(&fakeAppointments{})
	uc.timeProvider = fixedTime{now: at(11, 0)}

	decision, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1, Date: day, StartTime: "10:30", ServiceType: "consultation",
	})
	require.NoError(t, err)
	assert.Equal(t, CodeInPast, decision.Code)
	assert.ErrorIs(t, decision.Err(), ErrStartInPast)
}

func TestExecute_AfterClosing(t *testing.T) {
	uc := newUseCase(&fakeAppointments{})

	// 15:30 + 120 = 17:30 > 17:00
	decision, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1, Date: day, StartTime: "15:30", ServiceType: "surgery",
	})
	require.NoError(t, err)
	assert.Equal(t, CodeAfterClosing, decision.Code)
	assert.ErrorIs(t, decision.Err(), ErrAfterClosing)

	// 15:00 + 120 = 17:00, ровно к закрытию допустимо
	decision, err = uc.Execute(context.Background(), &Request{
		ResourceID: 1, Date: day, StartTime: "15:00", ServiceType: "surgery",
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestExecute_ResourceErrors(t *testing.T) {
	uc := newUseCase(&fakeAppointments{})

	_, err := uc.Execute(context.Background(), &Request{
		ResourceID: 77, Date: day, StartTime: "10:00", ServiceType: "consultation",
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		ResourceID: 9, Date: day, StartTime: "10:00", ServiceType: "consultation",
	})
	assert.ErrorIs(t, err, ErrResourceInactive)

	_, err = uc.Execute(context.Background(), &Request{ResourceID: 1, Date: day, StartTime: "25:00", ServiceType: "consultation"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StoreFailure(t *testing.T) {
	uc := newUseCase(&fakeAppointments{err: errors.New("timeout")})

	_, err := uc.Execute(context.Background(), &Request{
		ResourceID: 1, Date: day, StartTime: "10:00", ServiceType: "consultation",
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestRequire(t *testing.T) {
	appts := &fakeAppointments{items: []*domain.Appointment{scheduled(5, 1, at(10, 0), 30)}}
	uc := newUseCase(appts)

	decision, err := uc.Require(context.Background(), &Request{
		ResourceID: 1, Date: day, StartTime: "10:00", ServiceType: "consultation",
	})
	assert.ErrorIs(t, err, ErrResourceConflict)
	require.NotNil(t, decision)
	assert.False(t, decision.Allowed)

	decision, err = uc.Require(context.Background(), &Request{
		ResourceID: 1, Date: day, StartTime: "10:30", ServiceType: "consultation",
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestOverlaps_MatchesHalfOpenDefinition(t *testing.T) {
	base := at(9, 0)
	for a1 := 0; a1 < 8; a1++ {
		for a2 := a1 + 1; a2 <= 8; a2++ {
			for b1 := 0; b1 < 8; b1++ {
				for b2 := b1 + 1; b2 <= 8; b2++ {
					want := a1 < b2 && b1 < a2
					got := overlaps(
						base.Add(time.Duration(a1)*15*time.Minute), base.Add(time.Duration(a2)*15*time.Minute),
						base.Add(time.Duration(b1)*15*time.Minute), base.Add(time.Duration(b2)*15*time.Minute),
					)
					assert.Equal(t, want, got, "a=[%d,%d) b=[%d,%d)", a1, a2, b1, b2)
				}
			}
		}
	}
}

func TestEvaluate_SkipsNonBlocking(t *testing.T) {
	cancelled := scheduled(3, 1, at(10, 0), 30)
	cancelled.Status = domain.AppointmentCancelled

	decision, err := evaluate(
		&Request{ResourceID: 1, Date: day, StartTime: "10:00", ServiceType: "consultation"},
		testSettings(), testCatalog(), now,
		func() ([]*domain.Appointment, error) { return []*domain.Appointment{cancelled}, nil },
	)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}
