package check_resource_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/resource"
)

const operationName = "check_resource_availability"

// UseCase детектор пересечений записей на одном ресурсе
type UseCase struct {
	appointmentRepo AppointmentRepository
	resourceRepo    ResourceRepository
	serviceTypeRepo ServiceTypeRepository
	settings        domain.ScheduleSettings
	observer        DecisionObserver
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	resourceRepo ResourceRepository,
	serviceTypeRepo ServiceTypeRepository,
	settings domain.ScheduleSettings,
	observer DecisionObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		resourceRepo:    resourceRepo,
		serviceTypeRepo: serviceTypeRepo,
		settings:        settings,
		observer:        observer,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute проверяет, можно ли поставить запись на ресурс
// Отказ возвращается как Decision с Allowed=false, ошибка - только для
// некорректного запроса, неизвестного ресурса или сбоя хранилища.
// Вызывается внутри транзакции записи, чтобы чтение календаря шло под её блокировкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Decision, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckResourceAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckResourceAvailability: resource=%d, date=%s, time=%s, service=%s",
		req.ResourceID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceType)

	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("CheckResourceAvailability: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CheckResourceAvailability: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}
	if !resource.Active {
		uc.logger.Warn("CheckResourceAvailability: resource id=%d is inactive", req.ResourceID)
		return nil, ErrResourceInactive
	}

	catalog, err := uc.serviceTypeRepo.Catalog(ctx)
	if err != nil {
		uc.logger.Error("CheckResourceAvailability: failed to load duration catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load duration catalog: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	dayStart, dayEnd := uc.settings.DayBounds(req.Date)
	loadAppointments := func() ([]*domain.Appointment, error) {
		return uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
			ResourceID: &req.ResourceID,
			From:       &dayStart,
			To:         &dayEnd,
			Statuses:   domain.BlockingStatuses,
			ExcludeID:  req.ExcludeAppointmentID,
		})
	}

	decision, err := evaluate(req, uc.settings, catalog, now, loadAppointments)
	if err != nil {
		uc.logger.Error("CheckResourceAvailability: failed to evaluate resource=%d: %v", req.ResourceID, err)
		uc.observe("error")
		return nil, fmt.Errorf("%w: evaluate: %v", ErrInternal, err)
	}

	return uc.finish(decision), nil
}

// Require выполняет проверку и возвращает ошибку отказа, если запись поставить нельзя
func (uc *UseCase) Require(ctx context.Context, req *Request) (*Decision, error) {
	decision, err := uc.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return decision, decision.Err()
	}
	return decision, nil
}

func (uc *UseCase) finish(decision *Decision) *Decision {
	if decision.Allowed {
		uc.logger.Info("CheckResourceAvailability: allowed resource=%d %s-%s",
			decision.ResourceID, decision.Start.Format(domain.TimeFormat), decision.End.Format(domain.TimeFormat))
		uc.observe("allowed")
	} else {
		uc.logger.Info("CheckResourceAvailability: denied resource=%d code=%s reason=%s",
			decision.ResourceID, decision.Code, decision.Reason)
		uc.observe(string(decision.Code))
	}
	return decision
}

func (uc *UseCase) observe(outcome string) {
	if uc.observer != nil {
		uc.observer.ObserveDecision(operationName, outcome)
	}
}
