package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	resourceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/resource"
	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
)

// UseCase переносит запись на другое время, услугу или ресурс
type UseCase struct {
	appointmentRepo AppointmentRepository
	resourceRepo    ResourceRepository
	serviceTypeRepo ServiceTypeRepository
	checker         AvailabilityChecker
	txManager       TransactionManager
	publisher       ChangePublisher
	settings        domain.ScheduleSettings
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	resourceRepo ResourceRepository,
	serviceTypeRepo ServiceTypeRepository,
	checker AvailabilityChecker,
	txManager TransactionManager,
	publisher ChangePublisher,
	settings domain.ScheduleSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		resourceRepo:    resourceRepo,
		serviceTypeRepo: serviceTypeRepo,
		checker:         checker,
		txManager:       txManager,
		publisher:       publisher,
		settings:        settings,
		logger:          logger,
	}
}

// Execute переносит запись
// Для scheduled детектор пересечений запускается на целевом ресурсе, исключая саму запись.
// Для pending календарь не проверяется, длительность пересчитывается по справочнику
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: staff=%s, appointment=%d, date=%s, time=%s",
		req.Actor.StaffID, req.AppointmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	var appt *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		appt, err = uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if !req.Actor.CanMutate(appt) {
			uc.logger.Warn("RescheduleAppointment: staff=%s cannot change appointment id=%d", req.Actor.StaffID, appt.ID)
			return ErrForbidden
		}
		if appt.Status != domain.AppointmentPending && appt.Status != domain.AppointmentScheduled {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d is %s", appt.ID, appt.Status)
			return fmt.Errorf("%w: status is %s", ErrNotReschedulable, appt.Status)
		}

		if req.ResourceID != nil {
			if !req.Actor.CanAssign(*req.ResourceID) {
				uc.logger.Warn("RescheduleAppointment: staff=%s cannot assign resource=%d", req.Actor.StaffID, *req.ResourceID)
				return ErrForbidden
			}
			appt.ResourceID = req.ResourceID
		}
		if req.ServiceType != nil {
			appt.ServiceType = domain.NormalizeServiceKey(*req.ServiceType)
		}

		if appt.IsBlocking() {
			err = uc.moveScheduled(txCtx, req, appt)
		} else {
			err = uc.movePending(txCtx, req, appt)
		}
		if err != nil {
			return err
		}

		if err := uc.appointmentRepo.Update(txCtx, appt); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to %s", appt.ID, appt.ScheduledAt.Format(domain.DateTimeLayout))

	uc.publisher.Publish(ctx, domain.ChangeEvent{
		Collection: domain.CollectionAppointments,
		ID:         appt.ID,
		Action:     domain.ChangeUpdated,
	})

	return &Response{
		AppointmentID:   appt.ID,
		Status:          string(appt.Status),
		ResourceID:      appt.ResourceID,
		ScheduledAt:     appt.ScheduledAt,
		EndsAt:          appt.EndsAt(),
		DurationMinutes: appt.DurationMinutes,
		ServiceType:     appt.ServiceType,
		UpdatedAt:       appt.UpdatedAt,
	}, nil
}

// moveScheduled блокирует целевой ресурс и проверяет новый интервал
func (uc *UseCase) moveScheduled(ctx context.Context, req *Request, appt *domain.Appointment) error {
	resourceID := *appt.ResourceID

	if _, err := uc.resourceRepo.BumpScheduleVersion(ctx, resourceID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("RescheduleAppointment: resource id=%d not found", resourceID)
			return ErrResourceNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to lock resource id=%d: %v", resourceID, err)
		return fmt.Errorf("%w: failed to lock resource: %v", ErrInternal, err)
	}

	decision, err := uc.checker.Require(ctx, &check.Request{
		ResourceID:           resourceID,
		Date:                 req.Date,
		StartTime:            req.StartTime,
		ServiceType:          appt.ServiceType,
		ExcludeAppointmentID: &appt.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, check.ErrUnknownServiceType):
			return fmt.Errorf("%w: %w", ErrUnknownServiceType, err)
		case check.IsDenial(err):
			uc.logger.Warn("RescheduleAppointment: appointment id=%d denied: %v", appt.ID, err)
			return fmt.Errorf("%w: %w", ErrScheduleDenied, err)
		case check.IsResourceUnavailable(err):
			return ErrResourceNotFound
		default:
			uc.logger.Error("RescheduleAppointment: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
	}

	appt.ScheduledAt = decision.Start
	appt.DurationMinutes = decision.DurationMinutes
	return nil
}

// movePending меняет время записи без ресурсного календаря
func (uc *UseCase) movePending(ctx context.Context, req *Request, appt *domain.Appointment) error {
	catalog, err := uc.serviceTypeRepo.Catalog(ctx)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to load service catalog: %v", err)
		return fmt.Errorf("%w: failed to load service catalog: %v", ErrInternal, err)
	}
	duration, ok := catalog.Duration(appt.ServiceType)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownServiceType, appt.ServiceType)
	}

	scheduledAt, err := uc.settings.At(req.Date, req.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	appt.ScheduledAt = scheduledAt
	appt.DurationMinutes = int(duration.Minutes())
	return nil
}
