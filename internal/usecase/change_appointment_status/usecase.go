package change_appointment_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	resourceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/resource"
	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// UseCase применяет автомат статусов записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	resourceRepo    ResourceRepository
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
	checker AvailabilityChecker,
	txManager TransactionManager,
	publisher ChangePublisher,
	settings domain.ScheduleSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		resourceRepo:    resourceRepo,
		checker:         checker,
		txManager:       txManager,
		publisher:       publisher,
		settings:        settings,
		logger:          logger,
	}
}

// Execute выполняет действие над записью
// Если целевой статус занимает время ресурса (schedule, revert в scheduled),
// детектор пересечений запускается под блокировкой ресурса, исключая саму запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeAppointmentStatus: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ChangeAppointmentStatus: staff=%s, appointment=%d, action=%s",
		req.Actor.StaffID, req.AppointmentID, req.Action)

	var (
		appt     *domain.Appointment
		previous domain.AppointmentStatus
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		appt, err = uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("ChangeAppointmentStatus: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("ChangeAppointmentStatus: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if !req.Actor.CanMutate(appt) {
			uc.logger.Warn("ChangeAppointmentStatus: staff=%s cannot change appointment id=%d", req.Actor.StaffID, appt.ID)
			return ErrForbidden
		}

		target, err := appt.NextStatus(req.Action, req.ResourceID)
		if err != nil {
			uc.logger.Warn("ChangeAppointmentStatus: %s from %s rejected: %v", req.Action, appt.Status, err)
			return mapTransitionError(err, appt.Status, req.Action)
		}

		if req.ResourceID != nil {
			if !req.Actor.CanAssign(*req.ResourceID) {
				uc.logger.Warn("ChangeAppointmentStatus: staff=%s cannot assign resource=%d", req.Actor.StaffID, *req.ResourceID)
				return ErrForbidden
			}
			appt.ResourceID = req.ResourceID
		}

		if target.IsBlocking() {
			if err := uc.reserve(txCtx, appt); err != nil {
				return err
			}
		}

		previous = appt.Status
		appt.Status = target

		if err := uc.appointmentRepo.Update(txCtx, appt); err != nil {
			uc.logger.Error("ChangeAppointmentStatus: failed to update appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ChangeAppointmentStatus: appointment id=%d %s -> %s", appt.ID, previous, appt.Status)

	uc.publisher.Publish(ctx, domain.ChangeEvent{
		Collection: domain.CollectionAppointments,
		ID:         appt.ID,
		Action:     domain.ChangeUpdated,
	})

	return &Response{
		AppointmentID:  appt.ID,
		PreviousStatus: string(previous),
		Status:         string(appt.Status),
		ResourceID:     appt.ResourceID,
		ScheduledAt:    appt.ScheduledAt,
		EndsAt:         appt.EndsAt(),
		UpdatedAt:      appt.UpdatedAt,
	}, nil
}

// reserve блокирует календарь ресурса и проверяет интервал записи
func (uc *UseCase) reserve(ctx context.Context, appt *domain.Appointment) error {
	resourceID := *appt.ResourceID

	if _, err := uc.resourceRepo.BumpScheduleVersion(ctx, resourceID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("ChangeAppointmentStatus: resource id=%d not found", resourceID)
			return ErrResourceNotFound
		}
		uc.logger.Error("ChangeAppointmentStatus: failed to lock resource id=%d: %v", resourceID, err)
		return fmt.Errorf("%w: failed to lock resource: %v", ErrInternal, err)
	}

	start := appt.ScheduledAt.In(uc.settings.Location)
	decision, err := uc.checker.Require(ctx, &check.Request{
		ResourceID:           resourceID,
		Date:                 start,
		StartTime:            types.NewTimeString(start),
		ServiceType:          appt.ServiceType,
		ExcludeAppointmentID: &appt.ID,
	})
	if err != nil {
		switch {
		case check.IsDenial(err):
			uc.logger.Warn("ChangeAppointmentStatus: appointment id=%d denied: %v", appt.ID, err)
			return fmt.Errorf("%w: %w", ErrScheduleDenied, err)
		case check.IsResourceUnavailable(err):
			return ErrResourceNotFound
		default:
			uc.logger.Error("ChangeAppointmentStatus: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
	}

	appt.DurationMinutes = decision.DurationMinutes
	return nil
}

func mapTransitionError(err error, from domain.AppointmentStatus, action domain.AppointmentAction) error {
	switch {
	case errors.Is(err, domain.ErrResourceRequired):
		return ErrResourceRequired
	case errors.Is(err, domain.ErrInvalidTransition):
		return fmt.Errorf("%w: cannot %s a %s appointment", ErrInvalidTransition, action, from)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
