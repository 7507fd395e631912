package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	clientRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/client"
	resourceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/resource"
	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
)

// UseCase создает запись от имени сотрудника
type UseCase struct {
	appointmentRepo AppointmentRepository
	resourceRepo    ResourceRepository
	serviceTypeRepo ServiceTypeRepository
	clientRepo      ClientRepository
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
	clientRepo ClientRepository,
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
		clientRepo:      clientRepo,
		checker:         checker,
		txManager:       txManager,
		publisher:       publisher,
		settings:        settings,
		logger:          logger,
	}
}

// Execute создает запись
// С ресурсом: scheduled, под блокировкой ресурса и только если детектор разрешил.
// Без ресурса: pending, календарь не проверяется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: staff=%s, date=%s, time=%s, service=%s",
		req.Actor.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceType)

	if !req.Actor.CanManageRequests() {
		return nil, ErrForbidden
	}
	if req.ResourceID != nil && !req.Actor.CanAssign(*req.ResourceID) {
		uc.logger.Warn("CreateAppointment: staff=%s cannot assign resource=%d", req.Actor.StaffID, *req.ResourceID)
		return nil, ErrForbidden
	}

	if err := uc.checkOwner(ctx, req); err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		ClientID:    req.ClientID,
		PetID:       req.PetID,
		GuestOwner:  req.GuestOwner,
		GuestPet:    req.GuestPet,
		ResourceID:  req.ResourceID,
		ServiceType: domain.NormalizeServiceKey(req.ServiceType),
		Reason:      req.Reason,
		CreatedBy:   req.Actor.StaffID,
	}

	var (
		created *domain.Appointment
		err     error
	)
	if req.ResourceID == nil {
		created, err = uc.createPending(ctx, req, appt)
	} else {
		created, err = uc.createScheduled(ctx, req, appt)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d, status=%s", created.ID, created.Status)

	uc.publisher.Publish(ctx, domain.ChangeEvent{
		Collection: domain.CollectionAppointments,
		ID:         created.ID,
		Action:     domain.ChangeCreated,
	})

	return &Response{
		ID:              created.ID,
		Status:          string(created.Status),
		ResourceID:      created.ResourceID,
		ScheduledAt:     created.ScheduledAt,
		EndsAt:          created.EndsAt(),
		DurationMinutes: created.DurationMinutes,
		ServiceType:     created.ServiceType,
		CreatedAt:       created.CreatedAt,
	}, nil
}

// createPending создает запись без ресурса, длительность берется из справочника
func (uc *UseCase) createPending(ctx context.Context, req *Request, appt *domain.Appointment) (*domain.Appointment, error) {
	catalog, err := uc.serviceTypeRepo.Catalog(ctx)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to load service catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load service catalog: %v", ErrInternal, err)
	}
	duration, ok := catalog.Duration(req.ServiceType)
	if !ok {
		uc.logger.Warn("CreateAppointment: unknown service type %q", req.ServiceType)
		return nil, fmt.Errorf("%w: %q", ErrUnknownServiceType, req.ServiceType)
	}

	scheduledAt, err := uc.settings.At(req.Date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	appt.ScheduledAt = scheduledAt
	appt.DurationMinutes = int(duration.Minutes())
	appt.Status = domain.AppointmentPending

	created, err := uc.appointmentRepo.Create(ctx, appt)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}
	return created, nil
}

// createScheduled создает запись на ресурс под блокировкой его календаря
func (uc *UseCase) createScheduled(ctx context.Context, req *Request, appt *domain.Appointment) (*domain.Appointment, error) {
	resourceID := *req.ResourceID

	var created *domain.Appointment
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := uc.resourceRepo.BumpScheduleVersion(txCtx, resourceID); err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				uc.logger.Warn("CreateAppointment: resource id=%d not found", resourceID)
				return ErrResourceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to lock resource id=%d: %v", resourceID, err)
			return fmt.Errorf("%w: failed to lock resource: %v", ErrInternal, err)
		}

		decision, err := uc.checker.Require(txCtx, &check.Request{
			ResourceID:  resourceID,
			Date:        req.Date,
			StartTime:   req.StartTime,
			ServiceType: req.ServiceType,
		})
		if err != nil {
			return uc.mapCheckError(err)
		}

		appt.ScheduledAt = decision.Start
		appt.DurationMinutes = decision.DurationMinutes
		appt.Status = domain.AppointmentScheduled

		created, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) mapCheckError(err error) error {
	switch {
	case errors.Is(err, check.ErrUnknownServiceType):
		uc.logger.Warn("CreateAppointment: %v", err)
		return fmt.Errorf("%w: %w", ErrUnknownServiceType, err)
	case check.IsDenial(err):
		uc.logger.Warn("CreateAppointment: denied: %v", err)
		return fmt.Errorf("%w: %w", ErrScheduleDenied, err)
	case check.IsResourceUnavailable(err):
		return ErrResourceNotFound
	case errors.Is(err, check.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateAppointment: availability check failed: %v", err)
		return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
	}
}

// checkOwner проверяет, что клиент существует и питомец принадлежит ему
func (uc *UseCase) checkOwner(ctx context.Context, req *Request) error {
	if req.ClientID == nil {
		return nil
	}

	if _, err := uc.clientRepo.GetClientByID(ctx, *req.ClientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", *req.ClientID)
			return ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", *req.ClientID, err)
		return fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	if req.PetID == nil {
		return nil
	}

	pet, err := uc.clientRepo.GetPetByID(ctx, *req.PetID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrPetNotFound) {
			uc.logger.Warn("CreateAppointment: pet id=%d not found", *req.PetID)
			return ErrPetNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get pet id=%d: %v", *req.PetID, err)
		return fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
	}
	if pet.ClientID != *req.ClientID {
		uc.logger.Warn("CreateAppointment: pet id=%d belongs to client id=%d", pet.ID, pet.ClientID)
		return ErrPetNotOwned
	}
	return nil
}
