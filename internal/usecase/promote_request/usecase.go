package promote_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/appointment"
	clientRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/client"
	requestRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/request"
	resourceRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/resource"
	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// UseCase превращает ожидающую заявку в запись на ресурс
type UseCase struct {
	requestRepo     RequestRepository
	appointmentRepo AppointmentRepository
	resourceRepo    ResourceRepository
	clientRepo      ClientRepository
	checker         AvailabilityChecker
	txManager       TransactionManager
	publisher       ChangePublisher
	settings        domain.ScheduleSettings
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	appointmentRepo AppointmentRepository,
	resourceRepo ResourceRepository,
	clientRepo ClientRepository,
	checker AvailabilityChecker,
	txManager TransactionManager,
	publisher ChangePublisher,
	settings domain.ScheduleSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:     requestRepo,
		appointmentRepo: appointmentRepo,
		resourceRepo:    resourceRepo,
		clientRepo:      clientRepo,
		checker:         checker,
		txManager:       txManager,
		publisher:       publisher,
		settings:        settings,
		logger:          logger,
	}
}

// Execute выполняет протокол подтверждения заявки:
//  1. детектор пересечений должен разрешить запись, иначе ничего не пишется
//  2. создается запись scheduled на выбранный ресурс
//  3. заявка переводится в confirmed со ссылкой на запись
//  4. если шаг 3 не удался, запись удаляется и возвращается ErrPartialFailure
//
// Шаги 1-2 выполняются в одной сериализуемой транзакции под блокировкой ресурса.
// Повторный вызов для той же заявки переиспользует уже созданную запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PromoteRequest: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("PromoteRequest: staff=%s, request=%d, resource=%d, service=%s",
		req.Actor.StaffID, req.RequestID, req.ResourceID, req.ServiceType)

	if !req.Actor.CanManageRequests() || !req.Actor.CanAssign(req.ResourceID) {
		uc.logger.Warn("PromoteRequest: staff=%s role=%s cannot assign resource=%d",
			req.Actor.StaffID, req.Actor.Role, req.ResourceID)
		return nil, ErrForbidden
	}

	request, err := uc.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			uc.logger.Warn("PromoteRequest: request id=%d not found", req.RequestID)
			return nil, ErrRequestNotFound
		}
		uc.logger.Error("PromoteRequest: failed to get request id=%d: %v", req.RequestID, err)
		return nil, fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
	}
	if !request.IsPending() {
		uc.logger.Warn("PromoteRequest: request id=%d is %s", request.ID, request.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrRequestNotPending, request.Status)
	}

	owner, err := uc.resolveOwner(ctx, req, request)
	if err != nil {
		return nil, err
	}

	var appt *domain.Appointment
	reused := false

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.appointmentRepo.GetBySourceRequestID(txCtx, request.ID)
		switch {
		case err == nil && canReuse(existing, req.ResourceID):
			uc.logger.Warn("PromoteRequest: appointment id=%d already exists for request id=%d, reusing",
				existing.ID, request.ID)
			appt, reused = existing, true
			return nil
		case err == nil:
			// Остаток прерванной попытки: отменен или стоит на другом ресурсе
			uc.logger.Warn("PromoteRequest: stale appointment id=%d (status=%s) for request id=%d, replacing",
				existing.ID, existing.Status, request.ID)
			if err := uc.appointmentRepo.Delete(txCtx, existing.ID); err != nil {
				uc.logger.Error("PromoteRequest: failed to delete stale appointment id=%d: %v", existing.ID, err)
				return fmt.Errorf("%w: failed to delete stale appointment: %v", ErrInternal, err)
			}
		case !errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			uc.logger.Error("PromoteRequest: failed to look up appointment for request id=%d: %v", request.ID, err)
			return fmt.Errorf("%w: failed to look up appointment: %v", ErrInternal, err)
		}

		// Блокировка календаря ресурса до конца транзакции
		if _, err := uc.resourceRepo.BumpScheduleVersion(txCtx, req.ResourceID); err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				uc.logger.Warn("PromoteRequest: resource id=%d not found", req.ResourceID)
				return ErrResourceNotFound
			}
			uc.logger.Error("PromoteRequest: failed to lock resource id=%d: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to lock resource: %v", ErrInternal, err)
		}

		start := request.RequestedAt.In(uc.settings.Location)
		decision, err := uc.checker.Require(txCtx, &check.Request{
			ResourceID:  req.ResourceID,
			Date:        start,
			StartTime:   types.NewTimeString(start),
			ServiceType: req.ServiceType,
		})
		if err != nil {
			return uc.mapCheckError(err)
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:        owner.clientID,
			PetID:           owner.petID,
			GuestOwner:      owner.guestOwner,
			GuestPet:        owner.guestPet,
			ResourceID:      &req.ResourceID,
			ScheduledAt:     decision.Start,
			DurationMinutes: decision.DurationMinutes,
			ServiceType:     domain.NormalizeServiceKey(req.ServiceType),
			Reason:          request.Reason,
			Status:          domain.AppointmentScheduled,
			SourceRequestID: &request.ID,
			CreatedBy:       req.Actor.StaffID,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrDuplicateSourceRequest) {
				uc.logger.Warn("PromoteRequest: request id=%d promoted concurrently", request.ID)
				return fmt.Errorf("%w: promoted concurrently", ErrRequestNotPending)
			}
			uc.logger.Error("PromoteRequest: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		appt = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.requestRepo.UpdateStatus(ctx, request.ID, domain.RequestPending, domain.RequestConfirmed, &appt.ID); err != nil {
		return nil, uc.compensate(ctx, request.ID, appt.ID, err)
	}

	uc.logger.Info("PromoteRequest: request id=%d confirmed with appointment id=%d (reused=%t)",
		request.ID, appt.ID, reused)

	if !reused {
		uc.publisher.Publish(ctx, domain.ChangeEvent{
			Collection: domain.CollectionAppointments,
			ID:         appt.ID,
			Action:     domain.ChangeCreated,
		})
	}
	uc.publisher.Publish(ctx, domain.ChangeEvent{
		Collection: domain.CollectionRequests,
		ID:         request.ID,
		Action:     domain.ChangeUpdated,
	})

	resourceID := req.ResourceID
	if appt.ResourceID != nil {
		resourceID = *appt.ResourceID
	}

	return &Response{
		RequestID:       request.ID,
		RequestStatus:   string(domain.RequestConfirmed),
		AppointmentID:   appt.ID,
		ResourceID:      resourceID,
		ScheduledAt:     appt.ScheduledAt,
		EndsAt:          appt.EndsAt(),
		DurationMinutes: appt.DurationMinutes,
		ServiceType:     appt.ServiceType,
		Reused:          reused,
	}, nil
}

// compensate удаляет запись, если заявку не удалось подтвердить
func (uc *UseCase) compensate(ctx context.Context, requestID, appointmentID int64, cause error) error {
	uc.logger.Error("PromoteRequest: failed to confirm request id=%d: %v, deleting appointment id=%d",
		requestID, cause, appointmentID)

	if err := uc.appointmentRepo.Delete(ctx, appointmentID); err != nil {
		uc.logger.Error("PromoteRequest: compensating delete of appointment id=%d failed: %v", appointmentID, err)
		return fmt.Errorf("%w: %w: appointment id=%d, request id=%d: %v",
			ErrPartialFailure, ErrCompensationFailed, appointmentID, requestID, err)
	}

	return fmt.Errorf("%w: request id=%d: %v", ErrPartialFailure, requestID, cause)
}

func (uc *UseCase) mapCheckError(err error) error {
	switch {
	case check.IsDenial(err):
		uc.logger.Warn("PromoteRequest: denied: %v", err)
		return fmt.Errorf("%w: %w", ErrScheduleDenied, err)
	case check.IsResourceUnavailable(err):
		return ErrResourceNotFound
	case errors.Is(err, check.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("PromoteRequest: availability check failed: %v", err)
		return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
	}
}

type ownerSelection struct {
	clientID   *int64
	petID      *int64
	guestOwner *string
	guestPet   *string
}

// resolveOwner выбирает владельца записи: зарегистрированный клиент или гость из заявки
func (uc *UseCase) resolveOwner(ctx context.Context, req *Request, request *domain.AppointmentRequest) (ownerSelection, error) {
	if req.ClientID == nil {
		contact, pet := request.ContactName, request.PetName
		return ownerSelection{guestOwner: &contact, guestPet: &pet}, nil
	}

	if _, err := uc.clientRepo.GetClientByID(ctx, *req.ClientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("PromoteRequest: client id=%d not found", *req.ClientID)
			return ownerSelection{}, ErrClientNotFound
		}
		uc.logger.Error("PromoteRequest: failed to get client id=%d: %v", *req.ClientID, err)
		return ownerSelection{}, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	selection := ownerSelection{clientID: req.ClientID}
	if req.PetID == nil {
		pet := request.PetName
		selection.guestPet = &pet
		return selection, nil
	}

	pet, err := uc.clientRepo.GetPetByID(ctx, *req.PetID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrPetNotFound) {
			uc.logger.Warn("PromoteRequest: pet id=%d not found", *req.PetID)
			return ownerSelection{}, ErrPetNotFound
		}
		uc.logger.Error("PromoteRequest: failed to get pet id=%d: %v", *req.PetID, err)
		return ownerSelection{}, fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
	}
	if pet.ClientID != *req.ClientID {
		uc.logger.Warn("PromoteRequest: pet id=%d belongs to client id=%d, not %d", pet.ID, pet.ClientID, *req.ClientID)
		return ownerSelection{}, ErrPetNotOwned
	}

	selection.petID = req.PetID
	return selection, nil
}

// canReuse сообщает, подходит ли ранее созданная запись для повторного подтверждения заявки
func canReuse(appt *domain.Appointment, resourceID int64) bool {
	return appt.Status == domain.AppointmentScheduled &&
		appt.ResourceID != nil && *appt.ResourceID == resourceID
}
