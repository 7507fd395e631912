package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	requestRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/request"
	"github.com/m04kA/SMC-ClinicService/internal/service/requests/models"
)

// Service сервис для работы с публичными заявками
type Service struct {
	requestRepo RequestRepository
	publisher   ChangePublisher
	settings    domain.ScheduleSettings
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo RequestRepository,
	publisher ChangePublisher,
	settings domain.ScheduleSettings,
	logger Logger,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		publisher:   publisher,
		settings:    settings,
		logger:      logger,
	}
}

// GetByReference статус заявки по публичной ссылке, без аутентификации
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.PublicRequestStatus, error) {
	ref, err := uuid.Parse(reference)
	if err != nil {
		s.logger.Warn("GetByReference: malformed reference %q", reference)
		return nil, fmt.Errorf("%w: malformed reference", ErrInvalidInput)
	}

	request, err := s.requestRepo.GetByReference(ctx, ref.String())
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByReference: request %s not found", ref)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByReference: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.ToPublicStatus(request, s.settings.Location), nil
}

// List заявки по статусу и дате приема, отсортированные по времени приема
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListRequestsRequest) (*models.RequestListResponse, error) {
	s.logger.Info("List: fetching requests for staff=%s", actor.StaffID)

	if !actor.CanManageRequests() {
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter(s.settings)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d requests", len(list))
	return models.FromDomainRequestList(list, s.settings.Location), nil
}

// Cancel отклоняет ожидающую заявку (pending -> cancelled)
// Отмененная заявка продолжает учитываться в дневной квоте
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Cancel: cancelling request id=%d by staff=%s", id, actor.StaffID)

	if !actor.CanManageRequests() {
		return ErrAccessDenied
	}
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	err := s.requestRepo.UpdateStatus(ctx, id, domain.RequestPending, domain.RequestCancelled, nil)
	if err != nil {
		switch {
		case errors.Is(err, requestRepo.ErrRequestNotFound):
			s.logger.Warn("Cancel: request id=%d not found", id)
			return ErrRequestNotFound
		case errors.Is(err, requestRepo.ErrStatusChanged):
			s.logger.Warn("Cancel: request id=%d is not pending", id)
			return ErrCannotCancel
		default:
			s.logger.Error("Cancel: repository error for request id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.publisher.Publish(ctx, domain.ChangeEvent{
		Collection: domain.CollectionRequests,
		ID:         id,
		Action:     domain.ChangeUpdated,
	})

	s.logger.Info("Cancel: request id=%d cancelled", id)
	return nil
}
