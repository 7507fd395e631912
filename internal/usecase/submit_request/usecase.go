package submit_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/usecase/get_available_slots"
)

// UUIDReferenceGenerator генерирует случайные UUID v4
type UUIDReferenceGenerator struct{}

func (UUIDReferenceGenerator) NewReference() string {
	return uuid.NewString()
}

// UseCase use case для приема публичной заявки без аутентификации
type UseCase struct {
	requestRepo  RequestRepository
	availability AvailabilityCalculator
	txManager    TransactionManager
	publisher    ChangePublisher
	references   ReferenceGenerator
	settings     domain.ScheduleSettings
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	availability AvailabilityCalculator,
	txManager TransactionManager,
	publisher ChangePublisher,
	settings domain.ScheduleSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		availability: availability,
		txManager:    txManager,
		publisher:    publisher,
		references:   UUIDReferenceGenerator{},
		settings:     settings,
		logger:       logger,
	}
}

// Execute сохраняет заявку в статусе pending
// Доступность пересчитывается внутри сериализуемой транзакции вместе со вставкой,
// поэтому две конкурентные заявки не могут занять один слот или превысить лимит дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitRequest: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SubmitRequest: date=%s, time=%s", req.Date.Format(domain.DateFormat), req.StartTime)

	requestedAt, err := uc.settings.At(req.Date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var created *domain.AppointmentRequest

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		availability, err := uc.availability.Execute(txCtx, &get_available_slots.Request{Date: req.Date})
		if err != nil {
			if errors.Is(err, get_available_slots.ErrAvailabilityUnknown) {
				uc.logger.Error("SubmitRequest: availability unknown for date=%s: %v", req.Date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: %v", ErrAvailabilityUnknown, err)
			}
			uc.logger.Error("SubmitRequest: failed to calculate availability: %v", err)
			return fmt.Errorf("%w: calculate availability: %v", ErrInternal, err)
		}

		if err := reasonToError(availability.Reason); err != nil {
			uc.logger.Warn("SubmitRequest: date=%s rejected: %s", req.Date.Format(domain.DateFormat), availability.Reason)
			return err
		}
		if !availability.Offers(req.StartTime) {
			uc.logger.Warn("SubmitRequest: slot %s on %s is not offered", req.StartTime, req.Date.Format(domain.DateFormat))
			return fmt.Errorf("%w: %s is not among free slots", ErrSlotNotAvailable, req.StartTime)
		}

		request := &domain.AppointmentRequest{
			Reference:    uc.references.NewReference(),
			ContactName:  req.ContactName,
			ContactPhone: req.ContactPhone,
			ContactEmail: req.ContactEmail,
			PetName:      req.PetName,
			Reason:       req.Reason,
			RequestedAt:  requestedAt,
			Status:       domain.RequestPending,
		}

		created, err = uc.requestRepo.Create(txCtx, request)
		if err != nil {
			uc.logger.Error("SubmitRequest: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("SubmitRequest: created request id=%d, reference=%s", created.ID, created.Reference)

	uc.publisher.Publish(ctx, domain.ChangeEvent{
		Collection: domain.CollectionRequests,
		ID:         created.ID,
		Action:     domain.ChangeCreated,
	})

	return &Response{
		ID:          created.ID,
		Reference:   created.Reference,
		Status:      string(created.Status),
		RequestedAt: created.RequestedAt,
		CreatedAt:   created.CreatedAt,
	}, nil
}

// reasonToError переводит причину пустого списка слотов в ошибку заявки
func reasonToError(reason get_available_slots.Reason) error {
	switch reason {
	case get_available_slots.ReasonNone:
		return nil
	case get_available_slots.ReasonDayNotEligible:
		return ErrDayNotEligible
	case get_available_slots.ReasonDailyCapReached:
		return ErrDailyCapReached
	case get_available_slots.ReasonDateInPast:
		return ErrDateInPast
	case get_available_slots.ReasonNoFreeSlots:
		return fmt.Errorf("%w: no free slots left on this date", ErrSlotNotAvailable)
	default:
		return fmt.Errorf("%w: %s", ErrSlotNotAvailable, reason)
	}
}
