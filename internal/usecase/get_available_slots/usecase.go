package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

const operationName = "get_available_slots"

// UseCase use case для получения доступных для публичной записи слотов
type UseCase struct {
	requestRepo  RequestRepository
	settings     domain.ScheduleSettings
	observer     DecisionObserver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	settings domain.ScheduleSettings,
	observer DecisionObserver,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		settings:     settings,
		observer:     observer,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Ничего не изменяет; повторный вызов с тем же состоянием дает тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := req.Date
	uc.logger.Info("GetAvailableSlots: date=%s", date.Format(domain.DateFormat))

	now := uc.timeProvider.Now()

	// Выходной день не требует обращения к хранилищу
	if !uc.settings.IsWorkingDay(date) {
		uc.observe(string(ReasonDayNotEligible))
		return uc.response(date, nil, ReasonDayNotEligible, 0), nil
	}

	quota, err := countDailyQuota(ctx, uc.requestRepo, uc.settings, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count requests for date=%s: %v", date.Format(domain.DateFormat), err)
		uc.observe("error")
		return nil, err
	}

	slots, reason, err := calculateAvailability(uc.settings, date, now, quota)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to calculate availability: %v", err)
		uc.observe("error")
		return nil, fmt.Errorf("%w: calculate availability: %v", ErrInternal, err)
	}

	if reason != ReasonNone {
		uc.logger.Info("GetAvailableSlots: no slots for date=%s, reason=%s, requests=%d/%d",
			date.Format(domain.DateFormat), reason, quota.Count, uc.settings.DailyRequestLimit)
		uc.observe(string(reason))
	} else {
		uc.logger.Info("GetAvailableSlots: %d slots for date=%s, requests=%d/%d",
			len(slots), date.Format(domain.DateFormat), quota.Count, uc.settings.DailyRequestLimit)
		uc.observe("available")
	}

	return uc.response(date, slots, reason, quota.Count), nil
}

func (uc *UseCase) response(date time.Time, slots []types.TimeString, reason Reason, count int) *Response {
	if slots == nil {
		slots = []types.TimeString{}
	}
	return &Response{
		Date:          date,
		Slots:         slots,
		Reason:        reason,
		RequestsCount: count,
		DailyLimit:    uc.settings.DailyRequestLimit,
	}
}

func (uc *UseCase) observe(outcome string) {
	if uc.observer != nil {
		uc.observer.ObserveDecision(operationName, outcome)
	}
}
