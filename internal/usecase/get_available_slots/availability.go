package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// calculateAvailability вычисляет доступные слоты на дату
// Чистая функция: зависит только от настроек, даты, текущего времени и квоты
//
// Порядок проверок:
//  1. день недели вне рабочего диапазона - day_not_eligible
//  2. заявок не меньше дневного лимита - daily_cap_reached
//  3. дата раньше сегодняшней - date_in_past
//  4. сетка минус занятые начала
//  5. для сегодняшней даты отбрасываются слоты, начало которых <= now
func calculateAvailability(
	settings domain.ScheduleSettings,
	date time.Time,
	now time.Time,
	quota dailyQuota,
) ([]types.TimeString, Reason, error) {
	if !settings.IsWorkingDay(date) {
		return []types.TimeString{}, ReasonDayNotEligible, nil
	}

	if quota.Count >= settings.DailyRequestLimit {
		return []types.TimeString{}, ReasonDailyCapReached, nil
	}

	if settings.IsBeforeToday(date, now) {
		return []types.TimeString{}, ReasonDateInPast, nil
	}

	grid, err := settings.SlotGrid()
	if err != nil {
		return nil, ReasonNone, err
	}

	today := settings.IsSameDay(date, now)

	slots := make([]types.TimeString, 0, len(grid))
	for _, slot := range grid {
		if quota.isClaimed(slot) {
			continue
		}
		if today {
			startsAt, err := settings.At(date, slot)
			if err != nil {
				return nil, ReasonNone, err
			}
			if !startsAt.After(now) {
				continue
			}
		}
		slots = append(slots, slot)
	}

	if len(slots) == 0 {
		return slots, ReasonNoFreeSlots, nil
	}
	return slots, ReasonNone, nil
}
