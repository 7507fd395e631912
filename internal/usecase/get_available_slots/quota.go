package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// dailyQuota занятость даты публичными заявками
type dailyQuota struct {
	Count   int
	Claimed map[types.TimeString]struct{}
}

func (q dailyQuota) isClaimed(slot types.TimeString) bool {
	_, ok := q.Claimed[slot]
	return ok
}

// countDailyQuota считает все заявки за [date 00:00, next day 00:00) в часовом поясе клиники
// и собирает множество занятых начал HH:MM
func countDailyQuota(ctx context.Context, repo RequestRepository, settings domain.ScheduleSettings, date time.Time) (dailyQuota, error) {
	from, to := settings.DayBounds(date)

	starts, err := repo.ListStartsInRange(ctx, from, to)
	if err != nil {
		return dailyQuota{}, fmt.Errorf("%w: %v", ErrAvailabilityUnknown, err)
	}

	quota := dailyQuota{
		Count:   len(starts),
		Claimed: make(map[types.TimeString]struct{}, len(starts)),
	}
	for _, start := range starts {
		quota.Claimed[types.NewTimeString(start.In(settings.Location))] = struct{}{}
	}

	return quota, nil
}
