package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// ErrInvalidSchedule is returned when schedule settings are inconsistent
var ErrInvalidSchedule = errors.New("domain: invalid schedule settings")

// ScheduleSettings describes the clinic's public booking grid and working days
type ScheduleSettings struct {
	Location *time.Location

	OpeningTime     types.TimeString // first bookable start
	LastSlotStart   types.TimeString // last bookable start (inclusive)
	ClosingTime     types.TimeString // no booking may end after this time
	SlotStepMinutes int

	// Allowed weekday range, inclusive; wraps around the week when From > To
	WeekdayFrom time.Weekday
	WeekdayTo   time.Weekday

	DailyRequestLimit int
}

// Validate checks the settings for consistency
func (s ScheduleSettings) Validate() error {
	if s.Location == nil {
		return fmt.Errorf("%w: location is required", ErrInvalidSchedule)
	}
	for name, ts := range map[string]types.TimeString{
		"opening_time":    s.OpeningTime,
		"last_slot_start": s.LastSlotStart,
		"closing_time":    s.ClosingTime,
	} {
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, name, err)
		}
	}
	if s.LastSlotStart.IsBefore(s.OpeningTime) {
		return fmt.Errorf("%w: last_slot_start is before opening_time", ErrInvalidSchedule)
	}
	if !s.ClosingTime.IsAfter(s.LastSlotStart) {
		return fmt.Errorf("%w: closing_time must be after last_slot_start", ErrInvalidSchedule)
	}
	if s.SlotStepMinutes < MinSlotStepMinutes || s.SlotStepMinutes > MaxSlotStepMinutes {
		return fmt.Errorf("%w: slot step must be within [%d, %d] minutes",
			ErrInvalidSchedule, MinSlotStepMinutes, MaxSlotStepMinutes)
	}
	if s.WeekdayFrom < time.Sunday || s.WeekdayFrom > time.Saturday ||
		s.WeekdayTo < time.Sunday || s.WeekdayTo > time.Saturday {
		return fmt.Errorf("%w: weekday range must be within 0..6", ErrInvalidSchedule)
	}
	if s.DailyRequestLimit <= 0 || s.DailyRequestLimit > MaxDailyRequestLimit {
		return fmt.Errorf("%w: daily request limit must be within [1, %d]", ErrInvalidSchedule, MaxDailyRequestLimit)
	}
	return nil
}

// SlotGrid returns the static ordered candidate starts from OpeningTime to LastSlotStart
// Depends on configuration only
func (s ScheduleSettings) SlotGrid() ([]types.TimeString, error) {
	first, err := s.OpeningTime.Minutes()
	if err != nil {
		return nil, err
	}
	last, err := s.LastSlotStart.Minutes()
	if err != nil {
		return nil, err
	}
	if s.SlotStepMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot step must be positive", ErrInvalidSchedule)
	}

	grid := make([]types.TimeString, 0, (last-first)/s.SlotStepMinutes+1)
	for m := first; m <= last; m += s.SlotStepMinutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, err
		}
		grid = append(grid, slot)
	}
	return grid, nil
}

// IsWorkingDay reports whether the calendar date's weekday lies in the allowed range
// A zero date is never eligible
func (s ScheduleSettings) IsWorkingDay(date time.Time) bool {
	if date.IsZero() {
		return false
	}
	// Берем только календарную дату, часовой пояс значения не имеет
	y, m, d := date.Date()
	weekday := time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Weekday()

	if s.WeekdayFrom <= s.WeekdayTo {
		return weekday >= s.WeekdayFrom && weekday <= s.WeekdayTo
	}
	return weekday >= s.WeekdayFrom || weekday <= s.WeekdayTo
}

// DayBounds returns [date 00:00, next day 00:00) in the clinic time zone
func (s ScheduleSettings) DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, s.location())
	return start, start.AddDate(0, 0, 1)
}

// At combines a calendar date and a time of day in the clinic time zone
func (s ScheduleSettings) At(date time.Time, t types.TimeString) (time.Time, error) {
	return t.On(date, s.location())
}

// ClosingAt returns the closing boundary for the date
func (s ScheduleSettings) ClosingAt(date time.Time) (time.Time, error) {
	return s.At(date, s.ClosingTime)
}

// Today returns now's calendar date in the clinic time zone (at 00:00)
func (s ScheduleSettings) Today(now time.Time) time.Time {
	start, _ := s.DayBounds(now.In(s.location()))
	return start
}

// IsSameDay reports whether date is now's calendar date in the clinic time zone
func (s ScheduleSettings) IsSameDay(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.In(s.location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsBeforeToday reports whether the calendar date is earlier than now's date
func (s ScheduleSettings) IsBeforeToday(date, now time.Time) bool {
	dayStart, _ := s.DayBounds(date)
	return dayStart.Before(s.Today(now))
}

func (s ScheduleSettings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
