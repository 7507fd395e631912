package check_resource_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd)
// Граничащие интервалы (aEnd == bStart) не пересекаются
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// planInterval строит интервал записи и проверяет его без обращения к календарю ресурса
//  1. неизвестная услуга - отказ (длительность не угадываем)
//  2. начало раньше now - отказ
//  3. конец позже закрытия - отказ
func planInterval(
	req *Request,
	settings domain.ScheduleSettings,
	catalog domain.DurationCatalog,
	now time.Time,
) (*Decision, error) {
	duration, ok := catalog.Duration(req.ServiceType)
	if !ok {
		return deny(req.ResourceID, CodeUnknownServiceType,
			fmt.Sprintf("service type %q has no known duration", req.ServiceType)), nil
	}

	start, err := settings.At(req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}
	end := start.Add(duration)

	if start.Before(now) {
		d := deny(req.ResourceID, CodeInPast,
			fmt.Sprintf("start %s is in the past", start.Format(domain.DateTimeLayout)))
		d.Start, d.End = start, end
		return d, nil
	}

	closing, err := settings.ClosingAt(req.Date)
	if err != nil {
		return nil, err
	}
	if end.After(closing) {
		d := deny(req.ResourceID, CodeAfterClosing,
			fmt.Sprintf("ends at %s, after closing time %s", end.Format(domain.TimeFormat), settings.ClosingTime))
		d.Start, d.End = start, end
		return d, nil
	}

	return allow(req.ResourceID, start, end), nil
}

// findOverlap ищет первую блокирующую запись, пересекающую интервал решения
// excludeID пропускается: запись не конфликтует сама с собой
func findOverlap(decision *Decision, appts []*domain.Appointment, excludeID *int64) *Decision {
	for _, b := range appts {
		if b == nil || !b.IsBlocking() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}

		existingStart, existingEnd := b.ScheduledAt, b.EndsAt()
		if overlaps(decision.Start, decision.End, existingStart, existingEnd) {
			d := deny(decision.ResourceID, CodeResourceOverlap,
				fmt.Sprintf("resource is booked %s-%s by appointment id=%d",
					existingStart.In(decision.Start.Location()).Format(domain.TimeFormat),
					existingEnd.In(decision.Start.Location()).Format(domain.TimeFormat),
					b.ID))
			d.Start, d.End, d.DurationMinutes = decision.Start, decision.End, decision.DurationMinutes
			d.Conflict = &Conflict{AppointmentID: b.ID, Start: existingStart, End: existingEnd}
			return d
		}
	}
	return decision
}

// appointmentsLoader загружает блокирующие записи ресурса на день проверки
type appointmentsLoader func() ([]*domain.Appointment, error)

// evaluate полная проверка: интервал, затем календарь ресурса
// Календарь читается только если интервал сам по себе допустим
func evaluate(
	req *Request,
	settings domain.ScheduleSettings,
	catalog domain.DurationCatalog,
	now time.Time,
	load appointmentsLoader,
) (*Decision, error) {
	decision, err := planInterval(req, settings, catalog, now)
	if err != nil || !decision.Allowed {
		return decision, err
	}

	appts, err := load()
	if err != nil {
		return nil, err
	}
	return findOverlap(decision, appts, req.ExcludeAppointmentID), nil
}
