package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	check "github.com/m04kA/SMC-ClinicService/internal/usecase/check_resource_availability"
)

const (
	msgScheduleDenied     = "время недоступно для записи"
	msgUnknownServiceType = "неизвестный тип услуги"
)

// ConflictDetails запись, занимающая ресурс в запрошенном интервале
type ConflictDetails struct {
	ResourceID    int64  `json:"resourceId"`
	AppointmentID int64  `json:"appointmentId"`
	Start         string `json:"start"`
	End           string `json:"end"`
}

// DenialReason код отказа детектора пересечений
func DenialReason(err error) check.Code {
	switch {
	case errors.Is(err, check.ErrResourceConflict):
		return check.CodeResourceOverlap
	case errors.Is(err, check.ErrStartInPast):
		return check.CodeInPast
	case errors.Is(err, check.ErrAfterClosing):
		return check.CodeAfterClosing
	case errors.Is(err, check.ErrUnknownServiceType):
		return check.CodeUnknownServiceType
	}
	return check.CodeNone
}

// RespondScheduleDenied отвечает 409 с кодом отказа и, для пересечения, конфликтующей записью
// Неизвестная услуга считается ошибкой ввода: 400
func RespondScheduleDenied(w http.ResponseWriter, err error, loc *time.Location) {
	reason := DenialReason(err)
	if reason == check.CodeUnknownServiceType {
		RespondDenied(w, http.StatusBadRequest, msgUnknownServiceType, string(reason), nil)
		return
	}

	var details interface{}

	var conflict *check.ConflictError
	if errors.As(err, &conflict) {
		if loc == nil {
			loc = time.UTC
		}
		details = ConflictDetails{
			ResourceID:    conflict.ResourceID,
			AppointmentID: conflict.AppointmentID,
			Start:         conflict.Start.In(loc).Format(domain.DateTimeLayout),
			End:           conflict.End.In(loc).Format(domain.DateTimeLayout),
		}
	}

	RespondDenied(w, http.StatusConflict, msgScheduleDenied, string(reason), details)
}
