package consultation

import "errors"

var (
	ErrConsultationNotFound    = errors.New("consultation not found")
	ErrForbidden               = errors.New("consultation is outside your scope")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrConsultationCompleted   = errors.New("completed consultations cannot be modified")
	ErrConsultationCancelled   = errors.New("cancelled consultations cannot be rescheduled")
	ErrCannotDelete            = errors.New("only scheduled or cancelled consultations can be deleted")
	ErrCompletionFieldsOnly    = errors.New("diagnosis, treatment and medications can only be set when completing")
	ErrDiagnosisRequired       = errors.New("diagnosis is required to complete a consultation")
	ErrCancelReasonRequired    = errors.New("cancel reason is required")
	ErrInvalidSchedule         = errors.New("invalid consultation date or time")
	ErrPastSchedule            = errors.New("consultation time is in the past")
	ErrDoctorBusy              = errors.New("doctor already has a consultation at this time")
	ErrAlreadyStarted          = errors.New("consultation has already started")
)
