package booking

import "errors"

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrForbidden               = errors.New("booking is outside your scope")
	ErrSlotBooked              = errors.New("slot already booked")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrBookingCompleted        = errors.New("completed bookings cannot be modified")
	ErrBookingCancelled        = errors.New("cancelled bookings cannot be rescheduled")
	ErrCannotDelete            = errors.New("only pending or cancelled bookings can be deleted")
	ErrCancelReasonRequired    = errors.New("cancel reason is required")
	ErrTooLateToCancel         = errors.New("bookings can only be cancelled at least 24 hours in advance")
	ErrDoctorNotesOnly         = errors.New("doctors can only update booking notes")
	ErrBranchClosed            = errors.New("branch is closed on this day")
	ErrOutsideWorkingHours     = errors.New("time is outside branch working hours")
	ErrInvalidSlot             = errors.New("time is not a valid appointment slot")
	ErrPastAppointment         = errors.New("appointment time is in the past")
	ErrInvalidDate             = errors.New("invalid appointment date")
	ErrInvalidTime             = errors.New("invalid time, expected HH:MM")
	ErrNotApplicable           = errors.New("vaccination does not apply to this animal")
	ErrDoctorBranchMismatch    = errors.New("doctor does not work at this branch")
)
