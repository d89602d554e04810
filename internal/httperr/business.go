package httperr

import "errors"

// Business error codes surfaced by the booking core.
const (
	CodeTestNotFound           = "test_not_found"
	CodeBookingNotFound        = "booking_not_found"
	CodeDuplicateBooking       = "duplicate_booking"
	CodeScheduleOverlap        = "schedule_overlap"
	CodeAlreadyCancelled       = "already_cancelled"
	CodeCannotCancelCompleted  = "cannot_cancel_completed"
	CodeReportNotAvailable     = "report_not_available"
	CodeWrongOwner             = "wrong_owner"
	CodeAppointmentInPast      = "appointment_in_past"
	CodeAppointmentTooFarAhead = "appointment_too_far_ahead"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessMsg carries a user-facing message alongside the code, e.g. the
// conflicting test name for a schedule overlap.
func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness unwraps err into a BusinessError if it is one.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
