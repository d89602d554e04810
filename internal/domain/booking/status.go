package booking

import "github.com/wellscan/patient-portal/internal/httperr"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// CanCancel rejects cancellation of terminal states with distinct codes so
// the caller can tell "already done" from "already gone".
func CanCancel(current Status) error {
	switch current {
	case StatusCancelled:
		return httperr.ErrBusinessMsg(httperr.CodeAlreadyCancelled, "Booking is already cancelled")
	case StatusCompleted:
		return httperr.ErrBusinessMsg(httperr.CodeCannotCancelCompleted, "Cannot cancel completed booking")
	}
	return nil
}

// CanComplete gates the operator-driven scheduled -> completed transition.
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
