package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/httpresp"
	"github.com/wellscan/patient-portal/internal/middleware"
	usecase "github.com/wellscan/patient-portal/internal/usecase/booking"
)

type BookingHandler struct {
	create       *usecase.CreateBooking
	list         *usecase.ListBookings
	get          *usecase.GetBooking
	cancel       *usecase.CancelBooking
	availability *usecase.GetAvailability
}

func NewBookingHandler(
	create *usecase.CreateBooking,
	list *usecase.ListBookings,
	get *usecase.GetBooking,
	cancel *usecase.CancelBooking,
	availability *usecase.GetAvailability,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		list:         list,
		get:          get,
		cancel:       cancel,
		availability: availability,
	}
}

type CreateBookingRequest struct {
	TestID          uint      `json:"testId" binding:"required"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
	Notes           string    `json:"notes" binding:"max=500"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		PatientID:       patientID,
		TestID:          req.TestID,
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"booking": b})
}

func (h *BookingHandler) List(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	res, err := h.list.Execute(c.Request.Context(), usecase.ListBookingsInput{
		PatientID: patientID,
		Status:    c.Query("status"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	// Envelope built from the applied page/limit, not the raw query values.
	httpresp.Page(c, res.Items, res.Page, res.Limit, res.Total)
}

func (h *BookingHandler) GetOne(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	bookingID, err := parseID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id")
		return
	}

	b, err := h.get.Execute(c.Request.Context(), patientID, bookingID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"booking": b})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	bookingID, err := parseID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id")
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), patientID, bookingID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"booking": b, "message": "Booking cancelled successfully"})
}

func (h *BookingHandler) Availability(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	testID, err := parseID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_test_id", "Invalid test id")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be in YYYY-MM-DD format")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), usecase.AvailabilityInput{
		PatientID: patientID,
		TestID:    uint(testID),
		Date:      date,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"slots": slots})
}

func parseID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	return uint(id), err
}

// writeBusinessError maps a booking-core error code to its HTTP status.
// Anything that is not a BusinessError is a 500.
func writeBusinessError(c *gin.Context, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		zap.L().Error("unexpected error", zap.Error(err))
		httperr.Internal(c, "internal_error", "Something went wrong")
		return
	}

	switch be.Code {
	case httperr.CodeTestNotFound, httperr.CodeBookingNotFound:
		httperr.NotFound(c, be.Code, be.Message)
	case httperr.CodeReportNotAvailable, httperr.CodeWrongOwner:
		httperr.Forbidden(c, be.Code, be.Message)
	case httperr.CodeDuplicateBooking,
		httperr.CodeScheduleOverlap,
		httperr.CodeAlreadyCancelled,
		httperr.CodeCannotCancelCompleted,
		httperr.CodeAppointmentInPast,
		httperr.CodeAppointmentTooFarAhead:
		httperr.BadRequest(c, be.Code, be.Message)
	default:
		httperr.Write(c, http.StatusBadRequest, be.Code, be.Message)
	}
}
