package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/middleware"
	usecase "github.com/wellscan/patient-portal/internal/usecase/report"
)

type ReportHandler struct {
	generate *usecase.GenerateReport
}

func NewReportHandler(generate *usecase.GenerateReport) *ReportHandler {
	return &ReportHandler{generate: generate}
}

// Download streams the booking's lab report as a PDF attachment.
func (h *ReportHandler) Download(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextPatientID).(uint)

	bookingID, err := parseID(c, "bookingId")
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id")
		return
	}

	b, pdf, err := h.generate.Execute(c.Request.Context(), patientID, bookingID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=Lab-Report-%d.pdf", b.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
