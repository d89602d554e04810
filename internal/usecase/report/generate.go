package report

import (
	"context"
	"errors"
	"time"

	"github.com/wellscan/patient-portal/internal/audit"
	domain "github.com/wellscan/patient-portal/internal/domain/booking"
	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/models"
	"github.com/wellscan/patient-portal/internal/timezone"
)

// Renderer produces the report document for a booking.
type Renderer interface {
	Render(b *models.Booking, generatedAt time.Time) ([]byte, error)
}

type GenerateReport struct {
	repo     domain.Repository
	renderer Renderer
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewGenerateReport(repo domain.Repository, renderer Renderer, audit *audit.Dispatcher) *GenerateReport {
	return &GenerateReport{
		repo:     repo,
		renderer: renderer,
		audit:    audit,
		now:      timezone.Now,
	}
}

// Execute gates the download on ownership and on the report-availability
// resolver, renders the PDF, and flips reportGenerated exactly once.
// Re-downloads re-render but leave the flag untouched.
func (uc *GenerateReport) Execute(
	ctx context.Context,
	patientID, bookingID uint,
) (*models.Booking, []byte, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, httperr.ErrBusinessMsg(httperr.CodeBookingNotFound, "Booking not found")
		}
		return nil, nil, err
	}

	if b.PatientID != patientID {
		return nil, nil, httperr.ErrBusinessMsg(
			httperr.CodeWrongOwner,
			"Unauthorized access to this report",
		)
	}

	now := uc.now()
	avail := domain.ResolveReportAvailability(b, now)
	if !avail.Available {
		return nil, nil, httperr.ErrBusinessMsg(
			httperr.CodeReportNotAvailable,
			"Report will be available after "+timezone.Format(avail.AvailableAt)+". Please wait until after your appointment.",
		)
	}

	pdf, err := uc.renderer.Render(b, now)
	if err != nil {
		return nil, nil, err
	}

	if !b.ReportGenerated {
		if err := uc.repo.MarkReportGenerated(ctx, b.ID); err != nil {
			return nil, nil, err
		}
		b.ReportGenerated = true

		uc.audit.Dispatch(audit.Event{
			PatientID: &patientID,
			Action:    "report_generated",
			Entity:    "booking",
			EntityID:  &b.ID,
		})
	}

	return b, pdf, nil
}
