package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/wellscan/patient-portal/internal/models"
	"github.com/wellscan/patient-portal/internal/timezone"
)

type resultRow struct {
	Parameter string
	Value     string
	Range     string
	Status    string
}

// Placeholder results keyed by test category; real lab integration is out of
// scope.
func placeholderResults(category string) []resultRow {
	switch category {
	case "Blood Test":
		return []resultRow{
			{"Hemoglobin", "14.2 g/dL", "12.0-16.0 g/dL", "Normal"},
			{"White Blood Cells", "7,200/uL", "4,500-11,000/uL", "Normal"},
			{"Platelets", "285,000/uL", "150,000-450,000/uL", "Normal"},
		}
	case "X-Ray", "CT Scan", "MRI", "Ultrasound":
		return []resultRow{
			{"Imaging Quality", "Excellent", "Good-Excellent", "Normal"},
			{"Findings", "No abnormalities detected", "N/A", "Normal"},
		}
	default:
		return []resultRow{
			{"Overall Result", "Normal", "Normal", "Normal"},
			{"Recommendation", "Continue regular monitoring", "N/A", "Normal"},
		}
	}
}

// PDFRenderer lays out the downloadable lab report.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(b *models.Booking, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Lab-Report-%d", b.ID), false)
	pdf.AddPage()

	// Header
	pdf.SetTextColor(37, 99, 235)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 10, "WellScan")
	pdf.Ln(10)
	pdf.SetTextColor(107, 114, 128)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Digital Health Lab Reports")
	pdf.Ln(8)
	pdf.SetDrawColor(229, 231, 235)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(6)

	r.section(pdf, "Patient Information")
	r.line(pdf, "Name", b.Patient.Name)
	r.line(pdf, "Email", b.Patient.Email)
	r.line(pdf, "Phone", b.Patient.Phone)
	r.line(pdf, "Date of Birth", b.Patient.DateOfBirth.In(timezone.Location()).Format("2 January 2006"))

	r.section(pdf, "Test Information")
	r.line(pdf, "Test Name", b.Test.Name)
	r.line(pdf, "Category", b.Test.Category)
	r.line(pdf, "Description", b.Test.Description)
	r.line(pdf, "Price", fmt.Sprintf("Rs. %.2f", b.Test.Price))

	r.section(pdf, "Booking Details")
	r.line(pdf, "Booking ID", fmt.Sprintf("%d", b.ID))
	r.line(pdf, "Report Serial", uuid.NewString())
	r.line(pdf, "Appointment Date", timezone.Format(b.AppointmentDate))
	r.line(pdf, "Status", b.Status)
	r.line(pdf, "Total Amount Paid", fmt.Sprintf("Rs. %.2f", b.TotalAmount))
	r.line(pdf, "Booking Date", timezone.Format(b.CreatedAt))

	r.section(pdf, "Lab Results")
	for _, row := range placeholderResults(b.Test.Category) {
		pdf.SetTextColor(55, 65, 81)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(80, 6, fmt.Sprintf("%s: %s", row.Parameter, row.Value))
		pdf.Cell(70, 6, fmt.Sprintf("Reference Range: %s", row.Range))
		if row.Status == "Normal" {
			pdf.SetTextColor(5, 150, 105)
		} else {
			pdf.SetTextColor(220, 38, 38)
		}
		pdf.Cell(0, 6, fmt.Sprintf("Status: %s", row.Status))
		pdf.Ln(7)
	}

	pdf.Ln(10)
	pdf.SetTextColor(107, 114, 128)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Cell(0, 5, "This is a computer-generated report. For questions, contact WellScan at support@wellscan.com")
	pdf.Ln(5)
	pdf.Cell(0, 5, "Generated on: "+timezone.Format(generatedAt))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetTextColor(31, 41, 55)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func (r *PDFRenderer) line(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetTextColor(55, 65, 81)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%s: %s", label, value))
	pdf.Ln(6)
}
