package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"github.com/jung-kurt/gofpdf"
)

// StatusHint classifies a status string for visual styling. The mapping is
// pure and must stay exact: the frontend's visual-regression tests depend
// on it.
type StatusHint string

const (
	HintPositive StatusHint = "positive"
	HintCaution  StatusHint = "caution"
	HintNegative StatusHint = "negative"
)

func HintFor(status string) StatusHint {
	switch status {
	case model.StatusDone:
		return HintPositive
	case model.StatusIncomplete:
		return HintCaution
	default:
		return HintNegative
	}
}

// ReportHeader carries the document header fields.
type ReportHeader struct {
	AssignmentTitle string
	DueAt           *time.Time
	SchoolFilter    string
}

// ReportRow is one student line in the exported document.
type ReportRow struct {
	StudentNumber string
	Name          string
	School        string
	Status        string
}

// ArtifactName builds the deterministic report file name:
// Homework_Report_<title-with-underscores>_<date>.pdf. Identical inputs
// always yield the same name.
func ArtifactName(assignmentTitle string, date time.Time, layout string) string {
	title := strings.ReplaceAll(strings.TrimSpace(assignmentTitle), " ", "_")
	return "Homework_Report_" + title + "_" + date.Format(layout) + ".pdf"
}

// capitalize renders a status as a report cell word ("done" → "Done").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ReportService is the document sink: it turns a precomputed row matrix
// into a named PDF artifact and persists it through the storage provider.
type ReportService struct {
	Storage    StorageProvider
	DateFormat string
}

func NewReportService(storage StorageProvider, dateFormat string) *ReportService {
	if dateFormat == "" {
		dateFormat = util.DateFormat
	}
	return &ReportService{Storage: storage, DateFormat: dateFormat}
}

func hintFill(pdf *gofpdf.Fpdf, hint StatusHint) {
	switch hint {
	case HintPositive:
		pdf.SetFillColor(212, 237, 218)
	case HintCaution:
		pdf.SetFillColor(255, 243, 205)
	default:
		pdf.SetFillColor(248, 215, 218)
	}
}

// BuildPDF renders the document. Zero rows still produce a valid
// header-only artifact.
func (s *ReportService) BuildPDF(header ReportHeader, rows []ReportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Homework Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Homework Report: "+header.AssignmentTitle, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	due := "No due date"
	if header.DueAt != nil {
		due = header.DueAt.Format(s.DateFormat)
	}
	pdf.CellFormat(0, 7, "Due: "+due, "", 1, "L", false, 0, "")
	school := header.SchoolFilter
	if matchAll(school) {
		school = "All schools"
	}
	pdf.CellFormat(0, 7, "School: "+school, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	widths := []float64{30, 70, 50, 40}
	titles := []string{"Student No.", "Name", "School", "Status"}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, t := range titles {
		pdf.CellFormat(widths[i], 8, t, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(widths[0], 7, row.StudentNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, row.School, "1", 0, "L", false, 0, "")
		hintFill(pdf, HintFor(row.Status))
		pdf.CellFormat(widths[3], 7, capitalize(row.Status), "1", 0, "L", true, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Generate renders and persists the report, returning the artifact name
// and its URL. On any failure nothing is kept and nothing is retried; the
// operator re-triggers the export.
func (s *ReportService) Generate(ctx context.Context, header ReportHeader, rows []ReportRow) (string, string, error) {
	doc, err := s.BuildPDF(header, rows)
	if err != nil {
		return "", "", err
	}

	name := ArtifactName(header.AssignmentTitle, time.Now(), s.DateFormat)
	url, err := s.Storage.Upload(ctx, "reports/"+name, bytes.NewReader(doc), int64(len(doc)), util.MimePDF)
	if err != nil {
		return "", "", err
	}

	monitoring.ReportCounter.Inc()
	return name, url, nil
}
