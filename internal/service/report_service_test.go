package service

import (
	"bytes"
	"testing"
	"time"

	"lms_backend/internal/model"
)

func TestHintFor(t *testing.T) {
	tests := []struct {
		status string
		want   StatusHint
	}{
		{model.StatusDone, HintPositive},
		{model.StatusIncomplete, HintCaution},
		{model.StatusMissing, HintNegative},
		{model.StatusNotDue, HintNegative},
		{"", HintNegative},
		{"anything else", HintNegative},
		// The mapping is exact; a differently-cased value is not done.
		{"Done", HintNegative},
	}
	for _, tt := range tests {
		if got := HintFor(tt.status); got != tt.want {
			t.Errorf("HintFor(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestArtifactName(t *testing.T) {
	date := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		title string
		want  string
	}{
		{"Algebra Homework 3", "Homework_Report_Algebra_Homework_3_2026-03-14.pdf"},
		{"Essay", "Homework_Report_Essay_2026-03-14.pdf"},
		{"  padded title ", "Homework_Report_padded_title_2026-03-14.pdf"},
		{"double  space", "Homework_Report_double__space_2026-03-14.pdf"},
	}
	for _, tt := range tests {
		if got := ArtifactName(tt.title, date, "2006-01-02"); got != tt.want {
			t.Errorf("ArtifactName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}

	// Identical inputs yield identical names.
	a := ArtifactName("Algebra Homework 3", date, "2006-01-02")
	b := ArtifactName("Algebra Homework 3", date, "2006-01-02")
	if a != b {
		t.Errorf("same inputs gave different names: %q vs %q", a, b)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"done", "Done"},
		{"not yet", "Not yet"},
		{"", ""},
		{"X", "X"},
	}
	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildPDF(t *testing.T) {
	svc := NewReportService(nil, "2006-01-02")
	due := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)

	header := ReportHeader{AssignmentTitle: "Algebra Homework 3", DueAt: &due, SchoolFilter: "North"}
	rows := []ReportRow{
		{StudentNumber: "0001", Name: "Alice", School: "North", Status: model.StatusDone},
		{StudentNumber: "0002", Name: "Bob", School: "North", Status: model.StatusMissing},
	}

	doc, err := svc.BuildPDF(header, rows)
	if err != nil {
		t.Fatalf("BuildPDF() error = %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Errorf("document does not start with a PDF header")
	}
}

func TestBuildPDFZeroRows(t *testing.T) {
	svc := NewReportService(nil, "")

	doc, err := svc.BuildPDF(ReportHeader{AssignmentTitle: "Empty Cohort"}, nil)
	if err != nil {
		t.Fatalf("BuildPDF() with zero rows error = %v", err)
	}
	if len(doc) == 0 {
		t.Error("zero-row report produced an empty document")
	}
}
