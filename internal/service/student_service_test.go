package service

import "testing"

func TestNextStudentNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty cohort starts at 0001", nil, "0001"},
		{"increments the maximum", []string{"0001", "0002", "0003"}, "0004"},
		{"gaps do not get refilled", []string{"0001", "0007"}, "0008"},
		{"order does not matter", []string{"0012", "0003"}, "0013"},
		{"unparseable numbers are skipped", []string{"0002", "legacy-7", ""}, "0003"},
		{"grows past four digits", []string{"9999"}, "10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStudentNumber(tt.existing); got != tt.want {
				t.Errorf("NextStudentNumber(%v) = %q, want %q", tt.existing, got, tt.want)
			}
		})
	}
}
