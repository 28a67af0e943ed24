package service

import (
	"sort"
	"strings"

	"lms_backend/internal/model"
)

// RosterRow is one student's line in the tracker view for the selected
// assignment.
type RosterRow struct {
	StudentID     uint   `json:"studentId"`
	StudentNumber string `json:"studentNumber"`
	Name          string `json:"name"`
	School        string `json:"school"`
	CourseID      string `json:"courseId"`
	Status        string `json:"status"`
	Done          bool   `json:"done"`
}

// RosterFilter narrows the reconciled roster. "all" (or empty) selectors
// match everything; Query is a case-insensitive substring match against
// name and student number.
type RosterFilter struct {
	Course string
	School string
	Query  string
}

type RosterSort struct {
	Key  string // name | number | school | status | done
	Desc bool
}

func matchAll(selector string) bool {
	return selector == "" || selector == "all"
}

// FilterRoster returns the matching rows in their input order. An
// unmatched filter yields an empty list, never an error.
func FilterRoster(rows []RosterRow, f RosterFilter) []RosterRow {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]RosterRow, 0, len(rows))
	for _, row := range rows {
		if !matchAll(f.Course) && row.CourseID != f.Course {
			continue
		}
		if !matchAll(f.School) && row.School != f.School {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(row.Name), query) &&
			!strings.Contains(strings.ToLower(row.StudentNumber), query) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// SortRoster orders rows by the chosen key. The sort is stable: rows with
// equal keys keep their input order. Text keys compare case-insensitively;
// the done key compares numerically (false < true).
func SortRoster(rows []RosterRow, s RosterSort) {
	if s.Key == "" {
		return
	}

	less := func(a, b RosterRow) bool {
		switch s.Key {
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "number":
			return strings.ToLower(a.StudentNumber) < strings.ToLower(b.StudentNumber)
		case "school":
			return strings.ToLower(a.School) < strings.ToLower(b.School)
		case "status":
			return strings.ToLower(a.Status) < strings.ToLower(b.Status)
		case "done":
			return boolRank(a.Done) < boolRank(b.Done)
		default:
			return false
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if s.Desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// buildRows projects students plus the effective matrix onto view rows for
// one assignment. Pure projection, no additional computation.
func buildRows(students []*model.User, assignmentID string, effective map[StatusKey]string) []RosterRow {
	rows := make([]RosterRow, 0, len(students))
	for _, s := range students {
		status := effective[StatusKey{StudentID: s.ID, AssignmentID: assignmentID}]
		rows = append(rows, RosterRow{
			StudentID:     s.ID,
			StudentNumber: s.StudentNumber,
			Name:          s.Name,
			School:        s.School,
			CourseID:      s.CourseID,
			Status:        status,
			Done:          model.IsDone(status),
		})
	}
	return rows
}
