package service

import (
	"testing"
	"time"

	"lms_backend/internal/model"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-48 * time.Hour)

	tests := []struct {
		name      string
		dueAt     *time.Time
		stored    string
		storedOK  bool
		overlay   string
		overlayOK bool
		want      string
	}{
		{
			name:  "future due wins over nothing",
			dueAt: &future,
			want:  model.StatusNotDue,
		},
		{
			name:     "future due wins over stored done",
			dueAt:    &future,
			stored:   model.StatusDone,
			storedOK: true,
			want:     model.StatusNotDue,
		},
		{
			name:      "future due wins over overlay",
			dueAt:     &future,
			overlay:   model.StatusDone,
			overlayOK: true,
			want:      model.StatusNotDue,
		},
		{
			name:      "overlay wins over stored once due",
			dueAt:     &past,
			stored:    model.StatusMissing,
			storedOK:  true,
			overlay:   model.StatusDone,
			overlayOK: true,
			want:      model.StatusDone,
		},
		{
			name:     "stored value without overlay",
			dueAt:    &past,
			stored:   model.StatusIncomplete,
			storedOK: true,
			want:     model.StatusIncomplete,
		},
		{
			name:  "no record at all means missing",
			dueAt: &past,
			want:  model.StatusMissing,
		},
		{
			name: "nil due date behaves as already due",
			want: model.StatusMissing,
		},
		{
			name:     "unknown stored value passes through verbatim",
			dueAt:    &past,
			stored:   "Done",
			storedOK: true,
			want:     "Done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveStatus(now, tt.dueAt, tt.stored, tt.storedOK, tt.overlay, tt.overlayOK)
			if got != tt.want {
				t.Errorf("EffectiveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEffectiveStatusDueBoundary(t *testing.T) {
	due := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)

	// Exactly at the due instant the assignment counts as due.
	if got := EffectiveStatus(due, &due, "", false, "", false); got != model.StatusMissing {
		t.Errorf("at due instant: got %q, want %q", got, model.StatusMissing)
	}
	justBefore := due.Add(-time.Second)
	if got := EffectiveStatus(justBefore, &due, "", false, "", false); got != model.StatusNotDue {
		t.Errorf("just before due: got %q, want %q", got, model.StatusNotDue)
	}
}

func TestIsDoneExactMatch(t *testing.T) {
	for _, s := range []string{"Done", "DONE", " done", "done "} {
		if model.IsDone(s) {
			t.Errorf("IsDone(%q) = true, want false", s)
		}
	}
	if !model.IsDone(model.StatusDone) {
		t.Error("IsDone(done) = false, want true")
	}
}

func TestReconcile(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)

	catalog := []*model.Assignment{
		newAssignment("a1", "Algebra 1", nil),
		newAssignment("a2", "Algebra 2", &future),
	}
	students := []*model.User{
		newStudent(1, "0001", "Ada", "North"),
		newStudent(2, "0002", "Ben", "South"),
	}
	stored := map[StatusKey]string{
		{StudentID: 1, AssignmentID: "a1"}: model.StatusDone,
		{StudentID: 2, AssignmentID: "a2"}: model.StatusDone,
	}
	overlay := Overlay{
		{StudentID: 2, AssignmentID: "a1"}: model.StatusIncomplete,
	}

	got := Reconcile(now, catalog, students, stored, overlay)

	if len(got) != len(catalog)*len(students) {
		t.Fatalf("matrix size = %d, want %d", len(got), len(catalog)*len(students))
	}

	want := map[StatusKey]string{
		{StudentID: 1, AssignmentID: "a1"}: model.StatusDone,       // stored
		{StudentID: 1, AssignmentID: "a2"}: model.StatusNotDue,     // future due
		{StudentID: 2, AssignmentID: "a1"}: model.StatusIncomplete, // overlay
		{StudentID: 2, AssignmentID: "a2"}: model.StatusNotDue,     // future due beats stored done
	}
	for key, status := range want {
		if got[key] != status {
			t.Errorf("cell %+v = %q, want %q", key, got[key], status)
		}
	}
}

func TestReconcileEmptyInputs(t *testing.T) {
	now := time.Now()
	if got := Reconcile(now, nil, nil, nil, nil); len(got) != 0 {
		t.Errorf("empty inputs: got %d cells, want 0", len(got))
	}

	// Students without a catalog produce no cells, and vice versa.
	students := []*model.User{newStudent(1, "0001", "Ada", "North")}
	if got := Reconcile(now, nil, students, nil, nil); len(got) != 0 {
		t.Errorf("no catalog: got %d cells, want 0", len(got))
	}
}

func TestStatusKeyNoCollision(t *testing.T) {
	// Composite keys must keep ids apart even when one id textually
	// contains what a concatenated path separator would produce.
	stored := map[StatusKey]string{
		{StudentID: 1, AssignmentID: "1/a"}: model.StatusDone,
		{StudentID: 11, AssignmentID: "a"}:  model.StatusMissing,
	}
	idx := StoredIndex([]*model.HomeworkStatus{
		{StudentID: 1, AssignmentID: "1/a", Status: model.StatusDone},
		{StudentID: 11, AssignmentID: "a", Status: model.StatusMissing},
	})
	for key, want := range stored {
		if idx[key] != want {
			t.Errorf("StoredIndex[%+v] = %q, want %q", key, idx[key], want)
		}
	}
}

func newAssignment(id, title string, dueAt *time.Time) *model.Assignment {
	a := &model.Assignment{
		CourseID: "c1",
		Title:    title,
		DueAt:    dueAt,
	}
	a.ID = id
	return a
}

func newStudent(id uint, number, name, school string) *model.User {
	u := &model.User{
		Name:          name,
		Role:          model.Student,
		StudentNumber: number,
		School:        school,
		CourseID:      "c1",
	}
	u.ID = id
	return u
}
