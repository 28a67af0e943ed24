package service

import (
	"reflect"
	"testing"

	"lms_backend/internal/model"
)

func sampleRoster() []RosterRow {
	return []RosterRow{
		{StudentID: 1, StudentNumber: "0003", Name: "carol", School: "North", CourseID: "c1", Status: model.StatusDone, Done: true},
		{StudentID: 2, StudentNumber: "0001", Name: "Alice", School: "South", CourseID: "c1", Status: model.StatusMissing},
		{StudentID: 3, StudentNumber: "0002", Name: "Bob", School: "North", CourseID: "c2", Status: model.StatusIncomplete},
		{StudentID: 4, StudentNumber: "0004", Name: "alan", School: "South", CourseID: "c1", Status: model.StatusDone, Done: true},
	}
}

func rowIDs(rows []RosterRow) []uint {
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.StudentID)
	}
	return ids
}

func TestFilterRoster(t *testing.T) {
	tests := []struct {
		name   string
		filter RosterFilter
		want   []uint
	}{
		{"no filter keeps input order", RosterFilter{}, []uint{1, 2, 3, 4}},
		{"all selectors keep everything", RosterFilter{Course: "all", School: "all"}, []uint{1, 2, 3, 4}},
		{"course", RosterFilter{Course: "c2"}, []uint{3}},
		{"school", RosterFilter{School: "North"}, []uint{1, 3}},
		{"course and school", RosterFilter{Course: "c1", School: "South"}, []uint{2, 4}},
		{"query on name is case-insensitive", RosterFilter{Query: "AL"}, []uint{2, 4}},
		{"query on student number", RosterFilter{Query: "0002"}, []uint{3}},
		{"query trims whitespace", RosterFilter{Query: "  bob "}, []uint{3}},
		{"no match yields empty, not error", RosterFilter{School: "East"}, []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rowIDs(FilterRoster(sampleRoster(), tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterRoster() order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterRosterIdempotent(t *testing.T) {
	f := RosterFilter{School: "North"}
	once := FilterRoster(sampleRoster(), f)
	twice := FilterRoster(once, f)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering twice changed the result: %v vs %v", once, twice)
	}
}

func TestSortRoster(t *testing.T) {
	tests := []struct {
		name string
		sort RosterSort
		want []uint
	}{
		{"by name folds case", RosterSort{Key: "name"}, []uint{4, 2, 3, 1}},
		{"by name descending", RosterSort{Key: "name", Desc: true}, []uint{1, 3, 2, 4}},
		{"by number", RosterSort{Key: "number"}, []uint{2, 3, 1, 4}},
		{"by done, not done first", RosterSort{Key: "done"}, []uint{2, 3, 1, 4}},
		{"by done descending", RosterSort{Key: "done", Desc: true}, []uint{1, 4, 2, 3}},
		{"empty key keeps input order", RosterSort{}, []uint{1, 2, 3, 4}},
		{"unknown key keeps input order", RosterSort{Key: "bogus"}, []uint{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := sampleRoster()
			SortRoster(rows, tt.sort)
			if got := rowIDs(rows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SortRoster() order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortRosterStable(t *testing.T) {
	// Rows 1 and 3 share a school; the stable sort must keep their
	// input order however often it runs.
	rows := sampleRoster()
	SortRoster(rows, RosterSort{Key: "school"})
	want := []uint{1, 3, 2, 4}
	if got := rowIDs(rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("first sort order = %v, want %v", got, want)
	}
	SortRoster(rows, RosterSort{Key: "school"})
	if got := rowIDs(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("re-sort changed order = %v, want %v", got, want)
	}
}

func TestBuildRows(t *testing.T) {
	students := []*model.User{
		newStudent(1, "0001", "Ada", "North"),
		newStudent(2, "0002", "Ben", "South"),
	}
	effective := map[StatusKey]string{
		{StudentID: 1, AssignmentID: "a1"}: model.StatusDone,
		{StudentID: 2, AssignmentID: "a1"}: model.StatusNotDue,
	}

	rows := buildRows(students, "a1", effective)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if !rows[0].Done {
		t.Errorf("done status should mark the row done: %+v", rows[0])
	}
	if rows[1].Done {
		t.Errorf("not-yet status must not count as done: %+v", rows[1])
	}
	if rows[1].Status != model.StatusNotDue {
		t.Errorf("row status = %q, want %q", rows[1].Status, model.StatusNotDue)
	}
}
