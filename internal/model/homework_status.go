package model

// Stored homework status values. Values outside this set can pre-exist in
// the database (legacy imports); they are displayed verbatim but only an
// exact "done" ever counts as complete. The API rejects anything else at
// write time, so the set cannot grow from here.
const (
	StatusDone       = "done"
	StatusIncomplete = "incomplete"
	StatusMissing    = "missing"

	// StatusNotDue is derived only, never stored.
	StatusNotDue = "not yet"
)

// KnownStatus reports whether s may be written to the durable store.
func KnownStatus(s string) bool {
	return s == StatusDone || s == StatusIncomplete || s == StatusMissing
}

// IsDone is the completion check used by every downstream consumer.
// Deliberately case-sensitive: a legacy "Done" renders but does not count.
func IsDone(s string) bool {
	return s == StatusDone
}

// HomeworkStatus is the durable per-(student, assignment) record. Absence
// of a row means "missing" once the assignment is due.
// swagger:model HomeworkStatus
type HomeworkStatus struct {
	BaseModel
	StudentID    uint   `gorm:"uniqueIndex:idx_student_assignment;not null" json:"studentId"`
	AssignmentID string `gorm:"uniqueIndex:idx_student_assignment;size:36;not null" json:"assignmentId"`
	Status       string `gorm:"size:20;not null" json:"status"`
}

func (HomeworkStatus) TableName() string {
	return "homework_statuses"
}
