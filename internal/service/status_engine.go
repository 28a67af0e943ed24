package service

import (
	"time"

	"lms_backend/internal/model"
)

// StatusKey addresses one (student, assignment) cell. A composite value
// type with equality semantics, so ids containing separator characters can
// never collide the way concatenated string paths would.
type StatusKey struct {
	StudentID    uint
	AssignmentID string
}

// Overlay holds pending, uncommitted status edits for one editing session.
type Overlay map[StatusKey]string

// EffectiveStatus computes the displayed status for one cell.
//
// An assignment whose due time is still ahead is "not yet" no matter what
// the store or the overlay says. Once due (or when there is no due time at
// all), the overlay wins over the stored value, and a missing stored value
// means "missing". Stored values outside the known set pass through
// verbatim; only model.IsDone decides completion.
func EffectiveStatus(now time.Time, dueAt *time.Time, stored string, storedOK bool, overlay string, overlayOK bool) string {
	if dueAt != nil && now.Before(*dueAt) {
		return model.StatusNotDue
	}
	if overlayOK {
		return overlay
	}
	if storedOK {
		return stored
	}
	return model.StatusMissing
}

// Reconcile computes the full effective-status matrix for a snapshot.
// Pure and re-entrant: safe to call on every snapshot delivery or input
// event, with partial data (nil maps and slices are empty collections).
func Reconcile(now time.Time, catalog []*model.Assignment, students []*model.User, stored map[StatusKey]string, overlay Overlay) map[StatusKey]string {
	effective := make(map[StatusKey]string, len(catalog)*len(students))
	for _, s := range students {
		for _, a := range catalog {
			key := StatusKey{StudentID: s.ID, AssignmentID: a.ID}
			st, stOK := stored[key]
			ov, ovOK := overlay[key]
			effective[key] = EffectiveStatus(now, a.DueAt, st, stOK, ov, ovOK)
		}
	}
	return effective
}

// StoredIndex flattens durable records into the map form Reconcile wants.
func StoredIndex(records []*model.HomeworkStatus) map[StatusKey]string {
	idx := make(map[StatusKey]string, len(records))
	for _, rec := range records {
		idx[StatusKey{StudentID: rec.StudentID, AssignmentID: rec.AssignmentID}] = rec.Status
	}
	return idx
}
