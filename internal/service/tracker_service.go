package service

import (
	"context"
	"sync"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/snapshot"
)

// StatusWriter is the durable sink the commit stage flushes to. One call,
// one atomic batch.
type StatusWriter interface {
	UpsertBatch(rows []model.HomeworkStatus) error
}

type sessionState int

const (
	stateClean sessionState = iota
	stateDirty
	stateCommitting
)

// overlaySession is one operator's batch-edit session: the pending status
// overrides plus the commit state machine
// (Clean → Dirty → Committing → Clean | Dirty).
type overlaySession struct {
	mu      sync.Mutex
	state   sessionState
	entries Overlay
}

// TrackerService is the homework tracking engine: it reconciles catalogs,
// durable records and overlay edits into effective-status views, and
// flushes overlays to the durable store.
type TrackerService struct {
	UserRepo   *repository.UserRepository
	StatusRepo *repository.StatusRepository
	Catalog    *CatalogService
	Writer     StatusWriter
	Hub        *snapshot.Hub

	mu       sync.Mutex
	sessions map[uint]*overlaySession // keyed by operator user id
}

func NewTrackerService(
	userRepo *repository.UserRepository,
	statusRepo *repository.StatusRepository,
	catalog *CatalogService,
	writer StatusWriter,
	hub *snapshot.Hub,
) *TrackerService {
	return &TrackerService{
		UserRepo:   userRepo,
		StatusRepo: statusRepo,
		Catalog:    catalog,
		Writer:     writer,
		Hub:        hub,
		sessions:   make(map[uint]*overlaySession),
	}
}

func (s *TrackerService) session(operatorID uint) *overlaySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[operatorID]
	if !ok {
		sess = &overlaySession{entries: make(Overlay)}
		s.sessions[operatorID] = sess
	}
	return sess
}

// Stage records one pending status override. Only known status values may
// be staged; anything else is rejected before it can reach the store.
func (s *TrackerService) Stage(operatorID uint, key StatusKey, status string) error {
	if !model.KnownStatus(status) {
		return util.ErrUnknownStatus
	}
	sess := s.session(operatorID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.state == stateCommitting {
		return util.ErrCommitInFlight
	}
	sess.entries[key] = status
	sess.state = stateDirty
	return nil
}

// Discard drops every pending edit, as when the operator navigates away.
func (s *TrackerService) Discard(operatorID uint) {
	sess := s.session(operatorID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.state == stateCommitting {
		return
	}
	sess.entries = make(Overlay)
	sess.state = stateClean
}

// overlayCopy returns a snapshot of the operator's pending edits.
func (s *TrackerService) overlayCopy(operatorID uint) Overlay {
	sess := s.session(operatorID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	cp := make(Overlay, len(sess.entries))
	for k, v := range sess.entries {
		cp[k] = v
	}
	return cp
}

// PendingCount reports how many edits are staged.
func (s *TrackerService) PendingCount(operatorID uint) int {
	sess := s.session(operatorID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return len(sess.entries)
}

// Commit flushes the overlay as one atomic batch covering exactly the
// staged keys. On success the overlay is cleared; on failure it is left
// intact so the operator's edits survive and can be re-committed. A commit
// while one is in flight is rejected, never queued.
func (s *TrackerService) Commit(ctx context.Context, operatorID uint, courseID string) (int, error) {
	sess := s.session(operatorID)

	sess.mu.Lock()
	if sess.state == stateCommitting {
		sess.mu.Unlock()
		return 0, util.ErrCommitInFlight
	}
	if len(sess.entries) == 0 {
		sess.mu.Unlock()
		return 0, util.ErrEmptyOverlay
	}
	sess.state = stateCommitting
	rows := make([]model.HomeworkStatus, 0, len(sess.entries))
	for key, status := range sess.entries {
		rows = append(rows, model.HomeworkStatus{
			StudentID:    key.StudentID,
			AssignmentID: key.AssignmentID,
			Status:       status,
		})
	}
	sess.mu.Unlock()

	err := s.Writer.UpsertBatch(rows)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err != nil {
		sess.state = stateDirty
		monitoring.CommitCounter.WithLabelValues("failure").Inc()
		return 0, err
	}
	sess.entries = make(Overlay)
	sess.state = stateClean
	monitoring.CommitCounter.WithLabelValues("success").Inc()

	if s.Hub != nil && courseID != "" {
		s.Hub.NotifyChanged(ctx, courseID, snapshot.KindRoster)
	}
	return len(rows), nil
}

// View assembles the tracker screen: the filtered, sorted roster with each
// student's effective status for the selected assignment at "now", with the
// operator's own pending edits applied on top. Operators never see each
// other's overlays.
func (s *TrackerService) View(now time.Time, operatorID uint, assignmentID string, filter RosterFilter, order RosterSort) ([]RosterRow, *model.Assignment, error) {
	assignment, err := s.Catalog.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, nil, err
	}

	students, err := s.UserRepo.ListStudents(filter.Course)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uint, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	records, err := s.StatusRepo.FindByStudents(ids)
	if err != nil {
		return nil, nil, err
	}

	overlay := s.overlayCopy(operatorID)
	effective := Reconcile(now, []*model.Assignment{assignment}, students, StoredIndex(records), overlay)

	rows := buildRows(students, assignment.ID, effective)
	rows = FilterRoster(rows, filter)
	SortRoster(rows, order)
	return rows, assignment, nil
}

// StudentStatus is one assignment's effective status in a student's own
// homework view.
type StudentStatus struct {
	AssignmentID string     `json:"assignmentId"`
	Title        string     `json:"title"`
	DueAt        *time.Time `json:"dueAt,omitempty"`
	Status       string     `json:"status"`
	Done         bool       `json:"done"`
}

// StudentStatuses reconciles one student's own homework against their
// course catalog. No overlay is involved: students see durable state only.
func (s *TrackerService) StudentStatuses(now time.Time, studentID uint) ([]StudentStatus, error) {
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if student.CourseID == "" {
		return []StudentStatus{}, nil
	}

	catalog, err := s.Catalog.Snapshot(student.CourseID)
	if err != nil {
		return nil, err
	}

	records, err := s.StatusRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	effective := Reconcile(now, catalog, []*model.User{student}, StoredIndex(records), nil)

	out := make([]StudentStatus, 0, len(catalog))
	for _, a := range catalog {
		status := effective[StatusKey{StudentID: studentID, AssignmentID: a.ID}]
		out = append(out, StudentStatus{
			AssignmentID: a.ID,
			Title:        a.Title,
			DueAt:        a.DueAt,
			Status:       status,
			Done:         model.IsDone(status),
		})
	}
	return out, nil
}
