package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
)

// stubWriter records committed batches and can be told to fail, or to
// block until released so in-flight commits can be observed.
type stubWriter struct {
	mu      sync.Mutex
	batches [][]model.HomeworkStatus
	err     error
	block   chan struct{}
}

func (w *stubWriter) UpsertBatch(rows []model.HomeworkStatus) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	cp := make([]model.HomeworkStatus, len(rows))
	copy(cp, rows)
	w.batches = append(w.batches, cp)
	return nil
}

func (w *stubWriter) lastBatch() []model.HomeworkStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.batches) == 0 {
		return nil
	}
	return w.batches[len(w.batches)-1]
}

func newTestTracker(w StatusWriter) *TrackerService {
	return NewTrackerService(nil, nil, nil, w, nil)
}

func TestStageValidatesStatus(t *testing.T) {
	svc := newTestTracker(&stubWriter{})
	key := StatusKey{StudentID: 1, AssignmentID: "a1"}

	for _, s := range []string{model.StatusDone, model.StatusIncomplete, model.StatusMissing} {
		if err := svc.Stage(7, key, s); err != nil {
			t.Errorf("Stage(%q) = %v, want nil", s, err)
		}
	}
	for _, s := range []string{"", "Done", model.StatusNotDue, "finished"} {
		if err := svc.Stage(7, key, s); !errors.Is(err, util.ErrUnknownStatus) {
			t.Errorf("Stage(%q) = %v, want ErrUnknownStatus", s, err)
		}
	}
}

func TestStageAndDiscard(t *testing.T) {
	svc := newTestTracker(&stubWriter{})

	svc.Stage(7, StatusKey{StudentID: 1, AssignmentID: "a1"}, model.StatusDone)
	svc.Stage(7, StatusKey{StudentID: 2, AssignmentID: "a1"}, model.StatusMissing)
	// Restaging the same cell replaces the pending value, not adds.
	svc.Stage(7, StatusKey{StudentID: 1, AssignmentID: "a1"}, model.StatusIncomplete)

	if n := svc.PendingCount(7); n != 2 {
		t.Fatalf("PendingCount = %d, want 2", n)
	}
	if got := svc.overlayCopy(7)[StatusKey{StudentID: 1, AssignmentID: "a1"}]; got != model.StatusIncomplete {
		t.Errorf("restaged cell = %q, want %q", got, model.StatusIncomplete)
	}

	svc.Discard(7)
	if n := svc.PendingCount(7); n != 0 {
		t.Errorf("PendingCount after Discard = %d, want 0", n)
	}
}

func TestSessionsAreIsolatedPerOperator(t *testing.T) {
	svc := newTestTracker(&stubWriter{})
	svc.Stage(7, StatusKey{StudentID: 1, AssignmentID: "a1"}, model.StatusDone)

	if n := svc.PendingCount(8); n != 0 {
		t.Errorf("operator 8 sees %d pending edits from operator 7", n)
	}
}

func TestCommitWritesExactlyStagedKeys(t *testing.T) {
	w := &stubWriter{}
	svc := newTestTracker(w)

	keys := []StatusKey{
		{StudentID: 1, AssignmentID: "a1"},
		{StudentID: 2, AssignmentID: "a1"},
		{StudentID: 1, AssignmentID: "a2"},
	}
	for _, k := range keys {
		svc.Stage(7, k, model.StatusDone)
	}

	n, err := svc.Commit(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if n != len(keys) {
		t.Errorf("Commit() wrote %d rows, want %d", n, len(keys))
	}

	batch := w.lastBatch()
	if len(batch) != len(keys) {
		t.Fatalf("batch has %d rows, want %d", len(batch), len(keys))
	}
	seen := make(map[StatusKey]bool, len(batch))
	for _, row := range batch {
		seen[StatusKey{StudentID: row.StudentID, AssignmentID: row.AssignmentID}] = true
		if row.Status != model.StatusDone {
			t.Errorf("row %+v status = %q, want %q", row, row.Status, model.StatusDone)
		}
	}
	for _, k := range keys {
		if !seen[k] {
			t.Errorf("staged key %+v missing from committed batch", k)
		}
	}

	// Success clears the session back to clean.
	if n := svc.PendingCount(7); n != 0 {
		t.Errorf("PendingCount after commit = %d, want 0", n)
	}
	if _, err := svc.Commit(context.Background(), 7, ""); !errors.Is(err, util.ErrEmptyOverlay) {
		t.Errorf("commit of empty overlay = %v, want ErrEmptyOverlay", err)
	}
}

func TestCommitFailureKeepsOverlay(t *testing.T) {
	w := &stubWriter{err: errors.New("store unavailable")}
	svc := newTestTracker(w)

	key := StatusKey{StudentID: 1, AssignmentID: "a1"}
	svc.Stage(7, key, model.StatusDone)

	if _, err := svc.Commit(context.Background(), 7, ""); err == nil {
		t.Fatal("Commit() succeeded, want write error")
	}

	// Edits survive the failure and the next commit retries them.
	if n := svc.PendingCount(7); n != 1 {
		t.Fatalf("PendingCount after failed commit = %d, want 1", n)
	}

	w.mu.Lock()
	w.err = nil
	w.mu.Unlock()
	n, err := svc.Commit(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("retry Commit() error = %v", err)
	}
	if n != 1 {
		t.Errorf("retry wrote %d rows, want 1", n)
	}
}

func TestCommitWhileCommittingRejected(t *testing.T) {
	w := &stubWriter{block: make(chan struct{})}
	svc := newTestTracker(w)
	svc.Stage(7, StatusKey{StudentID: 1, AssignmentID: "a1"}, model.StatusDone)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Commit(context.Background(), 7, "")
		firstDone <- err
	}()

	// Wait until the first commit is in flight (state left the locked
	// section), then both a second commit and a stage must be rejected.
	for svcState(svc, 7) != stateCommitting {
		time.Sleep(time.Millisecond)
	}

	if _, err := svc.Commit(context.Background(), 7, ""); !errors.Is(err, util.ErrCommitInFlight) {
		t.Errorf("concurrent Commit() = %v, want ErrCommitInFlight", err)
	}
	if err := svc.Stage(7, StatusKey{StudentID: 2, AssignmentID: "a1"}, model.StatusDone); !errors.Is(err, util.ErrCommitInFlight) {
		t.Errorf("Stage during commit = %v, want ErrCommitInFlight", err)
	}

	close(w.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first Commit() error = %v", err)
	}
	if len(w.lastBatch()) != 1 {
		t.Errorf("first commit wrote %d rows, want 1", len(w.lastBatch()))
	}
}

func svcState(svc *TrackerService, operatorID uint) sessionState {
	sess := svc.session(operatorID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state
}
