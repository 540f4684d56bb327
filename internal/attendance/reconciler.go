package attendance

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/monikajha100/prime-admin-gateway/internal/models"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
)

// Marker issues one remote attendance mark for a student in a session.
type Marker interface {
	MarkAttendance(ctx context.Context, sessionID, studentID string, status models.AttendanceStatus, isManual bool) error
}

// Options tunes reconciler behaviour.
type Options struct {
	// RollbackOnFailure reverts the optimistic status when the remote mark
	// fails. Default false: the chosen status stays visible and may diverge
	// from the server until the next full reconciliation.
	RollbackOnFailure bool
	// SaveConcurrency bounds parallel marks during SaveAll.
	SaveConcurrency int
	Logger          *zap.Logger
}

// Reconciler holds the per-student attendance decision for one session. It is
// rebuilt from the two source reads (roster, existing records) every time the
// attendance view opens, and discarded when it closes.
type Reconciler struct {
	sessionID string
	marker    Marker
	opts      Options

	mu     sync.Mutex
	roster []models.Enrollment
	status map[string]models.AttendanceStatus
}

// NewReconciler builds a reconciler for one session.
func NewReconciler(sessionID string, marker Marker, opts Options) *Reconciler {
	if opts.SaveConcurrency <= 0 {
		opts.SaveConcurrency = 4
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Reconciler{
		sessionID: sessionID,
		marker:    marker,
		opts:      opts,
		status:    make(map[string]models.AttendanceStatus),
	}
}

// Reconcile merges server-reported records with the enrolled roster. A server
// record wins where present; every enrolled student without one defaults to
// ABSENT. Deterministic for identical inputs.
func Reconcile(enrollments []models.Enrollment, records []models.AttendanceRecord) map[string]models.AttendanceStatus {
	recorded := make(map[string]models.AttendanceStatus, len(records))
	for _, rec := range records {
		recorded[rec.StudentID] = rec.Status
	}

	merged := make(map[string]models.AttendanceStatus, len(enrollments))
	for _, enr := range enrollments {
		if status, ok := recorded[enr.StudentID]; ok {
			merged[enr.StudentID] = status
			continue
		}
		merged[enr.StudentID] = models.AttendanceAbsent
	}
	return merged
}

// Load replaces the reconciler state from fresh source reads.
func (r *Reconciler) Load(enrollments []models.Enrollment, records []models.AttendanceRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roster = append([]models.Enrollment(nil), enrollments...)
	r.status = Reconcile(enrollments, records)
}

// Status returns the current decision for one student, defaulting ABSENT for
// enrolled students that have not been touched yet.
func (r *Reconciler) Status(studentID string) models.AttendanceStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, ok := r.status[studentID]; ok {
		return status
	}
	return models.AttendanceAbsent
}

// Snapshot copies the full status map.
func (r *Reconciler) Snapshot() map[string]models.AttendanceStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]models.AttendanceStatus, len(r.status))
	for id, status := range r.status {
		out[id] = status
	}
	return out
}

// Stage overwrites the local decision for one student without issuing a
// remote call. Used to apply a client-submitted sheet ahead of SaveAll.
func (r *Reconciler) Stage(studentID string, status models.AttendanceStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status[studentID] = status
}

// SetStatus applies an optimistic local update and issues exactly one remote
// mark call. isManual must be true precisely when the status is
// MANUAL_PRESENT; any other pairing is rejected before anything is sent.
func (r *Reconciler) SetStatus(ctx context.Context, studentID string, status models.AttendanceStatus, isManual bool) error {
	if !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}
	if isManual != (status == models.AttendanceManualPresent) {
		return appErrors.Clone(appErrors.ErrValidation, "isManual must be set if and only if status is MANUAL_PRESENT")
	}

	r.mu.Lock()
	previous, hadPrevious := r.status[studentID]
	r.status[studentID] = status
	r.mu.Unlock()

	err := r.marker.MarkAttendance(ctx, r.sessionID, studentID, status, isManual)
	if err == nil {
		return nil
	}

	if r.opts.RollbackOnFailure {
		r.mu.Lock()
		if hadPrevious {
			r.status[studentID] = previous
		} else {
			delete(r.status, studentID)
		}
		r.mu.Unlock()
	} else {
		r.opts.Logger.Warn("attendance mark failed, keeping optimistic status",
			zap.String("session_id", r.sessionID),
			zap.String("student_id", studentID),
			zap.Error(err))
	}
	return err
}

// MarkFailure reports one failed mark from a bulk save.
type MarkFailure struct {
	StudentID string `json:"student_id"`
	Message   string `json:"message"`
}

// SaveAll re-issues a mark for every enrolled student using whatever status
// currently sits in the map (ABSENT when still unset). This is a full bulk
// resubmission, not a diff; unmodified students are resubmitted deliberately.
// Per-student calls run concurrently and fail independently.
func (r *Reconciler) SaveAll(ctx context.Context) []MarkFailure {
	r.mu.Lock()
	roster := append([]models.Enrollment(nil), r.roster...)
	r.mu.Unlock()

	sem := make(chan struct{}, r.opts.SaveConcurrency)
	var wg sync.WaitGroup
	var failMu sync.Mutex
	var failures []MarkFailure

	for _, enr := range roster {
		wg.Add(1)
		sem <- struct{}{}
		go func(studentID string) {
			defer wg.Done()
			defer func() { <-sem }()

			status := r.Status(studentID)
			isManual := status == models.AttendanceManualPresent
			if err := r.SetStatus(ctx, studentID, status, isManual); err != nil {
				failMu.Lock()
				failures = append(failures, MarkFailure{StudentID: studentID, Message: appErrors.FromError(err).Message})
				failMu.Unlock()
			}
		}(enr.StudentID)
	}
	wg.Wait()
	return failures
}
