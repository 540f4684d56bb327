package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/monikajha100/prime-admin-gateway/internal/attendance"
	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/models"
	"github.com/monikajha100/prime-admin-gateway/internal/repository"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
)

type attendanceUpstream interface {
	GetSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error)
	CheckinSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error)
	CheckoutSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error)
	ListSessionAttendances(ctx context.Context, token, sessionID string) ([]models.AttendanceRecord, error)
	MarkSessionAttendance(ctx context.Context, token, sessionID, studentID string, status models.AttendanceStatus, isManual bool) error
	ListEnrollments(ctx context.Context, token, batchID string) ([]models.Enrollment, error)
}

// AttendanceService drives the class-session attendance view: check-in and
// check-out, the reconciled roster, single marks and full bulk saves.
type AttendanceService struct {
	upstream    attendanceUpstream
	cache       *CacheService
	logger      *zap.Logger
	concurrency int
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(up attendanceUpstream, cache *CacheService, concurrency int, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &AttendanceService{upstream: up, cache: cache, logger: logger, concurrency: concurrency}
}

// Checkin opens a session for attendance marking.
func (s *AttendanceService) Checkin(ctx context.Context, token, sessionID string) (*models.ClassSession, error) {
	sess, err := s.upstream.CheckinSession(ctx, token, sessionID)
	if err != nil {
		return nil, err
	}
	s.invalidateSession(ctx, sessionID)
	return sess, nil
}

// Checkout completes a session.
func (s *AttendanceService) Checkout(ctx context.Context, token, sessionID string) (*models.ClassSession, error) {
	sess, err := s.upstream.CheckoutSession(ctx, token, sessionID)
	if err != nil {
		return nil, err
	}
	s.invalidateSession(ctx, sessionID)
	return sess, nil
}

// View returns the reconciled roster for a session: the enrolled students of
// the session's batch merged with server-reported marks, every untouched
// student defaulting to ABSENT. Attendance records are served from cache
// when present.
func (s *AttendanceService) View(ctx context.Context, token, sessionID string) (*dto.SessionAttendanceResponse, error) {
	sess, err := s.upstream.GetSession(ctx, token, sessionID)
	if err != nil {
		return nil, err
	}
	enrollments, records, err := s.sources(ctx, token, sess)
	if err != nil {
		return nil, err
	}

	merged := attendance.Reconcile(enrollments, records)
	manual := make(map[string]bool, len(records))
	for _, rec := range records {
		manual[rec.StudentID] = rec.IsManual
	}

	rows := make([]dto.AttendanceRow, 0, len(enrollments))
	for _, enr := range enrollments {
		rows = append(rows, dto.AttendanceRow{
			StudentID:   enr.StudentID,
			StudentName: enr.StudentName,
			Status:      merged[enr.StudentID],
			IsManual:    manual[enr.StudentID],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StudentName < rows[j].StudentName })

	return &dto.SessionAttendanceResponse{Session: *sess, Rows: rows}, nil
}

// Mark issues a single attendance mark. The status must be valid and
// is_manual must pair with MANUAL_PRESENT exactly; the cached attendance
// list for the session is invalidated on success.
func (s *AttendanceService) Mark(ctx context.Context, token, sessionID string, req dto.MarkAttendanceRequest) error {
	if !req.Status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
	}
	if req.IsManual != (req.Status == models.AttendanceManualPresent) {
		return appErrors.Clone(appErrors.ErrValidation, "isManual must be set if and only if status is MANUAL_PRESENT")
	}
	if err := s.upstream.MarkSessionAttendance(ctx, token, sessionID, req.StudentID, req.Status, req.IsManual); err != nil {
		return err
	}
	s.invalidateSession(ctx, sessionID)
	return nil
}

// SaveAll resubmits the complete sheet for the session: the client's marks
// are applied over the reconciled state, then every enrolled student is
// re-marked with bounded concurrency. Failures are collected per student,
// never aborting the rest of the sheet.
func (s *AttendanceService) SaveAll(ctx context.Context, token, sessionID string, req dto.SaveAttendanceRequest) (*dto.SaveAttendanceResponse, error) {
	sess, err := s.upstream.GetSession(ctx, token, sessionID)
	if err != nil {
		return nil, err
	}
	enrollments, records, err := s.sources(ctx, token, sess)
	if err != nil {
		return nil, err
	}

	rec := attendance.NewReconciler(sessionID, &tokenMarker{client: s.upstream, token: token}, attendance.Options{
		SaveConcurrency: s.concurrency,
		Logger:          s.logger,
	})
	rec.Load(enrollments, records)
	for _, mark := range req.Marks {
		if !mark.Status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
		}
		if mark.IsManual != (mark.Status == models.AttendanceManualPresent) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "isManual must be set if and only if status is MANUAL_PRESENT")
		}
		rec.Stage(mark.StudentID, mark.Status)
	}

	failures := rec.SaveAll(ctx)
	s.invalidateSession(ctx, sessionID)

	resp := &dto.SaveAttendanceResponse{Saved: len(enrollments) - len(failures)}
	for _, f := range failures {
		resp.Failures = append(resp.Failures, dto.MarkFailure{StudentID: f.StudentID, Message: f.Message})
	}
	return resp, nil
}

// sources performs the two reads the reconciliation is built from.
func (s *AttendanceService) sources(ctx context.Context, token string, sess *models.ClassSession) ([]models.Enrollment, []models.AttendanceRecord, error) {
	enrollments, err := s.upstream.ListEnrollments(ctx, token, sess.BatchID)
	if err != nil {
		return nil, nil, err
	}

	key := repository.SessionAttendancesKey(sess.ID)
	var records []models.AttendanceRecord
	if hit, _ := s.cache.Get(ctx, key, &records); !hit {
		records, err = s.upstream.ListSessionAttendances(ctx, token, sess.ID)
		if err != nil {
			return nil, nil, err
		}
		_ = s.cache.Set(ctx, key, records, 0)
	}
	return enrollments, records, nil
}

func (s *AttendanceService) invalidateSession(ctx context.Context, sessionID string) {
	if err := s.cache.Invalidate(ctx, repository.SessionAttendancesKey(sessionID)); err != nil {
		s.logger.Warn("attendance cache invalidation failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// tokenMarker adapts the upstream client to the reconciler's Marker, binding
// the caller's token.
type tokenMarker struct {
	client attendanceUpstream
	token  string
}

func (m *tokenMarker) MarkAttendance(ctx context.Context, sessionID, studentID string, status models.AttendanceStatus, isManual bool) error {
	return m.client.MarkSessionAttendance(ctx, m.token, sessionID, studentID, status, isManual)
}
