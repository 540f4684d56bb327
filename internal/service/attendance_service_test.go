package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/models"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
)

type attendanceUpstreamStub struct {
	mu          sync.Mutex
	session     *models.ClassSession
	enrollments []models.Enrollment
	records     []models.AttendanceRecord
	markErr     map[string]error
	marked      []string
}

func (s *attendanceUpstreamStub) GetSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error) {
	return s.session, nil
}

func (s *attendanceUpstreamStub) CheckinSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error) {
	out := *s.session
	out.Status = models.SessionOngoing
	return &out, nil
}

func (s *attendanceUpstreamStub) CheckoutSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error) {
	out := *s.session
	out.Status = models.SessionCompleted
	return &out, nil
}

func (s *attendanceUpstreamStub) ListSessionAttendances(ctx context.Context, token, sessionID string) ([]models.AttendanceRecord, error) {
	return s.records, nil
}

func (s *attendanceUpstreamStub) MarkSessionAttendance(ctx context.Context, token, sessionID, studentID string, status models.AttendanceStatus, isManual bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.markErr[studentID]; ok {
		return err
	}
	s.marked = append(s.marked, studentID)
	return nil
}

func (s *attendanceUpstreamStub) ListEnrollments(ctx context.Context, token, batchID string) ([]models.Enrollment, error) {
	return s.enrollments, nil
}

func testAttendanceStub() *attendanceUpstreamStub {
	return &attendanceUpstreamStub{
		session: &models.ClassSession{ID: "sess-1", BatchID: "b-1", Status: models.SessionOngoing},
		enrollments: []models.Enrollment{
			{StudentID: "s-1", StudentName: "Asha"},
			{StudentID: "s-2", StudentName: "Badri"},
			{StudentID: "s-3", StudentName: "Chitra"},
		},
		records: []models.AttendanceRecord{
			{SessionID: "sess-1", StudentID: "s-2", Status: models.AttendancePresent},
		},
	}
}

func TestAttendanceViewDefaultsAbsent(t *testing.T) {
	stub := testAttendanceStub()
	svc := NewAttendanceService(stub, testCache(newMemoryCacheStore()), 2, nil)

	resp, err := svc.View(context.Background(), "tok", "sess-1")
	require.NoError(t, err)
	require.Len(t, resp.Rows, 3)

	byID := map[string]models.AttendanceStatus{}
	for _, row := range resp.Rows {
		byID[row.StudentID] = row.Status
	}
	assert.Equal(t, models.AttendanceAbsent, byID["s-1"])
	assert.Equal(t, models.AttendancePresent, byID["s-2"])
	assert.Equal(t, models.AttendanceAbsent, byID["s-3"])
}

func TestAttendanceMarkRejectsBadPairing(t *testing.T) {
	stub := testAttendanceStub()
	svc := NewAttendanceService(stub, testCache(newMemoryCacheStore()), 2, nil)

	err := svc.Mark(context.Background(), "tok", "sess-1", dto.MarkAttendanceRequest{
		StudentID: "s-1",
		Status:    models.AttendancePresent,
		IsManual:  true,
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Empty(t, stub.marked, "invalid pairing must not reach upstream")
}

func TestAttendanceMarkInvalidatesSessionCache(t *testing.T) {
	store := newMemoryCacheStore()
	stub := testAttendanceStub()
	svc := NewAttendanceService(stub, testCache(store), 2, nil)

	// prime the cache through a view read
	_, err := svc.View(context.Background(), "tok", "sess-1")
	require.NoError(t, err)
	assert.Contains(t, store.entries, "session-attendances:sess-1")

	err = svc.Mark(context.Background(), "tok", "sess-1", dto.MarkAttendanceRequest{
		StudentID: "s-1",
		Status:    models.AttendanceManualPresent,
		IsManual:  true,
	})
	require.NoError(t, err)
	assert.Contains(t, store.deleted, "session-attendances:sess-1")
}

func TestAttendanceSaveAllResubmitsEveryStudent(t *testing.T) {
	stub := testAttendanceStub()
	svc := NewAttendanceService(stub, testCache(newMemoryCacheStore()), 2, nil)

	resp, err := svc.SaveAll(context.Background(), "tok", "sess-1", dto.SaveAttendanceRequest{
		Marks: []dto.MarkAttendanceRequest{
			{StudentID: "s-1", Status: models.AttendancePresent},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Failures)
	assert.Equal(t, 3, resp.Saved)
	assert.Len(t, stub.marked, 3, "unmodified students are resubmitted too")
}

func TestAttendanceSaveAllCollectsIndependentFailures(t *testing.T) {
	stub := testAttendanceStub()
	stub.markErr = map[string]error{"s-2": appErrors.ErrUpstream}
	svc := NewAttendanceService(stub, testCache(newMemoryCacheStore()), 2, nil)

	resp, err := svc.SaveAll(context.Background(), "tok", "sess-1", dto.SaveAttendanceRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "s-2", resp.Failures[0].StudentID)
	assert.Equal(t, 2, resp.Saved)
	assert.Len(t, stub.marked, 2, "other students still saved")
}

func TestAttendanceSaveAllRejectsInvalidSheet(t *testing.T) {
	stub := testAttendanceStub()
	svc := NewAttendanceService(stub, testCache(newMemoryCacheStore()), 2, nil)

	_, err := svc.SaveAll(context.Background(), "tok", "sess-1", dto.SaveAttendanceRequest{
		Marks: []dto.MarkAttendanceRequest{
			{StudentID: "s-1", Status: "LATE"},
		},
	})
	require.Error(t, err)
	assert.Empty(t, stub.marked)
}
