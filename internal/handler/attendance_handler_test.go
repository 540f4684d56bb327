package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/middleware"
	"github.com/monikajha100/prime-admin-gateway/internal/models"
	"github.com/monikajha100/prime-admin-gateway/internal/service"
	"github.com/monikajha100/prime-admin-gateway/internal/session"
	"github.com/monikajha100/prime-admin-gateway/pkg/response"
)

type attendanceClientStub struct {
	marked []string
}

func (s *attendanceClientStub) GetSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error) {
	return &models.ClassSession{ID: sessionID, BatchID: "b-1", Status: models.SessionOngoing}, nil
}

func (s *attendanceClientStub) CheckinSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error) {
	return &models.ClassSession{ID: sessionID, Status: models.SessionOngoing}, nil
}

func (s *attendanceClientStub) CheckoutSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error) {
	return &models.ClassSession{ID: sessionID, Status: models.SessionCompleted}, nil
}

func (s *attendanceClientStub) ListSessionAttendances(ctx context.Context, token, sessionID string) ([]models.AttendanceRecord, error) {
	return nil, nil
}

func (s *attendanceClientStub) MarkSessionAttendance(ctx context.Context, token, sessionID, studentID string, status models.AttendanceStatus, isManual bool) error {
	s.marked = append(s.marked, studentID)
	return nil
}

func (s *attendanceClientStub) ListEnrollments(ctx context.Context, token, batchID string) ([]models.Enrollment, error) {
	return []models.Enrollment{{StudentID: "s-1", StudentName: "Asha"}}, nil
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func withSession(c *gin.Context, role models.UserRole) {
	c.Set(middleware.ContextSessionKey, session.New("tok", models.User{ID: "u-1", Role: role}))
}

func newAttendanceHandler(stub *attendanceClientStub) *AttendanceHandler {
	cache := service.NewCacheService(nil, nil, 0, nil, false)
	svc := service.NewAttendanceService(stub, cache, 2, nil)
	return NewAttendanceHandler(svc)
}

func TestAttendanceHandlerView(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newAttendanceHandler(&attendanceClientStub{})

	c, w := newGinContext(http.MethodGet, "/sessions/sess-1/attendances", nil)
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}
	withSession(c, models.RoleFaculty)

	h.View(c)
	require.Equal(t, http.StatusOK, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Data)
}

func TestAttendanceHandlerMarkRejectsBadPairing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &attendanceClientStub{}
	h := newAttendanceHandler(stub)

	payload, _ := json.Marshal(dto.MarkAttendanceRequest{
		StudentID: "s-1",
		Status:    models.AttendancePresent,
		IsManual:  true,
	})
	c, w := newGinContext(http.MethodPost, "/sessions/sess-1/attendances", payload)
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}
	withSession(c, models.RoleFaculty)

	h.Mark(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, stub.marked)
}

func TestAttendanceHandlerSaveAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &attendanceClientStub{}
	h := newAttendanceHandler(stub)

	payload, _ := json.Marshal(dto.SaveAttendanceRequest{
		Marks: []dto.MarkAttendanceRequest{{StudentID: "s-1", Status: models.AttendancePresent}},
	})
	c, w := newGinContext(http.MethodPost, "/sessions/sess-1/attendances/save-all", payload)
	c.Params = gin.Params{{Key: "id", Value: "sess-1"}}
	withSession(c, models.RoleFaculty)

	h.SaveAll(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, stub.marked, 1)
}
