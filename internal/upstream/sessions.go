package upstream

import (
	"context"
	"net/http"

	"github.com/monikajha100/prime-admin-gateway/internal/models"
)

// CheckinSession marks a session as ongoing.
func (c *Client) CheckinSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error) {
	var sess models.ClassSession
	if err := c.do(ctx, http.MethodPost, pathf("/sessions/%s/checkin", sessionID), token, nil, nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// CheckoutSession marks a session as completed.
func (c *Client) CheckoutSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error) {
	var sess models.ClassSession
	if err := c.do(ctx, http.MethodPost, pathf("/sessions/%s/checkout", sessionID), token, nil, nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetSession fetches one session.
func (c *Client) GetSession(ctx context.Context, token, sessionID string) (*models.ClassSession, error) {
	var sess models.ClassSession
	if err := c.do(ctx, http.MethodGet, pathf("/sessions/%s", sessionID), token, nil, nil, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// ListSessionAttendances returns the recorded attendance rows for a session.
func (c *Client) ListSessionAttendances(ctx context.Context, token, sessionID string) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	if err := c.do(ctx, http.MethodGet, pathf("/sessions/%s/attendances", sessionID), token, nil, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// MarkSessionAttendance records one student's status for a session.
func (c *Client) MarkSessionAttendance(ctx context.Context, token, sessionID, studentID string, status models.AttendanceStatus, isManual bool) error {
	body := map[string]interface{}{
		"student_id": studentID,
		"status":     status,
		"is_manual":  isManual,
	}
	return c.do(ctx, http.MethodPost, pathf("/sessions/%s/attendance", sessionID), token, nil, body, nil)
}
