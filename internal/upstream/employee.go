package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/monikajha100/prime-admin-gateway/internal/models"
)

// PunchPayload is the body for punch-in/punch-out calls. Photo is a browser
// data URL; Location and FingerprintToken are optional.
type PunchPayload struct {
	Photo            string              `json:"photo,omitempty"`
	Location         *models.GeoLocation `json:"location,omitempty"`
	FingerprintToken string              `json:"fingerprint_token,omitempty"`
}

// PunchIn opens the working day for the calling employee.
func (c *Client) PunchIn(ctx context.Context, token string, payload PunchPayload) (*models.PunchRecord, error) {
	var record models.PunchRecord
	if err := c.do(ctx, http.MethodPost, "/employee-attendance/punch-in", token, nil, payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// PunchOut closes the working day.
func (c *Client) PunchOut(ctx context.Context, token string, payload PunchPayload) (*models.PunchRecord, error) {
	var record models.PunchRecord
	if err := c.do(ctx, http.MethodPost, "/employee-attendance/punch-out", token, nil, payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// EmployeeToday returns the caller's punch record for today.
func (c *Client) EmployeeToday(ctx context.Context, token string) (*models.PunchRecord, error) {
	var record models.PunchRecord
	if err := c.do(ctx, http.MethodGet, "/employee-attendance/today", token, nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// EmployeeDailyLog returns the aggregated log for one date.
func (c *Client) EmployeeDailyLog(ctx context.Context, token, date string) (*models.DailyLog, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var log models.DailyLog
	if err := c.do(ctx, http.MethodGet, "/employee-attendance/daily-log", token, query, nil, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// AddBreak opens a break window on the current punch record.
func (c *Client) AddBreak(ctx context.Context, token, reason string) (*models.BreakEntry, error) {
	body := map[string]string{"reason": reason}
	var entry models.BreakEntry
	if err := c.do(ctx, http.MethodPost, "/employee-attendance/break/add", token, nil, body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// EndBreak closes an open break window. The upstream API may reject this when
// the referenced break no longer exists; that conflict is surfaced as-is.
func (c *Client) EndBreak(ctx context.Context, token, breakID string) (*models.BreakEntry, error) {
	body := map[string]string{"break_id": breakID}
	var entry models.BreakEntry
	if err := c.do(ctx, http.MethodPost, "/employee-attendance/break/end", token, nil, body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// AllEmployees returns punch records of every employee for a date, for the
// admin roster view.
func (c *Client) AllEmployees(ctx context.Context, token, date string) ([]models.PunchRecord, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	var records []models.PunchRecord
	if err := c.do(ctx, http.MethodGet, "/employee-attendance/all-employees", token, query, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
