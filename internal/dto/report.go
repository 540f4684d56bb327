package dto

import "encoding/json"

// ReportQuery binds the report endpoints' query string. Which fields apply
// depends on the report type; the dispatcher enforces per-type requirements.
type ReportQuery struct {
	StudentID string `form:"student_id"`
	BatchID   string `form:"batch_id"`
	FacultyID string `form:"faculty_id"`
	From      string `form:"from"`
	To        string `form:"to"`
	Month     string `form:"month"`
	Year      string `form:"year"`
}

// ReportResponse carries the raw upstream payload plus the structural
// template the UI should render it with.
type ReportResponse struct {
	Type     string          `json:"type"`
	Template string          `json:"template"`
	Data     json.RawMessage `json:"data"`
}

// ExportResponse acknowledges an async export job.
type ExportResponse struct {
	JobID    string `json:"job_id"`
	Filename string `json:"filename"`
}

// DownloadLinkResponse carries a signed, expiring download token.
type DownloadLinkResponse struct {
	Token     string `json:"token"`
	Filename  string `json:"filename"`
	ExpiresAt int64  `json:"expires_at"`
}
