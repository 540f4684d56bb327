package models

import "time"

// GeoLocation is the optional coordinate payload attached to a punch.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address,omitempty"`
}

// PunchRecord is one employee's attendance row for a working day.
type PunchRecord struct {
	ID               string       `json:"id"`
	EmployeeID       string       `json:"employee_id"`
	EmployeeName     string       `json:"employee_name,omitempty"`
	Date             string       `json:"date"`
	PunchIn          *time.Time   `json:"punch_in,omitempty"`
	PunchOut         *time.Time   `json:"punch_out,omitempty"`
	PhotoURL         string       `json:"photo_url,omitempty"`
	Location         *GeoLocation `json:"location,omitempty"`
	FingerprintToken string       `json:"fingerprint_token,omitempty"`
	Breaks           []BreakEntry `json:"breaks,omitempty"`
}

// BreakEntry is one break window inside a punch record.
type BreakEntry struct {
	ID        string     `json:"id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// DailyLog aggregates punch activity for one employee and date.
type DailyLog struct {
	EmployeeID   string        `json:"employee_id"`
	Date         string        `json:"date"`
	Records      []PunchRecord `json:"records"`
	TotalMinutes int           `json:"total_minutes"`
	BreakMinutes int           `json:"break_minutes"`
}
