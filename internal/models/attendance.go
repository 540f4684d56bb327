package models

import "time"

// AttendanceStatus is one student's recorded attendance for one session.
// MANUAL_PRESENT is a human-override mark, PRESENT a non-manual one. There is
// no excused or late status.
type AttendanceStatus string

const (
	AttendancePresent       AttendanceStatus = "PRESENT"
	AttendanceManualPresent AttendanceStatus = "MANUAL_PRESENT"
	AttendanceAbsent        AttendanceStatus = "ABSENT"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceManualPresent, AttendanceAbsent:
		return true
	default:
		return false
	}
}

// AttendanceRecord is a server-reported attendance row for a session.
type AttendanceRecord struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id"`
	StudentID string           `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
	IsManual  bool             `json:"is_manual"`
	MarkedAt  time.Time        `json:"marked_at"`
}

// ClassSession is one scheduled occurrence of a batch's teaching schedule.
type ClassSession struct {
	ID         string     `json:"id"`
	BatchID    string     `json:"batch_id"`
	Date       string     `json:"date"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	Status     string     `json:"status"`
	CheckinAt  *time.Time `json:"checkin_at,omitempty"`
	CheckoutAt *time.Time `json:"checkout_at,omitempty"`
}

// Session lifecycle states driven by explicit check-in/check-out actions.
const (
	SessionScheduled = "scheduled"
	SessionOngoing   = "ongoing"
	SessionCompleted = "completed"
)
