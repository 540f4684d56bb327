package dto

import "github.com/monikajha100/prime-admin-gateway/internal/models"

// MarkAttendanceRequest marks a single student inside an open session.
type MarkAttendanceRequest struct {
	StudentID string                  `json:"student_id" binding:"required"`
	Status    models.AttendanceStatus `json:"status" binding:"required,attendance_status"`
	IsManual  bool                    `json:"is_manual"`
}

// SaveAttendanceRequest resubmits the full attendance sheet for a session.
type SaveAttendanceRequest struct {
	Marks []MarkAttendanceRequest `json:"marks" binding:"omitempty,dive"`
}

// AttendanceRow is one line of the reconciled session roster.
type AttendanceRow struct {
	StudentID   string                  `json:"student_id"`
	StudentName string                  `json:"student_name"`
	Status      models.AttendanceStatus `json:"status"`
	IsManual    bool                    `json:"is_manual"`
}

// SessionAttendanceResponse is the roster view for an open class session.
type SessionAttendanceResponse struct {
	Session models.ClassSession `json:"session"`
	Rows    []AttendanceRow     `json:"rows"`
}

// SaveAttendanceResponse reports per-student failures from a bulk save.
type SaveAttendanceResponse struct {
	Saved    int           `json:"saved"`
	Failures []MarkFailure `json:"failures,omitempty"`
}

// MarkFailure mirrors attendance.MarkFailure for the wire.
type MarkFailure struct {
	StudentID string `json:"student_id"`
	Message   string `json:"message"`
}
