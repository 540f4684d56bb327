package models

import (
	"encoding/json"
	"time"
)

// Batch is a scheduled cohort of students taught together over a date range.
// Schedule is kept raw here: the upstream API returns it either as a
// structured object or as a serialized JSON string, and normalization happens
// at the read boundary (see the schedule package).
type Batch struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CourseID  string          `json:"course_id"`
	FacultyID *string         `json:"faculty_id,omitempty"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Capacity  int             `json:"capacity"`
	Status    string          `json:"status"`
	Schedule  json.RawMessage `json:"schedule,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BatchFilter captures list query parameters forwarded upstream.
type BatchFilter struct {
	Search    string
	FacultyID string
	Status    string
	Page      int
	PageSize  int
}

// Candidate is a student the upstream API suggests for enrollment in a batch.
type Candidate struct {
	StudentID string  `json:"student_id"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
}

// Enrollment associates one student to one batch.
type Enrollment struct {
	ID          string    `json:"id"`
	BatchID     string    `json:"batch_id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	Status      string    `json:"status"`
	JoinedAt    time.Time `json:"joined_at"`
}
