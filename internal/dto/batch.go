package dto

import (
	"github.com/monikajha100/prime-admin-gateway/internal/models"
	"github.com/monikajha100/prime-admin-gateway/internal/schedule"
)

// BatchRequest is the create/update payload for a batch. The schedule is the
// structured object form; clients that still hold the legacy JSON-string
// encoding must decode it before calling the gateway.
type BatchRequest struct {
	Name      string             `json:"name" binding:"required"`
	FacultyID string             `json:"faculty_id"`
	Status    string             `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE ARCHIVED"`
	Schedule  *schedule.Schedule `json:"schedule"`
}

// BatchQuery collects list-endpoint filters from the query string.
type BatchQuery struct {
	Search    string `form:"search"`
	FacultyID string `form:"faculty_id"`
	Status    string `form:"status"`
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// BatchResponse is a batch with its schedule normalized to the object form.
type BatchResponse struct {
	models.Batch
	Schedule *schedule.Schedule `json:"schedule"`
}

// BatchListResponse pairs normalized batches with upstream pagination.
// CacheHit reports whether the page came from the response cache.
type BatchListResponse struct {
	Batches    []BatchResponse   `json:"batches"`
	Pagination models.Pagination `json:"pagination"`
	CacheHit   bool              `json:"-"`
}

// AssignFacultyRequest assigns a faculty member to a batch.
type AssignFacultyRequest struct {
	FacultyID string `json:"faculty_id" binding:"required"`
}
