package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/monikajha100/prime-admin-gateway/internal/models"
)

// BatchList pairs the page of batches with its pagination metadata.
type BatchList struct {
	Batches    []models.Batch     `json:"batches"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// ListBatches fetches batches matching the filter.
func (c *Client) ListBatches(ctx context.Context, token string, filter models.BatchFilter) (*BatchList, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.FacultyID != "" {
		query.Set("facultyId", filter.FacultyID)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("limit", strconv.Itoa(filter.PageSize))
	}

	var list BatchList
	if err := c.do(ctx, http.MethodGet, "/batches", token, query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateBatch persists a new batch upstream.
func (c *Client) CreateBatch(ctx context.Context, token string, payload interface{}) (*models.Batch, error) {
	var batch models.Batch
	if err := c.do(ctx, http.MethodPost, "/batches", token, nil, payload, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// UpdateBatch patches an existing batch.
func (c *Client) UpdateBatch(ctx context.Context, token, batchID string, payload interface{}) (*models.Batch, error) {
	var batch models.Batch
	if err := c.do(ctx, http.MethodPatch, pathf("/batches/%s", batchID), token, nil, payload, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// DeleteBatch removes a batch.
func (c *Client) DeleteBatch(ctx context.Context, token, batchID string) error {
	return c.do(ctx, http.MethodDelete, pathf("/batches/%s", batchID), token, nil, nil, nil)
}

// SuggestCandidates asks upstream for eligible students for a batch.
func (c *Client) SuggestCandidates(ctx context.Context, token, batchID string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := c.do(ctx, http.MethodPost, pathf("/batches/%s/suggest-candidates", batchID), token, nil, nil, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// AssignFaculty attaches a faculty member to a batch.
func (c *Client) AssignFaculty(ctx context.Context, token, batchID, facultyID string) error {
	body := map[string]string{"faculty_id": facultyID}
	return c.do(ctx, http.MethodPost, pathf("/batches/%s/assign-faculty", batchID), token, nil, body, nil)
}

// ListEnrollments returns the roster of a batch, used to build the attendance
// view.
func (c *Client) ListEnrollments(ctx context.Context, token, batchID string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := c.do(ctx, http.MethodGet, pathf("/batches/%s/enrollments", batchID), token, nil, nil, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}
