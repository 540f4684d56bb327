package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/models"
	"github.com/monikajha100/prime-admin-gateway/internal/repository"
	"github.com/monikajha100/prime-admin-gateway/internal/schedule"
	"github.com/monikajha100/prime-admin-gateway/internal/upstream"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
)

type batchUpstream interface {
	ListBatches(ctx context.Context, token string, filter models.BatchFilter) (*upstream.BatchList, error)
	CreateBatch(ctx context.Context, token string, payload interface{}) (*models.Batch, error)
	UpdateBatch(ctx context.Context, token, batchID string, payload interface{}) (*models.Batch, error)
	DeleteBatch(ctx context.Context, token, batchID string) error
	SuggestCandidates(ctx context.Context, token, batchID string) ([]models.Candidate, error)
	AssignFaculty(ctx context.Context, token, batchID, facultyID string) error
	ListEnrollments(ctx context.Context, token, batchID string) ([]models.Enrollment, error)
}

// BatchService serves the batch list and editor workflows, fronting the
// academy API with the semantic response cache. Every mutation invalidates
// the "batches" entry; staleness between a mutation elsewhere and the next
// invalidation here is accepted.
type BatchService struct {
	upstream batchUpstream
	cache    *CacheService
	logger   *zap.Logger
}

// NewBatchService constructs the batch service.
func NewBatchService(up batchUpstream, cache *CacheService, logger *zap.Logger) *BatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchService{upstream: up, cache: cache, logger: logger}
}

// List returns the batch page with schedules normalized to the object form.
// The unfiltered first page is served from cache when present.
func (s *BatchService) List(ctx context.Context, token string, q dto.BatchQuery) (*dto.BatchListResponse, error) {
	cacheable := q.Search == "" && q.FacultyID == "" && q.Status == "" && q.Page <= 1

	if cacheable {
		var cached dto.BatchListResponse
		if hit, _ := s.cache.Get(ctx, repository.BatchesKey(), &cached); hit {
			cached.CacheHit = true
			return &cached, nil
		}
	}

	list, err := s.upstream.ListBatches(ctx, token, models.BatchFilter{
		Search:    q.Search,
		FacultyID: q.FacultyID,
		Status:    q.Status,
		Page:      q.Page,
		PageSize:  q.Limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.BatchListResponse{Batches: make([]dto.BatchResponse, 0, len(list.Batches))}
	if list.Pagination != nil {
		resp.Pagination = *list.Pagination
	}
	for _, b := range list.Batches {
		normalized, err := normalizeBatch(b)
		if err != nil {
			s.logger.Warn("unparseable batch schedule", zap.String("batch_id", b.ID), zap.Error(err))
			continue
		}
		resp.Batches = append(resp.Batches, normalized)
	}

	if cacheable {
		_ = s.cache.Set(ctx, repository.BatchesKey(), resp, 0)
	}
	return resp, nil
}

// Create validates the schedule and creates the batch upstream.
func (s *BatchService) Create(ctx context.Context, token string, req dto.BatchRequest) (*dto.BatchResponse, error) {
	if err := validateScheduleRequest(req.Schedule); err != nil {
		return nil, err
	}
	batch, err := s.upstream.CreateBatch(ctx, token, req)
	if err != nil {
		return nil, err
	}
	s.invalidateBatches(ctx)
	resp, err := normalizeBatch(*batch)
	if err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrUpstream)
	}
	return &resp, nil
}

// Update validates the schedule and patches the batch upstream.
func (s *BatchService) Update(ctx context.Context, token, batchID string, req dto.BatchRequest) (*dto.BatchResponse, error) {
	if err := validateScheduleRequest(req.Schedule); err != nil {
		return nil, err
	}
	batch, err := s.upstream.UpdateBatch(ctx, token, batchID, req)
	if err != nil {
		return nil, err
	}
	s.invalidateBatches(ctx)
	resp, err := normalizeBatch(*batch)
	if err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrUpstream)
	}
	return &resp, nil
}

// Delete removes a batch. Admin-only, enforced at the route level.
func (s *BatchService) Delete(ctx context.Context, token, batchID string) error {
	if err := s.upstream.DeleteBatch(ctx, token, batchID); err != nil {
		return err
	}
	s.invalidateBatches(ctx)
	return nil
}

// SuggestCandidates returns upstream enrollment suggestions for a batch.
func (s *BatchService) SuggestCandidates(ctx context.Context, token, batchID string) ([]models.Candidate, error) {
	return s.upstream.SuggestCandidates(ctx, token, batchID)
}

// AssignFaculty assigns a faculty member to the batch.
func (s *BatchService) AssignFaculty(ctx context.Context, token, batchID, facultyID string) error {
	if err := s.upstream.AssignFaculty(ctx, token, batchID, facultyID); err != nil {
		return err
	}
	s.invalidateBatches(ctx)
	return nil
}

// Enrollments lists the students enrolled in a batch, cached per batch.
func (s *BatchService) Enrollments(ctx context.Context, token, batchID string) ([]models.Enrollment, error) {
	key := repository.EnrollmentsKey(batchID)

	var cached []models.Enrollment
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	enrollments, err := s.upstream.ListEnrollments(ctx, token, batchID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, enrollments, 0)
	return enrollments, nil
}

func (s *BatchService) invalidateBatches(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, repository.BatchesKey()); err != nil {
		s.logger.Warn("batch cache invalidation failed", zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, repository.EnrollmentsKey("*")); err != nil {
		s.logger.Warn("enrollment cache invalidation failed", zap.Error(err))
	}
}

func validateScheduleRequest(sched *schedule.Schedule) error {
	if sched == nil {
		return nil
	}
	if err := schedule.ValidateForSubmission(*sched); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return nil
}

func normalizeBatch(b models.Batch) (dto.BatchResponse, error) {
	sched, err := schedule.Parse(b.Schedule)
	if err != nil {
		return dto.BatchResponse{}, err
	}
	b.Schedule = nil
	return dto.BatchResponse{Batch: b, Schedule: sched}, nil
}
