package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/models"
	"github.com/monikajha100/prime-admin-gateway/internal/schedule"
	"github.com/monikajha100/prime-admin-gateway/internal/upstream"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
)

// memoryCacheStore is a map-backed CacheStore for service tests.
type memoryCacheStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
}

func newMemoryCacheStore() *memoryCacheStore {
	return &memoryCacheStore{entries: map[string][]byte{}}
}

func (m *memoryCacheStore) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheStore) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, pattern)
	delete(m.entries, pattern)
	return nil
}

func testCache(store *memoryCacheStore) *CacheService {
	return NewCacheService(store, nil, time.Minute, nil, true)
}

type batchUpstreamStub struct {
	listCalls   int
	list        *upstream.BatchList
	created     *models.Batch
	createErr   error
	lastPayload interface{}
}

func (s *batchUpstreamStub) ListBatches(ctx context.Context, token string, filter models.BatchFilter) (*upstream.BatchList, error) {
	s.listCalls++
	return s.list, nil
}

func (s *batchUpstreamStub) CreateBatch(ctx context.Context, token string, payload interface{}) (*models.Batch, error) {
	s.lastPayload = payload
	return s.created, s.createErr
}

func (s *batchUpstreamStub) UpdateBatch(ctx context.Context, token, batchID string, payload interface{}) (*models.Batch, error) {
	s.lastPayload = payload
	return s.created, s.createErr
}

func (s *batchUpstreamStub) DeleteBatch(ctx context.Context, token, batchID string) error {
	return nil
}

func (s *batchUpstreamStub) SuggestCandidates(ctx context.Context, token, batchID string) ([]models.Candidate, error) {
	return nil, nil
}

func (s *batchUpstreamStub) AssignFaculty(ctx context.Context, token, batchID, facultyID string) error {
	return nil
}

func (s *batchUpstreamStub) ListEnrollments(ctx context.Context, token, batchID string) ([]models.Enrollment, error) {
	return []models.Enrollment{{StudentID: "s-1"}}, nil
}

func TestBatchServiceListNormalizesSchedules(t *testing.T) {
	objectForm := json.RawMessage(`{"days":["Monday"],"timeSlots":[{"id":"1","startTime":"09:00","endTime":"10:30","durationMinutes":90}]}`)
	stringForm := json.RawMessage(`"{\"days\":[\"Friday\"],\"timeSlots\":[]}"`)
	stub := &batchUpstreamStub{list: &upstream.BatchList{Batches: []models.Batch{
		{ID: "b-1", Schedule: objectForm},
		{ID: "b-2", Schedule: stringForm},
		{ID: "b-3"},
	}}}
	svc := NewBatchService(stub, testCache(newMemoryCacheStore()), nil)

	resp, err := svc.List(context.Background(), "tok", dto.BatchQuery{Page: 1})
	require.NoError(t, err)
	require.Len(t, resp.Batches, 3)

	require.NotNil(t, resp.Batches[0].Schedule)
	assert.Equal(t, []string{"Monday"}, resp.Batches[0].Schedule.Days)
	require.NotNil(t, resp.Batches[1].Schedule)
	assert.Equal(t, []string{"Friday"}, resp.Batches[1].Schedule.Days)
	assert.Nil(t, resp.Batches[2].Schedule)
}

func TestBatchServiceListServesFromCache(t *testing.T) {
	stub := &batchUpstreamStub{list: &upstream.BatchList{Batches: []models.Batch{{ID: "b-1"}}}}
	svc := NewBatchService(stub, testCache(newMemoryCacheStore()), nil)

	_, err := svc.List(context.Background(), "tok", dto.BatchQuery{Page: 1})
	require.NoError(t, err)
	_, err = svc.List(context.Background(), "tok", dto.BatchQuery{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, stub.listCalls, "second unfiltered read should hit the cache")
}

func TestBatchServiceFilteredListBypassesCache(t *testing.T) {
	stub := &batchUpstreamStub{list: &upstream.BatchList{}}
	svc := NewBatchService(stub, testCache(newMemoryCacheStore()), nil)

	_, err := svc.List(context.Background(), "tok", dto.BatchQuery{Search: "go", Page: 1})
	require.NoError(t, err)
	_, err = svc.List(context.Background(), "tok", dto.BatchQuery{Search: "go", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, stub.listCalls)
}

func TestBatchServiceCreateInvalidatesCache(t *testing.T) {
	store := newMemoryCacheStore()
	stub := &batchUpstreamStub{
		list:    &upstream.BatchList{Batches: []models.Batch{{ID: "b-1"}}},
		created: &models.Batch{ID: "b-new"},
	}
	svc := NewBatchService(stub, testCache(store), nil)

	_, err := svc.List(context.Background(), "tok", dto.BatchQuery{Page: 1})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "tok", dto.BatchRequest{Name: "Go Basics"})
	require.NoError(t, err)
	assert.Contains(t, store.deleted, "batches")

	_, err = svc.List(context.Background(), "tok", dto.BatchQuery{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, stub.listCalls, "list after create should refetch")
}

func TestBatchServiceCreateRejectsInvalidSchedule(t *testing.T) {
	stub := &batchUpstreamStub{created: &models.Batch{ID: "b-new"}}
	svc := NewBatchService(stub, testCache(newMemoryCacheStore()), nil)

	_, err := svc.Create(context.Background(), "tok", dto.BatchRequest{
		Name:     "Broken",
		Schedule: &schedule.Schedule{Days: []string{"Monday"}},
	})
	require.Error(t, err)
	assert.Nil(t, stub.lastPayload, "invalid schedule must not reach upstream")
}

func TestBatchServiceEnrollmentsCached(t *testing.T) {
	store := newMemoryCacheStore()
	stub := &batchUpstreamStub{}
	svc := NewBatchService(stub, testCache(store), nil)

	first, err := svc.Enrollments(context.Background(), "tok", "b-1")
	require.NoError(t, err)
	second, err := svc.Enrollments(context.Background(), "tok", "b-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, store.entries, "enrollments:b-1")
}
