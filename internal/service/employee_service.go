package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/models"
	"github.com/monikajha100/prime-admin-gateway/internal/repository"
	"github.com/monikajha100/prime-admin-gateway/internal/upstream"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
	"github.com/monikajha100/prime-admin-gateway/pkg/storage"
)

type employeeUpstream interface {
	PunchIn(ctx context.Context, token string, payload upstream.PunchPayload) (*models.PunchRecord, error)
	PunchOut(ctx context.Context, token string, payload upstream.PunchPayload) (*models.PunchRecord, error)
	EmployeeToday(ctx context.Context, token string) (*models.PunchRecord, error)
	EmployeeDailyLog(ctx context.Context, token, date string) (*models.DailyLog, error)
	AddBreak(ctx context.Context, token, reason string) (*models.BreakEntry, error)
	EndBreak(ctx context.Context, token, breakID string) (*models.BreakEntry, error)
	AllEmployees(ctx context.Context, token, date string) ([]models.PunchRecord, error)
}

// EmployeeService handles employee time tracking: camera-verified punches,
// breaks, and the daily/monthly views. Punch photos are archived on the
// gateway before the punch is forwarded upstream.
type EmployeeService struct {
	upstream      employeeUpstream
	cache         *CacheService
	photos        *storage.FileStore
	maxPhotoBytes int64
	logger        *zap.Logger
	now           func() time.Time
}

// NewEmployeeService constructs the employee service.
func NewEmployeeService(up employeeUpstream, cache *CacheService, photos *storage.FileStore, maxPhotoBytes int64, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = 5 << 20
	}
	return &EmployeeService{
		upstream:      up,
		cache:         cache,
		photos:        photos,
		maxPhotoBytes: maxPhotoBytes,
		logger:        logger,
		now:           time.Now,
	}
}

// PunchIn archives the captured photo and opens the employee's working day.
func (s *EmployeeService) PunchIn(ctx context.Context, token, userID string, req dto.PunchRequest) (*models.PunchRecord, error) {
	if err := s.archivePhoto(userID, "in", req.Photo); err != nil {
		return nil, err
	}
	record, err := s.upstream.PunchIn(ctx, token, punchPayload(req))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return record, nil
}

// PunchOut archives the captured photo and closes the working day.
func (s *EmployeeService) PunchOut(ctx context.Context, token, userID string, req dto.PunchRequest) (*models.PunchRecord, error) {
	if err := s.archivePhoto(userID, "out", req.Photo); err != nil {
		return nil, err
	}
	record, err := s.upstream.PunchOut(ctx, token, punchPayload(req))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return record, nil
}

// Today returns the caller's punch record for the current day, cached briefly
// per user.
func (s *EmployeeService) Today(ctx context.Context, token, userID string) (*models.PunchRecord, error) {
	key := repository.EmployeeTodayKey(userID)

	var cached models.PunchRecord
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	record, err := s.upstream.EmployeeToday(ctx, token)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, record, time.Minute)
	return record, nil
}

// DailyLog returns the month's aggregated punch activity for the caller.
func (s *EmployeeService) DailyLog(ctx context.Context, token string, q dto.DailyLogQuery) (*models.DailyLog, error) {
	date := fmt.Sprintf("%04d-%02d", q.Year, q.Month)
	return s.upstream.EmployeeDailyLog(ctx, token, date)
}

// StartBreak opens a break on today's record.
func (s *EmployeeService) StartBreak(ctx context.Context, token, userID string, req dto.BreakRequest) (*models.BreakEntry, error) {
	entry, err := s.upstream.AddBreak(ctx, token, req.Reason)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return entry, nil
}

// EndBreak closes an open break.
func (s *EmployeeService) EndBreak(ctx context.Context, token, userID, breakID string) (*models.BreakEntry, error) {
	entry, err := s.upstream.EndBreak(ctx, token, breakID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return entry, nil
}

// AllEmployees lists every employee's punch record for a date. Admin and
// staff only, enforced at the route level; cached per date.
func (s *EmployeeService) AllEmployees(ctx context.Context, token, date string) ([]models.PunchRecord, error) {
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	key := repository.AllEmployeesKey(date)

	var cached []models.PunchRecord
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	records, err := s.upstream.AllEmployees(ctx, token, date)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, records, time.Minute)
	return records, nil
}

// archivePhoto decodes the data URL and writes the photo to the gateway's
// photo store. An oversized or undecodable photo rejects the punch.
func (s *EmployeeService) archivePhoto(userID, direction, photo string) error {
	if s.photos == nil || photo == "" {
		return nil
	}
	data, mime, err := storage.DecodeDataURL(photo)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "punch photo is not a valid data URL")
	}
	if int64(len(data)) > s.maxPhotoBytes {
		return appErrors.Clone(appErrors.ErrValidation, "punch photo too large")
	}
	name := fmt.Sprintf("%s-%s-%s-%s%s",
		s.now().Format("2006-01-02"), userID, direction, uuid.NewString()[:8], storage.ExtensionForMIME(mime))
	if _, err := s.photos.Save(name, data); err != nil {
		s.logger.Warn("punch photo archive failed", zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *EmployeeService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Invalidate(ctx, repository.EmployeeTodayKey(userID)); err != nil {
		s.logger.Warn("employee cache invalidation failed", zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, repository.AllEmployeesKey("*")); err != nil {
		s.logger.Warn("employee cache invalidation failed", zap.Error(err))
	}
}

func punchPayload(req dto.PunchRequest) upstream.PunchPayload {
	return upstream.PunchPayload{
		Photo:            req.Photo,
		Location:         req.Location,
		FingerprintToken: req.FingerprintToken,
	}
}
