package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/models"
	"github.com/monikajha100/prime-admin-gateway/internal/repository"
	"github.com/monikajha100/prime-admin-gateway/internal/upstream"
)

type paymentUpstream interface {
	ListPayments(ctx context.Context, token string, filter models.PaymentFilter) (*upstream.PaymentList, error)
	CreatePayment(ctx context.Context, token string, payload interface{}) (*models.Payment, error)
	RecordPayment(ctx context.Context, token, paymentID string, payload interface{}) (*models.Payment, error)
}

// PaymentService fronts the EMI/payment endpoints with the response cache.
type PaymentService struct {
	upstream paymentUpstream
	cache    *CacheService
	logger   *zap.Logger
}

// NewPaymentService constructs the payment service.
func NewPaymentService(up paymentUpstream, cache *CacheService, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{upstream: up, cache: cache, logger: logger}
}

// List returns the payments page; the unfiltered first page is cached.
func (s *PaymentService) List(ctx context.Context, token string, q dto.PaymentQuery) (*upstream.PaymentList, error) {
	cacheable := q.StudentID == "" && q.BatchID == "" && q.Status == "" && q.Page <= 1

	if cacheable {
		var cached upstream.PaymentList
		if hit, _ := s.cache.Get(ctx, repository.PaymentsKey(), &cached); hit {
			return &cached, nil
		}
	}

	list, err := s.upstream.ListPayments(ctx, token, models.PaymentFilter{
		StudentID: q.StudentID,
		BatchID:   q.BatchID,
		Status:    q.Status,
		Page:      q.Page,
		PageSize:  q.Limit,
	})
	if err != nil {
		return nil, err
	}
	if cacheable {
		_ = s.cache.Set(ctx, repository.PaymentsKey(), list, 0)
	}
	return list, nil
}

// Create sets up a payment plan for an enrollment.
func (s *PaymentService) Create(ctx context.Context, token string, req dto.CreatePaymentRequest) (*models.Payment, error) {
	payment, err := s.upstream.CreatePayment(ctx, token, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return payment, nil
}

// Record registers money received against a payment.
func (s *PaymentService) Record(ctx context.Context, token, paymentID string, req dto.RecordPaymentRequest) (*models.Payment, error) {
	payment, err := s.upstream.RecordPayment(ctx, token, paymentID, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return payment, nil
}

func (s *PaymentService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, repository.PaymentsKey()); err != nil {
		s.logger.Warn("payment cache invalidation failed", zap.Error(err))
	}
}
