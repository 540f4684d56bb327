package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/models"
	"github.com/monikajha100/prime-admin-gateway/internal/upstream"
)

type paymentUpstreamStub struct {
	listCalls int
	list      *upstream.PaymentList
}

func (s *paymentUpstreamStub) ListPayments(ctx context.Context, token string, filter models.PaymentFilter) (*upstream.PaymentList, error) {
	s.listCalls++
	return s.list, nil
}

func (s *paymentUpstreamStub) CreatePayment(ctx context.Context, token string, payload interface{}) (*models.Payment, error) {
	return &models.Payment{ID: "pay-1"}, nil
}

func (s *paymentUpstreamStub) RecordPayment(ctx context.Context, token, paymentID string, payload interface{}) (*models.Payment, error) {
	return &models.Payment{ID: paymentID, Status: models.PaymentPaid}, nil
}

func TestPaymentListCachesUnfilteredFirstPage(t *testing.T) {
	stub := &paymentUpstreamStub{list: &upstream.PaymentList{Payments: []models.Payment{{ID: "pay-1"}}}}
	svc := NewPaymentService(stub, testCache(newMemoryCacheStore()), nil)

	_, err := svc.List(context.Background(), "tok", dto.PaymentQuery{Page: 1})
	require.NoError(t, err)
	_, err = svc.List(context.Background(), "tok", dto.PaymentQuery{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, stub.listCalls)
}

func TestPaymentRecordInvalidatesCache(t *testing.T) {
	store := newMemoryCacheStore()
	stub := &paymentUpstreamStub{list: &upstream.PaymentList{}}
	svc := NewPaymentService(stub, testCache(store), nil)

	_, err := svc.List(context.Background(), "tok", dto.PaymentQuery{Page: 1})
	require.NoError(t, err)

	payment, err := svc.Record(context.Background(), "tok", "pay-1", dto.RecordPaymentRequest{Amount: 500})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, payment.Status)
	assert.Contains(t, store.deleted, "payments")
}
