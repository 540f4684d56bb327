package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/monikajha100/prime-admin-gateway/internal/models"
)

// PaymentList pairs the page of payments with its pagination metadata.
type PaymentList struct {
	Payments   []models.Payment   `json:"payments"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// ListPayments fetches EMI/payment records matching the filter.
func (c *Client) ListPayments(ctx context.Context, token string, filter models.PaymentFilter) (*PaymentList, error) {
	query := url.Values{}
	if filter.StudentID != "" {
		query.Set("studentId", filter.StudentID)
	}
	if filter.BatchID != "" {
		query.Set("batchId", filter.BatchID)
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

	var list PaymentList
	if err := c.do(ctx, http.MethodGet, "/payments", token, query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreatePayment creates a new EMI record.
func (c *Client) CreatePayment(ctx context.Context, token string, payload interface{}) (*models.Payment, error) {
	var payment models.Payment
	if err := c.do(ctx, http.MethodPost, "/payments", token, nil, payload, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// RecordPayment records a collection against an existing EMI record.
func (c *Client) RecordPayment(ctx context.Context, token, paymentID string, payload interface{}) (*models.Payment, error) {
	var payment models.Payment
	if err := c.do(ctx, http.MethodPost, pathf("/payments/%s/record", paymentID), token, nil, payload, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
