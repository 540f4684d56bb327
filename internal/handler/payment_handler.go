package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/service"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
	"github.com/monikajha100/prime-admin-gateway/pkg/response"
)

// PaymentHandler exposes EMI/payment endpoints.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler constructs handler.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// List godoc
// @Summary List payments
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param student_id query string false "Filter by student"
// @Param batch_id query string false "Filter by batch"
// @Param status query string false "pending, partial or paid"
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var q dto.PaymentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	list, err := h.payments.List(c.Request.Context(), tokenFromContext(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list.Payments, list.Pagination)
}

// Create godoc
// @Summary Create a payment plan
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.CreatePaymentRequest true "Plan"
// @Success 201 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	payment, err := h.payments.Create(c.Request.Context(), tokenFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payment)
}

// Record godoc
// @Summary Record a collection against a payment
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param payload body dto.RecordPaymentRequest true "Collection"
// @Success 200 {object} response.Envelope
// @Router /payments/{id}/record [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	payment, err := h.payments.Record(c.Request.Context(), tokenFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment, nil)
}
