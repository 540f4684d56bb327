package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/middleware"
	"github.com/monikajha100/prime-admin-gateway/internal/service"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
	"github.com/monikajha100/prime-admin-gateway/pkg/response"
)

// BatchHandler exposes batch listing, editing and enrollment endpoints.
type BatchHandler struct {
	batches *service.BatchService
}

// NewBatchHandler constructs handler.
func NewBatchHandler(batches *service.BatchService) *BatchHandler {
	return &BatchHandler{batches: batches}
}

// List godoc
// @Summary List batches
// @Tags Batches
// @Security BearerAuth
// @Produce json
// @Param search query string false "Name search"
// @Param faculty_id query string false "Filter by faculty"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /batches [get]
func (h *BatchHandler) List(c *gin.Context) {
	var q dto.BatchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	resp, err := h.batches.List(c.Request.Context(), tokenFromContext(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, resp.CacheHit)
	response.JSON(c, http.StatusOK, resp.Batches, &resp.Pagination, middleware.ResponseMeta(c))
}

// Create godoc
// @Summary Create a batch
// @Tags Batches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.BatchRequest true "Batch"
// @Success 201 {object} response.Envelope
// @Router /batches [post]
func (h *BatchHandler) Create(c *gin.Context) {
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	batch, err := h.batches.Create(c.Request.Context(), tokenFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, batch)
}

// Update godoc
// @Summary Update a batch
// @Tags Batches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Batch ID"
// @Param payload body dto.BatchRequest true "Batch"
// @Success 200 {object} response.Envelope
// @Router /batches/{id} [patch]
func (h *BatchHandler) Update(c *gin.Context) {
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	batch, err := h.batches.Update(c.Request.Context(), tokenFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, batch, nil)
}

// Delete godoc
// @Summary Delete a batch
// @Tags Batches
// @Security BearerAuth
// @Param id path string true "Batch ID"
// @Success 204
// @Router /batches/{id} [delete]
func (h *BatchHandler) Delete(c *gin.Context) {
	if err := h.batches.Delete(c.Request.Context(), tokenFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SuggestCandidates godoc
// @Summary Suggest students for enrollment
// @Tags Batches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} response.Envelope
// @Router /batches/{id}/suggest-candidates [get]
func (h *BatchHandler) SuggestCandidates(c *gin.Context) {
	candidates, err := h.batches.SuggestCandidates(c.Request.Context(), tokenFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, candidates, nil)
}

// AssignFaculty godoc
// @Summary Assign faculty to a batch
// @Tags Batches
// @Security BearerAuth
// @Accept json
// @Param id path string true "Batch ID"
// @Param payload body dto.AssignFacultyRequest true "Faculty"
// @Success 204
// @Router /batches/{id}/assign-faculty [post]
func (h *BatchHandler) AssignFaculty(c *gin.Context) {
	var req dto.AssignFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	if err := h.batches.AssignFaculty(c.Request.Context(), tokenFromContext(c), c.Param("id"), req.FacultyID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Enrollments godoc
// @Summary List students enrolled in a batch
// @Tags Batches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} response.Envelope
// @Router /batches/{id}/enrollments [get]
func (h *BatchHandler) Enrollments(c *gin.Context) {
	enrollments, err := h.batches.Enrollments(c.Request.Context(), tokenFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, nil)
}
