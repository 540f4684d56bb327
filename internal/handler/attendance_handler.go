package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/service"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
	"github.com/monikajha100/prime-admin-gateway/pkg/response"
)

// AttendanceHandler exposes class-session check-in/out and attendance marking.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Checkin godoc
// @Summary Open a class session
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/checkin [post]
func (h *AttendanceHandler) Checkin(c *gin.Context) {
	sess, err := h.attendance.Checkin(c.Request.Context(), tokenFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// Checkout godoc
// @Summary Complete a class session
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/checkout [post]
func (h *AttendanceHandler) Checkout(c *gin.Context) {
	sess, err := h.attendance.Checkout(c.Request.Context(), tokenFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sess, nil)
}

// View godoc
// @Summary Reconciled attendance roster for a session
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/attendances [get]
func (h *AttendanceHandler) View(c *gin.Context) {
	resp, err := h.attendance.View(c.Request.Context(), tokenFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Mark godoc
// @Summary Mark one student's attendance
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Param id path string true "Session ID"
// @Param payload body dto.MarkAttendanceRequest true "Mark"
// @Success 204
// @Router /sessions/{id}/attendances [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	if err := h.attendance.Mark(c.Request.Context(), tokenFromContext(c), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SaveAll godoc
// @Summary Resubmit the full attendance sheet
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SaveAttendanceRequest true "Sheet"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/attendances/save-all [post]
func (h *AttendanceHandler) SaveAll(c *gin.Context) {
	var req dto.SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	resp, err := h.attendance.SaveAll(c.Request.Context(), tokenFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if len(resp.Failures) > 0 {
		status = http.StatusMultiStatus
	}
	response.JSON(c, status, resp, nil)
}
