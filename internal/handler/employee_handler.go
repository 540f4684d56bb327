package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/service"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
	"github.com/monikajha100/prime-admin-gateway/pkg/response"
)

// EmployeeHandler exposes employee time-tracking endpoints.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// PunchIn godoc
// @Summary Punch in with a camera photo
// @Tags Employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.PunchRequest true "Punch"
// @Success 200 {object} response.Envelope
// @Router /employee-attendance/punch-in [post]
func (h *EmployeeHandler) PunchIn(c *gin.Context) {
	var req dto.PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	sess := sessionFromContext(c)
	record, err := h.employees.PunchIn(c.Request.Context(), sess.Token, sess.User.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// PunchOut godoc
// @Summary Punch out with a camera photo
// @Tags Employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.PunchRequest true "Punch"
// @Success 200 {object} response.Envelope
// @Router /employee-attendance/punch-out [post]
func (h *EmployeeHandler) PunchOut(c *gin.Context) {
	var req dto.PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	sess := sessionFromContext(c)
	record, err := h.employees.PunchOut(c.Request.Context(), sess.Token, sess.User.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Today godoc
// @Summary Today's punch record
// @Tags Employees
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /employee-attendance/today [get]
func (h *EmployeeHandler) Today(c *gin.Context) {
	sess := sessionFromContext(c)
	record, err := h.employees.Today(c.Request.Context(), sess.Token, sess.User.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// DailyLog godoc
// @Summary Month's aggregated punch activity
// @Tags Employees
// @Security BearerAuth
// @Produce json
// @Param month query int true "Month 1-12"
// @Param year query int true "Year"
// @Success 200 {object} response.Envelope
// @Router /employee-attendance/daily-log [get]
func (h *EmployeeHandler) DailyLog(c *gin.Context) {
	var q dto.DailyLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	log, err := h.employees.DailyLog(c.Request.Context(), tokenFromContext(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, log, nil)
}

// StartBreak godoc
// @Summary Start a break
// @Tags Employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.BreakRequest true "Break"
// @Success 200 {object} response.Envelope
// @Router /employee-attendance/breaks [post]
func (h *EmployeeHandler) StartBreak(c *gin.Context) {
	var req dto.BreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	sess := sessionFromContext(c)
	entry, err := h.employees.StartBreak(c.Request.Context(), sess.Token, sess.User.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// EndBreak godoc
// @Summary End a break
// @Tags Employees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Break ID"
// @Success 200 {object} response.Envelope
// @Router /employee-attendance/breaks/{id}/end [post]
func (h *EmployeeHandler) EndBreak(c *gin.Context) {
	sess := sessionFromContext(c)
	entry, err := h.employees.EndBreak(c.Request.Context(), sess.Token, sess.User.ID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// AllEmployees godoc
// @Summary Every employee's punch record for a date
// @Tags Employees
// @Security BearerAuth
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD, default today)"
// @Success 200 {object} response.Envelope
// @Router /employee-attendance/all [get]
func (h *EmployeeHandler) AllEmployees(c *gin.Context) {
	records, err := h.employees.AllEmployees(c.Request.Context(), tokenFromContext(c), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}
