package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/service"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
	"github.com/monikajha100/prime-admin-gateway/pkg/response"
)

// ReportHandler exposes report generation, download proxying and local
// exports.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate godoc
// @Summary Generate a report
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param type path string true "Report type"
// @Param student_id query string false "Student ID"
// @Param batch_id query string false "Batch ID"
// @Param faculty_id query string false "Faculty ID"
// @Success 200 {object} response.Envelope
// @Router /reports/{type} [get]
func (h *ReportHandler) Generate(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	resp, err := h.reports.Generate(c.Request.Context(), tokenFromContext(c), c.Param("type"), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Download godoc
// @Summary Download a report as CSV
// @Tags Reports
// @Security BearerAuth
// @Produce text/csv
// @Param type path string true "Report type"
// @Success 200 {file} file
// @Router /reports/{type}/download [get]
func (h *ReportHandler) Download(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	blob, contentType, filename, err := h.reports.Download(c.Request.Context(), tokenFromContext(c), c.Param("type"), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, blob)
}

// Export godoc
// @Summary Queue a local report export
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param type path string true "Report type"
// @Param format query string true "csv or pdf"
// @Success 202 {object} response.Envelope
// @Router /reports/{type}/export [post]
func (h *ReportHandler) Export(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	resp, err := h.reports.Export(c.Request.Context(), tokenFromContext(c), c.Param("type"), c.Query("format"), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, resp, nil)
}

// ExportLink godoc
// @Summary Signed download link for a rendered export
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param filename path string true "Export filename"
// @Success 200 {object} response.Envelope
// @Router /report-exports/{filename}/link [get]
func (h *ReportHandler) ExportLink(c *gin.Context) {
	resp, err := h.reports.DownloadLink(c.Request.Context(), c.Param("filename"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// ExportDownload godoc
// @Summary Stream a rendered export by signed token
// @Tags Reports
// @Produce application/octet-stream
// @Param token query string true "Signed token"
// @Success 200 {file} file
// @Router /report-exports/download [get]
func (h *ReportHandler) ExportDownload(c *gin.Context) {
	f, filename, err := h.reports.ResolveDownload(c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.File(f.Name())
}
