package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	"github.com/monikajha100/prime-admin-gateway/internal/report"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
	"github.com/monikajha100/prime-admin-gateway/pkg/export"
	"github.com/monikajha100/prime-admin-gateway/pkg/jobs"
	"github.com/monikajha100/prime-admin-gateway/pkg/storage"
)

type reportUpstream interface {
	FetchReport(ctx context.Context, token, path string, query url.Values) ([]byte, error)
	DownloadReport(ctx context.Context, token, reportType string, query url.Values) ([]byte, string, error)
}

// ReportService generates reports through the dispatcher, proxies upstream
// CSV downloads, and renders local CSV/PDF exports asynchronously.
type ReportService struct {
	upstream reportUpstream
	queue    *jobs.Queue
	files    *storage.FileStore
	signer   *storage.Signer
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService constructs the report service. Call StartWorkers before
// enqueueing exports.
func NewReportService(up reportUpstream, files *storage.FileStore, signer *storage.Signer, workers int, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ReportService{
		upstream: up,
		files:    files,
		signer:   signer,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		now:      time.Now,
	}
	s.queue = jobs.NewQueue("report-exports", s.handleExportJob, jobs.QueueConfig{
		Workers: workers,
		Logger:  logger,
	})
	return s
}

// StartWorkers launches the export worker pool; Stop drains it.
func (s *ReportService) StartWorkers(ctx context.Context) { s.queue.Start(ctx) }
func (s *ReportService) Stop()                            { s.queue.Stop() }

// Generate runs one report and classifies the payload for rendering. The
// payload is passed through untouched; only the template label is derived
// from its shape.
func (s *ReportService) Generate(ctx context.Context, token, reportType string, q dto.ReportQuery) (*dto.ReportResponse, error) {
	req, err := report.BuildRequest(reportType, filtersFromQuery(q))
	if err != nil {
		return nil, err
	}
	raw, err := s.upstream.FetchReport(ctx, token, req.Path, req.Query)
	if err != nil {
		return nil, err
	}
	return &dto.ReportResponse{
		Type:     string(req.Type),
		Template: string(report.SelectTemplate(raw)),
		Data:     raw,
	}, nil
}

// Download proxies the upstream CSV download for a report, naming the file
// after the report type and the current date.
func (s *ReportService) Download(ctx context.Context, token, reportType string, q dto.ReportQuery) ([]byte, string, string, error) {
	req, err := report.BuildRequest(reportType, filtersFromQuery(q))
	if err != nil {
		return nil, "", "", err
	}
	blob, contentType, err := s.upstream.DownloadReport(ctx, token, string(req.Type), req.Query)
	if err != nil {
		return nil, "", "", err
	}
	return blob, contentType, export.Filename(string(req.Type), s.now()), nil
}

type exportJobPayload struct {
	Token      string
	ReportType string
	Format     string
	Filters    report.Filters
	Filename   string
}

// Export validates the request and queues a background render. The report is
// fetched and rendered by a worker; the caller polls the download link.
func (s *ReportService) Export(ctx context.Context, token, reportType, format string, q dto.ReportQuery) (*dto.ExportResponse, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "export format must be csv or pdf")
	}
	req, err := report.BuildRequest(reportType, filtersFromQuery(q))
	if err != nil {
		return nil, err
	}

	jobID := uuid.NewString()
	filename := jobID + "-" + strings.TrimSuffix(export.Filename(string(req.Type), s.now()), ".csv") + "." + format
	job := jobs.Job{
		ID:   jobID,
		Type: "render-export",
		Payload: exportJobPayload{
			Token:      token,
			ReportType: string(req.Type),
			Format:     format,
			Filters:    filtersFromQuery(q),
			Filename:   filename,
		},
	}
	if err := s.queue.Enqueue(job); err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	return &dto.ExportResponse{JobID: jobID, Filename: filename}, nil
}

// DownloadLink issues a signed, expiring token for a rendered export file.
func (s *ReportService) DownloadLink(_ context.Context, filename string) (*dto.DownloadLinkResponse, error) {
	if _, err := os.Stat(s.files.Path(filename)); err != nil {
		return nil, appErrors.ErrNotFound
	}
	token, expiresAt, err := s.signer.Generate(uuid.NewString(), filename)
	if err != nil {
		return nil, appErrors.WrapAs(err, appErrors.ErrInternal)
	}
	return &dto.DownloadLinkResponse{Token: token, Filename: filename, ExpiresAt: expiresAt.Unix()}, nil
}

// ResolveDownload opens the export file a signed token refers to.
func (s *ReportService) ResolveDownload(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "download link invalid or expired")
	}
	f, err := s.files.Open(relPath)
	if err != nil {
		return nil, "", appErrors.ErrNotFound
	}
	return f, relPath, nil
}

func (s *ReportService) handleExportJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(exportJobPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	req, err := report.BuildRequest(payload.ReportType, payload.Filters)
	if err != nil {
		return err
	}
	raw, err := s.upstream.FetchReport(ctx, payload.Token, req.Path, req.Query)
	if err != nil {
		return err
	}

	dataset := tabulate(raw)
	var rendered []byte
	switch payload.Format {
	case "pdf":
		rendered, err = s.pdf.Render(dataset, payload.ReportType)
	default:
		rendered, err = s.csv.Render(dataset)
	}
	if err != nil {
		return err
	}

	if _, err := s.files.Save(payload.Filename, rendered); err != nil {
		return err
	}
	s.logger.Info("export rendered",
		zap.String("job_id", job.ID),
		zap.String("report_type", payload.ReportType),
		zap.String("filename", payload.Filename))
	return nil
}

func filtersFromQuery(q dto.ReportQuery) report.Filters {
	return report.Filters{
		StudentID: q.StudentID,
		BatchID:   q.BatchID,
		FacultyID: q.FacultyID,
		From:      q.From,
		To:        q.To,
		Month:     q.Month,
		Year:      q.Year,
	}
}

// tabulate flattens a report payload into a dataset. Arrays of objects become
// rows keyed by the union of their fields; anything else degrades to a single
// JSON column so the export still succeeds.
func tabulate(raw []byte) export.Dataset {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return export.Dataset{
			Headers: []string{"data"},
			Rows:    []map[string]string{{"data": string(raw)}},
		}
	}

	headerSet := map[string]struct{}{}
	for _, item := range items {
		for k := range item {
			headerSet[k] = struct{}{}
		}
	}
	headers := make([]string, 0, len(headerSet))
	for k := range headerSet {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		row := make(map[string]string, len(headers))
		for _, h := range headers {
			row[h] = cellValue(item[h])
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func cellValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
