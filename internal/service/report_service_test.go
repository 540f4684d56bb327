package service

import (
	"context"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
	"github.com/monikajha100/prime-admin-gateway/pkg/storage"
)

type reportUpstreamStub struct {
	payload  []byte
	lastPath string
	lastQ    url.Values
}

func (s *reportUpstreamStub) FetchReport(ctx context.Context, token, path string, query url.Values) ([]byte, error) {
	s.lastPath = path
	s.lastQ = query
	return s.payload, nil
}

func (s *reportUpstreamStub) DownloadReport(ctx context.Context, token, reportType string, query url.Values) ([]byte, string, error) {
	return []byte("a,b\n1,2\n"), "text/csv", nil
}

func newTestReportService(t *testing.T, stub *reportUpstreamStub) *ReportService {
	t.Helper()
	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSigner("test-secret", time.Minute)
	return NewReportService(stub, files, signer, 1, nil)
}

func TestReportGenerateClassifiesPayload(t *testing.T) {
	stub := &reportUpstreamStub{payload: []byte(`{"payments":[],"summary":{"totalOutstanding":0}}`)}
	svc := newTestReportService(t, stub)

	resp, err := svc.Generate(context.Background(), "tok", "pending-payments", dto.ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, "pending-payments", resp.Type)
	assert.Equal(t, "pending-payments", resp.Template)
	assert.JSONEq(t, string(stub.payload), string(resp.Data))
}

func TestReportGenerateMissingFilter(t *testing.T) {
	svc := newTestReportService(t, &reportUpstreamStub{})

	_, err := svc.Generate(context.Background(), "tok", "student-attendance", dto.ReportQuery{})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Student ID is required", appErr.Message)
}

func TestReportDownloadFilename(t *testing.T) {
	svc := newTestReportService(t, &reportUpstreamStub{})
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC) }

	blob, contentType, filename, err := svc.Download(context.Background(), "tok", "all-analysis", dto.ReportQuery{})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "all-analysis-2026-09-01.csv", filename)
	assert.NotEmpty(t, blob)
}

func TestReportExportRejectsUnknownFormat(t *testing.T) {
	svc := newTestReportService(t, &reportUpstreamStub{})

	_, err := svc.Export(context.Background(), "tok", "all-analysis", "xlsx", dto.ReportQuery{})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestReportExportRenderAndSignedDownload(t *testing.T) {
	stub := &reportUpstreamStub{payload: []byte(`[{"name":"Asha","total":3},{"name":"Badri","total":1}]`)}
	svc := newTestReportService(t, stub)
	svc.StartWorkers(context.Background())
	defer svc.Stop()

	job, err := svc.Export(context.Background(), "tok", "students-without-batch", "csv", dto.ReportQuery{})
	require.NoError(t, err)

	var link *dto.DownloadLinkResponse
	require.Eventually(t, func() bool {
		l, err := svc.DownloadLink(context.Background(), job.Filename)
		if err != nil {
			return false
		}
		link = l
		return true
	}, 2*time.Second, 10*time.Millisecond, "export was never rendered")
	require.NotEmpty(t, link.Token)

	f, name, err := svc.ResolveDownload(link.Token)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, job.Filename, name)

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(content), "name,total")
	assert.Contains(t, string(content), "Asha,3")
}

func TestReportResolveDownloadRejectsTamperedToken(t *testing.T) {
	svc := newTestReportService(t, &reportUpstreamStub{})

	_, _, err := svc.ResolveDownload("bad.token.value.sig")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestTabulateFallsBackToRawColumn(t *testing.T) {
	ds := tabulate([]byte(`{"not":"an array"}`))
	require.Equal(t, []string{"data"}, ds.Headers)
	require.Len(t, ds.Rows, 1)
	assert.Contains(t, ds.Rows[0]["data"], "an array")
}
