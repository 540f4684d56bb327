package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
)

func TestBuildRequestMandatoryStudentID(t *testing.T) {
	_, err := BuildRequest("student-attendance", Filters{})
	require.Error(t, err)
	assert.Equal(t, "Student ID is required", appErrors.FromError(err).Message)

	_, err = BuildRequest("student-current-batch", Filters{})
	require.Error(t, err)
	assert.Equal(t, "Student ID is required", appErrors.FromError(err).Message)
}

func TestBuildRequestMandatoryBatchID(t *testing.T) {
	_, err := BuildRequest("batch-attendance", Filters{})
	require.Error(t, err)
	assert.Equal(t, "Batch ID is required", appErrors.FromError(err).Message)
}

func TestBuildRequestInvalidType(t *testing.T) {
	_, err := BuildRequest("weekly-digest", Filters{})
	require.Error(t, err)
	assert.Equal(t, "Invalid report type", appErrors.FromError(err).Message)
}

func TestBuildRequestNoMandatoryFilter(t *testing.T) {
	req, err := BuildRequest("pending-payments", Filters{})
	require.NoError(t, err)
	assert.Equal(t, "/reports/pending-payments", req.Path)
	assert.Empty(t, req.Query)
}

func TestBuildRequestOptionalFilters(t *testing.T) {
	req, err := BuildRequest("student-attendance", Filters{StudentID: "stu-1", From: "2026-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "stu-1", req.Query.Get("studentId"))
	assert.Equal(t, "2026-01-01", req.Query.Get("from"))
	assert.False(t, req.Query.Has("to"), "empty optional filters are omitted")

	req, err = BuildRequest("monthwise-payments", Filters{Month: "3", Year: "2026"})
	require.NoError(t, err)
	assert.Equal(t, "3", req.Query.Get("month"))
	assert.Equal(t, "2026", req.Query.Get("year"))

	req, err = BuildRequest("batches-by-faculty", Filters{})
	require.NoError(t, err)
	assert.False(t, req.Query.Has("facultyId"))
}

func TestSelectTemplatePriorityOrder(t *testing.T) {
	// Crafted to satisfy both the pending-payments and all-analysis
	// predicates; the earlier rule must win deterministically.
	payload := []byte(`{
		"payments": [],
		"summary": {"students": 10, "batches": 2}
	}`)
	assert.Equal(t, TemplatePendingPayments, SelectTemplate(payload))
}

func TestSelectTemplatePerShape(t *testing.T) {
	cases := []struct {
		name     string
		payload  string
		expected Template
	}{
		{"all analysis", `{"summary":{"students":5,"batches":1}}`, TemplateAllAnalysis},
		{"students without batch", `{"students":[{"id":"s1"}]}`, TemplateStudentsWithoutBatch},
		{"portfolio status", `{"portfolios":[]}`, TemplatePortfolioStatus},
		{"student current batch", `{"student":{"id":"s1"},"currentBatch":{"id":"b1"}}`, TemplateStudentCurrentBatch},
		{"student attendance", `{"student":{"id":"s1"},"attendances":[]}`, TemplateStudentAttendance},
		{"batch attendance", `{"batch":{"id":"b1"},"statistics":{"present":3}}`, TemplateBatchAttendance},
		{"batches by faculty", `{"facultyStatistics":[]}`, TemplateBatchesByFaculty},
		{"monthwise payments", `{"monthlyStatistics":[]}`, TemplateMonthwisePayments},
		{"fallback", `{"unexpected":true}`, TemplateRawJSON},
		{"non-object", `[1,2,3]`, TemplateRawJSON},
		{"null summary does not count", `{"summary":null,"payments":[]}`, TemplateRawJSON},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SelectTemplate([]byte(tc.payload)))
		})
	}
}

func TestSelectTemplateStudentShapesAreOrderDependent(t *testing.T) {
	// A payload with student, currentBatch and attendances matches the
	// current-batch rule first by source order.
	payload := []byte(`{"student":{},"currentBatch":{},"attendances":[]}`)
	assert.Equal(t, TemplateStudentCurrentBatch, SelectTemplate(payload))
}
