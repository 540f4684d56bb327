package report

import (
	"net/url"
	"strings"

	appErrors "github.com/monikajha100/prime-admin-gateway/pkg/errors"
)

// Type identifies one of the nine known report variants.
type Type string

const (
	TypeStudentAttendance    Type = "student-attendance"
	TypeStudentCurrentBatch  Type = "student-current-batch"
	TypeBatchAttendance      Type = "batch-attendance"
	TypeBatchesByFaculty     Type = "batches-by-faculty"
	TypePendingPayments      Type = "pending-payments"
	TypeMonthwisePayments    Type = "monthwise-payments"
	TypeAllAnalysis          Type = "all-analysis"
	TypeStudentsWithoutBatch Type = "students-without-batch"
	TypePortfolioStatus      Type = "portfolio-status"
)

// Filters carries the user-supplied filter values for one generate action.
// Each report type requires a different, non-overlapping subset.
type Filters struct {
	StudentID string `json:"student_id,omitempty"`
	BatchID   string `json:"batch_id,omitempty"`
	FacultyID string `json:"faculty_id,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Month     string `json:"month,omitempty"`
	Year      string `json:"year,omitempty"`
}

// Request is the resolved upstream GET for one generate action.
type Request struct {
	Type  Type
	Path  string
	Query url.Values
}

// BuildRequest validates the mandatory filter for the report type and
// assembles the upstream request. Optional filters are included only when
// non-empty.
func BuildRequest(reportType string, filters Filters) (*Request, error) {
	t := Type(strings.TrimSpace(reportType))
	query := url.Values{}

	switch t {
	case TypeStudentAttendance, TypeStudentCurrentBatch:
		if filters.StudentID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Student ID is required")
		}
		query.Set("studentId", filters.StudentID)
		if t == TypeStudentAttendance {
			addIfPresent(query, "from", filters.From)
			addIfPresent(query, "to", filters.To)
		}
	case TypeBatchAttendance:
		if filters.BatchID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Batch ID is required")
		}
		query.Set("batchId", filters.BatchID)
		addIfPresent(query, "from", filters.From)
		addIfPresent(query, "to", filters.To)
	case TypeBatchesByFaculty:
		addIfPresent(query, "facultyId", filters.FacultyID)
	case TypeMonthwisePayments:
		addIfPresent(query, "month", filters.Month)
		addIfPresent(query, "year", filters.Year)
	case TypePortfolioStatus:
		addIfPresent(query, "batchId", filters.BatchID)
	case TypePendingPayments, TypeAllAnalysis, TypeStudentsWithoutBatch:
		// No mandatory or optional filters.
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid report type")
	}

	return &Request{Type: t, Path: "/reports/" + string(t), Query: query}, nil
}

func addIfPresent(query url.Values, key, value string) {
	if strings.TrimSpace(value) != "" {
		query.Set(key, value)
	}
}
