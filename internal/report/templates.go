package report

import (
	"bytes"
	"encoding/json"
)

// Template names one of the fixed display templates the admin UI renders.
// The server sends no discriminant tag: the template is chosen purely by
// which fields are present in the response payload.
type Template string

const (
	TemplatePendingPayments      Template = "pending-payments"
	TemplateAllAnalysis          Template = "all-analysis"
	TemplateStudentsWithoutBatch Template = "students-without-batch"
	TemplatePortfolioStatus      Template = "portfolio-status"
	TemplateStudentCurrentBatch  Template = "student-current-batch"
	TemplateStudentAttendance    Template = "student-attendance"
	TemplateBatchAttendance      Template = "batch-attendance"
	TemplateBatchesByFaculty     Template = "batches-by-faculty"
	TemplateMonthwisePayments    Template = "monthwise-payments"
	TemplateRawJSON              Template = "raw-json"
)

type fields map[string]json.RawMessage

// templateRules is evaluated strictly in order. Because this is structural
// matching rather than a tagged union, a payload can satisfy more than one
// predicate; the first match wins, so the order here must not be reshuffled.
var templateRules = []struct {
	template Template
	match    func(f fields) bool
}{
	{TemplatePendingPayments, func(f fields) bool {
		return isArray(f["payments"]) && isObject(f["summary"])
	}},
	{TemplateAllAnalysis, func(f fields) bool {
		summary, ok := objectFields(f["summary"])
		return ok && hasKey(summary, "students") && hasKey(summary, "batches")
	}},
	{TemplateStudentsWithoutBatch, func(f fields) bool {
		return isArray(f["students"])
	}},
	{TemplatePortfolioStatus, func(f fields) bool {
		return isArray(f["portfolios"])
	}},
	{TemplateStudentCurrentBatch, func(f fields) bool {
		return isObject(f["student"]) && isObject(f["currentBatch"])
	}},
	{TemplateStudentAttendance, func(f fields) bool {
		return isObject(f["student"]) && isArray(f["attendances"])
	}},
	{TemplateBatchAttendance, func(f fields) bool {
		return isObject(f["batch"]) && isObject(f["statistics"])
	}},
	{TemplateBatchesByFaculty, func(f fields) bool {
		return isArray(f["facultyStatistics"])
	}},
	{TemplateMonthwisePayments, func(f fields) bool {
		return isArray(f["monthlyStatistics"])
	}},
}

// SelectTemplate inspects a decoded report payload and picks the first
// matching template, falling back to raw JSON rendering. Non-object payloads
// always fall through to the fallback.
func SelectTemplate(raw []byte) Template {
	f, ok := objectFields(raw)
	if !ok {
		return TemplateRawJSON
	}
	for _, rule := range templateRules {
		if rule.match(f) {
			return rule.template
		}
	}
	return TemplateRawJSON
}

func objectFields(raw json.RawMessage) (fields, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var f fields
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, false
	}
	return f, true
}

func hasKey(f fields, key string) bool {
	raw, ok := f[key]
	if !ok {
		return false
	}
	return !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
