package models

import "time"

// PaymentStatus tracks how much of an EMI record has been collected.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Valid returns true when the status is a supported value.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid:
		return true
	default:
		return false
	}
}

// Payment is an installment (EMI) record with amount/paid/outstanding tracking.
type Payment struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"student_id"`
	BatchID     string        `json:"batch_id"`
	Sequence    int           `json:"sequence"`
	Amount      float64       `json:"amount"`
	Paid        float64       `json:"paid"`
	Outstanding float64       `json:"outstanding"`
	Status      PaymentStatus `json:"status"`
	DueDate     string        `json:"due_date"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// PaymentFilter captures list query parameters forwarded upstream.
type PaymentFilter struct {
	StudentID string
	BatchID   string
	Status    string
	Page      int
	PageSize  int
}
