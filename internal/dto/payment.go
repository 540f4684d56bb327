package dto

// PaymentQuery filters the payments list.
type PaymentQuery struct {
	StudentID string `form:"student_id"`
	BatchID   string `form:"batch_id"`
	Status    string `form:"status" binding:"omitempty,oneof=pending partial paid"`
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// CreatePaymentRequest sets up a payment plan for an enrollment. A non-zero
// Installments splits the amount into an EMI sequence upstream.
type CreatePaymentRequest struct {
	StudentID    string  `json:"student_id" binding:"required"`
	BatchID      string  `json:"batch_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Installments int     `json:"installments" binding:"omitempty,min=1,max=24"`
}

// RecordPaymentRequest records money received against a payment.
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"omitempty,oneof=cash card upi bank_transfer"`
	Note   string  `json:"note"`
}
