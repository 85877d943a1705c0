package model

import "time"

// FormStatus enumerates the persistent states of an exam form.
type FormStatus string

const (
	FormStatusPending  FormStatus = "pending"
	FormStatusApproved FormStatus = "approved"
	FormStatusRejected FormStatus = "rejected"
)

// ExamType is the seasonal exam cycle.
type ExamType string

const (
	ExamTypeWinter ExamType = "winter"
	ExamTypeSummer ExamType = "summer"
)

// ExamForm is a student's submitted exam registration. It exists only as a
// side effect of a verified payment: there is no ExamForm row without a paid
// Payment row.
type ExamForm struct {
	ID          int        `json:"id"`
	StudentID   int        `json:"student_id"`
	Branch      string     `json:"branch"`
	Semester    string     `json:"semester"`
	Subjects    []string   `json:"subjects"`
	ExamType    ExamType   `json:"exam_type"`
	Status      FormStatus `json:"status"`
	SubmittedAt time.Time  `json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

// PaymentStatus enumerates payment record states.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment is the one-to-one gateway payment backing an exam form.
// Immutable after creation.
type Payment struct {
	ID          int           `json:"id"`
	ExamFormID  int           `json:"exam_form_id"`
	AmountPaise int64         `json:"amount_paise"`
	OrderID     string        `json:"order_id"`
	PaymentID   string        `json:"payment_id"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
}

// StagedSelection is a student's in-progress exam-form choice, held in Redis
// between form submission and successful payment. Never persisted to Postgres.
type StagedSelection struct {
	Branch   string   `json:"branch"`
	Semester string   `json:"semester"`
	Subjects []string `json:"subjects"`
	ExamType ExamType `json:"exam_type"`
}

// StageFormRequest is the payload for staging an exam-form selection.
type StageFormRequest struct {
	Branch   string   `json:"branch" binding:"required,min=2,max=20"`
	Semester string   `json:"semester" binding:"required,oneof=1 2 3 4 5 6 7 8"`
	Subjects []string `json:"subjects" binding:"required,min=1,dive,required"`
	ExamType ExamType `json:"exam_type" binding:"required,oneof=winter summer"`
}

// CreateOrderResponse returns the gateway order the frontend hands to checkout.
type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	AmountPaise int64  `json:"amount_paise"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id"`
}

// ConfirmPaymentRequest carries the gateway's payment confirmation. Field
// names follow Razorpay's checkout callback payload.
type ConfirmPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// DecideFormRequest is the admin approve/reject action.
type DecideFormRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// FormWithPayment pairs a form with its payment for receipts and dashboards.
type FormWithPayment struct {
	Form    ExamForm `json:"form"`
	Payment *Payment `json:"payment,omitempty"`
}

// FormCounts summarizes forms per status.
type FormCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
