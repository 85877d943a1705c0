// Package mailer sends lifecycle notification emails. Delivery is strictly
// best-effort: one attempt, no queue, no retry, and transport failures never
// reach the caller.
package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"
)

// Kind selects the notification template and subject.
type Kind string

const (
	KindFormSubmitted  Kind = "submitted"
	KindPaymentSuccess Kind = "payment_success"
	KindFormApproved   Kind = "approved"
	KindFormRejected   Kind = "rejected"
	KindPasswordReset  Kind = "password_reset"
)

// Message is a rendered email ready for transport.
type Message struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender is a mail transport. Implementations must not panic; errors are
// logged by the dispatcher and go nowhere else.
type Sender interface {
	Send(msg *Message) error
}

//go:embed templates/*.gohtml
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))

// SubmittedData fills the form-submitted template.
type SubmittedData struct {
	StudentName string
	Branch      string
	Semester    string
	ExamType    string
	Subjects    []string
}

// PaymentSuccessData fills the payment-success template.
type PaymentSuccessData struct {
	StudentName string
	FormID      int
	AmountText  string
	PaymentID   string
	PaidAt      string
}

// ApprovedData fills the form-approved template.
type ApprovedData struct {
	StudentName string
	FormID      int
	Branch      string
	Semester    string
	ExamType    string
	Subjects    []string
	ApprovedAt  string
}

// RejectedData fills the plain-text rejection notice. Rejections stay
// untemplated while approvals get HTML; the asymmetry is inherited product
// behavior, kept distinct on purpose.
type RejectedData struct {
	StudentName string
	FormID      int
}

// PasswordResetData fills the password-reset template.
type PasswordResetData struct {
	StudentName string
	ResetURL    string
}

var kindSubjects = map[Kind]string{
	KindFormSubmitted:  "Exam Form Submitted Successfully",
	KindPaymentSuccess: "Payment Successful - Form Submitted",
	KindFormApproved:   "Exam Form Approved",
	KindFormRejected:   "Exam Form Rejected",
	KindPasswordReset:  "Password Reset Request",
}

var kindTemplates = map[Kind]string{
	KindFormSubmitted:  "form_submitted.gohtml",
	KindPaymentSuccess: "payment_success.gohtml",
	KindFormApproved:   "form_approved.gohtml",
	KindPasswordReset:  "password_reset.gohtml",
}

// Dispatcher renders and sends notifications. Transport runs on a goroutine
// so lifecycle transitions never wait on mail delivery.
type Dispatcher struct {
	sender Sender
	log    zerolog.Logger
}

func NewDispatcher(sender Sender, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		log:    log.With().Str("component", "mailer").Logger(),
	}
}

// Send renders the notification for kind and dispatches it asynchronously.
// The returned error only reports render problems; callers are free to
// ignore it, and most do.
func (d *Dispatcher) Send(kind Kind, to, toName string, data interface{}) error {
	subject, ok := kindSubjects[kind]
	if !ok {
		return fmt.Errorf("unknown notification kind %q", kind)
	}

	msg := &Message{To: to, ToName: toName, Subject: subject}

	if kind == KindFormRejected {
		rd, ok := data.(RejectedData)
		if !ok {
			return fmt.Errorf("rejected notification needs RejectedData, got %T", data)
		}
		msg.TextBody = fmt.Sprintf("Dear %s,\n\nYour exam form %d has been rejected. Please contact the exam cell for details.\n", rd.StudentName, rd.FormID)
	} else {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, kindTemplates[kind], data); err != nil {
			d.log.Error().Err(err).Str("kind", string(kind)).Msg("Template render failed")
			return fmt.Errorf("render %s: %w", kind, err)
		}
		msg.HTMLBody = buf.String()
		msg.TextBody = fmt.Sprintf("Notification from KDKCE Exam Cell: %s. Open this email in an HTML-capable client for details.", subject)
	}

	go func() {
		if err := d.sender.Send(msg); err != nil {
			d.log.Warn().Err(err).
				Str("kind", string(kind)).
				Str("to", to).
				Msg("Notification delivery failed")
			return
		}
		d.log.Debug().Str("kind", string(kind)).Str("to", to).Msg("Notification sent")
	}()

	return nil
}
