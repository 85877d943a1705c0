package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/kdkce/examreg-backend/internal/config"
	"github.com/kdkce/examreg-backend/internal/curriculum"
	"github.com/kdkce/examreg-backend/internal/gateway"
	"github.com/kdkce/examreg-backend/internal/mailer"
	"github.com/kdkce/examreg-backend/internal/model"
	"github.com/kdkce/examreg-backend/internal/repository"
)

// Exam-form lifecycle errors.
var (
	ErrInvalidSelection    = errors.New("selected subjects not offered for branch and semester")
	ErrStaleSession        = errors.New("staged form expired before payment completed")
	ErrOrderMismatch       = errors.New("confirmation does not match the bound order")
	ErrDuplicateOrder      = errors.New("order already consumed by an earlier confirmation")
	ErrFormNotFound        = errors.New("exam form not found")
	ErrFormNotPending      = errors.New("exam form already decided")
	ErrForbidden           = errors.New("not allowed to access this form")
	ErrReceiptNotAvailable = errors.New("receipt not available")
)

// formStore is the persistence surface the lifecycle needs.
type formStore interface {
	CreateWithPayment(ctx context.Context, form *model.ExamForm, payment *model.Payment) error
	GetByID(ctx context.Context, id int) (*model.ExamForm, error)
	ListByStudent(ctx context.Context, studentID int) ([]model.ExamForm, error)
	ListAll(ctx context.Context) ([]model.ExamForm, error)
	CountsByStatus(ctx context.Context, studentID int) (*model.FormCounts, error)
	TransitionFromPending(ctx context.Context, id int, status model.FormStatus, approvedAt *time.Time) (*model.ExamForm, error)
	GetPayment(ctx context.Context, formID int) (*model.Payment, error)
	ListApprovedWithPayments(ctx context.Context, studentID int) ([]model.FormWithPayment, error)
}

// formStaging is the ephemeral pre-payment state surface.
type formStaging interface {
	Stage(ctx context.Context, studentID int, sel *model.StagedSelection) error
	Staged(ctx context.Context, studentID int) (*model.StagedSelection, error)
	BindOrder(ctx context.Context, studentID int, orderID string) error
	BoundOrder(ctx context.Context, studentID int) (string, error)
	Clear(ctx context.Context, studentID int) error
}

type userGetter interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
}

type notifier interface {
	Send(kind mailer.Kind, to, toName string, data interface{}) error
}

// ExamFormService drives the exam registration lifecycle: stage a selection,
// raise a gateway order, confirm payment (which atomically creates the form),
// and let admins decide it.
type ExamFormService struct {
	cfg     *config.Config
	forms   formStore
	staging formStaging
	gw      gateway.Gateway
	users   userGetter
	notify  notifier
	log     zerolog.Logger
}

// NewExamFormService creates a new ExamFormService.
func NewExamFormService(cfg *config.Config, forms formStore, staging formStaging, gw gateway.Gateway, users userGetter, notify notifier, log zerolog.Logger) *ExamFormService {
	return &ExamFormService{
		cfg:     cfg,
		forms:   forms,
		staging: staging,
		gw:      gw,
		users:   users,
		notify:  notify,
		log:     log.With().Str("component", "examform").Logger(),
	}
}

// Stage validates the selection against the curriculum catalog and holds it
// in Redis until payment. Nothing is persisted yet.
func (s *ExamFormService) Stage(ctx context.Context, studentID int, req *model.StageFormRequest) error {
	if !curriculum.ValidSelection(req.Branch, req.Semester, req.Subjects) {
		return ErrInvalidSelection
	}

	sel := &model.StagedSelection{
		Branch:   req.Branch,
		Semester: req.Semester,
		Subjects: req.Subjects,
		ExamType: req.ExamType,
	}
	if err := s.staging.Stage(ctx, studentID, sel); err != nil {
		return err
	}

	if user, err := s.users.GetByID(ctx, studentID); err == nil {
		_ = s.notify.Send(mailer.KindFormSubmitted, user.Email, user.FullName(), mailer.SubmittedData{
			StudentName: user.FullName(),
			Branch:      sel.Branch,
			Semester:    sel.Semester,
			ExamType:    string(sel.ExamType),
			Subjects:    curriculum.Labels(sel.Branch, sel.Semester, sel.Subjects),
		})
	}
	return nil
}

// StagedSelection returns the student's live staged form, or ErrNoStagedForm.
func (s *ExamFormService) StagedSelection(ctx context.Context, studentID int) (*model.StagedSelection, error) {
	return s.staging.Staged(ctx, studentID)
}

// CreateOrder raises a gateway order for the exam fee and binds it to the
// staged selection. Requires a live staged form.
func (s *ExamFormService) CreateOrder(ctx context.Context, studentID int) (*model.CreateOrderResponse, error) {
	if _, err := s.staging.Staged(ctx, studentID); err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("examform-%d-%d", studentID, time.Now().Unix())
	orderID, err := s.gw.CreateOrder(ctx, s.cfg.ExamFeePaise, s.cfg.Currency, receipt)
	if err != nil {
		return nil, err
	}

	if err := s.staging.BindOrder(ctx, studentID, orderID); err != nil {
		return nil, err
	}

	s.log.Info().Int("student_id", studentID).Str("order_id", orderID).Msg("Gateway order created")
	return &model.CreateOrderResponse{
		OrderID:     orderID,
		AmountPaise: s.cfg.ExamFeePaise,
		Currency:    s.cfg.Currency,
		KeyID:       s.cfg.RazorpayKeyID,
	}, nil
}

// ConfirmPayment verifies the gateway signature and, in one transaction,
// materializes the staged selection as a pending exam form with its paid
// payment. A failed signature leaves the staged state untouched so the
// student can retry checkout. A replayed order id surfaces as
// ErrDuplicateOrder and creates nothing.
func (s *ExamFormService) ConfirmPayment(ctx context.Context, studentID int, req *model.ConfirmPaymentRequest) (*model.FormWithPayment, error) {
	if err := s.gw.Verify(req.OrderID, req.PaymentID, req.Signature); err != nil {
		return nil, err
	}

	sel, err := s.staging.Staged(ctx, studentID)
	if err != nil {
		if errors.Is(err, ErrNoStagedForm) {
			return nil, ErrStaleSession
		}
		return nil, err
	}
	boundOrder, err := s.staging.BoundOrder(ctx, studentID)
	if err != nil {
		if errors.Is(err, ErrNoStagedForm) {
			return nil, ErrStaleSession
		}
		return nil, err
	}
	if boundOrder != req.OrderID {
		return nil, ErrOrderMismatch
	}

	now := time.Now()
	form := &model.ExamForm{
		StudentID: studentID,
		Branch:    sel.Branch,
		Semester:  sel.Semester,
		Subjects:  sel.Subjects,
		ExamType:  sel.ExamType,
		Status:    model.FormStatusPending,
	}
	payment := &model.Payment{
		AmountPaise: s.cfg.ExamFeePaise,
		OrderID:     req.OrderID,
		PaymentID:   req.PaymentID,
		Status:      model.PaymentStatusPaid,
		PaidAt:      &now,
	}

	if err := s.forms.CreateWithPayment(ctx, form, payment); err != nil {
		if errors.Is(err, repository.ErrDuplicateOrder) {
			return nil, ErrDuplicateOrder
		}
		return nil, err
	}

	if err := s.staging.Clear(ctx, studentID); err != nil {
		s.log.Warn().Err(err).Int("student_id", studentID).Msg("Failed to clear staged form after payment")
	}

	s.log.Info().
		Int("student_id", studentID).
		Int("form_id", form.ID).
		Str("order_id", req.OrderID).
		Msg("Exam form submitted")

	if user, err := s.users.GetByID(ctx, studentID); err == nil {
		_ = s.notify.Send(mailer.KindPaymentSuccess, user.Email, user.FullName(), mailer.PaymentSuccessData{
			StudentName: user.FullName(),
			FormID:      form.ID,
			AmountText:  formatPaise(payment.AmountPaise),
			PaymentID:   payment.PaymentID,
			PaidAt:      now.Format("02 Jan 2006 15:04"),
		})
	}

	return &model.FormWithPayment{Form: *form, Payment: payment}, nil
}

// Decide moves a pending form to approved or rejected. Action must be
// "approve" or "reject" (validated at binding). Terminal states are final;
// deciding an already-decided form returns ErrFormNotPending.
func (s *ExamFormService) Decide(ctx context.Context, formID int, action string) (*model.ExamForm, error) {
	var status model.FormStatus
	var approvedAt *time.Time
	if action == "approve" {
		status = model.FormStatusApproved
		now := time.Now()
		approvedAt = &now
	} else {
		status = model.FormStatusRejected
	}

	form, err := s.forms.TransitionFromPending(ctx, formID, status, approvedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		// Distinguish a missing form from an already-decided one.
		if _, getErr := s.forms.GetByID(ctx, formID); errors.Is(getErr, pgx.ErrNoRows) {
			return nil, ErrFormNotFound
		}
		return nil, ErrFormNotPending
	}

	s.log.Info().Int("form_id", formID).Str("status", string(status)).Msg("Exam form decided")

	if user, err := s.users.GetByID(ctx, form.StudentID); err == nil {
		s.sendDecisionNotice(user, form)
	}
	return form, nil
}

func (s *ExamFormService) sendDecisionNotice(user *model.User, form *model.ExamForm) {
	if form.Status == model.FormStatusApproved {
		approvedAt := ""
		if form.ApprovedAt != nil {
			approvedAt = form.ApprovedAt.Format("02 Jan 2006 15:04")
		}
		_ = s.notify.Send(mailer.KindFormApproved, user.Email, user.FullName(), mailer.ApprovedData{
			StudentName: user.FullName(),
			FormID:      form.ID,
			Branch:      form.Branch,
			Semester:    form.Semester,
			ExamType:    string(form.ExamType),
			Subjects:    curriculum.Labels(form.Branch, form.Semester, form.Subjects),
			ApprovedAt:  approvedAt,
		})
		return
	}
	_ = s.notify.Send(mailer.KindFormRejected, user.Email, user.FullName(), mailer.RejectedData{
		StudentName: user.FullName(),
		FormID:      form.ID,
	})
}

// Detail returns a form with its payment. Students may only see their own
// forms; admins see any.
func (s *ExamFormService) Detail(ctx context.Context, formID, requesterID int, role model.Role) (*model.FormWithPayment, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if role != model.RoleAdmin && form.StudentID != requesterID {
		return nil, ErrForbidden
	}

	payment, err := s.forms.GetPayment(ctx, formID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return &model.FormWithPayment{Form: *form, Payment: payment}, nil
}

// ListForStudent returns a student's forms, newest first.
func (s *ExamFormService) ListForStudent(ctx context.Context, studentID int) ([]model.ExamForm, error) {
	return s.forms.ListByStudent(ctx, studentID)
}

// ListAll returns every form for the admin review queue.
func (s *ExamFormService) ListAll(ctx context.Context) ([]model.ExamForm, error) {
	return s.forms.ListAll(ctx)
}

// Counts aggregates forms per status. studentID 0 means all students.
func (s *ExamFormService) Counts(ctx context.Context, studentID int) (*model.FormCounts, error) {
	return s.forms.CountsByStatus(ctx, studentID)
}

// Receipts lists a student's approved, paid forms with their payments.
func (s *ExamFormService) Receipts(ctx context.Context, studentID int) ([]model.FormWithPayment, error) {
	return s.forms.ListApprovedWithPayments(ctx, studentID)
}

// Receipt returns one receipt. Only the owning student's approved forms
// with a paid payment qualify.
func (s *ExamFormService) Receipt(ctx context.Context, formID, studentID int) (*model.FormWithPayment, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if form.StudentID != studentID {
		return nil, ErrForbidden
	}
	if form.Status != model.FormStatusApproved {
		return nil, ErrReceiptNotAvailable
	}

	payment, err := s.forms.GetPayment(ctx, formID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiptNotAvailable
		}
		return nil, err
	}
	if payment.Status != model.PaymentStatusPaid {
		return nil, ErrReceiptNotAvailable
	}
	return &model.FormWithPayment{Form: *form, Payment: payment}, nil
}

// formatPaise renders a minor-unit amount as rupees for display.
func formatPaise(paise int64) string {
	return fmt.Sprintf("₹%d.%02d", paise/100, paise%100)
}
