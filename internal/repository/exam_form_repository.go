package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kdkce/examreg-backend/internal/model"
)

// ExamFormRepository handles exam-form and payment data access.
type ExamFormRepository struct {
	pool *pgxpool.Pool
}

// NewExamFormRepository creates a new ExamFormRepository.
func NewExamFormRepository(pool *pgxpool.Pool) *ExamFormRepository {
	return &ExamFormRepository{pool: pool}
}

const formColumns = `id, student_id, branch, semester, subjects, exam_type, status, submitted_at, approved_at`

func scanForm(row interface{ Scan(...any) error }) (*model.ExamForm, error) {
	f := &model.ExamForm{}
	var subjects string
	err := row.Scan(&f.ID, &f.StudentID, &f.Branch, &f.Semester, &subjects,
		&f.ExamType, &f.Status, &f.SubmittedAt, &f.ApprovedAt)
	if err != nil {
		return nil, err
	}
	f.Subjects = splitSubjects(subjects)
	return f, nil
}

// Subjects are stored as a comma-joined text column, matching the catalog's
// code format (codes never contain commas).
func joinSubjects(codes []string) string { return strings.Join(codes, ",") }

func splitSubjects(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// CreateWithPayment inserts an exam form and its payment as one transaction,
// so a crash between the two inserts can never leave a form without a paid
// payment. Returns ErrDuplicateOrder when the gateway order id was already
// consumed (replayed confirmation).
func (r *ExamFormRepository) CreateWithPayment(ctx context.Context, form *model.ExamForm, payment *model.Payment) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO exam_forms (student_id, branch, semester, subjects, exam_type, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, submitted_at`,
		form.StudentID, form.Branch, form.Semester, joinSubjects(form.Subjects),
		form.ExamType, form.Status,
	).Scan(&form.ID, &form.SubmittedAt)
	if err != nil {
		return err
	}

	payment.ExamFormID = form.ID
	err = tx.QueryRow(ctx,
		`INSERT INTO payments (exam_form_id, amount_paise, order_id, payment_id, status, paid_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		payment.ExamFormID, payment.AmountPaise, payment.OrderID, payment.PaymentID,
		payment.Status, payment.PaidAt,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateOrder
		}
		return err
	}

	return tx.Commit(ctx)
}

// GetByID retrieves an exam form.
func (r *ExamFormRepository) GetByID(ctx context.Context, id int) (*model.ExamForm, error) {
	return scanForm(r.pool.QueryRow(ctx,
		`SELECT `+formColumns+` FROM exam_forms WHERE id = $1`, id))
}

// ListByStudent retrieves a student's forms, newest first.
func (r *ExamFormRepository) ListByStudent(ctx context.Context, studentID int) ([]model.ExamForm, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+formColumns+` FROM exam_forms WHERE student_id = $1 ORDER BY submitted_at DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectForms(rows)
}

// ListAll retrieves every form, newest first. Admin dashboard view.
func (r *ExamFormRepository) ListAll(ctx context.Context) ([]model.ExamForm, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+formColumns+` FROM exam_forms ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectForms(rows)
}

func collectForms(rows pgx.Rows) ([]model.ExamForm, error) {
	forms := []model.ExamForm{}
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, *f)
	}
	return forms, rows.Err()
}

// CountsByStatus aggregates form counts. Pass studentID=0 for the global
// (admin) totals.
func (r *ExamFormRepository) CountsByStatus(ctx context.Context, studentID int) (*model.FormCounts, error) {
	query := `SELECT COUNT(*),
	                 COUNT(*) FILTER (WHERE status = 'pending'),
	                 COUNT(*) FILTER (WHERE status = 'approved'),
	                 COUNT(*) FILTER (WHERE status = 'rejected')
	          FROM exam_forms`
	var args []any
	if studentID > 0 {
		query += ` WHERE student_id = $1`
		args = append(args, studentID)
	}

	c := &model.FormCounts{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(&c.Total, &c.Pending, &c.Approved, &c.Rejected)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// TransitionFromPending moves a pending form to a terminal status. Returns
// pgx.ErrNoRows if the form is absent or no longer pending, which keeps the
// approve/reject transition race-safe under concurrent admin actions.
func (r *ExamFormRepository) TransitionFromPending(ctx context.Context, id int, status model.FormStatus, approvedAt *time.Time) (*model.ExamForm, error) {
	return scanForm(r.pool.QueryRow(ctx,
		`UPDATE exam_forms SET status = $1, approved_at = $2
		 WHERE id = $3 AND status = 'pending'
		 RETURNING `+formColumns, status, approvedAt, id))
}

// GetPayment retrieves the payment backing a form.
func (r *ExamFormRepository) GetPayment(ctx context.Context, formID int) (*model.Payment, error) {
	p := &model.Payment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_form_id, amount_paise, order_id, payment_id, status, created_at, paid_at
		 FROM payments WHERE exam_form_id = $1`, formID,
	).Scan(&p.ID, &p.ExamFormID, &p.AmountPaise, &p.OrderID, &p.PaymentID,
		&p.Status, &p.CreatedAt, &p.PaidAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListApprovedWithPayments retrieves a student's approved forms joined with
// their paid payments. Receipt listing.
func (r *ExamFormRepository) ListApprovedWithPayments(ctx context.Context, studentID int) ([]model.FormWithPayment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT f.id, f.student_id, f.branch, f.semester, f.subjects, f.exam_type,
		        f.status, f.submitted_at, f.approved_at,
		        p.id, p.exam_form_id, p.amount_paise, p.order_id, p.payment_id,
		        p.status, p.created_at, p.paid_at
		 FROM exam_forms f
		 JOIN payments p ON p.exam_form_id = f.id
		 WHERE f.student_id = $1 AND f.status = 'approved' AND p.status = 'paid'
		 ORDER BY f.submitted_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.FormWithPayment{}
	for rows.Next() {
		var f model.ExamForm
		var p model.Payment
		var subjects string
		if err := rows.Scan(&f.ID, &f.StudentID, &f.Branch, &f.Semester, &subjects,
			&f.ExamType, &f.Status, &f.SubmittedAt, &f.ApprovedAt,
			&p.ID, &p.ExamFormID, &p.AmountPaise, &p.OrderID, &p.PaymentID,
			&p.Status, &p.CreatedAt, &p.PaidAt); err != nil {
			return nil, err
		}
		f.Subjects = splitSubjects(subjects)
		out = append(out, model.FormWithPayment{Form: f, Payment: &p})
	}
	return out, rows.Err()
}
