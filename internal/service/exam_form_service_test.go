package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdkce/examreg-backend/internal/config"
	"github.com/kdkce/examreg-backend/internal/gateway"
	"github.com/kdkce/examreg-backend/internal/mailer"
	"github.com/kdkce/examreg-backend/internal/model"
	"github.com/kdkce/examreg-backend/internal/repository"
)

const testSecret = "test-gateway-secret"

// ─── In-memory fakes ───────────────────────────────────────────────────

type memFormStore struct {
	mu       sync.Mutex
	nextID   int
	forms    map[int]*model.ExamForm
	payments map[int]*model.Payment // keyed by form id
	orders   map[string]bool        // consumed gateway order ids
}

func newMemFormStore() *memFormStore {
	return &memFormStore{
		forms:    map[int]*model.ExamForm{},
		payments: map[int]*model.Payment{},
		orders:   map[string]bool{},
	}
}

func (m *memFormStore) CreateWithPayment(_ context.Context, form *model.ExamForm, payment *model.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.orders[payment.OrderID] {
		return repository.ErrDuplicateOrder
	}
	m.nextID++
	form.ID = m.nextID
	form.SubmittedAt = time.Now()
	payment.ID = m.nextID
	payment.ExamFormID = form.ID
	payment.CreatedAt = time.Now()

	cf, cp := *form, *payment
	m.forms[form.ID] = &cf
	m.payments[form.ID] = &cp
	m.orders[payment.OrderID] = true
	return nil
}

func (m *memFormStore) GetByID(_ context.Context, id int) (*model.ExamForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.forms[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cf := *f
	return &cf, nil
}

func (m *memFormStore) ListByStudent(_ context.Context, studentID int) ([]model.ExamForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.ExamForm{}
	for _, f := range m.forms {
		if f.StudentID == studentID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *memFormStore) ListAll(_ context.Context) ([]model.ExamForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.ExamForm{}
	for _, f := range m.forms {
		out = append(out, *f)
	}
	return out, nil
}

func (m *memFormStore) CountsByStatus(_ context.Context, studentID int) (*model.FormCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &model.FormCounts{}
	for _, f := range m.forms {
		if studentID > 0 && f.StudentID != studentID {
			continue
		}
		c.Total++
		switch f.Status {
		case model.FormStatusPending:
			c.Pending++
		case model.FormStatusApproved:
			c.Approved++
		case model.FormStatusRejected:
			c.Rejected++
		}
	}
	return c, nil
}

func (m *memFormStore) TransitionFromPending(_ context.Context, id int, status model.FormStatus, approvedAt *time.Time) (*model.ExamForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.forms[id]
	if !ok || f.Status != model.FormStatusPending {
		return nil, pgx.ErrNoRows
	}
	f.Status = status
	f.ApprovedAt = approvedAt
	cf := *f
	return &cf, nil
}

func (m *memFormStore) GetPayment(_ context.Context, formID int) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[formID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *memFormStore) ListApprovedWithPayments(_ context.Context, studentID int) ([]model.FormWithPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.FormWithPayment{}
	for id, f := range m.forms {
		p := m.payments[id]
		if f.StudentID == studentID && f.Status == model.FormStatusApproved && p != nil && p.Status == model.PaymentStatusPaid {
			cf, cp := *f, *p
			out = append(out, model.FormWithPayment{Form: cf, Payment: &cp})
		}
	}
	return out, nil
}

type memStaging struct {
	mu     sync.Mutex
	staged map[int]*model.StagedSelection
	orders map[int]string
}

func newMemStaging() *memStaging {
	return &memStaging{staged: map[int]*model.StagedSelection{}, orders: map[int]string{}}
}

func (m *memStaging) Stage(_ context.Context, studentID int, sel *model.StagedSelection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cs := *sel
	m.staged[studentID] = &cs
	delete(m.orders, studentID)
	return nil
}

func (m *memStaging) Staged(_ context.Context, studentID int) (*model.StagedSelection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sel, ok := m.staged[studentID]
	if !ok {
		return nil, ErrNoStagedForm
	}
	cs := *sel
	return &cs, nil
}

func (m *memStaging) BindOrder(_ context.Context, studentID int, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[studentID] = orderID
	return nil
}

func (m *memStaging) BoundOrder(_ context.Context, studentID int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	orderID, ok := m.orders[studentID]
	if !ok {
		return "", ErrNoStagedForm
	}
	return orderID, nil
}

func (m *memStaging) Clear(_ context.Context, studentID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.staged, studentID)
	delete(m.orders, studentID)
	return nil
}

type memUsers struct {
	users map[int]*model.User
}

func (m *memUsers) GetByID(_ context.Context, id int) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	kinds []mailer.Kind
}

func (n *recordingNotifier) Send(kind mailer.Kind, _, _ string, _ interface{}) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kinds = append(n.kinds, kind)
	return nil
}

func (n *recordingNotifier) sent() []mailer.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]mailer.Kind{}, n.kinds...)
}

// ─── Fixture ───────────────────────────────────────────────────────────

type fixture struct {
	svc     *ExamFormService
	store   *memFormStore
	staging *memStaging
	notify  *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{
		ExamFeePaise:  10000,
		Currency:      "INR",
		RazorpayKeyID: "rzp_test_key",
	}
	store := newMemFormStore()
	staging := newMemStaging()
	notify := &recordingNotifier{}
	users := &memUsers{users: map[int]*model.User{
		7: {ID: 7, Username: "s7", Email: "s7@kdkce.edu.in", FirstName: "Asha", LastName: "Rao", Role: model.RoleStudent},
	}}

	svc := NewExamFormService(cfg, store, staging, gateway.NewMock(testSecret), users, notify, zerolog.Nop())
	return &fixture{svc: svc, store: store, staging: staging, notify: notify}
}

func validStageRequest() *model.StageFormRequest {
	return &model.StageFormRequest{
		Branch:   "cse",
		Semester: "3",
		Subjects: []string{"applied_mathematics_iii", "data_structures"},
		ExamType: model.ExamTypeWinter,
	}
}

// stageAndOrder runs the pre-payment half of the flow.
func (f *fixture) stageAndOrder(t *testing.T) *model.CreateOrderResponse {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.svc.Stage(ctx, 7, validStageRequest()))
	order, err := f.svc.CreateOrder(ctx, 7)
	require.NoError(t, err)
	return order
}

func confirmation(orderID string) *model.ConfirmPaymentRequest {
	return &model.ConfirmPaymentRequest{
		OrderID:   orderID,
		PaymentID: "pay_test_001",
		Signature: gateway.Sign(orderID, "pay_test_001", testSecret),
	}
}

// ─── Tests ─────────────────────────────────────────────────────────────

func TestStageRejectsSubjectsOutsideCatalog(t *testing.T) {
	f := newFixture(t)
	req := validStageRequest()
	req.Subjects = append(req.Subjects, "quantum_basket_weaving")

	err := f.svc.Stage(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = f.staging.Staged(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNoStagedForm)
}

func TestCreateOrderRequiresStagedForm(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateOrder(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNoStagedForm)
}

func TestConfirmPaymentHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.stageAndOrder(t)

	result, err := f.svc.ConfirmPayment(ctx, 7, confirmation(order.OrderID))
	require.NoError(t, err)

	assert.Equal(t, model.FormStatusPending, result.Form.Status)
	assert.Equal(t, 7, result.Form.StudentID)
	assert.Equal(t, model.PaymentStatusPaid, result.Payment.Status)
	assert.Equal(t, int64(10000), result.Payment.AmountPaise)
	assert.NotNil(t, result.Payment.PaidAt)

	// Staged state is gone; a second confirmation has nothing to work with.
	_, err = f.staging.Staged(ctx, 7)
	assert.ErrorIs(t, err, ErrNoStagedForm)

	kinds := f.notify.sent()
	assert.Contains(t, kinds, mailer.KindFormSubmitted)
	assert.Contains(t, kinds, mailer.KindPaymentSuccess)
}

func TestConfirmPaymentBadSignatureLeavesStagingIntact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.stageAndOrder(t)

	req := confirmation(order.OrderID)
	req.Signature = "deadbeef"

	_, err := f.svc.ConfirmPayment(ctx, 7, req)
	assert.ErrorIs(t, err, gateway.ErrSignatureInvalid)

	// Nothing persisted, staging still live so the student can retry.
	forms, _ := f.store.ListByStudent(ctx, 7)
	assert.Empty(t, forms)
	_, err = f.staging.Staged(ctx, 7)
	assert.NoError(t, err)
}

func TestConfirmPaymentAfterExpiryIsStale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.stageAndOrder(t)

	// Simulate TTL expiry between checkout and confirmation.
	require.NoError(t, f.staging.Clear(ctx, 7))

	_, err := f.svc.ConfirmPayment(ctx, 7, confirmation(order.OrderID))
	assert.ErrorIs(t, err, ErrStaleSession)

	forms, _ := f.store.ListByStudent(ctx, 7)
	assert.Empty(t, forms)
}

func TestConfirmPaymentOrderMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stageAndOrder(t)

	_, err := f.svc.ConfirmPayment(ctx, 7, confirmation("order_mock_other"))
	assert.ErrorIs(t, err, ErrOrderMismatch)
}

func TestConfirmPaymentReplayedOrderIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.stageAndOrder(t)

	_, err := f.svc.ConfirmPayment(ctx, 7, confirmation(order.OrderID))
	require.NoError(t, err)

	// Re-stage and rebind the already-consumed order id, then replay.
	require.NoError(t, f.svc.Stage(ctx, 7, validStageRequest()))
	require.NoError(t, f.staging.BindOrder(ctx, 7, order.OrderID))

	_, err = f.svc.ConfirmPayment(ctx, 7, confirmation(order.OrderID))
	assert.ErrorIs(t, err, ErrDuplicateOrder)

	forms, _ := f.store.ListByStudent(ctx, 7)
	assert.Len(t, forms, 1)
}

func TestDecideApproveSetsTimestampAndIsFinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.stageAndOrder(t)
	result, err := f.svc.ConfirmPayment(ctx, 7, confirmation(order.OrderID))
	require.NoError(t, err)

	form, err := f.svc.Decide(ctx, result.Form.ID, "approve")
	require.NoError(t, err)
	assert.Equal(t, model.FormStatusApproved, form.Status)
	assert.NotNil(t, form.ApprovedAt)
	assert.Contains(t, f.notify.sent(), mailer.KindFormApproved)

	// Terminal states are final in both directions.
	_, err = f.svc.Decide(ctx, result.Form.ID, "reject")
	assert.ErrorIs(t, err, ErrFormNotPending)
	_, err = f.svc.Decide(ctx, result.Form.ID, "approve")
	assert.ErrorIs(t, err, ErrFormNotPending)
}

func TestDecideRejectLeavesApprovedAtEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.stageAndOrder(t)
	result, err := f.svc.ConfirmPayment(ctx, 7, confirmation(order.OrderID))
	require.NoError(t, err)

	form, err := f.svc.Decide(ctx, result.Form.ID, "reject")
	require.NoError(t, err)
	assert.Equal(t, model.FormStatusRejected, form.Status)
	assert.Nil(t, form.ApprovedAt)
	assert.Contains(t, f.notify.sent(), mailer.KindFormRejected)
}

func TestDecideUnknownForm(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Decide(context.Background(), 999, "approve")
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestDetailEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.stageAndOrder(t)
	result, err := f.svc.ConfirmPayment(ctx, 7, confirmation(order.OrderID))
	require.NoError(t, err)

	_, err = f.svc.Detail(ctx, result.Form.ID, 8, model.RoleStudent)
	assert.ErrorIs(t, err, ErrForbidden)

	detail, err := f.svc.Detail(ctx, result.Form.ID, 1, model.RoleAdmin)
	require.NoError(t, err)
	assert.NotNil(t, detail.Payment)
}

func TestReceiptOnlyForApprovedPaidForms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.stageAndOrder(t)
	result, err := f.svc.ConfirmPayment(ctx, 7, confirmation(order.OrderID))
	require.NoError(t, err)

	_, err = f.svc.Receipt(ctx, result.Form.ID, 7)
	assert.ErrorIs(t, err, ErrReceiptNotAvailable)

	_, err = f.svc.Decide(ctx, result.Form.ID, "approve")
	require.NoError(t, err)

	receipt, err := f.svc.Receipt(ctx, result.Form.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, receipt.Payment.Status)

	_, err = f.svc.Receipt(ctx, result.Form.ID, 8)
	assert.ErrorIs(t, err, ErrForbidden)

	receipts, err := f.svc.Receipts(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, receipts, 1)
}
