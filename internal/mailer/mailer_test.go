package mailer

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (s *recordingSender) Send(msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, *msg)
	return nil
}

func (s *recordingSender) wait(t *testing.T, n int) []Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		if len(s.sent) >= n {
			out := append([]Message(nil), s.sent...)
			s.mu.Unlock()
			return out
		}
		s.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d sent messages", n)
	return nil
}

func testLog() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

func TestDispatcherSendsTemplatedKinds(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, testLog())

	err := d.Send(KindFormSubmitted, "s1@kdkce.edu.in", "Asha Rao", SubmittedData{
		StudentName: "Asha Rao",
		Branch:      "cse",
		Semester:    "3",
		ExamType:    "winter",
		Subjects:    []string{"Data Structures"},
	})
	require.NoError(t, err)

	sent := sender.wait(t, 1)
	assert.Equal(t, "s1@kdkce.edu.in", sent[0].To)
	assert.Equal(t, "Exam Form Submitted Successfully", sent[0].Subject)
	assert.Contains(t, sent[0].HTMLBody, "Asha Rao")
	assert.Contains(t, sent[0].HTMLBody, "Data Structures")
	assert.NotEmpty(t, sent[0].TextBody)
}

func TestDispatcherRejectedIsPlainText(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, testLog())

	err := d.Send(KindFormRejected, "s1@kdkce.edu.in", "Asha Rao", RejectedData{StudentName: "Asha Rao", FormID: 7})
	require.NoError(t, err)

	sent := sender.wait(t, 1)
	assert.Empty(t, sent[0].HTMLBody)
	assert.Contains(t, sent[0].TextBody, "exam form 7")
	assert.Contains(t, sent[0].TextBody, "rejected")
}

func TestDispatcherTransportFailureIsSwallowed(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	d := NewDispatcher(sender, testLog())

	// Transport failure must not surface; only render errors do.
	err := d.Send(KindPaymentSuccess, "s1@kdkce.edu.in", "Asha Rao", PaymentSuccessData{
		StudentName: "Asha Rao", FormID: 1, AmountText: "INR 100.00", PaymentID: "pay_x", PaidAt: "now",
	})
	assert.NoError(t, err)
}

func TestDispatcherRejectsWrongData(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, testLog())

	assert.Error(t, d.Send(KindFormRejected, "x@kdkce.edu.in", "X", "not rejected data"))
	assert.Error(t, d.Send(Kind("bogus"), "x@kdkce.edu.in", "X", nil))
}
