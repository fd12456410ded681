package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMailer struct {
	verifyErr error
}

func (s *stubMailer) Send(ctx context.Context, msg *Message) error { return nil }

func (s *stubMailer) Verify(ctx context.Context) error { return s.verifyErr }

func TestStatus_ZeroValueIsPending(t *testing.T) {
	var s Status
	assert.Equal(t, VerifyPending, s.State())
}

func TestVerifyAsync(t *testing.T) {
	ok := VerifyAsync(context.Background(), &stubMailer{}, nil)
	require.Eventually(t, func() bool { return ok.State() == VerifyOK }, time.Second, 5*time.Millisecond)

	failed := VerifyAsync(context.Background(), &stubMailer{verifyErr: errors.New("535 bad credentials")}, nil)
	require.Eventually(t, func() bool { return failed.State() == VerifyFailed }, time.Second, 5*time.Millisecond)
}
