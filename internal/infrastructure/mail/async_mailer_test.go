package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

type slowMailer struct {
	mu      sync.Mutex
	release chan struct{}
	sent    []ports.Mail
	err     error
}

func (s *slowMailer) Send(_ context.Context, msg ports.Mail) error {
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *slowMailer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestAsyncMailer_NoEsperaAlSMTP(t *testing.T) {
	next := &slowMailer{release: make(chan struct{})}
	m := NewAsyncMailer(next, 4, logger.Nop())

	start := time.Now()
	require.NoError(t, m.Send(context.Background(), ports.Mail{To: []string{"ana@acme.test"}, TextBody: "x"}))
	assert.Less(t, time.Since(start), 100*time.Millisecond, "Send vuelve antes de la entrega")
	assert.Zero(t, next.count())

	close(next.release)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Close(ctx))
	assert.Equal(t, 1, next.count(), "Close vacía la cola")

	assert.ErrorIs(t, m.Send(context.Background(), ports.Mail{To: []string{"ana@acme.test"}}), ErrClosed)
}

func TestAsyncMailer_ColaLlenaYErrores(t *testing.T) {
	next := &slowMailer{release: make(chan struct{}), err: errors.New("smtp caído")}
	m := NewAsyncMailer(next, 1, logger.Nop())
	msg := ports.Mail{To: []string{"ana@acme.test"}, TextBody: "x"}

	assert.ErrorIs(t, m.Send(context.Background(), ports.Mail{}), ErrNoRecipients)

	// el worker toma el primero y queda bloqueado; el segundo ocupa la cola
	require.NoError(t, m.Send(context.Background(), msg))
	require.Eventually(t, func() bool { return len(m.queue) == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, m.Send(context.Background(), msg))
	assert.ErrorIs(t, m.Send(context.Background(), msg), ErrQueueFull)

	close(next.release)
	require.NoError(t, m.Close(context.Background()))
	assert.Equal(t, 2, next.count(), "un fallo de entrega no detiene el worker")
}

func TestAsyncMailer_CloseRespetaContexto(t *testing.T) {
	next := &slowMailer{release: make(chan struct{})}
	defer close(next.release)
	m := NewAsyncMailer(next, 1, logger.Nop())
	require.NoError(t, m.Send(context.Background(), ports.Mail{To: []string{"ana@acme.test"}, TextBody: "x"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, m.Close(ctx), context.DeadlineExceeded)
}
