package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/internal/application/usecase"
	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/infrastructure/memory"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

type stubMailer struct {
	sent []ports.Mail
	err  error
}

func (m *stubMailer) Send(_ context.Context, msg ports.Mail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestContactSubmit_GuardaYReenvia(t *testing.T) {
	s := memory.NewStore()
	mailer := &stubMailer{}
	uc := usecase.NewContactUseCase(memory.NewContactRepository(s), mailer, "ventas@mercado.test", logger.Nop())

	out, err := uc.Submit(context.Background(), dto.ContactRequest{
		Name: " Luis ", Email: "Luis@Cliente.test", Message: "Necesito <b>1000</b> piezas",
	})
	require.NoError(t, err)
	assert.Equal(t, "Luis", out.Name)
	assert.Equal(t, "luis@cliente.test", out.Email)
	assert.Equal(t, usecase.ContactStatusNew, out.Status)

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, []string{"ventas@mercado.test"}, msg.To)
	assert.Equal(t, "luis@cliente.test", msg.ReplyTo)
	assert.Contains(t, msg.HTMLBody, "&lt;b&gt;1000&lt;/b&gt;")
	assert.Equal(t, "[Contacto] Nuevo mensaje de contacto", msg.Subject)
}

func TestContactSubmit_FalloDeCorreoNoPierdeMensaje(t *testing.T) {
	s := memory.NewStore()
	uc := usecase.NewContactUseCase(memory.NewContactRepository(s), &stubMailer{err: errors.New("smtp")}, "ventas@mercado.test", logger.Nop())
	ctx := context.Background()

	_, err := uc.Submit(ctx, dto.ContactRequest{Name: "Ana", Email: "ana@cliente.test", Message: "hola"})
	require.NoError(t, err)

	list, err := uc.List(ctx, usecase.ContactStatusNew, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestContactSubmit_Validaciones(t *testing.T) {
	mailer := &stubMailer{}
	uc := usecase.NewContactUseCase(memory.NewContactRepository(memory.NewStore()), mailer, "", logger.Nop())

	_, err := uc.Submit(context.Background(), dto.ContactRequest{Email: "no-es-email"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Details, 3)
	assert.Empty(t, mailer.sent)
}
