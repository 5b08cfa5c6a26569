package usecase

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
)

// ContactStatusNew estado inicial de un mensaje de contacto.
const ContactStatusNew = "new"

// ContactUseCase formulario de contacto: guarda el mensaje y avisa al buzón configurado.
type ContactUseCase struct {
	repo      repository.ContactSubmissionRepository
	mailer    ports.Mailer
	recipient string
	log       *logger.Logger
	now       func() time.Time
}

// NewContactUseCase construye el caso de uso. recipient vacío desactiva el aviso por email.
func NewContactUseCase(repo repository.ContactSubmissionRepository, mailer ports.Mailer, recipient string, log *logger.Logger) *ContactUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ContactUseCase{repo: repo, mailer: mailer, recipient: recipient, log: log.Named("contact"), now: time.Now}
}

// Submit persiste el mensaje. El aviso por email es best-effort.
func (uc *ContactUseCase) Submit(ctx context.Context, in dto.ContactRequest) (*dto.ContactSubmissionResponse, error) {
	s := &entity.ContactSubmission{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     domain.NormalizeEmail(in.Email),
		Company:   strings.TrimSpace(in.Company),
		Phone:     strings.TrimSpace(in.Phone),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		Status:    ContactStatusNew,
		CreatedAt: uc.now(),
	}
	var problems []string
	if s.Name == "" {
		problems = append(problems, "name es requerido")
	}
	if !domain.IsValidEmail(s.Email) {
		problems = append(problems, "email inválido")
	}
	if s.Message == "" {
		problems = append(problems, "message es requerido")
	}
	if len(problems) > 0 {
		return nil, domain.NewValidationError("formulario de contacto inválido", problems...)
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.notify(ctx, s)
	return toContactResponse(s), nil
}

// List mensajes recibidos, más recientes primero.
func (uc *ContactUseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]dto.ContactSubmissionResponse, error) {
	page.DefaultPage()
	f := repository.NewFilter().Page(page.Limit, page.Offset)
	if status != "" {
		f.Where("status", status)
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactSubmissionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toContactResponse(s))
	}
	return out, nil
}

func (uc *ContactUseCase) notify(ctx context.Context, s *entity.ContactSubmission) {
	if uc.mailer == nil || uc.recipient == "" {
		return
	}
	subject := s.Subject
	if subject == "" {
		subject = "Nuevo mensaje de contacto"
	}
	text := fmt.Sprintf("Nombre: %s\nEmail: %s\nEmpresa: %s\nTeléfono: %s\n\n%s\n", s.Name, s.Email, s.Company, s.Phone, s.Message)
	err := uc.mailer.Send(ctx, ports.Mail{
		To:       []string{uc.recipient},
		ReplyTo:  s.Email,
		Subject:  "[Contacto] " + subject,
		TextBody: text,
		HTMLBody: "<pre>" + html.EscapeString(text) + "</pre>",
	})
	if err != nil {
		uc.log.Error().Err(err).Str("submission_id", s.ID).Msg("no se pudo reenviar el mensaje de contacto")
	}
}

func toContactResponse(s *entity.ContactSubmission) *dto.ContactSubmissionResponse {
	return &dto.ContactSubmissionResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Company:   s.Company,
		Phone:     s.Phone,
		Subject:   s.Subject,
		Message:   s.Message,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}
