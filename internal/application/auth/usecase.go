package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mercado-b2b-api/internal/application/dto"
	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/internal/domain"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/repository"
	"github.com/jhoicas/mercado-b2b-api/pkg/jwt"
	"github.com/jhoicas/mercado-b2b-api/pkg/logger"
	"github.com/jhoicas/mercado-b2b-api/pkg/password"
)

// ForgotPasswordMessage respuesta única de forgot-password, exista o no la cuenta.
const ForgotPasswordMessage = "si el email está registrado, recibirás un enlace para restablecer tu contraseña"

const vendorCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Config parámetros de tokens y enlaces.
type Config struct {
	JWTSecret   string
	Issuer      string
	TokenTTL    time.Duration
	ResetTTL    time.Duration
	FrontendURL string
}

// Deps dependencias del caso de uso.
type Deps struct {
	Users       repository.UserRepository
	Roles       repository.RoleRepository
	UserRoles   repository.UserRoleRepository
	ResetTokens repository.PasswordResetTokenRepository
	Tx          repository.TxRunner
	Mailer      ports.Mailer
	Log         *logger.Logger
}

// AuthUseCase casos de uso de cuenta: registro, login, cambio y recuperación de contraseña.
type AuthUseCase struct {
	users       repository.UserRepository
	roles       repository.RoleRepository
	userRoles   repository.UserRoleRepository
	resetTokens repository.PasswordResetTokenRepository
	tx          repository.TxRunner
	mailer      ports.Mailer
	log         *logger.Logger
	cfg         Config
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(d Deps, cfg Config) *AuthUseCase {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = jwt.DefaultTTL
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = time.Hour
	}
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		users:       d.Users,
		roles:       d.Roles,
		userRoles:   d.UserRoles,
		resetTokens: d.ResetTokens,
		tx:          d.Tx,
		mailer:      d.Mailer,
		log:         log.Named("auth"),
		cfg:         cfg,
		now:         time.Now,
	}
}

// RegisterUser crea el usuario y su rol primario en una sola transacción.
// Devuelve ErrEmailAlreadyExists sin escribir nada si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.Role == "" {
		in.Role = entity.RoleBuyer
	}

	var problems []string
	if !domain.IsValidEmail(in.Email) {
		problems = append(problems, "email inválido")
	}
	if in.FirstName == "" || in.LastName == "" {
		problems = append(problems, "first_name y last_name son requeridos")
	}
	if !entity.IsSelfRegistrable(in.Role) {
		problems = append(problems, "role debe ser buyer o seller")
	}
	if len(problems) > 0 {
		return nil, domain.NewValidationError("datos de registro inválidos", problems...)
	}
	if res := password.Validate(in.Password); !res.IsValid {
		return nil, domain.NewValidationError("la contraseña no cumple los requisitos", res.Errors...)
	}

	exists, err := uc.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}
	role, err := uc.roles.GetByName(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	code, err := newVendorCode(role.Code)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        strings.TrimSpace(in.Phone),
		CompanyName:  strings.TrimSpace(in.CompanyName),
		VendorCode:   code,
		IsVerified:   false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		return repos.UserRoles.AssignPrimary(ctx, &entity.UserRole{
			UserID:     user.ID,
			RoleID:     role.ID,
			IsPrimary:  true,
			AssignedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", role.Name).Msg("usuario registrado")
	return ToUserResponse(user, role.Name), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecto producen el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, domain.NormalizeEmail(in.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !password.Compare(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: cuenta inactiva", domain.ErrForbidden)
	}
	role, err := uc.userRoles.GetPrimaryRole(ctx, user.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, fmt.Errorf("%w: usuario sin rol asignado", domain.ErrForbidden)
		}
		return nil, err
	}

	now := uc.now()
	token, err := jwt.Generate(uc.cfg.JWTSecret, uc.cfg.Issuer, jwt.Claims{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       role.Name,
		VendorCode: user.VendorCode,
	}, uc.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}
	if err := uc.users.TouchLogin(ctx, user.ID, now); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar last_login_at")
	} else {
		user.LastLoginAt = &now
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(uc.cfg.TokenTTL),
		User:      *ToUserResponse(user, role.Name),
	}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	roleName := ""
	role, err := uc.userRoles.GetPrimaryRole(ctx, userID)
	switch {
	case err == nil:
		roleName = role.Name
	case !domain.IsNotFound(err):
		return nil, err
	}
	return ToUserResponse(user, roleName), nil
}

// ChangePassword exige la contraseña actual y valida la nueva con las mismas reglas del registro.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if in.CurrentPassword == "" {
		return domain.NewValidationError("current_password es requerido")
	}
	if res := password.Validate(in.NewPassword); !res.IsValid {
		return domain.NewValidationError("la contraseña no cumple los requisitos", res.Errors...)
	}
	if in.CurrentPassword == in.NewPassword {
		return domain.NewValidationError("la nueva contraseña debe ser distinta de la actual")
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !password.Compare(in.CurrentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	hash, err := password.Hash(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return uc.users.UpdatePassword(ctx, userID, hash, uc.now())
}

// ForgotPassword emite un token de un solo uso y lo envía por email.
// Para no revelar qué cuentas existen, un email desconocido o un fallo de envío
// terminan igual que un envío exitoso (el fallo solo se registra en log).
// El mailer de producción encola el envío, así la respuesta no espera al SMTP.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error {
	email := domain.NormalizeEmail(in.Email)
	if !domain.IsValidEmail(email) {
		return domain.NewValidationError("email inválido")
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			uc.log.Debug().Msg("forgot-password para email no registrado")
			return nil
		}
		return err
	}

	raw, err := randomToken()
	if err != nil {
		return err
	}
	now := uc.now()
	t := &entity.PasswordResetToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: HashResetToken(raw),
		ExpiresAt: now.Add(uc.cfg.ResetTTL),
		CreatedAt: now,
	}
	if err := uc.resetTokens.Create(ctx, t); err != nil {
		return err
	}

	link := uc.cfg.FrontendURL + "/reset-password?token=" + raw
	mail := ports.Mail{
		To:      []string{user.Email},
		Subject: "Restablece tu contraseña",
		TextBody: fmt.Sprintf("Hola %s,\n\nPara restablecer tu contraseña abre este enlace (válido por %d minutos):\n%s\n\nSi no lo solicitaste, ignora este mensaje.\n",
			user.FullName(), int(uc.cfg.ResetTTL.Minutes()), link),
		HTMLBody: fmt.Sprintf(`<p>Hola %s,</p><p>Para restablecer tu contraseña haz clic <a href="%s">aquí</a>. El enlace vence en %d minutos.</p><p>Si no lo solicitaste, ignora este mensaje.</p>`,
			html.EscapeString(user.FullName()), html.EscapeString(link), int(uc.cfg.ResetTTL.Minutes())),
	}
	if err := uc.mailer.Send(ctx, mail); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("envío de email de recuperación fallido")
	}
	return nil
}

// ResetPassword consume el token (un solo uso, 1h de vigencia) y fija la nueva contraseña
// en una misma transacción.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	raw := strings.TrimSpace(in.Token)
	if raw == "" {
		return domain.NewValidationError("token es requerido")
	}
	if res := password.Validate(in.NewPassword); !res.IsValid {
		return domain.NewValidationError("la contraseña no cumple los requisitos", res.Errors...)
	}
	t, err := uc.resetTokens.GetByTokenHash(ctx, HashResetToken(raw))
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}
	now := uc.now()
	if t.Used {
		return domain.ErrResetTokenUsed
	}
	if t.IsExpired(now) {
		return domain.ErrResetTokenExpired
	}
	hash, err := password.Hash(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.ResetTokens.MarkUsed(ctx, t.ID, now); err != nil {
			return err
		}
		return repos.Users.UpdatePassword(ctx, t.UserID, hash, now)
	})
}

// HashResetToken huella SHA-256 (hex) del token plano; es lo único que se persiste.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// newVendorCode genera <código de rol>-<6 caracteres aleatorios>.
func newVendorCode(roleCode string) (string, error) {
	if roleCode == "" {
		return "", errors.New("vendor code: código de rol vacío")
	}
	base := big.NewInt(int64(len(vendorCodeAlphabet)))
	var sb strings.Builder
	sb.WriteString(roleCode)
	sb.WriteByte('-')
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("vendor code: %w", err)
		}
		sb.WriteByte(vendorCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// ToUserResponse mapea la entidad a DTO con el rol primario indicado.
func ToUserResponse(u *entity.User, role string) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		CompanyName: u.CompanyName,
		VendorCode:  u.VendorCode,
		Role:        role,
		IsVerified:  u.IsVerified,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
