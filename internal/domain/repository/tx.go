package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Users         UserRepository
	UserRoles     UserRoleRepository
	ResetTokens   PasswordResetTokenRepository
	Notifications NotificationRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// HealthChecker verifica la conectividad con el almacenamiento.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
