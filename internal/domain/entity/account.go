package entity

import (
	"time"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
)

// Roles válidos para Account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOpticien Role = "opticien"
)

// ParseRole valida un rol recibido en el borde de la API.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleOpticien:
		return Role(s), nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// ModerationStatus ciclo de vida de moderación compartido por Account y Listing.
// Enumeración cerrada: se valida una sola vez en el borde; el resto del código
// hace match exhaustivo en lugar de comparar strings ad-hoc.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

// ParseModerationStatus valida un estado recibido en el borde de la API.
func ParseModerationStatus(s string) (ModerationStatus, error) {
	switch ModerationStatus(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return ModerationStatus(s), nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// Account representa una cuenta del marketplace (opticien o admin).
// Las cuentas opticien nacen pending y solo un admin las transiciona;
// las cuentas admin están implícitamente aprobadas.
type Account struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Status       ModerationStatus
	RejectReason string // visible para el dueño; no participa en la política
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
