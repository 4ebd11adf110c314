package dto

import (
	"time"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// RegisterRequest alta de cuenta opticien (nace pending).
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse cuenta expuesta por la API (sin hash).
type AccountResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	RejectReason string    `json:"reject_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginResponse token + cuenta + ruta de aterrizaje que dicta la política.
type LoginResponse struct {
	Token        string          `json:"token"`
	Account      AccountResponse `json:"account"`
	LandingRoute string          `json:"landing_route"`
}

// ModerationRequest motivo de un rechazo (opcional en cuentas/listings,
// obligatorio al rehusar órdenes).
type ModerationRequest struct {
	Reason string `json:"reason"`
}

// ToAccountResponse mapea la entidad al DTO de salida.
func ToAccountResponse(a *entity.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		Role:         string(a.Role),
		Status:       string(a.Status),
		RejectReason: a.RejectReason,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
