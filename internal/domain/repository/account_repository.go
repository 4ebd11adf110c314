package repository

import (
	"time"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (DIP).
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	FindByEmail(email string) (*entity.Account, error)
	// UpdateStatusFromPending aplica el check-and-set autoritativo de moderación:
	// pasa a `to` solo si el estado actual es pending. Devuelve false si otra
	// transición ganó la carrera (cero filas afectadas), sin mutación alguna.
	UpdateStatusFromPending(id string, to entity.ModerationStatus, reason string, at time.Time) (bool, error)
	ListByStatus(status entity.ModerationStatus, limit, offset int) ([]*entity.Account, error)
	// ListApprovedOpticiens alimenta el directorio público de opticiens.
	ListApprovedOpticiens(limit, offset int) ([]*entity.Account, error)
}
