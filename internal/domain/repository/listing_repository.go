package repository

import (
	"time"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// ListingRepository define el puerto de persistencia para Listing (DIP).
type ListingRepository interface {
	Create(listing *entity.Listing) error
	GetByID(id string) (*entity.Listing, error)
	// UpdateStatusFromPending: check-and-set de moderación, mismo contrato que
	// AccountRepository.UpdateStatusFromPending.
	UpdateStatusFromPending(id string, to entity.ModerationStatus, reason string, at time.Time) (bool, error)
	// AdjustStock suma delta al stock del listing (delta > 0 al restaurar).
	// Debe ejecutarse dentro de la transacción del rehúso, nunca suelto.
	AdjustStock(listingID string, delta int) error
	ListApproved(limit, offset int) ([]*entity.Listing, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Listing, error)
	ListByStatus(status entity.ModerationStatus, limit, offset int) ([]*entity.Listing, error)
}
