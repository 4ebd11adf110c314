package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/dto"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/repository"
)

// ListingUseCase altas y lecturas de listings con las reglas de visibilidad
// de moderación: approved es público, pending/rejected solo dueño y admin.
type ListingUseCase struct {
	repo repository.ListingRepository
}

// NewListingUseCase construye el caso de uso con el puerto de persistencia.
func NewListingUseCase(repo repository.ListingRepository) *ListingUseCase {
	return &ListingUseCase{repo: repo}
}

// Create publica un listing nuevo, siempre en estado pending.
func (uc *ListingUseCase) Create(ownerID string, in dto.CreateListingRequest) (*dto.ListingResponse, error) {
	if in.Name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	listing := &entity.Listing{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Status:      entity.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(listing); err != nil {
		return nil, err
	}
	return dto.ToListingResponse(listing), nil
}

// GetVisible obtiene un listing aplicando visibilidad: si no está approved,
// solo su dueño y admin lo ven; para el resto es como si no existiera.
func (uc *ListingUseCase) GetVisible(id string, viewer entity.Identity) (*dto.ListingResponse, error) {
	listing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, domain.ErrNotFound
	}
	if listing.Status != entity.StatusApproved &&
		viewer.Role != entity.RoleAdmin && viewer.ID != listing.OwnerID {
		return nil, domain.ErrNotFound
	}
	return dto.ToListingResponse(listing), nil
}

// Directory listings approved, visibles para cualquiera.
func (uc *ListingUseCase) Directory(limit, offset int) ([]*entity.Listing, error) {
	return uc.repo.ListApproved(limit, offset)
}

// MyListings listings del dueño, sin filtro de estado.
func (uc *ListingUseCase) MyListings(ownerID string, limit, offset int) ([]*entity.Listing, error) {
	return uc.repo.ListByOwner(ownerID, limit, offset)
}

// PendingQueue cola de moderación de listings; solo admin.
func (uc *ListingUseCase) PendingQueue(actor entity.Identity, limit, offset int) ([]*entity.Listing, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, domain.ErrPermissionDenied
	}
	return uc.repo.ListByStatus(entity.StatusPending, limit, offset)
}
