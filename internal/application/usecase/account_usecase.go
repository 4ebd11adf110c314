package usecase

import (
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/dto"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/repository"
)

// AccountUseCase lecturas de cuentas: directorio público de opticiens
// aprobados y cola de moderación para admin.
type AccountUseCase struct {
	repo repository.AccountRepository
}

// NewAccountUseCase construye el caso de uso con el puerto de persistencia.
func NewAccountUseCase(repo repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{repo: repo}
}

// GetByID obtiene una cuenta por ID.
func (uc *AccountUseCase) GetByID(id string) (*dto.AccountResponse, error) {
	account, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	return dto.ToAccountResponse(account), nil
}

// Directory opticiens approved, visibles en el directorio público.
func (uc *AccountUseCase) Directory(limit, offset int) ([]*entity.Account, error) {
	return uc.repo.ListApprovedOpticiens(limit, offset)
}

// PendingQueue cola de cuentas pending; solo admin.
func (uc *AccountUseCase) PendingQueue(actor entity.Identity, limit, offset int) ([]*entity.Account, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, domain.ErrPermissionDenied
	}
	return uc.repo.ListByStatus(entity.StatusPending, limit, offset)
}
