package moderation

import (
	"context"
	"time"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/events"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/repository"
)

// AccountModerationUseCase aprueba o rechaza cuentas opticien pending.
type AccountModerationUseCase struct {
	accounts repository.AccountRepository
	cache    IdentityInvalidator
	events   events.Publisher
}

// NewAccountModerationUseCase construye el caso de uso. cache y publisher
// pueden ser nil (sin cache de identidad / sin broker).
func NewAccountModerationUseCase(accounts repository.AccountRepository, cache IdentityInvalidator, pub events.Publisher) *AccountModerationUseCase {
	return &AccountModerationUseCase{accounts: accounts, cache: cache, events: pub}
}

// Approve transiciona una cuenta pending -> approved. Solo admin.
func (uc *AccountModerationUseCase) Approve(ctx context.Context, actor entity.Identity, accountID string) (*entity.Account, error) {
	return uc.transition(ctx, actor, accountID, ActionApprove, "")
}

// Reject transiciona una cuenta pending -> rejected con un motivo opcional
// visible para el dueño.
func (uc *AccountModerationUseCase) Reject(ctx context.Context, actor entity.Identity, accountID, reason string) (*entity.Account, error) {
	return uc.transition(ctx, actor, accountID, ActionReject, reason)
}

func (uc *AccountModerationUseCase) transition(ctx context.Context, actor entity.Identity, accountID string, action Action, reason string) (*entity.Account, error) {
	if err := Authorize(actor); err != nil {
		return nil, err
	}
	account, err := uc.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	if account.Role == entity.RoleAdmin {
		// Las cuentas admin están implícitamente aprobadas; no se moderan.
		return nil, domain.ErrInvalidTransition
	}
	next, err := Next(account.Status, action)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	ok, err := uc.accounts.UpdateStatusFromPending(accountID, next, reason, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Otra transición ganó el check-and-set: sin mutación, carrera perdida.
		return nil, domain.ErrInvalidTransition
	}
	account.Status = next
	account.RejectReason = reason
	account.UpdatedAt = now

	if uc.cache != nil {
		// El snapshot de identidad cacheado quedó obsoleto.
		_ = uc.cache.Invalidate(ctx, accountID)
	}
	uc.publish(ctx, account, action, reason)
	return account, nil
}

func (uc *AccountModerationUseCase) publish(ctx context.Context, account *entity.Account, action Action, reason string) {
	if uc.events == nil {
		return
	}
	eventType := events.EventAccountApproved
	if action == ActionReject {
		eventType = events.EventAccountRejected
	}
	evt, err := events.NewEnvelope(eventType, account.ID, events.ModerationPayload{
		EntityID: account.ID,
		Status:   string(account.Status),
		Reason:   reason,
	})
	if err != nil {
		return
	}
	// Best-effort: la transición ya está confirmada en la DB.
	_ = uc.events.Publish(ctx, evt)
}
