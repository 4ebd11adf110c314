package moderation

import (
	"context"
	"time"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/events"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/repository"
)

// ListingModerationUseCase aprueba o rechaza listings pending.
// Misma máquina one-shot que las cuentas; una vez aprobado, el listing aparece
// en el directorio público, una vez rechazado solo lo ven su dueño y admin.
type ListingModerationUseCase struct {
	listings repository.ListingRepository
	events   events.Publisher
}

// NewListingModerationUseCase construye el caso de uso.
func NewListingModerationUseCase(listings repository.ListingRepository, pub events.Publisher) *ListingModerationUseCase {
	return &ListingModerationUseCase{listings: listings, events: pub}
}

// Approve transiciona un listing pending -> approved. Solo admin.
func (uc *ListingModerationUseCase) Approve(ctx context.Context, actor entity.Identity, listingID string) (*entity.Listing, error) {
	return uc.transition(ctx, actor, listingID, ActionApprove, "")
}

// Reject transiciona un listing pending -> rejected con motivo opcional.
func (uc *ListingModerationUseCase) Reject(ctx context.Context, actor entity.Identity, listingID, reason string) (*entity.Listing, error) {
	return uc.transition(ctx, actor, listingID, ActionReject, reason)
}

func (uc *ListingModerationUseCase) transition(ctx context.Context, actor entity.Identity, listingID string, action Action, reason string) (*entity.Listing, error) {
	if err := Authorize(actor); err != nil {
		return nil, err
	}
	listing, err := uc.listings.GetByID(listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, domain.ErrNotFound
	}
	next, err := Next(listing.Status, action)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	ok, err := uc.listings.UpdateStatusFromPending(listingID, next, reason, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	listing.Status = next
	listing.RejectReason = reason
	listing.UpdatedAt = now

	uc.publish(ctx, listing, action, reason)
	return listing, nil
}

func (uc *ListingModerationUseCase) publish(ctx context.Context, listing *entity.Listing, action Action, reason string) {
	if uc.events == nil {
		return
	}
	eventType := events.EventListingApproved
	if action == ActionReject {
		eventType = events.EventListingRejected
	}
	evt, err := events.NewEnvelope(eventType, listing.ID, events.ModerationPayload{
		EntityID: listing.ID,
		Status:   string(listing.Status),
		Reason:   reason,
	})
	if err != nil {
		return
	}
	_ = uc.events.Publish(ctx, evt)
}
