package moderation

import "context"

// IdentityInvalidator invalida el snapshot cacheado de identidad de una cuenta
// cuando su estado cambia, para que el próximo fetch vea el estado nuevo.
type IdentityInvalidator interface {
	Invalidate(ctx context.Context, accountID string) error
}
