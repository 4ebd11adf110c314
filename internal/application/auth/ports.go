package auth

import (
	"context"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// IdentityCache cache del snapshot {id, role, status} de una cuenta.
// El resultado de la política es determinista por snapshot, así que cachear
// el snapshot es seguro mientras se invalide en cada transición de moderación.
type IdentityCache interface {
	// Get devuelve nil, nil en cache miss.
	Get(ctx context.Context, accountID string) (*entity.Identity, error)
	Set(ctx context.Context, id entity.Identity) error
	Invalidate(ctx context.Context, accountID string) error
}
