package moderation

import (
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// Action acciones de moderación sobre una entidad pending.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Next calcula el estado destino de una transición de moderación.
// La máquina es deliberadamente one-shot: pending -> {approved, rejected} y
// nada más. Re-moderar una entidad ya aprobada o rechazada devuelve
// ErrInvalidTransition para no oscilar la visibilidad de contenido ya
// publicado; si algún día hace falta re-revisión, se agrega una arista
// explícita en lugar de relajar esta precondición.
func Next(current entity.ModerationStatus, action Action) (entity.ModerationStatus, error) {
	if current != entity.StatusPending {
		return "", domain.ErrInvalidTransition
	}
	switch action {
	case ActionApprove:
		return entity.StatusApproved, nil
	case ActionReject:
		return entity.StatusRejected, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// Authorize verifica que el actor pueda moderar. Solo admin; se chequea antes
// de cualquier mutación (fail-closed).
func Authorize(actor entity.Identity) error {
	if actor.Role != entity.RoleAdmin {
		return domain.ErrPermissionDenied
	}
	return nil
}
