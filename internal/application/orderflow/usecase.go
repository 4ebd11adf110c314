package orderflow

import (
	"context"
	"strings"
	"time"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/events"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/moderation"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/repository"
)

// OrderFlowUseCase transiciones admin del ciclo de vida de órdenes:
// pending -> validated -> completed, pending -> refused.
// Reutiliza el patrón de autorización de moderación (solo admin) y aplica
// cada transición con un check-and-set único en el sistema de registro;
// el perdedor de una carrera recibe ErrInvalidTransition, nunca una
// restauración de stock duplicada.
type OrderFlowUseCase struct {
	orders repository.OrderRepository
	tx     TxRunner
	events events.Publisher
}

// NewOrderFlowUseCase construye el caso de uso. publisher puede ser nil.
func NewOrderFlowUseCase(orders repository.OrderRepository, tx TxRunner, pub events.Publisher) *OrderFlowUseCase {
	return &OrderFlowUseCase{orders: orders, tx: tx, events: pub}
}

// Get carga una orden y verifica sus invariantes monetarios.
// Un desajuste total/subtotales se reporta como ErrIntegrity, sin corregir.
func (uc *OrderFlowUseCase) Get(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if err := order.CheckIntegrity(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate confirma una orden pending. No toca stock: la validación confirma
// la reserva ya hecha en el checkout.
func (uc *OrderFlowUseCase) Validate(ctx context.Context, actor entity.Identity, orderID, note string) (*entity.Order, error) {
	if err := moderation.Authorize(actor); err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(order.Status, entity.OrderValidated) {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	ok, err := uc.orders.MarkValidated(orderID, note, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	order.Status = entity.OrderValidated
	order.AdminNote = note
	order.ValidatedAt = &now
	order.UpdatedAt = now

	uc.publish(ctx, events.EventOrderValidated, order, nil)
	return order, nil
}

// Refuse rehúsa una orden pending y devuelve al stock de cada listing la
// cantidad reservada en el checkout. El motivo es obligatorio: se rechaza
// antes de cualquier mutación porque el comprador debe saber por qué.
// Estado y stock cambian en una sola transacción, todo o nada.
func (uc *OrderFlowUseCase) Refuse(ctx context.Context, actor entity.Identity, orderID, reason string) (*entity.Order, error) {
	if err := moderation.Authorize(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrInvalidInput
	}

	var refused *entity.Order
	var restored []events.RestoredItem
	now := time.Now()
	err := uc.tx.Run(ctx, func(orderRepo repository.OrderRepository, listingRepo repository.ListingRepository) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(order.Status, entity.OrderRefused) {
			return domain.ErrInvalidTransition
		}
		ok, err := orderRepo.MarkRefused(orderID, reason, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidTransition
		}
		for _, it := range order.Items {
			if err := listingRepo.AdjustStock(it.ListingID, it.Quantity); err != nil {
				return err
			}
			restored = append(restored, events.RestoredItem{ListingID: it.ListingID, Quantity: it.Quantity})
		}
		order.Status = entity.OrderRefused
		order.AdminNote = reason
		order.UpdatedAt = now
		refused = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, events.EventOrderRefused, refused, restored)
	return refused, nil
}

// Complete marca una orden validated como completed (confirmación de entrega,
// disparada por un colaborador externo).
func (uc *OrderFlowUseCase) Complete(ctx context.Context, actor entity.Identity, orderID string) (*entity.Order, error) {
	if err := moderation.Authorize(actor); err != nil {
		return nil, err
	}
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(order.Status, entity.OrderCompleted) {
		return nil, domain.ErrInvalidTransition
	}
	now := time.Now()
	ok, err := uc.orders.MarkCompleted(orderID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	order.Status = entity.OrderCompleted
	order.UpdatedAt = now

	uc.publish(ctx, events.EventOrderCompleted, order, nil)
	return order, nil
}

func (uc *OrderFlowUseCase) publish(ctx context.Context, eventType string, order *entity.Order, restored []events.RestoredItem) {
	if uc.events == nil {
		return
	}
	evt, err := events.NewEnvelope(eventType, order.ID, events.OrderTransitionPayload{
		OrderID:       order.ID,
		Status:        string(order.Status),
		AdminNote:     order.AdminNote,
		RestoredItems: restored,
	})
	if err != nil {
		return
	}
	// Best-effort: la transición ya está confirmada en la DB.
	_ = uc.events.Publish(ctx, evt)
}
