package repository

import (
	"time"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order (DIP).
// Las órdenes se crean atómicamente con sus items en el checkout (colaborador
// externo); aquí solo se leen y se transicionan.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// MarkValidated: check-and-set pending -> validated. false = carrera perdida.
	MarkValidated(id, note string, at time.Time) (bool, error)
	// MarkRefused: check-and-set pending -> refused. Debe ejecutarse en la misma
	// transacción que la restauración de stock de cada item.
	MarkRefused(id, reason string, at time.Time) (bool, error)
	// MarkCompleted: check-and-set validated -> completed.
	MarkCompleted(id string, at time.Time) (bool, error)
	ListByBuyer(buyerID string, limit, offset int) ([]*entity.Order, error)
	// ListByVendor devuelve las órdenes que contienen al menos un item del
	// vendedor, con todos sus items (la proyección filtra en memoria).
	ListByVendor(vendorID string, limit, offset int) ([]*entity.Order, error)
	ListAll(limit, offset int) ([]*entity.Order, error)
}
