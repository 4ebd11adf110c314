package orderflow

import (
	"context"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el rehúso de una orden y la
// restauración de stock de sus items sean atómicos: o se confirman juntos
// o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		listingRepo repository.ListingRepository,
	) error) error
}
