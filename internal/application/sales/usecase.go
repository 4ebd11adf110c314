package sales

import (
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/repository"
)

// SalesUseCase alimenta las proyecciones con los feeds de órdenes y verifica
// los invariantes monetarios de cada orden leída. Las lecturas son puras y
// pueden servirse de snapshots obsoletos; tras cualquier mutación el cliente
// re-consulta (refetch-on-write).
type SalesUseCase struct {
	orders repository.OrderRepository
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(orders repository.OrderRepository) *SalesUseCase {
	return &SalesUseCase{orders: orders}
}

// Purchases órdenes del comprador autenticado.
func (uc *SalesUseCase) Purchases(buyerID string, limit, offset int) ([]*entity.Order, error) {
	orders, err := uc.orders.ListByBuyer(buyerID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := checkAll(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Sales vista de ventas del vendedor autenticado.
func (uc *SalesUseCase) Sales(vendorID string, limit, offset int) ([]SaleView, error) {
	orders, err := uc.orders.ListByVendor(vendorID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := checkAll(orders); err != nil {
		return nil, err
	}
	return SalesFor(vendorID, orders), nil
}

// AllSales vista admin: todas las órdenes sin filtro de vendedor.
func (uc *SalesUseCase) AllSales(limit, offset int) ([]SaleView, error) {
	orders, err := uc.orders.ListAll(limit, offset)
	if err != nil {
		return nil, err
	}
	if err := checkAll(orders); err != nil {
		return nil, err
	}
	return SalesAll(orders), nil
}

// checkAll verifica total == Σ subtotales en cada orden leída; un desajuste
// se reporta (ErrIntegrity), nunca se corrige en silencio.
func checkAll(orders []*entity.Order) error {
	for _, o := range orders {
		if err := o.CheckIntegrity(); err != nil {
			return err
		}
	}
	return nil
}
