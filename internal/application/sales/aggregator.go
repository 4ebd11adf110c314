package sales

import (
	"github.com/shopspring/decimal"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// SaleView proyección de una orden vista por un vendedor: solo sus items y
// su subtotal, pero con el estado y el total de la orden completa. El
// vendedor debe ver el destino global de la orden (validada/rehusada) aunque
// su exposición financiera sea solo su propio subtotal.
type SaleView struct {
	Order          *entity.Order
	Items          []entity.OrderItem
	VendorSubtotal decimal.Decimal
}

// PurchasesFor filtro directo: las órdenes del comprador, con todos sus items.
func PurchasesFor(buyerID string, orders []*entity.Order) []*entity.Order {
	var out []*entity.Order
	for _, o := range orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out
}

// SalesFor proyecta una vista de ventas por vendedor: por cada orden con al
// menos un item suyo, emite los items filtrados y la suma de sus subtotales.
func SalesFor(vendorID string, orders []*entity.Order) []SaleView {
	var out []SaleView
	for _, o := range orders {
		var items []entity.OrderItem
		subtotal := decimal.Zero
		for _, it := range o.Items {
			if it.VendorID != vendorID {
				continue
			}
			items = append(items, it)
			subtotal = subtotal.Add(it.Subtotal)
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, SaleView{Order: o, Items: items, VendorSubtotal: subtotal})
	}
	return out
}

// SalesAll vista admin: la unión sobre todas las identidades de vendedor.
// Misma proyección con el filtro desactivado; el subtotal cubre todos los
// items de la orden.
func SalesAll(orders []*entity.Order) []SaleView {
	var out []SaleView
	for _, o := range orders {
		subtotal := decimal.Zero
		for _, it := range o.Items {
			subtotal = subtotal.Add(it.Subtotal)
		}
		out = append(out, SaleView{Order: o, Items: o.Items, VendorSubtotal: subtotal})
	}
	return out
}
