package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
)

// OrderStatus ciclo de vida de una orden multi-vendedor.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderValidated OrderStatus = "validated"
	OrderRefused   OrderStatus = "refused"
	OrderCompleted OrderStatus = "completed"
)

// ParseOrderStatus valida un estado recibido en el borde de la API.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderValidated, OrderRefused, OrderCompleted:
		return OrderStatus(s), nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// Tabla de transiciones válidas. Validated y Refused son salidas mutuamente
// excluyentes de Pending; Completed solo se alcanza desde Validated.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:   {OrderValidated: true, OrderRefused: true},
	OrderValidated: {OrderCompleted: true},
	OrderRefused:   {},
	OrderCompleted: {},
}

// CanTransition indica si from -> to es una arista del ciclo de vida.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// OrderItem línea de una orden. Inmutable después de la creación, salvo el
// efecto implícito de restauración de stock sobre el Listing referenciado.
type OrderItem struct {
	ID        string
	OrderID   string
	ListingID string
	VendorID  string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// ExpectedSubtotal recomputa quantity * unit_price con precisión decimal exacta.
func (it OrderItem) ExpectedSubtotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Order orden de compra multi-item, potencialmente multi-vendedor.
// Invariante: TotalPrice == Σ item.Subtotal, exacto (sin redondeo binario).
type Order struct {
	ID          string
	BuyerID     string
	Status      OrderStatus
	Items       []OrderItem
	TotalPrice  decimal.Decimal
	AdminNote   string
	CreatedAt   time.Time
	ValidatedAt *time.Time
	UpdatedAt   time.Time
}

// ComputeTotal suma los subtotales almacenados de los items.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// CheckIntegrity verifica los invariantes monetarios de la orden:
// cada subtotal reproduce quantity*unit_price y el total reproduce la suma.
// Un desajuste es un error de integridad de datos, no se corrige en silencio.
func (o *Order) CheckIntegrity() error {
	for _, it := range o.Items {
		if !it.Subtotal.Equal(it.ExpectedSubtotal()) {
			return fmt.Errorf("item %s: subtotal %s != %d x %s: %w",
				it.ID, it.Subtotal, it.Quantity, it.UnitPrice, domain.ErrIntegrity)
		}
	}
	if !o.TotalPrice.Equal(o.ComputeTotal()) {
		return fmt.Errorf("orden %s: total %s != Σ subtotales %s: %w",
			o.ID, o.TotalPrice, o.ComputeTotal(), domain.ErrIntegrity)
	}
	return nil
}
