package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/sales"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// ValidateOrderRequest nota opcional del admin al validar.
type ValidateOrderRequest struct {
	Note string `json:"note"`
}

// RefuseOrderRequest motivo obligatorio del rehúso.
type RefuseOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderItemResponse línea de orden expuesta por la API.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ListingID string          `json:"listing_id"`
	VendorID  string          `json:"vendor_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse orden completa (vista comprador/admin).
type OrderResponse struct {
	ID          string              `json:"id"`
	BuyerID     string              `json:"buyer_id"`
	Status      string              `json:"status"`
	Items       []OrderItemResponse `json:"items"`
	TotalPrice  decimal.Decimal     `json:"total_price"`
	AdminNote   string              `json:"admin_note,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	ValidatedAt *time.Time          `json:"validated_at,omitempty"`
}

// SaleViewResponse proyección por vendedor: items propios y subtotal propio,
// con estado y total de la orden completa.
type SaleViewResponse struct {
	Order          OrderResponse       `json:"order"`
	Items          []OrderItemResponse `json:"items"`
	VendorSubtotal decimal.Decimal     `json:"vendor_subtotal"`
}

// ToOrderResponse mapea la entidad al DTO de salida.
func ToOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, toItemResponse(it))
	}
	return &OrderResponse{
		ID:          o.ID,
		BuyerID:     o.BuyerID,
		Status:      string(o.Status),
		Items:       items,
		TotalPrice:  o.TotalPrice,
		AdminNote:   o.AdminNote,
		CreatedAt:   o.CreatedAt,
		ValidatedAt: o.ValidatedAt,
	}
}

// ToSaleViews mapea las proyecciones del agregador.
func ToSaleViews(views []sales.SaleView) []SaleViewResponse {
	out := make([]SaleViewResponse, 0, len(views))
	for _, v := range views {
		items := make([]OrderItemResponse, 0, len(v.Items))
		for _, it := range v.Items {
			items = append(items, toItemResponse(it))
		}
		out = append(out, SaleViewResponse{
			Order:          *ToOrderResponse(v.Order),
			Items:          items,
			VendorSubtotal: v.VendorSubtotal,
		})
	}
	return out
}

func toItemResponse(it entity.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:        it.ID,
		ListingID: it.ListingID,
		VendorID:  it.VendorID,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		Subtotal:  it.Subtotal,
	}
}
