package sales_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/sales"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(id, listingID, vendorID string, qty int, unit string) entity.OrderItem {
	u := dec(unit)
	return entity.OrderItem{
		ID: id, ListingID: listingID, VendorID: vendorID,
		Quantity: qty, UnitPrice: u,
		Subtotal: u.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func order(id, buyerID string, items ...entity.OrderItem) *entity.Order {
	o := &entity.Order{
		ID: id, BuyerID: buyerID, Status: entity.OrderPending,
		Items: items, CreatedAt: time.Now(),
	}
	o.TotalPrice = o.ComputeTotal()
	return o
}

// Dos órdenes: una multi-vendedor (A y B), otra solo de B.
func fixtureOrders() []*entity.Order {
	return []*entity.Order{
		order("ord-1", "buyer-1",
			item("it-1", "lst-a1", "vendor-a", 3, "100.00"),
			item("it-2", "lst-b1", "vendor-b", 1, "50.00"),
		),
		order("ord-2", "buyer-2",
			item("it-3", "lst-b2", "vendor-b", 2, "19.90"),
		),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SalesFor: proyección por vendedor
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesFor_FiltraSoloItemsDelVendedor(t *testing.T) {
	views := sales.SalesFor("vendor-a", fixtureOrders())

	// vendor-a solo participa en ord-1, con un único item.
	require.Len(t, views, 1)
	v := views[0]
	assert.Equal(t, "ord-1", v.Order.ID)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "it-1", v.Items[0].ID)
	assert.True(t, v.VendorSubtotal.Equal(dec("300.00")))

	// La orden completa sigue visible: estado y total globales intactos.
	assert.True(t, v.Order.TotalPrice.Equal(dec("350.00")))
}

func TestSalesFor_VendedorEnVariasOrdenes(t *testing.T) {
	views := sales.SalesFor("vendor-b", fixtureOrders())

	require.Len(t, views, 2)
	assert.True(t, views[0].VendorSubtotal.Equal(dec("50.00")))
	assert.True(t, views[1].VendorSubtotal.Equal(dec("39.80")))
}

func TestSalesFor_SinParticipacionNoEmiteVista(t *testing.T) {
	views := sales.SalesFor("vendor-z", fixtureOrders())
	assert.Empty(t, views, "una orden sin items del vendedor no aparece en su feed")
}

// La suma de los subtotales por vendedor reconstruye el total de la orden:
// la proyección particiona los items, no los duplica ni los pierde.
func TestSalesFor_SubtotalesParticionanElTotal(t *testing.T) {
	orders := fixtureOrders()
	multi := orders[0]

	sum := decimal.Zero
	for _, vendorID := range []string{"vendor-a", "vendor-b"} {
		for _, v := range sales.SalesFor(vendorID, []*entity.Order{multi}) {
			sum = sum.Add(v.VendorSubtotal)
		}
	}
	assert.True(t, sum.Equal(multi.TotalPrice))
}

// ──────────────────────────────────────────────────────────────────────────────
// PurchasesFor / SalesAll
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchasesFor_SoloOrdenesDelComprador(t *testing.T) {
	got := sales.PurchasesFor("buyer-1", fixtureOrders())
	require.Len(t, got, 1)
	assert.Equal(t, "ord-1", got[0].ID)
	assert.Len(t, got[0].Items, 2, "el comprador ve la orden completa")
}

func TestSalesAll_CubreTodasLasOrdenesSinFiltro(t *testing.T) {
	views := sales.SalesAll(fixtureOrders())

	require.Len(t, views, 2)
	assert.Len(t, views[0].Items, 2)
	assert.True(t, views[0].VendorSubtotal.Equal(dec("350.00")),
		"sin filtro el subtotal cubre todos los items de la orden")
	assert.True(t, views[1].VendorSubtotal.Equal(dec("39.80")))
}
