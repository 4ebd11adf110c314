package orderflow_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/events"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/orderflow"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/repository"
)

var (
	admin    = entity.Identity{ID: "adm-1", Role: entity.RoleAdmin, Status: entity.StatusApproved}
	opticien = entity.Identity{ID: "opt-1", Role: entity.RoleOpticien, Status: entity.StatusApproved}
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: mismo contrato check-and-set que la implementación SQL.
// ──────────────────────────────────────────────────────────────────────────────

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
}

func newMemOrderRepo(orders ...*entity.Order) *memOrderRepo {
	m := &memOrderRepo{orders: make(map[string]*entity.Order)}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *memOrderRepo) Create(o *entity.Order) error { m.orders[o.ID] = o; return nil }
func (m *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	o := m.orders[id]
	if o == nil {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp, nil
}
func (m *memOrderRepo) MarkValidated(id, note string, at time.Time) (bool, error) {
	return m.cas(id, entity.OrderPending, entity.OrderValidated, note, &at)
}
func (m *memOrderRepo) MarkRefused(id, reason string, at time.Time) (bool, error) {
	return m.cas(id, entity.OrderPending, entity.OrderRefused, reason, nil)
}
func (m *memOrderRepo) MarkCompleted(id string, at time.Time) (bool, error) {
	return m.cas(id, entity.OrderValidated, entity.OrderCompleted, "", nil)
}
func (m *memOrderRepo) cas(id string, from, to entity.OrderStatus, note string, validatedAt *time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := m.orders[id]
	if o == nil || o.Status != from {
		return false, nil
	}
	o.Status = to
	if note != "" {
		o.AdminNote = note
	}
	if validatedAt != nil {
		o.ValidatedAt = validatedAt
	}
	return true, nil
}
func (m *memOrderRepo) ListByBuyer(buyerID string, limit, offset int) ([]*entity.Order, error) {
	return nil, nil
}
func (m *memOrderRepo) ListByVendor(vendorID string, limit, offset int) ([]*entity.Order, error) {
	return nil, nil
}
func (m *memOrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) { return nil, nil }

type memListingRepo struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
}

func newMemListingRepo(listings ...*entity.Listing) *memListingRepo {
	m := &memListingRepo{listings: make(map[string]*entity.Listing)}
	for _, l := range listings {
		m.listings[l.ID] = l
	}
	return m
}

func (m *memListingRepo) Create(l *entity.Listing) error { m.listings[l.ID] = l; return nil }
func (m *memListingRepo) GetByID(id string) (*entity.Listing, error) {
	l := m.listings[id]
	if l == nil {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}
func (m *memListingRepo) UpdateStatusFromPending(id string, to entity.ModerationStatus, reason string, at time.Time) (bool, error) {
	return false, nil
}
func (m *memListingRepo) AdjustStock(listingID string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.listings[listingID]
	if l == nil || l.Stock+delta < 0 {
		return domain.ErrNotFound
	}
	l.Stock += delta
	return nil
}
func (m *memListingRepo) ListApproved(limit, offset int) ([]*entity.Listing, error) { return nil, nil }
func (m *memListingRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Listing, error) {
	return nil, nil
}
func (m *memListingRepo) ListByStatus(status entity.ModerationStatus, limit, offset int) ([]*entity.Listing, error) {
	return nil, nil
}

// memTxRunner ejecuta la función directamente sobre los repos en memoria.
// La atomicidad real la da la transacción SQL; aquí se verifica la lógica.
type memTxRunner struct {
	orders   *memOrderRepo
	listings *memListingRepo
}

func (tx *memTxRunner) Run(ctx context.Context, fn func(repository.OrderRepository, repository.ListingRepository) error) error {
	return fn(tx.orders, tx.listings)
}

type spyPublisher struct{ published []events.Envelope }

func (s *spyPublisher) Publish(ctx context.Context, evt events.Envelope) error {
	s.published = append(s.published, evt)
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Fixture: orden 42 con dos items de vendedores distintos.
// (3 x 100.00) + (1 x 50.00) = 350.00
func order42() *entity.Order {
	items := []entity.OrderItem{
		{ID: "it-1", OrderID: "ord-42", ListingID: "lst-a", VendorID: "opt-1", Quantity: 3, UnitPrice: dec("100.00"), Subtotal: dec("300.00")},
		{ID: "it-2", OrderID: "ord-42", ListingID: "lst-b", VendorID: "opt-2", Quantity: 1, UnitPrice: dec("50.00"), Subtotal: dec("50.00")},
	}
	return &entity.Order{
		ID:         "ord-42",
		BuyerID:    "buyer-1",
		Status:     entity.OrderPending,
		Items:      items,
		TotalPrice: dec("350.00"),
		CreatedAt:  time.Now(),
	}
}

func fixture() (*orderflow.OrderFlowUseCase, *memOrderRepo, *memListingRepo, *spyPublisher) {
	orders := newMemOrderRepo(order42())
	listings := newMemListingRepo(
		&entity.Listing{ID: "lst-a", OwnerID: "opt-1", Status: entity.StatusApproved, Stock: 7},
		&entity.Listing{ID: "lst-b", OwnerID: "opt-2", Status: entity.StatusApproved, Stock: 0},
	)
	pub := &spyPublisher{}
	uc := orderflow.NewOrderFlowUseCase(orders, &memTxRunner{orders: orders, listings: listings}, pub)
	return uc, orders, listings, pub
}

// ──────────────────────────────────────────────────────────────────────────────
// Refuse: transición + restauración de stock, todo o nada
// ──────────────────────────────────────────────────────────────────────────────

func TestRefuse_RestauraStockDeCadaItem(t *testing.T) {
	uc, _, listings, pub := fixture()

	order, err := uc.Refuse(context.Background(), admin, "ord-42", "Duplicada")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderRefused, order.Status)
	assert.Equal(t, "Duplicada", order.AdminNote)

	// Cada listing recupera exactamente la cantidad reservada por su item.
	a, _ := listings.GetByID("lst-a")
	b, _ := listings.GetByID("lst-b")
	assert.Equal(t, 10, a.Stock, "7 + 3 restaurados")
	assert.Equal(t, 1, b.Stock, "0 + 1 restaurado")

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.EventOrderRefused, pub.published[0].EventType)
}

func TestRefuse_SegundoIntentoNoRestauraDosVeces(t *testing.T) {
	uc, _, listings, _ := fixture()

	_, err := uc.Refuse(context.Background(), admin, "ord-42", "Duplicada")
	require.NoError(t, err)

	_, err = uc.Refuse(context.Background(), admin, "ord-42", "otra vez")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// El stock quedó en el valor de la primera restauración.
	a, _ := listings.GetByID("lst-a")
	b, _ := listings.GetByID("lst-b")
	assert.Equal(t, 10, a.Stock)
	assert.Equal(t, 1, b.Stock)
}

func TestRefuse_MotivoVacioRechazadoAntesDeMutar(t *testing.T) {
	uc, orders, listings, _ := fixture()

	for _, reason := range []string{"", "   ", "\t"} {
		_, err := uc.Refuse(context.Background(), admin, "ord-42", reason)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	stored, _ := orders.GetByID("ord-42")
	assert.Equal(t, entity.OrderPending, stored.Status)
	a, _ := listings.GetByID("lst-a")
	assert.Equal(t, 7, a.Stock, "sin motivo no hay mutación alguna")
}

func TestRefuse_NoAdminEsPermissionDenied(t *testing.T) {
	uc, orders, _, _ := fixture()

	_, err := uc.Refuse(context.Background(), opticien, "ord-42", "no me gusta")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	stored, _ := orders.GetByID("ord-42")
	assert.Equal(t, entity.OrderPending, stored.Status)
}

func TestRefuse_OrdenInexistente(t *testing.T) {
	uc, _, _, _ := fixture()
	_, err := uc.Refuse(context.Background(), admin, "ord-999", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validate / Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_MarcaValidadaSinTocarStock(t *testing.T) {
	uc, _, listings, pub := fixture()

	order, err := uc.Validate(context.Background(), admin, "ord-42", "ok, stock verificado")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderValidated, order.Status)
	assert.Equal(t, "ok, stock verificado", order.AdminNote)
	require.NotNil(t, order.ValidatedAt)

	// La validación confirma la reserva del checkout, no la repite.
	a, _ := listings.GetByID("lst-a")
	assert.Equal(t, 7, a.Stock)

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.EventOrderValidated, pub.published[0].EventType)
}

func TestValidate_DespuesDeRefuseEsInvalidTransition(t *testing.T) {
	uc, _, _, _ := fixture()

	_, err := uc.Refuse(context.Background(), admin, "ord-42", "Duplicada")
	require.NoError(t, err)

	_, err = uc.Validate(context.Background(), admin, "ord-42", "tarde")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"validated y refused son salidas mutuamente excluyentes de pending")
}

func TestComplete_SoloDesdeValidated(t *testing.T) {
	uc, _, _, _ := fixture()

	// pending -> completed no es una arista del ciclo de vida.
	_, err := uc.Complete(context.Background(), admin, "ord-42")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.Validate(context.Background(), admin, "ord-42", "")
	require.NoError(t, err)

	order, err := uc.Complete(context.Background(), admin, "ord-42")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, order.Status)

	// Completed es terminal.
	_, err = uc.Complete(context.Background(), admin, "ord-42")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Get: verificación de integridad monetaria
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_OrdenConsistente(t *testing.T) {
	uc, _, _, _ := fixture()
	order, err := uc.Get(context.Background(), "ord-42")
	require.NoError(t, err)
	assert.True(t, order.TotalPrice.Equal(dec("350.00")))
}

func TestGet_TotalDesajustadoEsErrorDeIntegridad(t *testing.T) {
	corrupted := order42()
	corrupted.TotalPrice = dec("350.01")
	orders := newMemOrderRepo(corrupted)
	uc := orderflow.NewOrderFlowUseCase(orders, &memTxRunner{orders: orders, listings: newMemListingRepo()}, nil)

	_, err := uc.Get(context.Background(), "ord-42")
	assert.ErrorIs(t, err, domain.ErrIntegrity,
		"un desajuste se reporta, nunca se corrige en silencio")
}
