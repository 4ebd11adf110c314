package moderation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/events"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/moderation"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

var (
	admin    = entity.Identity{ID: "adm-1", Role: entity.RoleAdmin, Status: entity.StatusApproved}
	opticien = entity.Identity{ID: "opt-1", Role: entity.RoleOpticien, Status: entity.StatusApproved}
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia, con la misma semántica
// check-and-set que la implementación PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
}

func newMemAccountRepo(accounts ...*entity.Account) *memAccountRepo {
	m := &memAccountRepo{accounts: make(map[string]*entity.Account)}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *memAccountRepo) Create(a *entity.Account) error { m.accounts[a.ID] = a; return nil }
func (m *memAccountRepo) GetByID(id string) (*entity.Account, error) {
	a := m.accounts[id]
	if a == nil {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}
func (m *memAccountRepo) FindByEmail(email string) (*entity.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memAccountRepo) UpdateStatusFromPending(id string, to entity.ModerationStatus, reason string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.accounts[id]
	if a == nil || a.Status != entity.StatusPending {
		return false, nil
	}
	a.Status = to
	a.RejectReason = reason
	a.UpdatedAt = at
	return true, nil
}
func (m *memAccountRepo) ListByStatus(status entity.ModerationStatus, limit, offset int) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range m.accounts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}
func (m *memAccountRepo) ListApprovedOpticiens(limit, offset int) ([]*entity.Account, error) {
	return m.ListByStatus(entity.StatusApproved, limit, offset)
}

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
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.listings[id]
	if l == nil || l.Status != entity.StatusPending {
		return false, nil
	}
	l.Status = to
	l.RejectReason = reason
	l.UpdatedAt = at
	return true, nil
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
func (m *memListingRepo) ListApproved(limit, offset int) ([]*entity.Listing, error) {
	return m.ListByStatus(entity.StatusApproved, limit, offset)
}
func (m *memListingRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, l := range m.listings {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (m *memListingRepo) ListByStatus(status entity.ModerationStatus, limit, offset int) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, l := range m.listings {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

type spyInvalidator struct{ invalidated []string }

func (s *spyInvalidator) Invalidate(ctx context.Context, accountID string) error {
	s.invalidated = append(s.invalidated, accountID)
	return nil
}

type spyPublisher struct{ published []events.Envelope }

func (s *spyPublisher) Publish(ctx context.Context, evt events.Envelope) error {
	s.published = append(s.published, evt)
	return nil
}

func pendingAccount(id string) *entity.Account {
	return &entity.Account{ID: id, Email: id + "@test.fr", Role: entity.RoleOpticien, Status: entity.StatusPending}
}

func pendingListing(id string) *entity.Listing {
	return &entity.Listing{ID: id, OwnerID: "opt-1", Name: "Monture X", Status: entity.StatusPending, Stock: 5}
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina pura
// ──────────────────────────────────────────────────────────────────────────────

func TestNext_SoloDesdePending(t *testing.T) {
	next, err := moderation.Next(entity.StatusPending, moderation.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, next)

	next, err = moderation.Next(entity.StatusPending, moderation.ActionReject)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, next)

	// La máquina es one-shot: los estados terminales no admiten más aristas.
	_, err = moderation.Next(entity.StatusApproved, moderation.ActionReject)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = moderation.Next(entity.StatusRejected, moderation.ActionApprove)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAuthorize_SoloAdmin(t *testing.T) {
	assert.NoError(t, moderation.Authorize(admin))
	assert.ErrorIs(t, moderation.Authorize(opticien), domain.ErrPermissionDenied)
}

// ──────────────────────────────────────────────────────────────────────────────
// Moderación de cuentas
// ──────────────────────────────────────────────────────────────────────────────

func TestAccountApprove_TransicionaEInvalidaCache(t *testing.T) {
	repo := newMemAccountRepo(pendingAccount("acc-1"))
	cache := &spyInvalidator{}
	pub := &spyPublisher{}
	uc := moderation.NewAccountModerationUseCase(repo, cache, pub)

	account, err := uc.Approve(context.Background(), admin, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, account.Status)

	stored, _ := repo.GetByID("acc-1")
	assert.Equal(t, entity.StatusApproved, stored.Status)
	assert.Equal(t, []string{"acc-1"}, cache.invalidated,
		"el snapshot de identidad cacheado debe invalidarse al aprobar")

	require.Len(t, pub.published, 1)
	assert.Equal(t, events.EventAccountApproved, pub.published[0].EventType)
}

func TestAccountReject_GuardaMotivo(t *testing.T) {
	repo := newMemAccountRepo(pendingAccount("acc-1"))
	uc := moderation.NewAccountModerationUseCase(repo, nil, nil)

	account, err := uc.Reject(context.Background(), admin, "acc-1", "documentación incompleta")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, account.Status)
	assert.Equal(t, "documentación incompleta", account.RejectReason)
}

func TestAccountTransition_NoAdminEsPermissionDenied(t *testing.T) {
	repo := newMemAccountRepo(pendingAccount("acc-1"))
	uc := moderation.NewAccountModerationUseCase(repo, nil, nil)

	_, err := uc.Approve(context.Background(), opticien, "acc-1")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	// Sin mutación: la cuenta sigue pending.
	stored, _ := repo.GetByID("acc-1")
	assert.Equal(t, entity.StatusPending, stored.Status)
}

func TestAccountTransition_ReModerarEsInvalidTransition(t *testing.T) {
	repo := newMemAccountRepo(pendingAccount("acc-1"))
	uc := moderation.NewAccountModerationUseCase(repo, nil, nil)

	_, err := uc.Approve(context.Background(), admin, "acc-1")
	require.NoError(t, err)

	_, err = uc.Approve(context.Background(), admin, "acc-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = uc.Reject(context.Background(), admin, "acc-1", "tarde")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAccountTransition_CuentaInexistente(t *testing.T) {
	uc := moderation.NewAccountModerationUseCase(newMemAccountRepo(), nil, nil)
	_, err := uc.Approve(context.Background(), admin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountTransition_AdminNoSeModeranEntreSi(t *testing.T) {
	other := &entity.Account{ID: "adm-2", Role: entity.RoleAdmin, Status: entity.StatusApproved}
	uc := moderation.NewAccountModerationUseCase(newMemAccountRepo(other), nil, nil)
	_, err := uc.Approve(context.Background(), admin, "adm-2")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Moderación de listings
// ──────────────────────────────────────────────────────────────────────────────

func TestListingApprove_Transiciona(t *testing.T) {
	repo := newMemListingRepo(pendingListing("lst-1"))
	pub := &spyPublisher{}
	uc := moderation.NewListingModerationUseCase(repo, pub)

	listing, err := uc.Approve(context.Background(), admin, "lst-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, listing.Status)
	require.Len(t, pub.published, 1)
	assert.Equal(t, events.EventListingApproved, pub.published[0].EventType)
}

func TestListingReject_OneShot(t *testing.T) {
	repo := newMemListingRepo(pendingListing("lst-1"))
	uc := moderation.NewListingModerationUseCase(repo, nil)

	_, err := uc.Reject(context.Background(), admin, "lst-1", "foto ilegible")
	require.NoError(t, err)

	_, err = uc.Approve(context.Background(), admin, "lst-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"un listing rechazado no puede re-moderarse")
}

func TestListingTransition_NoAdminNoMuta(t *testing.T) {
	repo := newMemListingRepo(pendingListing("lst-1"))
	uc := moderation.NewListingModerationUseCase(repo, nil)

	_, err := uc.Reject(context.Background(), opticien, "lst-1", "x")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	stored, _ := repo.GetByID("lst-1")
	assert.Equal(t, entity.StatusPending, stored.Status)
}
