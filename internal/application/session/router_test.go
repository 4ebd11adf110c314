package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/policy"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/session"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

func identity(role entity.Role, status entity.ModerationStatus) *entity.Identity {
	return &entity.Identity{ID: "acc-1", Role: role, Status: status}
}

// ──────────────────────────────────────────────────────────────────────────────
// PostAuthRoute: aterrizaje tras login
// ──────────────────────────────────────────────────────────────────────────────

func TestPostAuthRoute_SinSesionSiempreLogin(t *testing.T) {
	assert.Equal(t, policy.RouteLogin, session.PostAuthRoute(nil))
}

func TestPostAuthRoute_OpticienPendingAterrizaEnPendingApproval(t *testing.T) {
	got := session.PostAuthRoute(identity(entity.RoleOpticien, entity.StatusPending))
	assert.Equal(t, policy.RoutePendingApproval, got)
}

func TestPostAuthRoute_AdminAterrizaEnDashboard(t *testing.T) {
	got := session.PostAuthRoute(identity(entity.RoleAdmin, ""))
	assert.Equal(t, policy.RouteDashboard, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard: rutas protegidas y redirecciones correctivas
// ──────────────────────────────────────────────────────────────────────────────

func TestGuard_SinIdentidadRedirigeALogin(t *testing.T) {
	result := session.Guard(policy.RouteDashboard, nil)
	assert.False(t, result.Allowed)
	assert.Equal(t, policy.RouteLogin, result.RedirectTo)
}

func TestGuard_PendingNoEntraAlDashboard(t *testing.T) {
	result := session.Guard(policy.RouteDashboard, identity(entity.RoleOpticien, entity.StatusPending))
	assert.False(t, result.Allowed)
	assert.Equal(t, policy.RoutePendingApproval, result.RedirectTo)
}

func TestGuard_ApprovedEntraAlDashboard(t *testing.T) {
	result := session.Guard(policy.RouteDashboard, identity(entity.RoleOpticien, entity.StatusApproved))
	assert.True(t, result.Allowed)
}

func TestGuard_PendingPuedeVerSuPaginaDeEstado(t *testing.T) {
	result := session.Guard(policy.RoutePendingApproval, identity(entity.RoleOpticien, entity.StatusPending))
	assert.True(t, result.Allowed)
}

// Escenario de snapshot obsoleto: la cuenta fue aprobada pero el cliente quedó
// con un snapshot viejo parado en la página pending; el guard corrige al
// dashboard en lugar de dejar al usuario varado.
func TestGuard_SnapshotObsoletoEnPaginaPending_CorrigeADashboard(t *testing.T) {
	stale := identity(entity.RoleOpticien, entity.StatusPending)
	require.Equal(t, policy.RoutePendingApproval, session.PostAuthRoute(stale),
		"antes de la aprobación el aterrizaje es la página pending")

	// El admin aprueba; el snapshot fresco refleja el estado nuevo.
	fresh := identity(entity.RoleOpticien, entity.StatusApproved)
	result := session.Guard(policy.RoutePendingApproval, fresh)
	assert.False(t, result.Allowed)
	assert.Equal(t, policy.RouteDashboard, result.RedirectTo,
		"la página pending ya no aplica: redirección correctiva al dashboard")
}

func TestGuard_AdminEnPaginaRejected_CorrigeADashboard(t *testing.T) {
	result := session.Guard(policy.RouteAccountRejected, identity(entity.RoleAdmin, ""))
	assert.False(t, result.Allowed)
	assert.Equal(t, policy.RouteDashboard, result.RedirectTo)
}

func TestGuard_RejectedVeSuPaginaPeroNoElDashboard(t *testing.T) {
	rejected := identity(entity.RoleOpticien, entity.StatusRejected)

	own := session.Guard(policy.RouteAccountRejected, rejected)
	assert.True(t, own.Allowed)

	dash := session.Guard(policy.RouteDashboard, rejected)
	assert.False(t, dash.Allowed)
	assert.Equal(t, policy.RouteAccountRejected, dash.RedirectTo)
}

func TestParseRoute(t *testing.T) {
	r, err := session.ParseRoute("dashboard")
	require.NoError(t, err)
	assert.Equal(t, policy.RouteDashboard, r)

	_, err = session.ParseRoute("panel-secreto")
	assert.Error(t, err, "ruta desconocida debe rechazarse en el borde")
}
