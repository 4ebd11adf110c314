package policy

import (
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// Visibility qué porción de la aplicación puede ver la identidad.
type Visibility string

const (
	// VisibilityFull acceso completo: dashboard, directorios, ventas.
	VisibilityFull Visibility = "full"
	// VisibilitySelfOnly solo recursos propios y las páginas de estado.
	VisibilitySelfOnly Visibility = "self_only"
)

// Route destinos de navegación que la política puede dictar.
type Route string

const (
	RouteLogin           Route = "login"
	RouteDashboard       Route = "dashboard"
	RoutePendingApproval Route = "pending-approval"
	RouteAccountRejected Route = "account-rejected"
)

// Decision resultado de la política para un par (rol, estado).
type Decision struct {
	Visibility Visibility
	Landing    Route
}

// Decide mapea (rol, estado de cuenta) -> visibilidad y ruta de aterrizaje.
// Función pura y determinista; el resultado es cacheable durante la vida de
// un snapshot de sesión.
//
// Un estado desconocido o ausente de un opticien cae en la rama pending:
// conceder acceso sobre estado ambiguo es inseguro, y rechazar de plano
// bloquearía cuentas aprobadas aún no sincronizadas.
func Decide(role entity.Role, status entity.ModerationStatus) Decision {
	if role == entity.RoleAdmin {
		// El estado se ignora para admin: siempre aprobado implícitamente.
		return Decision{Visibility: VisibilityFull, Landing: RouteDashboard}
	}
	switch status {
	case entity.StatusApproved:
		return Decision{Visibility: VisibilityFull, Landing: RouteDashboard}
	case entity.StatusRejected:
		return Decision{Visibility: VisibilitySelfOnly, Landing: RouteAccountRejected}
	case entity.StatusPending:
		return Decision{Visibility: VisibilitySelfOnly, Landing: RoutePendingApproval}
	default:
		return Decision{Visibility: VisibilitySelfOnly, Landing: RoutePendingApproval}
	}
}

// DecideFor conveniencia sobre un snapshot de identidad.
func DecideFor(id entity.Identity) Decision {
	return Decide(id.Role, id.Status)
}
