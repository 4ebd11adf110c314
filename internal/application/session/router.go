package session

import (
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/policy"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// GuardResult veredicto del guard para una ruta protegida.
type GuardResult struct {
	Allowed    bool
	RedirectTo policy.Route // destino cuando !Allowed
}

// routeSpec tabla de rutas protegidas. RequiresApproval=true consulta la
// visibilidad de la política; las dos páginas de estado son alcanzables por
// cualquier identidad autenticada pero corrigen si su premisa ya no aplica.
var routeSpec = map[policy.Route]struct{ RequiresApproval bool }{
	policy.RouteDashboard:       {RequiresApproval: true},
	policy.RoutePendingApproval: {RequiresApproval: false},
	policy.RouteAccountRejected: {RequiresApproval: false},
}

// ParseRoute valida una ruta recibida en el borde de la API.
func ParseRoute(s string) (policy.Route, error) {
	r := policy.Route(s)
	if _, ok := routeSpec[r]; ok {
		return r, nil
	}
	return "", domain.ErrInvalidInput
}

// PostAuthRoute ruta de aterrizaje tras autenticarse. Sin identidad válida,
// siempre Login, independiente de cualquier otra regla.
func PostAuthRoute(id *entity.Identity) policy.Route {
	if id == nil {
		return policy.RouteLogin
	}
	return policy.DecideFor(*id).Landing
}

// Guard decide en render-time si la identidad puede ver la ruta.
//   - Sin identidad: Redirect(Login).
//   - Ruta que requiere aprobación: visibilidad full o redirección al
//     aterrizaje que dicta la política.
//   - Página de estado: permitida solo si sigue siendo el aterrizaje de la
//     identidad; si no (p.ej. cuenta ya aprobada parada en la página
//     pending), redirección correctiva para no dejar varado a un cliente
//     con snapshot obsoleto.
func Guard(route policy.Route, id *entity.Identity) GuardResult {
	if id == nil {
		return GuardResult{RedirectTo: policy.RouteLogin}
	}
	decision := policy.DecideFor(*id)
	spec, known := routeSpec[route]
	if !known || spec.RequiresApproval {
		if decision.Visibility != policy.VisibilityFull {
			return GuardResult{RedirectTo: decision.Landing}
		}
		return GuardResult{Allowed: true}
	}
	if decision.Landing != route {
		return GuardResult{RedirectTo: decision.Landing}
	}
	return GuardResult{Allowed: true}
}
