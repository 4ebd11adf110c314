package dto

// RouteResponse ruta de aterrizaje para la identidad autenticada.
type RouteResponse struct {
	Route string `json:"route"`
}

// GuardResponse veredicto del guard sobre una ruta protegida.
type GuardResponse struct {
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// IdentityResponse snapshot fresco {id, role, status} (refetch-on-write).
type IdentityResponse struct {
	ID     string `json:"id"`
	Role   string `json:"role"`
	Status string `json:"status"`
}
