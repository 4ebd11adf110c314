package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/auth"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/dto"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/session"
)

// SessionHandler expone el router de sesión: ruta de aterrizaje y guard de
// rutas protegidas. Consulta la identidad FRESCA (cache/DB), no el snapshot
// del token: así un cliente con sesión vieja recibe la corrección en vez de
// quedar varado en una página de estado obsoleta.
type SessionHandler struct {
	authUC *auth.AuthUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(authUC *auth.AuthUseCase) *SessionHandler {
	return &SessionHandler{authUC: authUC}
}

// Route godoc
// @Summary      Ruta de aterrizaje para la identidad autenticada
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RouteResponse
// @Router       /api/session/route [get]
func (h *SessionHandler) Route(c *fiber.Ctx) error {
	id, err := h.authUC.CurrentIdentity(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RouteResponse{Route: string(session.PostAuthRoute(id))})
}

// Guard godoc
// @Summary      Veredicto del guard para una ruta protegida
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Param        route  query  string  true  "dashboard | pending-approval | account-rejected"
// @Success      200  {object}  dto.GuardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/session/guard [get]
func (h *SessionHandler) Guard(c *fiber.Ctx) error {
	route, err := session.ParseRoute(c.Query("route"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ruta desconocida"})
	}
	id, err := h.authUC.CurrentIdentity(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	result := session.Guard(route, id)
	return c.JSON(dto.GuardResponse{Allowed: result.Allowed, RedirectTo: string(result.RedirectTo)})
}
