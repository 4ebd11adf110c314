package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/dto"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/pkg/jwt"
)

// Locals keys para la identidad en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalStatus = "status"
)

// AuthMiddleware valida el Bearer Token JWT y extrae el snapshot de identidad
// a c.Locals. El status del token es el snapshot al momento del login; los
// endpoints que necesitan estado fresco re-consultan vía AuthUseCase.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, role, status, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		c.Locals(LocalStatus, status)
		return c.Next()
	}
}

// RequireRole autoriza el acceso a los roles indicados. Usar DESPUÉS de
// AuthMiddleware. Token sin claim de rol -> 401; rol no permitido -> 403.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin rol"})
		}
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetStatus devuelve el status (snapshot del token) del contexto.
func GetStatus(c *fiber.Ctx) string {
	return localString(c, LocalStatus)
}

// GetIdentity arma el snapshot de identidad desde los locals. Un status
// desconocido cae en la rama pending dentro de la política, no aquí.
func GetIdentity(c *fiber.Ctx) entity.Identity {
	return entity.Identity{
		ID:     GetUserID(c),
		Role:   entity.Role(GetRole(c)),
		Status: entity.ModerationStatus(GetStatus(c)),
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
