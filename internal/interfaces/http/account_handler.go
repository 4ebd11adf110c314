package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/dto"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/usecase"
)

// AccountHandler lecturas de cuentas: directorio público y cola de moderación.
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Directory godoc
// @Summary      Directorio público de opticiens aprobados
// @Tags         accounts
// @Produce      json
// @Success      200  {array}  dto.AccountResponse
// @Router       /api/opticiens [get]
func (h *AccountHandler) Directory(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	accounts, err := h.uc.Directory(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, *dto.ToAccountResponse(a))
	}
	return c.JSON(out)
}

// PendingQueue godoc
// @Summary      Cola de cuentas pending (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccountResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/accounts/pending [get]
func (h *AccountHandler) PendingQueue(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	accounts, err := h.uc.PendingQueue(GetIdentity(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, *dto.ToAccountResponse(a))
	}
	return c.JSON(out)
}
