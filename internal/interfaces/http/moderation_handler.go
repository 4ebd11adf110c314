package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/dto"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/moderation"
)

// ModerationHandler transiciones admin sobre cuentas y listings pending.
// Las transiciones NO son idempotentes: un segundo approve/reject sobre la
// misma entidad devuelve 409, no un no-op.
type ModerationHandler struct {
	accounts *moderation.AccountModerationUseCase
	listings *moderation.ListingModerationUseCase
}

// NewModerationHandler construye el handler.
func NewModerationHandler(accounts *moderation.AccountModerationUseCase, listings *moderation.ListingModerationUseCase) *ModerationHandler {
	return &ModerationHandler{accounts: accounts, listings: listings}
}

// ApproveAccount godoc
// @Summary      Aprobar cuenta pending
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/accounts/{id}/approve [patch]
func (h *ModerationHandler) ApproveAccount(c *fiber.Ctx) error {
	account, err := h.accounts.Approve(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAccountResponse(account))
}

// RejectAccount godoc
// @Summary      Rechazar cuenta pending (motivo opcional)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cuenta"
// @Param        body  body  dto.ModerationRequest  false  "Motivo"
// @Success      200   {object}  dto.AccountResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/accounts/{id}/reject [patch]
func (h *ModerationHandler) RejectAccount(c *fiber.Ctx) error {
	var in dto.ModerationRequest
	_ = c.BodyParser(&in) // motivo opcional: cuerpo vacío es válido
	account, err := h.accounts.Reject(c.Context(), GetIdentity(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAccountResponse(account))
}

// ApproveListing godoc
// @Summary      Aprobar listing pending
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del listing"
// @Success      200  {object}  dto.ListingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/listings/{id}/approve [patch]
func (h *ModerationHandler) ApproveListing(c *fiber.Ctx) error {
	listing, err := h.listings.Approve(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToListingResponse(listing))
}

// RejectListing godoc
// @Summary      Rechazar listing pending (motivo opcional)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del listing"
// @Param        body  body  dto.ModerationRequest  false  "Motivo"
// @Success      200   {object}  dto.ListingResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/listings/{id}/reject [patch]
func (h *ModerationHandler) RejectListing(c *fiber.Ctx) error {
	var in dto.ModerationRequest
	_ = c.BodyParser(&in)
	listing, err := h.listings.Reject(c.Context(), GetIdentity(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToListingResponse(listing))
}
