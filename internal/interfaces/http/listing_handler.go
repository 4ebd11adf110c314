package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/dto"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/usecase"
)

// ListingHandler maneja altas y lecturas de listings.
type ListingHandler struct {
	uc *usecase.ListingUseCase
}

// NewListingHandler construye el handler.
func NewListingHandler(uc *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{uc: uc}
}

// Create godoc
// @Summary      Publicar listing (nace pending)
// @Tags         listings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateListingRequest  true  "Datos del listing"
// @Success      201   {object}  dto.ListingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/listings [post]
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateListingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener listing (visibilidad según estado y rol)
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del listing"
// @Success      200  {object}  dto.ListingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/listings/{id} [get]
func (h *ListingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetVisible(c.Params("id"), GetIdentity(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Directory godoc
// @Summary      Directorio público de listings aprobados
// @Tags         listings
// @Produce      json
// @Success      200  {object}  dto.ListingListResponse
// @Router       /api/listings [get]
func (h *ListingHandler) Directory(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	listings, err := h.uc.Directory(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToListingList(listings, dto.PageResponse{Limit: limit, Offset: offset}))
}

// Mine godoc
// @Summary      Listings del opticien autenticado (todos los estados)
// @Tags         listings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListingListResponse
// @Router       /api/listings/mine [get]
func (h *ListingHandler) Mine(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	listings, err := h.uc.MyListings(GetUserID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToListingList(listings, dto.PageResponse{Limit: limit, Offset: offset}))
}

// PendingQueue godoc
// @Summary      Cola de moderación de listings (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListingListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/listings/pending [get]
func (h *ListingHandler) PendingQueue(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	listings, err := h.uc.PendingQueue(GetIdentity(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToListingList(listings, dto.PageResponse{Limit: limit, Offset: offset}))
}

// pageParams lee y acota limit/offset.
func pageParams(c *fiber.Ctx) (int, int) {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
