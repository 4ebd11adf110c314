package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/dto"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/orderflow"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/sales"
)

// OrderHandler feeds de órdenes y transiciones admin del ciclo de vida.
type OrderHandler struct {
	flow  *orderflow.OrderFlowUseCase
	sales *sales.SalesUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(flow *orderflow.OrderFlowUseCase, salesUC *sales.SalesUseCase) *OrderHandler {
	return &OrderHandler{flow: flow, sales: salesUC}
}

// Purchases godoc
// @Summary      Compras del comprador autenticado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/purchases [get]
func (h *OrderHandler) Purchases(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	orders, err := h.sales.Purchases(GetUserID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *dto.ToOrderResponse(o))
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Ventas del vendedor autenticado (proyección por vendedor)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleViewResponse
// @Router       /api/orders/sales [get]
func (h *OrderHandler) Sales(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	views, err := h.sales.Sales(GetUserID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleViews(views))
}

// AllSales godoc
// @Summary      Todas las órdenes sin filtro de vendedor (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleViewResponse
// @Router       /api/admin/orders [get]
func (h *OrderHandler) AllSales(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	views, err := h.sales.AllSales(limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleViews(views))
}

// GetByID godoc
// @Summary      Obtener una orden (verifica invariantes monetarios)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.flow.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// Validate godoc
// @Summary      Validar orden pending (no toca stock)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ValidateOrderRequest  false  "Nota"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/validate [put]
func (h *OrderHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateOrderRequest
	_ = c.BodyParser(&in) // nota opcional
	order, err := h.flow.Validate(c.Context(), GetIdentity(c), c.Params("id"), in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// Refuse godoc
// @Summary      Rehusar orden pending; restaura stock atómicamente
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.RefuseOrderRequest  true  "Motivo (obligatorio)"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/refuse [put]
func (h *OrderHandler) Refuse(c *fiber.Ctx) error {
	var in dto.RefuseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.flow.Refuse(c.Context(), GetIdentity(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// Complete godoc
// @Summary      Completar orden validated (confirmación de entrega)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/orders/{id}/complete [put]
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	order, err := h.flow.Complete(c.Context(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}
