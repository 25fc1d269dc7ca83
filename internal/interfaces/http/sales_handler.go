package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/sales"
	"github.com/jhoicas/taller-api/internal/domain"
)

// SalesHandler punto de venta y pedidos en línea.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Checkout godoc
// @Summary      Cobro en mostrador (POS)
// @Description  Los precios salen del catálogo; unit_price del carrito se ignora. La venta queda entregada y pagada.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/checkout [post]
func (h *SalesHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Checkout(c.UserContext(), GetTenantID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateOnline pedido de la tienda o del portal; queda pendiente de pago.
func (h *SalesHandler) CreateOnline(c *fiber.Ctx) error {
	var in dto.OnlineOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateOnlineOrder(c.UserContext(), GetTenantID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ChangeStatus godoc
// @Summary      Avanzar pedido en línea
// @Description  pending → paid → shipped → delivered; pending|paid → cancelled (devuelve el stock).
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la venta"
// @Param        body  body  dto.ChangeSalesStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SalesOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/status [patch]
func (h *SalesHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeSalesStatusRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.ChangeOnlineStatus(c.UserContext(), GetTenantID(c), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *SalesHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *SalesHandler) List(c *fiber.Ctx) error {
	var q dto.SalesListQuery
	if err := c.QueryParser(&q); err != nil {
		return writeError(c, domain.Validation("parámetros de consulta inválidos"))
	}
	q.Limit, q.Offset = pageParams(c)
	out, err := h.uc.List(c.UserContext(), GetTenantID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
