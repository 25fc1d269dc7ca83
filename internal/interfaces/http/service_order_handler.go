package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain"
)

// ServiceOrderHandler órdenes de servicio: estados, ítems, pagos, línea de tiempo y comprobante.
type ServiceOrderHandler struct {
	uc *serviceorder.UseCase
}

// NewServiceOrderHandler construye el handler.
func NewServiceOrderHandler(uc *serviceorder.UseCase) *ServiceOrderHandler {
	return &ServiceOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de servicio
// @Description  Nace en recepción con folio OS-000001. Los ítems opcionales se insertan en la misma transacción.
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceOrderRequest  true  "Orden"
// @Success      201   {object}  dto.ServiceOrderDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/service-orders [post]
func (h *ServiceOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetTenantID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de servicio
// @Tags         service-orders
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "Estado"
// @Param        customer_id  query  string  false  "Cliente"
// @Param        priority     query  string  false  "Prioridad"
// @Param        q            query  string  false  "Búsqueda en folio o descripción"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ServiceOrderListResponse
// @Router       /api/service-orders [get]
func (h *ServiceOrderHandler) List(c *fiber.Ctx) error {
	var q dto.ServiceOrderListQuery
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

// Get orden con ítems, pagos y totales.
func (h *ServiceOrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado
// @Description  reception → diagnosis → approval → repair → qa → ready → delivered. approval → diagnosis y qa → repair para retrabajo.
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.ChangeStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ServiceOrderResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id}/status [patch]
func (h *ServiceOrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetTenantID(c), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar repuesto o servicio
// @Description  Congela el precio y descuenta stock en la misma transacción.
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la orden"
// @Param        body  body  dto.OrderItemRequest  true  "Ítem"
// @Success      201   {object}  dto.OrderItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id}/items [post]
func (h *ServiceOrderHandler) AddItem(c *fiber.Ctx) error {
	var in dto.OrderItemRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddItem(c.UserContext(), GetTenantID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveItem quita el ítem y devuelve el stock. Un segundo intento responde 404.
func (h *ServiceOrderHandler) RemoveItem(c *fiber.Ctx) error {
	err := h.uc.RemoveItem(c.UserContext(), GetTenantID(c), GetUserID(c), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterPayment godoc
// @Summary      Registrar abono
// @Tags         service-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la orden"
// @Param        body  body  dto.RegisterPaymentRequest  true  "Pago"
// @Success      201   {object}  dto.PaymentResponse
// @Router       /api/service-orders/{id}/payments [post]
func (h *ServiceOrderHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterPayment(c.UserContext(), GetTenantID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ServiceOrderHandler) AddComment(c *fiber.Ctx) error {
	var in dto.CommentRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddComment(c.UserContext(), GetTenantID(c), GetUserID(c), c.Params("id"), in.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UploadEvidence godoc
// @Summary      Subir evidencia (foto, video o PDF)
// @Description  El archivo va a un bucket privado; la respuesta trae una URL firmada temporal.
// @Tags         service-orders
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID de la orden"
// @Param        file  formData  file    true  "Archivo (máx. 20 MB)"
// @Success      201   {object}  dto.TimelineEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id}/evidence [post]
func (h *ServiceOrderHandler) UploadEvidence(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, domain.Validation("el campo file es obligatorio"))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	out, err := h.uc.UploadEvidence(c.UserContext(), GetTenantID(c), GetUserID(c), c.Params("id"), serviceorder.EvidenceFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if errors.Is(err, serviceorder.ErrStorageDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_DISABLED", Message: err.Error()})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Timeline eventos de la orden; las evidencias traen URL firmada.
func (h *ServiceOrderHandler) Timeline(c *fiber.Ctx) error {
	out, err := h.uc.Timeline(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de la orden
// @Tags         service-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/service-orders/{id}/receipt [get]
func (h *ServiceOrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Receipt(c.UserContext(), GetTenantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
