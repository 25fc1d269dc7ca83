package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/notify"
	"github.com/jhoicas/taller-api/internal/application/usecase"
)

// WebhookHandler administración de webhooks (solo admin).
type WebhookHandler struct {
	uc *usecase.WebhookUseCase
}

// NewWebhookHandler construye el handler.
func NewWebhookHandler(uc *usecase.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar webhook
// @Description  Cada entrega lleva las cabeceras X-Webhook-Secret y X-Event-Type.
// @Tags         webhooks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWebhookRequest  true  "Webhook"
// @Success      201   {object}  dto.WebhookResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/webhooks [post]
func (h *WebhookHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWebhookRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *WebhookHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetTenantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *WebhookHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWebhookRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *WebhookHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetTenantID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Logs últimas entregas del webhook.
func (h *WebhookHandler) Logs(c *fiber.Ctx) error {
	out, err := h.uc.Logs(c.UserContext(), GetTenantID(c), c.Params("id"), c.QueryInt("limit", 50))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NotificationHandler avisos del usuario autenticado.
type NotificationHandler struct {
	uc *notify.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notify.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c), c.QueryBool("unread", false), c.QueryInt("limit", 30))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"updated": n})
}
