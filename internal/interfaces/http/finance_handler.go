package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/finance"
)

// FinanceHandler reportes de ingresos.
type FinanceHandler struct {
	uc *finance.UseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// DailyIncome godoc
// @Summary      Ingreso del día por método de pago
// @Description  Pagos de órdenes de servicio por método más ventas pagadas bajo pos_web.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200   {object}  dto.DailyIncomeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/finance/daily-income [get]
func (h *FinanceHandler) DailyIncome(c *fiber.Ctx) error {
	out, err := h.uc.DailyIncome(c.UserContext(), GetTenantID(c), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RevenueChart godoc
// @Summary      Serie diaria de ingresos
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días hacia atrás (1-90)"  default(7)
// @Success      200   {object}  dto.RevenueChartResponse
// @Router       /api/finance/revenue-chart [get]
func (h *FinanceHandler) RevenueChart(c *fiber.Ctx) error {
	out, err := h.uc.RevenueChart(c.UserContext(), GetTenantID(c), c.QueryInt("days", finance.DefaultChartDays))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
