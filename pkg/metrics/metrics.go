// Package metrics contadores Prometheus de la API y del dominio.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taller_http_requests_total",
		Help: "Peticiones HTTP por ruta, método y status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "taller_http_request_duration_seconds",
		Help:    "Latencia de las peticiones HTTP.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// InventoryMovements filas del libro confirmadas, por tipo y referencia. Un rollback no cuenta.
	InventoryMovements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taller_inventory_movements_total",
		Help: "Movimientos de inventario registrados.",
	}, []string{"type", "reference_kind"})

	// WebhookDeliveries intentos de entrega; result es success o failure.
	WebhookDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taller_webhook_deliveries_total",
		Help: "Entregas de webhooks por resultado.",
	}, []string{"event", "result"})
)

// Middleware mide cada petición usando la plantilla de la ruta, no la URL cruda,
// para no disparar la cardinalidad con ids.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		HTTPRequests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		return err
	}
}

// WebhookResult traduce el éxito de una entrega a la etiqueta result.
func WebhookResult(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
