package dto

// Los montos salen como texto con dos decimales; el cálculo se hace en decimal.

// DailyIncomeResponse ingresos de un día por método de pago.
type DailyIncomeResponse struct {
	Date      string            `json:"date"`
	Total     string            `json:"total"`
	Breakdown map[string]string `json:"breakdown"`
}

// RevenuePoint un día del gráfico.
type RevenuePoint struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

// RevenueChartResponse serie diaria de ingresos por servicios.
type RevenueChartResponse struct {
	Days   int            `json:"days"`
	Total  string         `json:"total"`
	Points []RevenuePoint `json:"points"`
}
