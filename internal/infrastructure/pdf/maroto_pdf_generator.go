// Package pdf genera el comprobante de una orden de servicio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller + NIT        │  Folio + Fecha + Estado      │
//	│  CLIENTE / EQUIPO                                           │
//	│  TABLA: Cant | Descripción | P.Unit | Subtotal              │
//	│  TOTALES: Total / Pagado / Saldo                            │
//	│  PAGOS: fecha | método | monto                              │
//	│  FOOTER: QR con el folio para la entrega                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/application/serviceorder"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ serviceorder.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa serviceorder.ReceiptGenerator con Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// Generate arma el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) Generate(d serviceorder.ReceiptData) ([]byte, error) {
	if d.Tenant == nil || d.Order == nil {
		return nil, fmt.Errorf("pdf: faltan datos del taller o de la orden")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de servicio "+d.Order.Folio, true).
		WithAuthor(d.Tenant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(d.Tenant, d.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(d.Customer, d.Asset))
	m.AddRows(descriptionRow(d.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(d.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(d.Total, d.Paid, d.Balance))

	if len(d.Payments) > 0 {
		m.AddRows(paymentRows(d.Payments)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(d.Order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(t *entity.Tenant, o *entity.ServiceOrder) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(t.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("NIT: %s   |   Tel: %s", nonEmpty(t.TaxID, "—"), nonEmpty(t.Phone, "—")),
				props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORDEN DE SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(o.Folio, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6}),
			text.New("Fecha: "+o.CreatedAt.Format("02/01/2006")+"   Estado: "+statusLabel(o.Status),
				props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

func customerRow(c *entity.Customer, a *entity.Asset) core.Row {
	name, contact := "—", ""
	if c != nil {
		name = c.Name
		contact = fmt.Sprintf("Doc: %s   |   Tel: %s   |   Email: %s",
			nonEmpty(c.TaxID, "—"), nonEmpty(c.Phone, "—"), nonEmpty(c.Email, "—"))
	}
	asset := "—"
	if a != nil {
		asset = a.Identifier
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(contact, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("EQUIPO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(asset, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		),
	)
}

func descriptionRow(o *entity.ServiceOrder) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("Falla reportada: "+o.Description, props.Text{Size: 8, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func itemRows(items []*entity.ServiceOrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money(it.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(total, paid, balance decimal.Decimal) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total:"),
			label("Pagado:"),
			text.New("SALDO:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2}),
		),
		col.New(3).Add(
			value(money(total)),
			value(money(paid)),
			text.New(money(balance), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}),
		),
	)
}

func paymentRows(payments []*entity.Payment) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAGOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, p := range payments {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(p.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Color: colorGray})),
			col.New(4).Add(text.New(methodLabel(p.Method), props.Text{Size: 8})),
			col.New(4).Add(text.New(money(p.Amount), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// footerRow QR con el folio: se escanea en mostrador al entregar el equipo.
func footerRow(o *entity.ServiceOrder) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(o.Folio, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Presente este comprobante para retirar su equipo.", props.Text{
				Size: 8, Top: 6, Left: 3, Color: colorGray,
			}),
			text.New(o.Folio, props.Text{Style: fontstyle.Bold, Size: 12, Top: 16, Left: 3, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func statusLabel(s entity.OrderStatus) string {
	switch s {
	case entity.StatusReception:
		return "Recepción"
	case entity.StatusDiagnosis:
		return "Diagnóstico"
	case entity.StatusApproval:
		return "Aprobación"
	case entity.StatusRepair:
		return "Reparación"
	case entity.StatusQA:
		return "Control de calidad"
	case entity.StatusReady:
		return "Listo"
	case entity.StatusDelivered:
		return "Entregado"
	}
	return string(s)
}

func methodLabel(m string) string {
	switch m {
	case entity.PaymentCash:
		return "Efectivo"
	case entity.PaymentCard:
		return "Tarjeta"
	case entity.PaymentTransfer:
		return "Transferencia"
	}
	return m
}

// money formatea con dos decimales y puntos de miles: 1234.5 → "$1.234,50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := "$" + formatThousands(intPart) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
