// Package pdf genera el resumen imprimible de una RFQ con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Marketplace + título  │  N° RFQ + Fecha + Estado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMPRADOR          │  VENDEDOR                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cantidad | Unidad | Precio objetivo       │
//	│  ENTREGA: lugar + fecha requerida + mensaje                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESPUESTA DEL VENDEDOR: precio cotizado / plazo / mensaje   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID + leyenda                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoRFQGenerator implementa ports.RFQPDFGenerator usando Maroto v2.
type MarotoRFQGenerator struct {
	brand string
}

var _ ports.RFQPDFGenerator = (*MarotoRFQGenerator)(nil)

// NewMarotoRFQGenerator construye el generador. brand aparece en la cabecera.
func NewMarotoRFQGenerator(brand string) *MarotoRFQGenerator {
	return &MarotoRFQGenerator{brand: nonEmpty(brand, "Mercado B2B")}
}

// GenerateRFQPDF genera el PDF y devuelve sus bytes.
func (g *MarotoRFQGenerator) GenerateRFQPDF(ctx context.Context, doc ports.RFQDocument) ([]byte, error) {
	if doc.RFQ == nil {
		return nil, fmt.Errorf("pdf: RFQ requerida")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Solicitud de cotización "+doc.RFQ.ID, true).
		WithAuthor(g.brand, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(doc.Buyer, doc.Seller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(doc))
	m.AddRows(deliveryRows(doc.RFQ)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(responseRows(doc.RFQ)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoRFQGenerator) headerRow(doc ports.RFQDocument) core.Row {
	q := doc.RFQ
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.brand, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Solicitud de cotización (RFQ)", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("RFQ "+strings.ToUpper(shortID(q.ID)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+q.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+q.Status.String(), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 13, Color: colorPrimary,
			}),
		),
	)
}

// partiesRow comprador (izq) y vendedor (der).
func partiesRow(buyer, seller *entity.User) core.Row {
	party := func(title string, u *entity.User) core.Col {
		name, company, email := "—", "—", "—"
		if u != nil {
			name = nonEmpty(u.FullName(), "—")
			company = nonEmpty(u.CompanyName, "—")
			email = u.Email
		}
		return col.New(6).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s   |   %s", company, email), props.Text{Size: 8, Top: 12, Color: colorGray}),
		)
	}
	return row.New(18).Add(party("COMPRADOR", buyer), party("VENDEDOR", seller))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 5, align.Left),
		h("Cantidad", 2, align.Right),
		h("Unidad", 2, align.Center),
		h("Precio objetivo", 3, align.Right),
	)
}

func detailRow(doc ports.RFQDocument) core.Row {
	q := doc.RFQ
	name := q.ProductName
	if doc.Product != nil {
		name = doc.Product.Name
	}
	return row.New(7).Add(
		col.New(5).Add(text.New(nonEmpty(name, q.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(formatQty(q.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(nonEmpty(q.Unit, "—"), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New(money(q.TargetPrice, q.CurrencyCode), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func deliveryRows(q *entity.RFQ) []core.Row {
	required := "—"
	if q.RequiredBy != nil {
		required = q.RequiredBy.Format("02/01/2006")
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Entrega en: %s   |   Requerido para: %s", nonEmpty(q.DeliveryLocation, "—"), required),
			props.Text{Size: 8, Top: 2, Color: colorGray},
		))),
	}
	if q.Message != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Mensaje del comprador:", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1}),
		)))
		for _, chunk := range splitEvery(q.Message, 110) {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 7.5, Top: 0.5, Left: 2}),
			)))
		}
	}
	return rows
}

func responseRows(q *entity.RFQ) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("RESPUESTA DEL VENDEDOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	if q.RespondedAt == nil {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin respuesta todavía.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	lead := "—"
	if q.LeadTimeDays != nil {
		lead = fmt.Sprintf("%d días", *q.LeadTimeDays)
	}
	rows = append(rows, row.New(6).Add(col.New(12).Add(text.New(
		fmt.Sprintf("Precio cotizado: %s   |   Plazo: %s   |   Fecha: %s",
			money(q.QuotedPrice, q.CurrencyCode), lead, q.RespondedAt.Format("02/01/2006")),
		props.Text{Size: 8, Top: 1},
	))))
	for _, chunk := range splitEvery(q.SellerMessage, 110) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 7.5, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

func footerRow(doc ports.RFQDocument) core.Row {
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(doc.RFQ.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("ID: "+doc.RFQ.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New(fmt.Sprintf("Reenvíos del comprador: %d", doc.RFQ.ResubmissionCount), props.Text{
				Size: 7, Top: 9, Left: 3, Color: colorGray,
			}),
			text.New("Generado el "+doc.GeneratedAt.Format("02/01/2006 15:04")+". Documento informativo, no constituye orden de compra.",
				props.Text{Size: 7, Top: 14, Left: 3, Color: colorGray}),
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

func money(v *decimal.Decimal, currency string) string {
	if v == nil {
		return "—"
	}
	return currency + " " + formatMoney(v.StringFixed(2))
}

func formatQty(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return formatMoney(d.StringFixed(0))
	}
	return formatMoney(d.StringFixed(2))
}

// formatMoney inserta separadores de miles en la parte entera.
// Ej: "25000.50" → "25,000.50", "1000000" → "1,000,000"
func formatMoney(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + frac
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	var parts []string
	r := []rune(s)
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
