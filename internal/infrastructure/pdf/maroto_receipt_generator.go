// Package pdf genera el recibo de caja imprimible en formato ticket de 80 mm.
//
// Layout del ticket:
//
//	┌──────────────────────────────┐
//	│  Local · Mesa · Atendió       │
//	│  N° cuenta + fecha            │
//	│  ──────────────────────────── │
//	│  Cant | Plato (opciones) | $  │
//	│  ──────────────────────────── │
//	│  SUBTOTAL / TOTAL             │
//	│  Código de barras + QR        │
//	└──────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
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
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comanda-api/internal/application/billing"
	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/receipt"
)

var _ billing.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// Dimensiones del ticket en mm. El alto crece con las líneas del recibo.
const (
	ticketWidth      = 80.0
	ticketBaseHeight = 150.0
	ticketLineHeight = 9.0
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa billing.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, r *receipt.Receipt) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("pdf: recibo nil")
	}
	height := ticketBaseHeight + ticketLineHeight*float64(len(r.Items))

	cfg := config.NewBuilder().
		WithDimensions(ticketWidth, height).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Recibo "+r.BillNumber, true).
		WithAuthor(r.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(r)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.4}))
	m.AddRows(itemRows(r.Items)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.4}))
	m.AddRows(totalsRows(r)...)
	m.AddRows(footerRows(r)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// textRowHeight alto de fila para una línea de texto de tamaño size.
func textRowHeight(size float64) float64 {
	return size/2 + 2
}

func headerRows(r *receipt.Receipt) []core.Row {
	center := func(s string, size float64, style fontstyle.Type) core.Row {
		return row.New(textRowHeight(size)).Add(col.New(12).Add(text.New(s, props.Text{
			Style: style, Size: size, Align: align.Center, Color: colorPrimary,
		})))
	}
	meta := fmt.Sprintf("Mesa: %s   |   Atendió: %s",
		nonEmpty(r.TableNumber, "-"), nonEmpty(r.EmployeeID, "-"))

	rows := []core.Row{
		center(nonEmpty(r.StoreName, "Comanda"), 12, fontstyle.Bold),
		row.New(5).Add(col.New(12).Add(text.New(meta, props.Text{
			Size: 7, Align: align.Center, Color: colorGray, Top: 1,
		}))),
		row.New(6).Add(
			col.New(6).Add(text.New("Cuenta N° "+r.BillNumber, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(6).Add(text.New(r.IssuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Right, Top: 1, Color: colorGray,
			})),
		),
	}
	if r.OrderNumber != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(text.New("Pedido "+r.OrderNumber, props.Text{
			Size: 7, Color: colorGray,
		}))))
	}
	return rows
}

func itemRows(items []receipt.LineItem) []core.Row {
	rows := make([]core.Row, 0, len(items)+1)
	rows = append(rows, row.New(5).Add(
		col.New(2).Add(text.New("Cant.", props.Text{Style: fontstyle.Bold, Size: 7})),
		col.New(6).Add(text.New("Plato", props.Text{Style: fontstyle.Bold, Size: 7})),
		col.New(4).Add(text.New("Total", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right})),
	))
	for _, it := range items {
		desc := nonEmpty(it.Name, it.DishID)
		if opts := optionsLabel(it.SelectedOptions); opts != "" {
			desc += "\n" + opts
		}
		rows = append(rows, row.New(ticketLineHeight).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New(desc, props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(formatMoney(it.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func totalsRows(r *receipt.Receipt) []core.Row {
	pair := func(label, value string, size float64) core.Row {
		return row.New(textRowHeight(size)).Add(
			col.New(6).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: size, Color: colorPrimary})),
			col.New(6).Add(text.New(value, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Color: colorPrimary})),
		)
	}
	return []core.Row{
		pair("SUBTOTAL", formatMoney(r.Subtotal), 8),
		pair("TOTAL", formatMoney(r.Total), 11),
	}
}

func footerRows(r *receipt.Receipt) []core.Row {
	return []core.Row{
		row.New(3),
		row.New(12).Add(col.New(12).Add(code.NewBar(r.BillNumber, props.Barcode{Percent: 90, Center: true}))),
		row.New(24).Add(col.New(12).Add(code.NewQr(qrPayload(r), props.Rect{Percent: 90, Center: true}))),
		row.New(6).Add(col.New(12).Add(text.New("¡Gracias por su visita!", props.Text{
			Size: 7, Align: align.Center, Color: colorGray, Top: 2,
		}))),
	}
}

// qrPayload datos mínimos para ubicar el recibo desde caja.
func qrPayload(r *receipt.Receipt) string {
	return fmt.Sprintf("bill=%s;order=%s;total=%s", r.BillNumber, r.OrderID, r.Total.StringFixed(2))
}

// optionsLabel "tipo: valor" ordenado por tipo, separado por comas.
func optionsLabel(opts entity.SelectedOptions) string {
	if len(opts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+opts[k].Display())
	}
	return strings.Join(parts, ", ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney "$" + puntos de miles; centavos con coma solo si los hay.
// Ej: 25000 → "$25.000", 1234.5 → "$1.234,50"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := sign + "$" + string(buf)
	if frac != "00" {
		out += "," + frac
	}
	return out
}
