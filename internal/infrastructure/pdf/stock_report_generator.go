// Package pdf implementa el export PDF del dashboard de inventario:
// una tabla con el nivel actual de cada par (variante, ubicación).
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ledger.StockReportGenerator = (*MarotoStockReportGenerator)(nil)

// MarotoStockReportGenerator implementa ledger.StockReportGenerator usando Maroto v2.
type MarotoStockReportGenerator struct{}

// NewMarotoStockReportGenerator construye el generador.
func NewMarotoStockReportGenerator() *MarotoStockReportGenerator { return &MarotoStockReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockReportGenerator) GenerateStockReport(
	_ context.Context,
	generatedAt time.Time,
	items []repository.StockLevelDetail,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, d := range items {
		m.AddRows(detailRow(d))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Inventario", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Niveles de stock actuales por variante y ubicación", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Top: 1, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	headerRight := header
	headerRight.Align = align.Right
	return row.New(7).Add(
		col.New(2).Add(text.New("SKU", header)),
		col.New(3).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("Talla / Color", header)),
		col.New(3).Add(text.New("Ubicación", header)),
		col.New(2).Add(text.New("Cantidad", headerRight)),
	)
}

func detailRow(d repository.StockLevelDetail) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	cellRight := cell
	cellRight.Align = align.Right

	variant := d.Variant.Size
	if d.Variant.Color != "" {
		if variant != "" {
			variant += " / "
		}
		variant += d.Variant.Color
	}

	return row.New(6).Add(
		col.New(2).Add(text.New(d.Variant.UniqueSKU, cell)),
		col.New(3).Add(text.New(d.Product.Name, cell)),
		col.New(2).Add(text.New(variant, cell)),
		col.New(3).Add(text.New(d.Location.Name, cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", d.Level.Quantity), cellRight)),
	)
}

// totalsRow: pares listados y unidades totales.
func totalsRow(items []repository.StockLevelDetail) core.Row {
	var totalUnits int64
	for _, d := range items {
		totalUnits += d.Level.Quantity
	}
	label := props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}
	right := label
	right.Align = align.Right
	return row.New(8).Add(
		col.New(8).Add(text.New(fmt.Sprintf("%d registros", len(items)), label)),
		col.New(4).Add(text.New(fmt.Sprintf("Total unidades: %d", totalUnits), right)),
	)
}
