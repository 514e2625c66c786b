// Package pdf genera el reporte de productos para empleados.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: AgriConnect + título   │  Fecha de generación      │
//	│  FILTROS: categoría / desde / hasta                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Producto | Categoría | Agricultor | Fechas      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL de productos                                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 46, Green: 125, Blue: 50}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ ports.ProductReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.ProductReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateProductReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateProductReport(_ context.Context, report ports.ProductReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de productos", true).
		WithAuthor(nonEmpty(report.GeneratedBy, "AgriConnect"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(filterRow(report.Filter))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Products) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay productos que coincidan con los filtros.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(tableDetailRows(report.Products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(len(report.Products)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report ports.ProductReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("AgriConnect", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de productos", props.Text{
				Size: 9, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(nonEmpty(report.GeneratedBy, ""), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func filterRow(f dto.ProductFilterRequest) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Categoría: %s   |   Desde: %s   |   Hasta: %s",
			nonEmpty(f.Category, "todas"),
			nonEmpty(f.FromDate, "-"),
			nonEmpty(f.ToDate, "-"),
		), props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

// tableHeaderRow cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Producto", 3, align.Left),
		h("Categoría", 2, align.Left),
		h("Agricultor", 3, align.Left),
		h("Producción", 2, align.Center),
		h("Alta", 1, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(products []dto.ProductResponse) []core.Row {
	result := make([]core.Row, 0, len(products))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, p := range products {
		result = append(result, row.New(7).Add(
			cell(strconv.FormatInt(p.ID, 10), 1, align.Center),
			cell(p.Name, 3, align.Left),
			cell(nonEmpty(p.Category, "-"), 2, align.Left),
			cell(nonEmpty(p.FarmerName, "-"), 3, align.Left),
			cell(p.ProductionDate.Format(dto.DateLayout), 2, align.Center),
			cell(p.AddedDate.Format("02/01/06"), 1, align.Center),
		))
	}
	return result
}

func totalRow(n int) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(4).Add(text.New(fmt.Sprintf("Total de productos: %d", n), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
