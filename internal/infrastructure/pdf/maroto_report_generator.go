// Package pdf genera el reporte de existencias de sangre de una empresa.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la empresa  │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo sanguíneo | Bolsas disponibles | Actualizado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE BOLSAS                                            │
//	└─────────────────────────────────────────────────────────────┘
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

	"github.com/bloodstock/blood-stock-service/internal/application/report"
	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 153, Green: 27, Blue: 27}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.StockReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.StockReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReport(
	_ context.Context,
	company *entity.Company,
	stocks []*entity.Stock,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Existencias de Sangre", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, s := range stocks {
		m.AddRows(stockRow(s))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalRow(stocks))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la empresa (izq) y fecha de generación (der).
func headerRow(company *entity.Company, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Existencias de sangre por tipo", props.Text{
				Size: 9, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Top: 4, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(4).Add(text.New("Tipo sanguíneo", props.Text{Style: fontstyle.Bold, Top: 2})),
		col.New(4).Add(text.New("Bolsas disponibles", props.Text{Style: fontstyle.Bold, Top: 2, Align: align.Right})),
		col.New(4).Add(text.New("Última actualización", props.Text{Style: fontstyle.Bold, Top: 2, Align: align.Right})),
	)
}

func stockRow(s *entity.Stock) core.Row {
	return row.New(7).Add(
		col.New(4).Add(text.New(s.BloodType.String(), props.Text{Top: 1.5})),
		col.New(4).Add(text.New(fmt.Sprintf("%d", s.Quantity.Int()), props.Text{Top: 1.5, Align: align.Right})),
		col.New(4).Add(text.New(s.UpdatedAt.Format("02/01/2006 15:04"), props.Text{Top: 1.5, Align: align.Right, Color: colorGray})),
	)
}

func totalRow(stocks []*entity.Stock) core.Row {
	total := 0
	for _, s := range stocks {
		total += s.Quantity.Int()
	}
	return row.New(9).Add(
		col.New(4).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Top: 2})),
		col.New(4).Add(text.New(fmt.Sprintf("%d", total), props.Text{
			Style: fontstyle.Bold, Top: 2, Align: align.Right, Color: colorPrimary,
		})),
		col.New(4),
	)
}
