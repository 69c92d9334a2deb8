// Package pdf implementa a geração do Extrato de Acerto de consignação,
// a representação gráfica entregue ao fornecedor junto com a solicitação de
// nota a pagar.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Extrato de Acerto  │  Lote + Fornecedor + Data     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Descrição | Receb. | Cons. | Dev. | Custo | Valor  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Valor total do lote / VALOR DO ACERTO              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TIMELINE: eventos do lote (auditoria)                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	appconsignment "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/consignment"
	domconsignment "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Verificação de conformidade com a porta da aplicação.
var _ appconsignment.StatementPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa StatementPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStatementPDF gera o PDF e devolve seus bytes.
func (g *MarotoPDFGenerator) GenerateStatementPDF(_ context.Context, lot *entity.Lot) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extrato de Acerto de Consignação", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(lot))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(lot) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lot))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range timelineRows(lot) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: título (esq) e lote + fornecedor + data (dir).
func headerRow(lot *entity.Lot) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Extrato de Acerto - Consignação", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Fornecedor: "+lot.SupplierID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Lote "+lot.ID, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Emitido em "+lot.UpdatedAt.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right}
	return row.New(7).Add(
		col.New(4).Add(text.New("Descrição", header)),
		col.New(1).Add(text.New("Receb.", headerRight)),
		col.New(1).Add(text.New("Cons.", headerRight)),
		col.New(1).Add(text.New("Dev.", headerRight)),
		col.New(2).Add(text.New("Custo unit.", headerRight)),
		col.New(3).Add(text.New("Valor consumido", headerRight)),
	)
}

func tableItemRows(lot *entity.Lot) []core.Row {
	cell := props.Text{Size: 8}
	cellRight := props.Text{Size: 8, Align: align.Right}
	rows := make([]core.Row, 0, len(lot.Items))
	for _, it := range lot.Items {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(it.Description, cell)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.OriginalQuantity), cellRight)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.ConsumedUnits()), cellRight)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.ReturnedQuantity), cellRight)),
			col.New(2).Add(text.New(it.UnitCost.StringFixed(2), cellRight)),
			col.New(3).Add(text.New(it.ConsumedValue().StringFixed(2), cellRight)),
		))
	}
	return rows
}

func totalsRow(lot *entity.Lot) core.Row {
	return row.New(12).Add(
		col.New(7).Add(
			text.New(fmt.Sprintf("Unidades disponíveis: %d  |  Unidades consumidas: %d",
				domconsignment.AvailableUnits(lot), domconsignment.ConsumedUnits(lot)),
				props.Text{Size: 8, Top: 3, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Valor total do lote: "+domconsignment.TotalValue(lot).StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Color: colorGray}),
			text.New("VALOR DO ACERTO: "+domconsignment.SettlementValue(lot).StringFixed(2),
				props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 5, Color: colorPrimary}),
		),
	)
}

func timelineRows(lot *entity.Lot) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Histórico do lote", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray}),
		)),
	}
	for _, e := range lot.Timeline {
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(e.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 7, Color: colorGray})),
			col.New(2).Add(text.New(e.Kind, props.Text{Size: 7, Style: fontstyle.Bold, Color: colorGray})),
			col.New(8).Add(text.New(e.Description, props.Text{Size: 7, Color: colorGray})),
		))
	}
	return rows
}
