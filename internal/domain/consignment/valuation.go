package consignment

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
)

// SettlementValue valor do acerto do lote: soma de custo unitário x unidades
// consumidas, restrita a itens com ao menos uma unidade consumida. Função
// pura e determinística, sempre recalculada do estado persistido, nunca
// mantida como total acumulado mutável.
func SettlementValue(lot *entity.Lot) decimal.Decimal {
	consumed := lo.Filter(lot.Items, func(it *entity.Item, _ int) bool {
		return it.ConsumedUnits() > 0
	})
	return lo.Reduce(consumed, func(acc decimal.Decimal, it *entity.Item, _ int) decimal.Decimal {
		return acc.Add(it.ConsumedValue())
	}, decimal.Zero)
}

// TotalValue valor original total do lote (todas as unidades recebidas).
func TotalValue(lot *entity.Lot) decimal.Decimal {
	return lo.Reduce(lot.Items, func(acc decimal.Decimal, it *entity.Item, _ int) decimal.Decimal {
		return acc.Add(it.TotalValue())
	}, decimal.Zero)
}

// AvailableUnits unidades ainda disponíveis para consumo no lote.
func AvailableUnits(lot *entity.Lot) int64 {
	return lo.SumBy(lot.Items, func(it *entity.Item) int64 {
		if it.Status != entity.ItemStatusAvailable {
			return 0
		}
		return it.CurrentQuantity
	})
}

// ConsumedUnits unidades consumidas no lote.
func ConsumedUnits(lot *entity.Lot) int64 {
	return lo.SumBy(lot.Items, func(it *entity.Item) int64 { return it.ConsumedUnits() })
}

// PortfolioSummary agregado de carteira para o dashboard.
type PortfolioSummary struct {
	Lots           int
	TotalValue     decimal.Decimal
	ConsumedValue  decimal.Decimal
	AvailableUnits int64
	ConsumedUnits  int64
	LotsByStatus   map[string]int
}

// Summarize agrega um conjunto (possivelmente vazio) de lotes.
// Conjunto vazio retorna zeros, não erro.
func Summarize(lots []*entity.Lot) PortfolioSummary {
	s := PortfolioSummary{
		TotalValue:    decimal.Zero,
		ConsumedValue: decimal.Zero,
		LotsByStatus:  map[string]int{},
	}
	for _, lot := range lots {
		s.Lots++
		s.TotalValue = s.TotalValue.Add(TotalValue(lot))
		s.ConsumedValue = s.ConsumedValue.Add(SettlementValue(lot))
		s.AvailableUnits += AvailableUnits(lot)
		s.ConsumedUnits += ConsumedUnits(lot)
		s.LotsByStatus[lot.Status]++
	}
	return s
}
