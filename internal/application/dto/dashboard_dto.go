package dto

import "github.com/shopspring/decimal"

// ConsignmentDashboardDTO totais de carteira para o widget de consignação
// do dashboard. Carteira vazia produz zeros.
type ConsignmentDashboardDTO struct {
	Lots           int             `json:"lots"`
	TotalValue     decimal.Decimal `json:"total_value"`
	ConsumedValue  decimal.Decimal `json:"consumed_value"`
	AvailableUnits int64           `json:"available_units"`
	ConsumedUnits  int64           `json:"consumed_units"`
	LotsByStatus   map[string]int  `json:"lots_by_status"`
}
