// Package analytics contém os casos de uso de relatório da carteira de
// consignação para o dashboard da operação.
package analytics

import (
	"context"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

// DashboardUseCase agrega os totais da carteira de lotes consignados.
//
// Leitura pura: os números são derivados item a item na hora da consulta;
// nunca existe um total acumulado mutável que possa divergir da fonte.
type DashboardUseCase struct {
	lots repository.LotRepository
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(lots repository.LotRepository) *DashboardUseCase {
	return &DashboardUseCase{lots: lots}
}

// GetConsignmentSummary totais da carteira filtrada. Carteira vazia produz
// zeros, não erro.
func (uc *DashboardUseCase) GetConsignmentSummary(ctx context.Context, filter repository.LotFilter) (*dto.ConsignmentDashboardDTO, error) {
	lots, err := uc.lots.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	s := consignment.Summarize(lots)
	return &dto.ConsignmentDashboardDTO{
		Lots:           s.Lots,
		TotalValue:     s.TotalValue,
		ConsumedValue:  s.ConsumedValue,
		AvailableUnits: s.AvailableUnits,
		ConsumedUnits:  s.ConsumedUnits,
		LotsByStatus:   s.LotsByStatus,
	}, nil
}
