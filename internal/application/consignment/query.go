package consignment

import (
	"context"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

// ConsignmentQueryUseCase leituras sem lock sobre o repositório de lotes.
// Pode observar um snapshot levemente defasado; o valor do acerto é sempre
// recalculado do estado persistido na hora do acerto, nunca cacheado.
type ConsignmentQueryUseCase struct {
	lots repository.LotRepository
}

// NewConsignmentQueryUseCase constrói o caso de uso.
func NewConsignmentQueryUseCase(lots repository.LotRepository) *ConsignmentQueryUseCase {
	return &ConsignmentQueryUseCase{lots: lots}
}

// GetLot retorna o agregado completo ou ErrNotFound.
func (uc *ConsignmentQueryUseCase) GetLot(ctx context.Context, lotID string) (*entity.Lot, error) {
	return uc.lots.Get(ctx, lotID)
}

// ListLots lista lotes pelo filtro (fornecedor, status, faixa de datas).
// Sem efeitos colaterais.
func (uc *ConsignmentQueryUseCase) ListLots(ctx context.Context, filter repository.LotFilter) ([]*entity.Lot, error) {
	return uc.lots.List(ctx, filter)
}
