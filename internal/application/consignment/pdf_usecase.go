package consignment

import (
	"context"
	"fmt"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

// StatementPDFUseCase gera o extrato do acerto em PDF, a representação
// gráfica entregue ao fornecedor junto com a solicitação de nota.
type StatementPDFUseCase struct {
	lots      repository.LotRepository
	generator StatementPDFGenerator
}

// NewStatementPDFUseCase constrói o caso de uso.
func NewStatementPDFUseCase(lots repository.LotRepository, generator StatementPDFGenerator) *StatementPDFUseCase {
	return &StatementPDFUseCase{lots: lots, generator: generator}
}

// GenerateStatement lê o lote (snapshot sem lock) e renderiza o extrato.
// Só há extrato a partir da abertura do acerto.
func (uc *StatementPDFUseCase) GenerateStatement(ctx context.Context, lotID string) ([]byte, error) {
	lot, err := uc.lots.Get(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if lot.Status == entity.LotStatusOpen {
		return nil, domain.ErrLotState
	}
	pdf, err := uc.generator.GenerateStatementPDF(ctx, lot)
	if err != nil {
		return nil, fmt.Errorf("gerar extrato do acerto: %w", err)
	}
	return pdf, nil
}
