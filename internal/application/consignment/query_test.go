package consignment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconsignment "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

func TestQuery_GetLot(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)

	uc := appconsignment.NewConsignmentQueryUseCase(store)
	found, err := uc.GetLot(context.Background(), lot.ID)
	require.NoError(t, err)
	assert.Equal(t, lot.ID, found.ID)
	assert.Len(t, found.Items, 2)

	_, err = uc.GetLot(context.Background(), "CSG-999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_ListComFiltroDeStatus(t *testing.T) {
	store := newStore(t)
	first := mustCreateLot(t, store)
	mustCreateLot(t, store)
	ctx := context.Background()

	_, err := appconsignment.NewSettlementUseCase(store).BeginSettlement(ctx, first.ID, "fin-1")
	require.NoError(t, err)

	uc := appconsignment.NewConsignmentQueryUseCase(store)

	open, err := uc.ListLots(ctx, repository.LotFilter{Status: entity.LotStatusOpen})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.NotEqual(t, first.ID, open[0].ID)

	inSettlement, err := uc.ListLots(ctx, repository.LotFilter{Status: entity.LotStatusInSettlement})
	require.NoError(t, err)
	require.Len(t, inSettlement, 1)
	assert.Equal(t, first.ID, inSettlement[0].ID)
}

// O extrato só existe com o acerto aberto (ou concluído).
func TestStatementPDF_LoteAberto_Rejeitado(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)

	uc := appconsignment.NewStatementPDFUseCase(store, stubPDF{})
	_, err := uc.GenerateStatement(context.Background(), lot.ID)
	assert.ErrorIs(t, err, domain.ErrLotState)
}

func TestStatementPDF_LoteEmAcerto(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)
	ctx := context.Background()

	_, err := appconsignment.NewSettlementUseCase(store).BeginSettlement(ctx, lot.ID, "fin-1")
	require.NoError(t, err)

	uc := appconsignment.NewStatementPDFUseCase(store, stubPDF{})
	out, err := uc.GenerateStatement(ctx, lot.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
}

type stubPDF struct{}

func (stubPDF) GenerateStatementPDF(context.Context, *entity.Lot) ([]byte, error) {
	return []byte("%PDF"), nil
}
