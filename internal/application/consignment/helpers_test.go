package consignment_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appconsignment "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste: os casos de uso rodam contra o store em memória, que tem
// a mesma semântica de lock por lote e timeout da implementação postgres.
// ──────────────────────────────────────────────────────────────────────────────

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	return memory.NewStore(2 * time.Second)
}

func money(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

// mustCreateLot cria o lote padrão dos testes: tela (10 un. a 25.50, loja
// centro) e bateria (5 un. a 80.00, loja norte).
func mustCreateLot(t *testing.T, store *memory.Store) *entity.Lot {
	t.Helper()
	uc := appconsignment.NewCreateLotUseCase(store)
	lot, err := uc.CreateLot(context.Background(), "admin-1", dto.CreateLotRequest{
		SupplierID: "forn-abc",
		Items: []dto.CreateLotItemRequest{
			{Description: "Tela LCD 6.1\"", Quantity: 10, UnitCost: money(t, "25.50"), DestinationStoreID: "loja-centro"},
			{Description: "Bateria 4000mAh", Quantity: 5, UnitCost: money(t, "80.00"), DestinationStoreID: "loja-norte"},
		},
	})
	require.NoError(t, err)
	require.Len(t, lot.Items, 2)
	return lot
}

// consumeReq monta o pedido de consumo padrão para um item do lote.
func consumeReq(qty int64, workOrder, storeID string) dto.RegisterConsumptionRequest {
	return dto.RegisterConsumptionRequest{
		Quantity:     qty,
		WorkOrderID:  workOrder,
		TechnicianID: "tec-1",
		StoreID:      storeID,
	}
}

// reload lê o estado persistido do lote, fora de qualquer transação.
func reload(t *testing.T, store *memory.Store, lotID string) *entity.Lot {
	t.Helper()
	lot, err := store.Get(context.Background(), lotID)
	require.NoError(t, err)
	return lot
}

// timelineKinds projeta os tipos de evento na ordem de inserção.
func timelineKinds(lot *entity.Lot) []string {
	kinds := make([]string, 0, len(lot.Timeline))
	for _, e := range lot.Timeline {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
