package consignment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconsignment "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
)

func TestCreateLot_EntradaCompleta(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)

	assert.Equal(t, "CSG-000001", lot.ID, "o id é sequencial e legível")
	assert.Equal(t, entity.LotStatusOpen, lot.Status)
	assert.Equal(t, "forn-abc", lot.SupplierID)

	for _, it := range lot.Items {
		assert.Equal(t, entity.ItemStatusAvailable, it.Status)
		assert.Equal(t, it.OriginalQuantity, it.CurrentQuantity, "o lote entra com saldo cheio")
		assert.Equal(t, lot.ID, it.LotID)
	}

	require.Len(t, lot.Timeline, 1)
	assert.Equal(t, entity.EventEntrada, lot.Timeline[0].Kind)
	assert.Equal(t, "admin-1", lot.Timeline[0].Responsible)

	// Persistido, não só em memória do caso de uso.
	saved := reload(t, store, lot.ID)
	assert.Len(t, saved.Items, 2)
}

func TestCreateLot_IdsSequenciais(t *testing.T) {
	store := newStore(t)

	first := mustCreateLot(t, store)
	second := mustCreateLot(t, store)

	assert.Equal(t, "CSG-000001", first.ID)
	assert.Equal(t, "CSG-000002", second.ID)
}

func TestCreateLot_Validacao(t *testing.T) {
	store := newStore(t)
	uc := appconsignment.NewCreateLotUseCase(store)
	ctx := context.Background()

	validItem := dto.CreateLotItemRequest{
		Description: "Tela", Quantity: 1, UnitCost: money(t, "9.90"), DestinationStoreID: "loja-centro",
	}

	cases := []struct {
		name string
		by   string
		in   dto.CreateLotRequest
	}{
		{"sem fornecedor", "admin-1", dto.CreateLotRequest{Items: []dto.CreateLotItemRequest{validItem}}},
		{"sem responsável", "", dto.CreateLotRequest{SupplierID: "forn-1", Items: []dto.CreateLotItemRequest{validItem}}},
		{"sem itens", "admin-1", dto.CreateLotRequest{SupplierID: "forn-1"}},
		{"quantidade zero", "admin-1", dto.CreateLotRequest{SupplierID: "forn-1", Items: []dto.CreateLotItemRequest{
			{Description: "Tela", Quantity: 0, UnitCost: money(t, "9.90"), DestinationStoreID: "loja-centro"},
		}}},
		{"custo não positivo", "admin-1", dto.CreateLotRequest{SupplierID: "forn-1", Items: []dto.CreateLotItemRequest{
			{Description: "Tela", Quantity: 1, UnitCost: money(t, "0"), DestinationStoreID: "loja-centro"},
		}}},
		{"sem loja destino", "admin-1", dto.CreateLotRequest{SupplierID: "forn-1", Items: []dto.CreateLotItemRequest{
			{Description: "Tela", Quantity: 1, UnitCost: money(t, "9.90")},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateLot(ctx, tc.by, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
