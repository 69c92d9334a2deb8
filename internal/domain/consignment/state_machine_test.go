package consignment_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

func newItem(t *testing.T, qty int64, cost string) *entity.Item {
	t.Helper()
	c, err := decimal.NewFromString(cost)
	require.NoError(t, err)
	return &entity.Item{
		ID:               "item-1",
		LotID:            "CSG-000001",
		Description:      "Tela LCD 6.1\"",
		OriginalQuantity: qty,
		CurrentQuantity:  qty,
		UnitCost:         c,
		StoreID:          "loja-centro",
		Status:           entity.ItemStatusAvailable,
	}
}

// assertConservation verifica que nenhuma unidade aparece ou some:
// original = corrente + consumida + devolvida.
func assertConservation(t *testing.T, it *entity.Item) {
	t.Helper()
	assert.Equal(t, it.OriginalQuantity, it.CurrentQuantity+it.ConsumedUnits()+it.ReturnedQuantity,
		"a soma corrente+consumida+devolvida deve igualar a quantidade original")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consume
// ──────────────────────────────────────────────────────────────────────────────

func TestConsume_ParcialMantemDisponivel(t *testing.T) {
	it := newItem(t, 10, "25.50")
	now := time.Now()

	err := consignment.Consume(it, 4, "OS-1001", "tec-9", now)
	require.NoError(t, err)

	assert.Equal(t, entity.ItemStatusAvailable, it.Status, "consumo parcial não muda o status")
	assert.Equal(t, int64(6), it.CurrentQuantity)
	assert.Equal(t, int64(4), it.ConsumedUnits())
	assert.Empty(t, it.WorkOrderID, "o vínculo só é gravado quando a quantidade zera")
	assertConservation(t, it)
}

func TestConsume_TotalZeraEVincula(t *testing.T) {
	it := newItem(t, 5, "80.00")
	now := time.Now()

	err := consignment.Consume(it, 5, "OS-2002", "tec-3", now)
	require.NoError(t, err)

	assert.Equal(t, entity.ItemStatusConsumed, it.Status)
	assert.Equal(t, int64(0), it.CurrentQuantity)
	assert.Equal(t, "OS-2002", it.WorkOrderID)
	assert.Equal(t, "tec-3", it.TechnicianID)
	require.NotNil(t, it.ConsumedAt)
	assert.True(t, it.ConsumedAt.Equal(now))
	assertConservation(t, it)
}

func TestConsume_QuantidadeInvalida(t *testing.T) {
	it := newItem(t, 5, "10.00")

	assert.ErrorIs(t, consignment.Consume(it, 0, "OS-1", "tec-1", time.Now()), domain.ErrInvalidInput)
	assert.ErrorIs(t, consignment.Consume(it, -2, "OS-1", "tec-1", time.Now()), domain.ErrInvalidInput)
	assert.Equal(t, int64(5), it.CurrentQuantity, "entrada inválida não pode ter efeito")
}

func TestConsume_AcimaDoSaldo_SemEfeito(t *testing.T) {
	it := newItem(t, 3, "10.00")

	err := consignment.Consume(it, 4, "OS-1", "tec-1", time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	assert.Equal(t, int64(3), it.CurrentQuantity, "falha de saldo não decrementa nada")
	assert.Equal(t, entity.ItemStatusAvailable, it.Status)
}

func TestConsume_ItemJaConsumido_FaltaDeSaldo(t *testing.T) {
	it := newItem(t, 2, "10.00")
	require.NoError(t, consignment.Consume(it, 2, "OS-1", "tec-1", time.Now()))

	err := consignment.Consume(it, 1, "OS-2", "tec-2", time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity, "item zerado sinaliza falta de saldo, não indisponibilidade")
	assert.Equal(t, "OS-1", it.WorkOrderID, "o vínculo original não pode ser sobrescrito")
}

func TestConsume_ItemDevolvido_Indisponivel(t *testing.T) {
	it := newItem(t, 5, "10.00")
	require.NoError(t, consignment.Return(it, "fin-1", time.Now()))

	err := consignment.Consume(it, 1, "OS-2", "tec-2", time.Now())
	assert.ErrorIs(t, err, domain.ErrItemNotAvailable)
	assert.Equal(t, entity.ItemStatusReturned, it.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Return
// ──────────────────────────────────────────────────────────────────────────────

// Devolução após consumo parcial: o consumo já feito permanece derivável.
func TestReturn_AposConsumoParcial_PreservaConsumo(t *testing.T) {
	it := newItem(t, 10, "25.50")
	require.NoError(t, consignment.Consume(it, 4, "OS-1", "tec-1", time.Now()))

	err := consignment.Return(it, "fin-1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, entity.ItemStatusReturned, it.Status)
	assert.Equal(t, int64(0), it.CurrentQuantity)
	assert.Equal(t, int64(6), it.ReturnedQuantity)
	assert.Equal(t, int64(4), it.ConsumedUnits(), "a devolução não apaga o consumo já registrado")
	assert.Equal(t, "102.00", it.ConsumedValue().StringFixed(2))
	assertConservation(t, it)
}

func TestReturn_ItemConsumido_Rejeitado(t *testing.T) {
	it := newItem(t, 2, "10.00")
	require.NoError(t, consignment.Consume(it, 2, "OS-1", "tec-1", time.Now()))

	assert.ErrorIs(t, consignment.Return(it, "fin-1", time.Now()), domain.ErrItemNotAvailable)
}

func TestReturn_DuasVezes_Rejeitado(t *testing.T) {
	it := newItem(t, 3, "10.00")
	require.NoError(t, consignment.Return(it, "fin-1", time.Now()))

	err := consignment.Return(it, "fin-2", time.Now())
	assert.ErrorIs(t, err, domain.ErrItemNotAvailable)
	assert.Equal(t, "fin-1", it.ReturnedBy, "a segunda devolução não sobrescreve a primeira")
}

// ──────────────────────────────────────────────────────────────────────────────
// Transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_MudaCustodia(t *testing.T) {
	it := newItem(t, 5, "10.00")

	err := consignment.Transfer(it, "loja-centro", "loja-norte")
	require.NoError(t, err)

	assert.Equal(t, "loja-norte", it.StoreID)
	assert.Equal(t, int64(5), it.CurrentQuantity, "transferência não altera quantidade")
	assert.Equal(t, entity.ItemStatusAvailable, it.Status)
}

func TestTransfer_CustodiaErrada(t *testing.T) {
	it := newItem(t, 5, "10.00")

	err := consignment.Transfer(it, "loja-sul", "loja-norte")
	assert.ErrorIs(t, err, domain.ErrWrongLocation)
	assert.Equal(t, "loja-centro", it.StoreID, "falha de custódia não move o item")
}

func TestTransfer_MesmaLoja_Invalida(t *testing.T) {
	it := newItem(t, 5, "10.00")
	assert.ErrorIs(t, consignment.Transfer(it, "loja-centro", "loja-centro"), domain.ErrInvalidInput)
}

func TestTransfer_ItemConsumido_Rejeitado(t *testing.T) {
	it := newItem(t, 1, "10.00")
	require.NoError(t, consignment.Consume(it, 1, "OS-1", "tec-1", time.Now()))

	assert.ErrorIs(t, consignment.Transfer(it, "loja-centro", "loja-norte"), domain.ErrItemNotAvailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transições do lote
// ──────────────────────────────────────────────────────────────────────────────

func TestBeginSettlement_DuasVezes_Rejeitado(t *testing.T) {
	lot := &entity.Lot{ID: "CSG-000001", Status: entity.LotStatusOpen}

	require.NoError(t, consignment.BeginSettlement(lot))
	assert.Equal(t, entity.LotStatusInSettlement, lot.Status)

	err := consignment.BeginSettlement(lot)
	assert.ErrorIs(t, err, domain.ErrLotState)
	assert.Equal(t, entity.LotStatusInSettlement, lot.Status, "a rejeição não pode mudar o estado")
}

func TestMarkPaid_Idempotente(t *testing.T) {
	lot := &entity.Lot{ID: "CSG-000001", Status: entity.LotStatusInSettlement}

	require.NoError(t, consignment.MarkPaid(lot))
	assert.Equal(t, entity.LotStatusPaid, lot.Status)

	require.NoError(t, consignment.MarkPaid(lot), "lote já pago não é erro")
	assert.Equal(t, entity.LotStatusPaid, lot.Status)
}

func TestMarkPaid_LoteAberto_Rejeitado(t *testing.T) {
	lot := &entity.Lot{ID: "CSG-000001", Status: entity.LotStatusOpen}
	assert.ErrorIs(t, consignment.MarkPaid(lot), domain.ErrLotState)
}

func TestRefreshLotStatus_TudoDevolvidoSemConsumo(t *testing.T) {
	a := newItem(t, 3, "10.00")
	b := newItem(t, 2, "20.00")
	b.ID = "item-2"
	lot := &entity.Lot{ID: "CSG-000001", Status: entity.LotStatusInSettlement, Items: []*entity.Item{a, b}}

	require.NoError(t, consignment.Return(a, "fin-1", time.Now()))
	consignment.RefreshLotStatus(lot)
	assert.Equal(t, entity.LotStatusInSettlement, lot.Status, "ainda há item não devolvido")

	require.NoError(t, consignment.Return(b, "fin-1", time.Now()))
	consignment.RefreshLotStatus(lot)
	assert.Equal(t, entity.LotStatusReturned, lot.Status)
}

func TestRefreshLotStatus_ComConsumo_NaoFechaEmReturned(t *testing.T) {
	a := newItem(t, 3, "10.00")
	require.NoError(t, consignment.Consume(a, 1, "OS-1", "tec-1", time.Now()))
	require.NoError(t, consignment.Return(a, "fin-1", time.Now()))

	lot := &entity.Lot{ID: "CSG-000001", Status: entity.LotStatusInSettlement, Items: []*entity.Item{a}}
	consignment.RefreshLotStatus(lot)
	assert.Equal(t, entity.LotStatusInSettlement, lot.Status,
		"lote com consumo precisa passar pelo pagamento, nunca fecha em RETURNED")
}
