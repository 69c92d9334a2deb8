package consignment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconsignment "github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/infrastructure/memory"
)

// Ciclo de vida completo: entrada, consumos, acerto, nota e pagamento.
func TestSettlement_CicloCompleto(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)
	tela, bateria := lot.Items[0], lot.Items[1]
	ctx := context.Background()

	consume := appconsignment.NewRegisterConsumptionUseCase(store)
	settlement := appconsignment.NewSettlementUseCase(store)

	_, err := consume.RegisterConsumption(ctx, lot.ID, tela.ID, consumeReq(3, "OS-1", "loja-centro"))
	require.NoError(t, err)
	_, err = consume.RegisterConsumption(ctx, lot.ID, bateria.ID, consumeReq(5, "OS-2", "loja-norte"))
	require.NoError(t, err)

	opened, err := settlement.BeginSettlement(ctx, lot.ID, "fin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusInSettlement, opened.Status)

	// 3 x 25.50 + 5 x 80.00 = 476.50, congelado na nota.
	note, err := settlement.GenerateFinancialNote(ctx, lot.ID, "fin-1", dto.GenerateNoteRequest{
		Method: entity.PaymentMethodPix, PixKey: "forn@banco.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "476.50", note.Value.StringFixed(2))
	assert.Equal(t, lot.ID, note.LotID)
	assert.Equal(t, "forn-abc", note.SupplierID)
	assert.Equal(t, entity.PaymentMethodPix, note.Method)

	paid, err := settlement.MarkPaid(ctx, lot.ID, "fin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusPaid, paid.Status)

	saved := reload(t, store, lot.ID)
	assert.Equal(t, []string{
		entity.EventEntrada,
		entity.EventConsumo,
		entity.EventConsumo,
		entity.EventAcerto,
		entity.EventPagamento, // nota solicitada
		entity.EventPagamento, // pagamento confirmado
	}, timelineKinds(saved), "a timeline preserva a ordem dos fatos")
}

func TestBeginSettlement_DuasVezesRejeitado(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)
	ctx := context.Background()
	settlement := appconsignment.NewSettlementUseCase(store)

	_, err := settlement.BeginSettlement(ctx, lot.ID, "fin-1")
	require.NoError(t, err)

	_, err = settlement.BeginSettlement(ctx, lot.ID, "fin-2")
	assert.ErrorIs(t, err, domain.ErrLotState)

	saved := reload(t, store, lot.ID)
	assert.Equal(t, []string{entity.EventEntrada, entity.EventAcerto}, timelineKinds(saved),
		"a abertura rejeitada não anexa evento")
}

// Devolução de item parcialmente consumido: só o saldo volta; o consumo
// permanece cobrável na nota.
func TestConfirmReturn_SaldoParcial(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)
	tela := lot.Items[0]
	ctx := context.Background()

	consume := appconsignment.NewRegisterConsumptionUseCase(store)
	settlement := appconsignment.NewSettlementUseCase(store)

	_, err := consume.RegisterConsumption(ctx, lot.ID, tela.ID, consumeReq(4, "OS-1", "loja-centro"))
	require.NoError(t, err)
	_, err = settlement.BeginSettlement(ctx, lot.ID, "fin-1")
	require.NoError(t, err)

	item, err := settlement.ConfirmReturn(ctx, lot.ID, tela.ID, "fin-1", nil)
	require.NoError(t, err)

	assert.Equal(t, entity.ItemStatusReturned, item.Status)
	assert.Equal(t, int64(6), item.ReturnedQuantity)
	assert.Equal(t, int64(4), item.ConsumedUnits())

	// A nota cobra só o consumido: 4 x 25.50 = 102.00.
	note, err := settlement.GenerateFinancialNote(ctx, lot.ID, "fin-1", dto.GenerateNoteRequest{Method: entity.PaymentMethodTED})
	require.NoError(t, err)
	assert.Equal(t, "102.00", note.Value.StringFixed(2))
}

func TestConfirmReturn_ForaDoAcerto_Rejeitado(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)
	tela := lot.Items[0]

	settlement := appconsignment.NewSettlementUseCase(store)
	_, err := settlement.ConfirmReturn(context.Background(), lot.ID, tela.ID, "fin-1", nil)
	assert.ErrorIs(t, err, domain.ErrLotState, "devolução exige acerto aberto")
}

// Lote intocado: tudo devolvido fecha em RETURNED e não há o que faturar.
func TestSettlement_LoteIntocadoFechaEmReturned(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)
	ctx := context.Background()
	settlement := appconsignment.NewSettlementUseCase(store)

	_, err := settlement.BeginSettlement(ctx, lot.ID, "fin-1")
	require.NoError(t, err)

	for _, it := range lot.Items {
		_, err = settlement.ConfirmReturn(ctx, lot.ID, it.ID, "fin-1", nil)
		require.NoError(t, err)
	}

	saved := reload(t, store, lot.ID)
	assert.Equal(t, entity.LotStatusReturned, saved.Status)

	// Sem consumo não há nota; e o lote já saiu de IN_SETTLEMENT.
	_, err = settlement.GenerateFinancialNote(ctx, lot.ID, "fin-1", dto.GenerateNoteRequest{Method: entity.PaymentMethodPix})
	assert.ErrorIs(t, err, domain.ErrLotState)
}

func TestGenerateFinancialNote_SemConsumo_Rejeitada(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)
	ctx := context.Background()
	settlement := appconsignment.NewSettlementUseCase(store)

	_, err := settlement.BeginSettlement(ctx, lot.ID, "fin-1")
	require.NoError(t, err)

	_, err = settlement.GenerateFinancialNote(ctx, lot.ID, "fin-1", dto.GenerateNoteRequest{Method: entity.PaymentMethodPix})
	assert.ErrorIs(t, err, domain.ErrLotState, "nota de valor zero não é emitida")
}

func TestGenerateFinancialNote_MetodoInvalido(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)
	settlement := appconsignment.NewSettlementUseCase(store)

	_, err := settlement.GenerateFinancialNote(context.Background(), lot.ID, "fin-1", dto.GenerateNoteRequest{Method: "cheque"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkPaid_RetryNaoDuplicaEvento(t *testing.T) {
	store := newStore(t)
	lot := mustCreateLot(t, store)
	tela := lot.Items[0]
	ctx := context.Background()

	consume := appconsignment.NewRegisterConsumptionUseCase(store)
	settlement := appconsignment.NewSettlementUseCase(store)

	_, err := consume.RegisterConsumption(ctx, lot.ID, tela.ID, consumeReq(1, "OS-1", "loja-centro"))
	require.NoError(t, err)
	_, err = settlement.BeginSettlement(ctx, lot.ID, "fin-1")
	require.NoError(t, err)

	_, err = settlement.MarkPaid(ctx, lot.ID, "fin-1")
	require.NoError(t, err)
	_, err = settlement.MarkPaid(ctx, lot.ID, "fin-1")
	require.NoError(t, err, "confirmação repetida do financeiro não é erro")

	saved := reload(t, store, lot.ID)
	var pagamentos int
	for _, k := range timelineKinds(saved) {
		if k == entity.EventPagamento {
			pagamentos++
		}
	}
	assert.Equal(t, 1, pagamentos, "o retry não anexa evento de pagamento novo")
}

// Lote com a transação presa além do timeout: o caller recebe conflito
// tipado em vez de esperar para sempre.
func TestSettlement_LockTimeout_ConflitoTipado(t *testing.T) {
	store := memory.NewStore(60 * time.Millisecond)
	lot := mustCreateLot(t, store)
	ctx := context.Background()

	holding := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.Run(ctx, lot.ID, func(repository.LotRepository) error {
			close(holding)
			time.Sleep(400 * time.Millisecond)
			return nil
		})
	}()
	<-holding

	settlement := appconsignment.NewSettlementUseCase(store)
	_, err := settlement.BeginSettlement(ctx, lot.ID, "fin-1")
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict,
		"espera estourada vira ErrConcurrencyConflict, seguro para retry")
	<-done

	saved := reload(t, store, lot.ID)
	assert.Equal(t, entity.LotStatusOpen, saved.Status, "a operação expirada não tem efeito parcial")
}
