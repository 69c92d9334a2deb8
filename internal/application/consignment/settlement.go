package consignment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/application/dto"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/consignment"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

// SettlementUseCase é o motor de acerto de contas: fecha o lote para
// cobrança, acompanha devoluções confirmadas e emite a solicitação de nota a
// pagar para o subsistema financeiro. Todas as operações são atômicas:
// aplicadas por inteiro (incluindo o append na timeline) ou não aplicadas.
type SettlementUseCase struct {
	txRunner TxRunner
}

// NewSettlementUseCase constrói o caso de uso.
func NewSettlementUseCase(txRunner TxRunner) *SettlementUseCase {
	return &SettlementUseCase{txRunner: txRunner}
}

// BeginSettlement abre o acerto do lote. Falha com ErrLotState se o lote não
// estiver OPEN (abrir duas vezes é rejeitado sem efeito colateral). Enquanto
// em acerto, consumo e transferência são bloqueados pelos respectivos casos
// de uso ao checar o status do lote. O evento de acerto resume o histórico
// registrado até aqui.
func (uc *SettlementUseCase) BeginSettlement(ctx context.Context, lotID, responsibleUser string) (*entity.Lot, error) {
	if responsibleUser == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()

	var result *entity.Lot
	err := uc.txRunner.Run(ctx, lotID, func(lots repository.LotRepository) error {
		lot, err := lots.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		if err := consignment.BeginSettlement(lot); err != nil {
			return err
		}
		consumos := lo.CountBy(lot.Timeline, func(e *entity.TimelineEntry) bool { return e.Kind == entity.EventConsumo })
		transferencias := lo.CountBy(lot.Timeline, func(e *entity.TimelineEntry) bool { return e.Kind == entity.EventTransferencia })
		devolucoes := lo.CountBy(lot.Timeline, func(e *entity.TimelineEntry) bool { return e.Kind == entity.EventDevolucao })
		lot.AppendEvent(&entity.TimelineEntry{
			ID:   uuid.New().String(),
			Kind: entity.EventAcerto,
			Description: fmt.Sprintf("Acerto de contas aberto: %d consumo(s), %d transferência(s), %d devolução(ões); valor consumido %s",
				consumos, transferencias, devolucoes, consignment.SettlementValue(lot).StringFixed(2)),
			Responsible: responsibleUser,
			CreatedAt:   now,
		})
		lot.UpdatedAt = now
		if err := lots.Save(ctx, lot); err != nil {
			return err
		}
		result = lot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ConfirmReturn confirma a devolução do saldo restante de um item ao
// fornecedor. Só é válida com o lote em acerto; item já consumido ou já
// devolvido é rejeitado com erro tipado e sem efeito. Se após a devolução
// todos os itens estiverem devolvidos sem consumo, o lote fecha em RETURNED.
func (uc *SettlementUseCase) ConfirmReturn(ctx context.Context, lotID, itemID, responsibleUser string, at *time.Time) (*entity.Item, error) {
	if responsibleUser == "" {
		return nil, domain.ErrInvalidInput
	}
	when := time.Now()
	if at != nil && !at.IsZero() {
		when = *at
	}

	var result *entity.Item
	err := uc.txRunner.Run(ctx, lotID, func(lots repository.LotRepository) error {
		lot, err := lots.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		if lot.Status != entity.LotStatusInSettlement {
			return domain.ErrLotState
		}
		item := lot.FindItem(itemID)
		if item == nil {
			return domain.ErrNotFound
		}
		if err := consignment.Return(item, responsibleUser, when); err != nil {
			return err
		}
		lot.AppendEvent(&entity.TimelineEntry{
			ID:   uuid.New().String(),
			Kind: entity.EventDevolucao,
			Description: fmt.Sprintf("Devolução de %s: %d un. retiradas de circulação",
				item.Description, item.ReturnedQuantity),
			Responsible: responsibleUser,
			CreatedAt:   when,
		})
		consignment.RefreshLotStatus(lot)
		lot.UpdatedAt = when
		if err := lots.Save(ctx, lot); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateFinancialNote congela o valor do acerto e produz a solicitação
// imutável de nota a pagar para o financeiro. Falha com ErrLotState se o
// lote não estiver em acerto ou se não houver valor consumido. Não marca o
// lote como PAID; essa transição chega via MarkPaid quando o financeiro
// confirma o pagamento.
func (uc *SettlementUseCase) GenerateFinancialNote(ctx context.Context, lotID, requestedBy string, in dto.GenerateNoteRequest) (*entity.FinancialNoteRequest, error) {
	if requestedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Method {
	case entity.PaymentMethodPix, entity.PaymentMethodTED, entity.PaymentMethodBoleto, entity.PaymentMethodDinheiro:
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()

	var note *entity.FinancialNoteRequest
	err := uc.txRunner.Run(ctx, lotID, func(lots repository.LotRepository) error {
		lot, err := lots.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		if lot.Status != entity.LotStatusInSettlement {
			return domain.ErrLotState
		}
		value := consignment.SettlementValue(lot)
		if value.IsZero() {
			return domain.ErrLotState
		}
		note = &entity.FinancialNoteRequest{
			ID:          uuid.New().String(),
			LotID:       lot.ID,
			SupplierID:  lot.SupplierID,
			Value:       value,
			Method:      in.Method,
			BankAccount: in.BankAccount,
			PayeeName:   in.PayeeName,
			PixKey:      in.PixKey,
			Notes:       in.Notes,
			RequestedBy: requestedBy,
			RequestedAt: now,
		}
		lot.AppendEvent(&entity.TimelineEntry{
			ID:   uuid.New().String(),
			Kind: entity.EventPagamento,
			Description: fmt.Sprintf("Nota a pagar solicitada: %s via %s (nota %s)",
				value.StringFixed(2), in.Method, note.ID),
			Responsible: requestedBy,
			CreatedAt:   now,
		})
		lot.UpdatedAt = now
		return lots.Save(ctx, lot)
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// MarkPaid é o ponto de entrada do callback do subsistema financeiro após a
// confirmação do pagamento. Idempotente: lote já PAID retorna sem efeito.
func (uc *SettlementUseCase) MarkPaid(ctx context.Context, lotID, responsibleUser string) (*entity.Lot, error) {
	now := time.Now()

	var result *entity.Lot
	err := uc.txRunner.Run(ctx, lotID, func(lots repository.LotRepository) error {
		lot, err := lots.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		alreadyPaid := lot.Status == entity.LotStatusPaid
		if err := consignment.MarkPaid(lot); err != nil {
			return err
		}
		if !alreadyPaid {
			lot.AppendEvent(&entity.TimelineEntry{
				ID:          uuid.New().String(),
				Kind:        entity.EventPagamento,
				Description: fmt.Sprintf("Pagamento confirmado pelo financeiro; valor do acerto %s", consignment.SettlementValue(lot).StringFixed(2)),
				Responsible: responsibleUser,
				CreatedAt:   now,
			})
			lot.UpdatedAt = now
			if err := lots.Save(ctx, lot); err != nil {
				return err
			}
		}
		result = lot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
