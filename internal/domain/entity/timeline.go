package entity

import "time"

// Tipos de evento da timeline do lote.
const (
	EventEntrada       = "entrada"       // recebimento do lote
	EventConsumo       = "consumo"       // baixa por ordem de serviço
	EventTransferencia = "transferencia" // mudança de custódia entre lojas
	EventAcerto        = "acerto"        // abertura do acerto de contas
	EventDevolucao     = "devolucao"     // devolução confirmada no acerto
	EventPagamento     = "pagamento"     // nota financeira gerada / pagamento confirmado
)

// TimelineEntry registro imutável (append-only) do histórico do lote.
// Nunca é editado nem removido; o resumo do acerto e a auditoria são
// reconstruídos a partir dele.
type TimelineEntry struct {
	ID          string
	LotID       string
	Kind        string
	Description string
	Responsible string // usuário/subsistema responsável pelo evento
	CreatedAt   time.Time
}
