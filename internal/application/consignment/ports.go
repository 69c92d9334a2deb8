package consignment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação serializada pelo lote
// indicado, passando um repositório atado a essa transação. Toda sequência
// read-check-write dos casos de uso mutantes roda aqui: ou aplica tudo
// (inclusive o append na timeline) ou nada.
//
// lotID vazio serializa apenas a criação de lotes (geração de id).
// Aquisição de lock tem timeout limitado; estouro retorna
// domain.ErrConcurrencyConflict sem efeito colateral.
type TxRunner interface {
	Run(ctx context.Context, lotID string, fn func(lots repository.LotRepository) error) error
}

// ItemConsumedEvent notificação unidirecional emitida após o commit de um
// consumo. É o vínculo peça->lote usado pelos módulos de fora (ordens de
// serviço, relatórios). Não é dependência da lógica central.
type ItemConsumedEvent struct {
	LotID         string
	ItemID        string
	Description   string
	Quantity      int64
	ConsumedValue decimal.Decimal
	WorkOrderID   string
	TechnicianID  string
	StoreID       string
	At            time.Time
}

// ConsumptionListener assinante de consumos registrados.
type ConsumptionListener interface {
	OnItemConsumed(evt ItemConsumedEvent)
}

// StatementPDFGenerator gera o extrato do acerto (representação gráfica
// entregue ao fornecedor junto com a nota).
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, lot *entity.Lot) ([]byte, error)
}
