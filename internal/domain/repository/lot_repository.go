package repository

import (
	"context"
	"time"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
)

// LotFilter filtros de listagem de lotes (todos opcionais).
type LotFilter struct {
	SupplierID string
	Status     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// LotRepository porta de persistência do agregado Lot (lote + itens +
// timeline como unidade atômica, nunca meio lote).
//
// Get/List são leituras sem lock e podem observar um snapshot levemente
// defasado. GetForUpdate só faz sentido dentro de TxRunner.Run e adquire o
// lock do lote com timeout limitado; estouro vira ErrConcurrencyConflict.
type LotRepository interface {
	// NextID gera o próximo id sequencial legível de lote (ex. CSG-000042).
	NextID(ctx context.Context) (string, error)
	Create(ctx context.Context, lot *entity.Lot) error
	Get(ctx context.Context, id string) (*entity.Lot, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Lot, error)
	// Save persiste o agregado completo (status, itens e entradas novas da timeline).
	Save(ctx context.Context, lot *entity.Lot) error
	List(ctx context.Context, filter LotFilter) ([]*entity.Lot, error)
}
