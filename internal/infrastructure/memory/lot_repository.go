// Package memory implementa a porta de persistência de lotes em memória,
// com lock por lote e timeout limitado de aquisição. É a implementação usada
// nos testes e no modo in-process; a de produção é a de postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

// Verificação de conformidade com as portas.
var _ repository.LotRepository = (*Store)(nil)

// Store guarda agregados completos por id. Get/Save trabalham com cópias
// profundas: mutações de um caso de uso só entram no store no Save final,
// o que dá a atomicidade "lote inteiro ou nada" sem transação de verdade.
type Store struct {
	mu          sync.RWMutex
	lots        map[string]*entity.Lot
	seq         int64
	locks       *lockTable
	lockTimeout time.Duration
}

// NewStore cria o store. lockTimeout limita a espera pelo lock de um lote;
// zero usa 3s.
func NewStore(lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &Store{
		lots:        make(map[string]*entity.Lot),
		locks:       newLockTable(),
		lockTimeout: lockTimeout,
	}
}

// Run serializa fn pelo lote indicado (chave vazia serializa a criação).
// Espera limitada pelo lock; estouro retorna ErrConcurrencyConflict sem
// executar fn.
func (s *Store) Run(ctx context.Context, lotID string, fn func(lots repository.LotRepository) error) error {
	if err := s.locks.acquire(ctx, lotID, s.lockTimeout); err != nil {
		return err
	}
	defer s.locks.release(lotID)
	return fn(s)
}

// NextID gera o próximo id sequencial legível.
func (s *Store) NextID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("CSG-%06d", s.seq), nil
}

// Create insere o agregado.
func (s *Store) Create(_ context.Context, lot *entity.Lot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lots[lot.ID]; ok {
		return fmt.Errorf("lote %s já existe", lot.ID)
	}
	s.lots[lot.ID] = cloneLot(lot)
	return nil
}

// Get retorna uma cópia profunda do agregado ou ErrNotFound.
func (s *Store) Get(_ context.Context, id string) (*entity.Lot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lot, ok := s.lots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneLot(lot), nil
}

// GetForUpdate igual a Get; a exclusão mútua por lote já foi garantida por Run.
func (s *Store) GetForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	return s.Get(ctx, id)
}

// Save substitui o agregado inteiro.
func (s *Store) Save(_ context.Context, lot *entity.Lot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lots[lot.ID]; !ok {
		return domain.ErrNotFound
	}
	s.lots[lot.ID] = cloneLot(lot)
	return nil
}

// List filtra e ordena por id (o id é sequencial, então equivale à ordem de
// entrada).
func (s *Store) List(_ context.Context, filter repository.LotFilter) ([]*entity.Lot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entity.Lot
	for _, lot := range s.lots {
		if filter.SupplierID != "" && lot.SupplierID != filter.SupplierID {
			continue
		}
		if filter.Status != "" && lot.Status != filter.Status {
			continue
		}
		if filter.From != nil && lot.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && lot.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, cloneLot(lot))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// cloneLot cópia profunda do agregado, incluindo ponteiros de tempo.
func cloneLot(lot *entity.Lot) *entity.Lot {
	c := *lot
	c.Items = make([]*entity.Item, len(lot.Items))
	for i, it := range lot.Items {
		ci := *it
		if it.ConsumedAt != nil {
			t := *it.ConsumedAt
			ci.ConsumedAt = &t
		}
		if it.ReturnedAt != nil {
			t := *it.ReturnedAt
			ci.ReturnedAt = &t
		}
		c.Items[i] = &ci
	}
	c.Timeline = make([]*entity.TimelineEntry, len(lot.Timeline))
	for i, e := range lot.Timeline {
		ce := *e
		c.Timeline[i] = &ce
	}
	return &c
}
