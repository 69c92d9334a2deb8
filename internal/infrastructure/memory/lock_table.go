package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
)

// lockTable locks nomeados por id de lote com aquisição limitada no tempo.
// sync.Mutex não tem espera com timeout, então cada lock em posse é um canal
// fechado na liberação; quem espera seleciona entre o canal, o deadline e o
// cancelamento do contexto.
type lockTable struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{held: make(map[string]chan struct{})}
}

// acquire obtém o lock de key dentro do timeout. Estouro do timeout retorna
// ErrConcurrencyConflict, seguro para retry pelo caller; cancelamento do
// contexto propaga ctx.Err(), que não é sinal de contenção.
func (t *lockTable) acquire(ctx context.Context, key string, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		t.mu.Lock()
		waiter, taken := t.held[key]
		if !taken {
			t.held[key] = make(chan struct{})
			t.mu.Unlock()
			return nil
		}
		t.mu.Unlock()

		select {
		case <-waiter:
			// lock liberado; disputa de novo
		case <-deadline.C:
			return domain.ErrConcurrencyConflict
		case <-ctx.Done():
			return fmt.Errorf("aquisição de lock interrompida: %w", ctx.Err())
		}
	}
}

func (t *lockTable) release(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if waiter, ok := t.held[key]; ok {
		delete(t.held, key)
		close(waiter)
	}
}
