package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/entity"
	"github.com/IsaacXimenes/all-markets-view-58c5a94f-sub003/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// Querier abstrai pool ou tx do pgx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LotRepo implementação de LotRepository sobre PostgreSQL (usável com pool
// ou tx). O agregado é persistido em três tabelas, sempre na mesma
// transação quando usado via TxRunner, nunca meio lote.
type LotRepo struct {
	q  Querier
	sb sq.StatementBuilderType
}

// NewLotRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q, sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

// NextID consome a sequence de lotes e formata o id legível.
func (r *LotRepo) NextID(ctx context.Context) (string, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('consignment_lot_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next lot id: %w", err)
	}
	return fmt.Sprintf("CSG-%06d", n), nil
}

// Create insere o lote, seus itens e a timeline inicial.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	const insertLot = `
		INSERT INTO consignment_lots (id, supplier_id, registered_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, insertLot,
		lot.ID, lot.SupplierID, lot.RegisteredBy, lot.Status, lot.CreatedAt, lot.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	for _, it := range lot.Items {
		if err := r.upsertItem(ctx, it); err != nil {
			return err
		}
	}
	return r.appendTimeline(ctx, lot)
}

// Get carrega o agregado completo sem lock.
func (r *LotRepo) Get(ctx context.Context, id string) (*entity.Lot, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate carrega o agregado bloqueando a linha do lote (SELECT FOR
// UPDATE). Com lock_timeout ativo na transação, a espera estourada sobe como
// 55P03 e o TxRunner converte em ErrConcurrencyConflict.
func (r *LotRepo) GetForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	return r.load(ctx, id, true)
}

func (r *LotRepo) load(ctx context.Context, id string, forUpdate bool) (*entity.Lot, error) {
	query := `
		SELECT id, supplier_id, registered_by, status, created_at, updated_at
		FROM consignment_lots WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var lot entity.Lot
	err := r.q.QueryRow(ctx, query, id).Scan(
		&lot.ID, &lot.SupplierID, &lot.RegisteredBy, &lot.Status, &lot.CreatedAt, &lot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	if err := r.loadItems(ctx, &lot); err != nil {
		return nil, err
	}
	if err := r.loadTimeline(ctx, &lot); err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *LotRepo) loadItems(ctx context.Context, lot *entity.Lot) error {
	const query = `
		SELECT id, lot_id, description, model, original_qty, current_qty, returned_qty,
		       unit_cost, store_id, status, work_order_id, technician_id, consumed_at,
		       returned_by, returned_at
		FROM consignment_items WHERE lot_id = $1 ORDER BY created_order`
	rows, err := r.q.Query(ctx, query, lot.ID)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.ID, &it.LotID, &it.Description, &it.Model, &it.OriginalQuantity,
			&it.CurrentQuantity, &it.ReturnedQuantity, &it.UnitCost, &it.StoreID,
			&it.Status, &it.WorkOrderID, &it.TechnicianID, &it.ConsumedAt,
			&it.ReturnedBy, &it.ReturnedAt,
		); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		lot.Items = append(lot.Items, &it)
	}
	return rows.Err()
}

func (r *LotRepo) loadTimeline(ctx context.Context, lot *entity.Lot) error {
	const query = `
		SELECT id, lot_id, kind, description, responsible, created_at
		FROM consignment_timeline WHERE lot_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, lot.ID)
	if err != nil {
		return fmt.Errorf("list timeline: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e entity.TimelineEntry
		if err := rows.Scan(&e.ID, &e.LotID, &e.Kind, &e.Description, &e.Responsible, &e.CreatedAt); err != nil {
			return fmt.Errorf("scan timeline: %w", err)
		}
		lot.Timeline = append(lot.Timeline, &e)
	}
	return rows.Err()
}

// Save persiste o agregado: status do lote, upsert de cada item e append das
// entradas novas da timeline (as existentes são imutáveis e ficam intocadas).
func (r *LotRepo) Save(ctx context.Context, lot *entity.Lot) error {
	const updateLot = `
		UPDATE consignment_lots SET status = $2, updated_at = $3 WHERE id = $1`
	ct, err := r.q.Exec(ctx, updateLot, lot.ID, lot.Status, lot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	for _, it := range lot.Items {
		if err := r.upsertItem(ctx, it); err != nil {
			return err
		}
	}
	return r.appendTimeline(ctx, lot)
}

func (r *LotRepo) upsertItem(ctx context.Context, it *entity.Item) error {
	const query = `
		INSERT INTO consignment_items (
			id, lot_id, description, model, original_qty, current_qty, returned_qty,
			unit_cost, store_id, status, work_order_id, technician_id, consumed_at,
			returned_by, returned_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			current_qty   = EXCLUDED.current_qty,
			returned_qty  = EXCLUDED.returned_qty,
			store_id      = EXCLUDED.store_id,
			status        = EXCLUDED.status,
			work_order_id = EXCLUDED.work_order_id,
			technician_id = EXCLUDED.technician_id,
			consumed_at   = EXCLUDED.consumed_at,
			returned_by   = EXCLUDED.returned_by,
			returned_at   = EXCLUDED.returned_at`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.LotID, it.Description, it.Model, it.OriginalQuantity,
		it.CurrentQuantity, it.ReturnedQuantity, it.UnitCost, it.StoreID,
		it.Status, it.WorkOrderID, it.TechnicianID, it.ConsumedAt,
		it.ReturnedBy, it.ReturnedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

func (r *LotRepo) appendTimeline(ctx context.Context, lot *entity.Lot) error {
	const query = `
		INSERT INTO consignment_timeline (id, lot_id, kind, description, responsible, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`
	for _, e := range lot.Timeline {
		if _, err := r.q.Exec(ctx, query,
			e.ID, e.LotID, e.Kind, e.Description, e.Responsible, e.CreatedAt,
		); err != nil {
			return fmt.Errorf("append timeline: %w", err)
		}
	}
	return nil
}

// List filtra lotes por fornecedor, status e faixa de datas. Query dinâmica
// montada com squirrel; cada lote da página volta como agregado completo.
func (r *LotRepo) List(ctx context.Context, filter repository.LotFilter) ([]*entity.Lot, error) {
	q := r.sb.
		Select("id").
		From("consignment_lots").
		OrderBy("id")
	if filter.SupplierID != "" {
		q = q.Where(sq.Eq{"supplier_id": filter.SupplierID})
	}
	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": filter.Status})
	}
	if filter.From != nil {
		q = q.Where(sq.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(sq.LtOrEq{"created_at": *filter.To})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan lot id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*entity.Lot, 0, len(ids))
	for _, id := range ids {
		lot, err := r.load(ctx, id, false)
		if err != nil {
			return nil, err
		}
		out = append(out, lot)
	}
	return out, nil
}
