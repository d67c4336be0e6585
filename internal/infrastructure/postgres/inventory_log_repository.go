package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo implementación del puerto InventoryLogRepository sobre PostgreSQL.
// La tabla es append-only: sin UPDATE ni DELETE.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador de persistencia para la bitácora de inventario.
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Create inserta una entrada en la bitácora.
func (r *InventoryLogRepo) Create(entry *entity.InventoryLogEntry) error {
	query := `
		INSERT INTO inventory_log (id, product_id, type, change, new_stock, related_doc, timestamp, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.Type, entry.Change, entry.NewStock,
		entry.RelatedDoc, entry.Timestamp, entry.CreatedAt, entry.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert inventory log entry: %w", err)
	}
	return nil
}

// ListByProduct entradas de un producto, más recientes primero (desempate estable por id).
func (r *InventoryLogRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryLogEntry, error) {
	query := `
		SELECT id, product_id, type, change, new_stock, related_doc, timestamp, created_at, created_by
		FROM inventory_log WHERE product_id = $1
		ORDER BY timestamp DESC, created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory log: %w", err)
	}
	defer rows.Close()

	var entries []*entity.InventoryLogEntry
	for rows.Next() {
		var e entity.InventoryLogEntry
		err := rows.Scan(&e.ID, &e.ProductID, &e.Type, &e.Change, &e.NewStock,
			&e.RelatedDoc, &e.Timestamp, &e.CreatedAt, &e.CreatedBy)
		if err != nil {
			return nil, fmt.Errorf("scan inventory log entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// SumChangesByProduct suma de Change del producto; debe reproducir su stock actual.
func (r *InventoryLogRepo) SumChangesByProduct(productID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(change), 0) FROM inventory_log WHERE product_id = $1`,
		productID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum inventory log changes: %w", err)
	}
	return sum, nil
}
