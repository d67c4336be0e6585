package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.CostLogRepository = (*CostLogRepo)(nil)

// CostLogRepo implementación del puerto CostLogRepository sobre PostgreSQL.
// La tabla es append-only: sin UPDATE ni DELETE.
type CostLogRepo struct {
	q Querier
}

// NewCostLogRepository construye el adaptador de persistencia para la bitácora de costo.
func NewCostLogRepository(q Querier) *CostLogRepo {
	return &CostLogRepo{q: q}
}

// Create inserta una entrada en la bitácora de costo.
func (r *CostLogRepo) Create(entry *entity.CostLogEntry) error {
	query := `
		INSERT INTO cost_log (id, product_id, old_avg_cost, new_avg_cost, related_doc, timestamp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.OldAvgCost, entry.NewAvgCost,
		entry.RelatedDoc, entry.Timestamp, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cost log entry: %w", err)
	}
	return nil
}

// ListByProduct entradas de un producto, más recientes primero (desempate estable por id).
func (r *CostLogRepo) ListByProduct(productID string, limit, offset int) ([]*entity.CostLogEntry, error) {
	query := `
		SELECT id, product_id, old_avg_cost, new_avg_cost, related_doc, timestamp, created_at
		FROM cost_log WHERE product_id = $1
		ORDER BY timestamp DESC, created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cost log: %w", err)
	}
	defer rows.Close()

	var entries []*entity.CostLogEntry
	for rows.Next() {
		var e entity.CostLogEntry
		err := rows.Scan(&e.ID, &e.ProductID, &e.OldAvgCost, &e.NewAvgCost,
			&e.RelatedDoc, &e.Timestamp, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan cost log entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
