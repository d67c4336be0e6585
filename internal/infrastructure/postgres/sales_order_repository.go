package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación del puerto SalesOrderRepository sobre PostgreSQL.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador de persistencia para órdenes de venta.
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

const salesOrderColumns = `id, number, customer_id, status, created_at, updated_at, approved_at, completed_at, created_by`

// Create persiste la orden con sus líneas. CostAtSale nace NULL: lo estampa el
// motor al despachar.
func (r *SalesOrderRepo) Create(order *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, number, customer_id, status, created_at, updated_at, approved_at, completed_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.CustomerID, order.Status,
		order.CreatedAt, order.UpdatedAt, order.ApprovedAt, order.CompletedAt, order.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	// position conserva el orden de las líneas tal como se crearon.
	for i, item := range order.Items {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO sales_order_items (id, order_id, product_id, quantity, unit_price, cost_at_sale, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, order.ID, item.ProductID, item.Quantity, item.UnitPrice, item.CostAtSale, i+1,
		)
		if err != nil {
			return fmt.Errorf("insert sales order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden de venta con sus líneas.
func (r *SalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders WHERE id = $1`
	return r.getOne(query, id, "get sales order")
}

// GetForUpdate bloquea la fila de la orden (serializa despachos y aprobaciones concurrentes).
func (r *SalesOrderRepo) GetForUpdate(id string) (*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id, "lock sales order")
}

// UpdateStatus actualiza el estado de la orden; at estampa approved_at o
// completed_at según el estado destino.
func (r *SalesOrderRepo) UpdateStatus(id string, status entity.SalesOrderStatus, at *time.Time) error {
	var query string
	switch status {
	case entity.SalesOrderPendingShipment:
		query = `UPDATE sales_orders SET status = $2, approved_at = $3, updated_at = now() WHERE id = $1`
	case entity.SalesOrderCompleted:
		query = `UPDATE sales_orders SET status = $2, completed_at = $3, updated_at = now() WHERE id = $1`
	default:
		query = `UPDATE sales_orders SET status = $2, updated_at = coalesce($3, now()) WHERE id = $1`
	}
	cmd, err := r.q.Exec(context.Background(), query, id, status, at)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateItemCostAtSale estampa la foto del costo promedio en la línea despachada.
func (r *SalesOrderRepo) UpdateItemCostAtSale(itemID string, costAtSale decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales_order_items SET cost_at_sale = $2 WHERE id = $1`,
		itemID, costAtSale,
	)
	if err != nil {
		return fmt.Errorf("update item cost at sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes de venta con sus líneas, más recientes primero.
func (r *SalesOrderRepo) List(limit, offset int) ([]*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// ListCompleted órdenes despachadas, filtrables por fecha de despacho (reporte de margen bruto).
func (r *SalesOrderRepo) ListCompleted(from, to *time.Time, limit, offset int) ([]*entity.SalesOrder, error) {
	query := `
		SELECT ` + salesOrderColumns + ` FROM sales_orders
		WHERE status = $1
		  AND ($2::timestamptz IS NULL OR completed_at >= $2)
		  AND ($3::timestamptz IS NULL OR completed_at < $3)
		ORDER BY completed_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, entity.SalesOrderCompleted, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list completed sales orders: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *SalesOrderRepo) getOne(query, id, op string) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Number, &o.CustomerID, &o.Status,
		&o.CreatedAt, &o.UpdatedAt, &o.ApprovedAt, &o.CompletedAt, &o.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	items, err := r.loadItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *SalesOrderRepo) collect(rows pgx.Rows) ([]*entity.SalesOrder, error) {
	var orders []*entity.SalesOrder
	for rows.Next() {
		var o entity.SalesOrder
		err := rows.Scan(&o.ID, &o.Number, &o.CustomerID, &o.Status,
			&o.CreatedAt, &o.UpdatedAt, &o.ApprovedAt, &o.CompletedAt, &o.CreatedBy)
		if err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		items, err := r.loadItems(o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return orders, nil
}

func (r *SalesOrderRepo) loadItems(orderID string) ([]entity.SalesOrderItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, product_id, quantity, unit_price, cost_at_sale
		 FROM sales_order_items WHERE order_id = $1 ORDER BY position`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	defer rows.Close()

	var items []entity.SalesOrderItem
	for rows.Next() {
		var it entity.SalesOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.CostAtSale); err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
