package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, search_name, description, price, cost, stock, low_stock_threshold, tier_prices, unit_measure, created_at, updated_at`

// Create persiste un nuevo producto. Stock y Cost inician en 0.
func (r *ProductRepo) Create(product *entity.Product) error {
	tiers, err := json.Marshal(product.TierPrices)
	if err != nil {
		return fmt.Errorf("marshal tier prices: %w", err)
	}
	query := `
		INSERT INTO products (id, sku, name, search_name, description, price, cost, stock, low_stock_threshold, tier_prices, unit_measure, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.SearchName, product.Description,
		product.Price, product.Cost, product.Stock, product.LowStockThreshold,
		tiers, product.UnitMeasure, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get product by sku")
}

// GetForUpdate bloquea la fila del producto. Solo dentro de una transacción.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock product")
}

// Update actualiza los datos comerciales del producto. Stock y Cost no se tocan
// aquí: los mantiene el motor de movimientos vía UpdateStockAndCost.
func (r *ProductRepo) Update(product *entity.Product) error {
	tiers, err := json.Marshal(product.TierPrices)
	if err != nil {
		return fmt.Errorf("marshal tier prices: %w", err)
	}
	query := `
		UPDATE products
		SET name = $2, search_name = $3, description = $4, price = $5, low_stock_threshold = $6, tier_prices = $7, unit_measure = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.SearchName, product.Description, product.Price,
		product.LowStockThreshold, tiers, product.UnitMeasure, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateStockAndCost actualiza stock y costo promedio en una sola sentencia
// (reservado al motor de movimientos, con la fila ya bloqueada).
func (r *ProductRepo) UpdateStockAndCost(productID string, stock int64, cost decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, cost = $3, updated_at = now() WHERE id = $1`,
		productID, stock, cost,
	)
	if err != nil {
		return fmt.Errorf("update product stock/cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List lista productos con paginación. Si search no está vacío filtra por
// nombre o SKU. El término llega ya normalizado (minúsculas, sin tildes) y se
// compara contra search_name, que guarda el nombre con la misma normalización:
// ambos lados de la comparación usan el mismo criterio.
func (r *ProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if search != "" {
		query := `
			SELECT ` + productColumns + ` FROM products
			WHERE search_name LIKE '%' || $1 || '%' OR lower(sku) LIKE '%' || $1 || '%'
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.q.Query(context.Background(), query, search, limit, offset)
	} else {
		query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		rows, err = r.q.Query(context.Background(), query, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListLowStock productos con stock en o por debajo del umbral configurado.
func (r *ProductRepo) ListLowStock(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE stock <= low_stock_threshold
		ORDER BY stock ASC, name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// Delete elimina un producto.
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var (
		p     entity.Product
		tiers []byte
	)
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.SearchName, &p.Description, &p.Price, &p.Cost, &p.Stock,
		&p.LowStockThreshold, &tiers, &p.UnitMeasure, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(tiers) > 0 {
		if err := json.Unmarshal(tiers, &p.TierPrices); err != nil {
			return nil, fmt.Errorf("%s: unmarshal tier prices: %w", op, err)
		}
	}
	return &p, nil
}

func (r *ProductRepo) scanAll(rows pgx.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		var (
			p     entity.Product
			tiers []byte
		)
		err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.SearchName, &p.Description, &p.Price, &p.Cost, &p.Stock,
			&p.LowStockThreshold, &tiers, &p.UnitMeasure, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if len(tiers) > 0 {
			if err := json.Unmarshal(tiers, &p.TierPrices); err != nil {
				return nil, fmt.Errorf("unmarshal tier prices: %w", err)
			}
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
