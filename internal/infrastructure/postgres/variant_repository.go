package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación del puerto VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de persistencia para variantes. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// Create persiste una nueva variante.
func (r *VariantRepo) Create(variant *entity.ProductVariant) error {
	query := `
		INSERT INTO product_variants (id, product_id, size, color, unique_sku, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.ProductID, variant.Size, variant.Color, variant.UniqueSKU,
		variant.CreatedAt, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// unique_sku o la tupla (product_id, size, color)
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	query := `
		SELECT id, product_id, size, color, unique_sku, created_at, updated_at
		FROM product_variants WHERE id::text = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByUniqueSKU obtiene una variante por su SKU único.
func (r *VariantRepo) GetByUniqueSKU(sku string) (*entity.ProductVariant, error) {
	query := `
		SELECT id, product_id, size, color, unique_sku, created_at, updated_at
		FROM product_variants WHERE unique_sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku))
}

func (r *VariantRepo) scanOne(row pgx.Row) (*entity.ProductVariant, error) {
	var v entity.ProductVariant
	err := row.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.UniqueSKU, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// List lista variantes con el nombre del producto resuelto,
// ordenadas por nombre de producto, talla y color.
func (r *VariantRepo) List(limit, offset int) ([]repository.VariantWithProduct, error) {
	query := `
		SELECT v.id, v.product_id, v.size, v.color, v.unique_sku, v.created_at, v.updated_at, p.name
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		ORDER BY p.name, v.size, v.color
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []repository.VariantWithProduct
	for rows.Next() {
		var vw repository.VariantWithProduct
		if err := rows.Scan(
			&vw.Variant.ID, &vw.Variant.ProductID, &vw.Variant.Size, &vw.Variant.Color,
			&vw.Variant.UniqueSKU, &vw.Variant.CreatedAt, &vw.Variant.UpdatedAt, &vw.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, vw)
	}
	return list, rows.Err()
}

// ListByProduct lista las variantes de un producto.
func (r *VariantRepo) ListByProduct(productID string) ([]*entity.ProductVariant, error) {
	query := `
		SELECT id, product_id, size, color, unique_sku, created_at, updated_at
		FROM product_variants WHERE product_id = $1 ORDER BY size, color`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductVariant
	for rows.Next() {
		var v entity.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.UniqueSKU, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
