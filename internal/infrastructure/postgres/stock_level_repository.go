package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el nivel actual del par, o nil si nunca se ha almacenado.
func (r *StockLevelRepo) Get(variantID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT id, variant_id, location_id, quantity, updated_at
		FROM stock_levels WHERE variant_id = $1 AND location_id = $2`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, variantID, locationID).Scan(
		&l.ID, &l.VariantID, &l.LocationID, &l.Quantity, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &l, nil
}

// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE).
// Si el par no existe, primero materializa una fila en cero y la vuelve a
// seleccionar con bloqueo: un FOR UPDATE sobre cero filas no bloquea nada,
// y dos primeros movimientos concurrentes del mismo par se pisarían la
// cantidad sin disparar ningún conflicto de serialización.
func (r *StockLevelRepo) GetForUpdate(variantID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT id, variant_id, location_id, quantity, updated_at
		FROM stock_levels WHERE variant_id = $1 AND location_id = $2
		FOR UPDATE`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, variantID, locationID).Scan(
		&l.ID, &l.VariantID, &l.LocationID, &l.Quantity, &l.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		// Primer almacenamiento del par. El ON CONFLICT cubre la carrera con
		// otro primer movimiento: si el otro insertó primero, esperamos su
		// commit y tomamos su fila.
		insert := `
			INSERT INTO stock_levels (id, variant_id, location_id, quantity, updated_at)
			VALUES ($1, $2, $3, 0, now())
			ON CONFLICT (variant_id, location_id) DO NOTHING`
		if _, err := r.q.Exec(context.Background(), insert, uuid.New().String(), variantID, locationID); err != nil {
			return nil, fmt.Errorf("materialize stock level: %w", err)
		}
		err = r.q.QueryRow(context.Background(), query, variantID, locationID).Scan(
			&l.ID, &l.VariantID, &l.LocationID, &l.Quantity, &l.UpdatedAt,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &l, nil
}

// Upsert inserta o actualiza la cantidad del par (variante, ubicación).
// Dentro del motor la fila ya existe (GetForUpdate la materializa), así que
// en la práctica termina en la rama DO UPDATE.
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (id, variant_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (variant_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		level.ID, level.VariantID, level.LocationID, level.Quantity, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListDetailed lista niveles con variante, producto y ubicación en una sola
// consulta con joins (feed del dashboard), orden estable por id.
func (r *StockLevelRepo) ListDetailed(ctx context.Context, filter repository.StockLevelFilter, limit, offset int) ([]repository.StockLevelDetail, error) {
	query := `
		SELECT
			s.id, s.variant_id, s.location_id, s.quantity, s.updated_at,
			v.id, v.product_id, v.size, v.color, v.unique_sku, v.created_at, v.updated_at,
			p.id, p.name, p.description, p.base_sku, p.created_at, p.updated_at,
			l.id, l.name, l.created_at, l.updated_at
		FROM stock_levels s
		JOIN product_variants v ON v.id = s.variant_id
		JOIN products p         ON p.id = v.product_id
		JOIN locations l        ON l.id = s.location_id
		WHERE ($1 = '' OR s.variant_id::text = $1)
		  AND ($2 = '' OR s.location_id::text = $2)
		ORDER BY s.id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.VariantID, filter.LocationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()

	var list []repository.StockLevelDetail
	for rows.Next() {
		var d repository.StockLevelDetail
		if err := rows.Scan(
			&d.Level.ID, &d.Level.VariantID, &d.Level.LocationID, &d.Level.Quantity, &d.Level.UpdatedAt,
			&d.Variant.ID, &d.Variant.ProductID, &d.Variant.Size, &d.Variant.Color,
			&d.Variant.UniqueSKU, &d.Variant.CreatedAt, &d.Variant.UpdatedAt,
			&d.Product.ID, &d.Product.Name, &d.Product.Description, &d.Product.BaseSKU,
			&d.Product.CreatedAt, &d.Product.UpdatedAt,
			&d.Location.ID, &d.Location.Name, &d.Location.CreatedAt, &d.Location.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
