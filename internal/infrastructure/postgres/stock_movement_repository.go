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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo INSERT y SELECT: la tabla es una bitácora append-only.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, variant_id, location_id, quantity_change, timestamp, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`
	notes := (*string)(nil)
	if movement.Notes != "" {
		notes = &movement.Notes
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.VariantID, movement.LocationID,
		movement.QuantityChange, movement.Timestamp, notes,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			// La variante o ubicación se borró después de la validación inicial.
			return domain.ErrNotFound
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `
		SELECT id, variant_id, location_id, quantity_change, timestamp, COALESCE(notes, '')
		FROM stock_movements WHERE id::text = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.VariantID, &m.LocationID, &m.QuantityChange, &m.Timestamp, &m.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// List consulta la bitácora con filtros opcionales, más reciente primero.
func (r *StockMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, variant_id, location_id, quantity_change, timestamp, COALESCE(notes, '')
		FROM stock_movements
		WHERE ($1 = '' OR variant_id::text = $1)
		  AND ($2 = '' OR location_id::text = $2)
		  AND ($3::timestamptz IS NULL OR timestamp >= $3)
		  AND ($4::timestamptz IS NULL OR timestamp <= $4)
		ORDER BY timestamp DESC, id DESC
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(context.Background(), query,
		filter.VariantID, filter.LocationID, filter.From, filter.To, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.VariantID, &m.LocationID, &m.QuantityChange, &m.Timestamp, &m.Notes); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
