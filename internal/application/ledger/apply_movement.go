package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// Reintentos ante fallos de serialización antes de rendirse.
const maxTxAttempts = 3

// ApplyMovementUseCase aplica un cambio de cantidad contra el nivel de stock
// de un par (variante, ubicación) de forma transaccional, con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback. Es el único escritor de stock_levels
// y el único productor de stock_movements.
type ApplyMovementUseCase struct {
	txRunner     TxRunner
	variantRepo  repository.VariantRepository
	locationRepo repository.LocationRepository
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(
	txRunner TxRunner,
	variantRepo repository.VariantRepository,
	locationRepo repository.LocationRepository,
) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{
		txRunner:     txRunner,
		variantRepo:  variantRepo,
		locationRepo: locationRepo,
	}
}

// ApplyMovementInput entrada para aplicar un movimiento.
// QuantityChange con signo: positivo entrada, negativo salida; cero es un
// no-op que igual queda en la bitácora.
type ApplyMovementInput struct {
	VariantID      string
	LocationID     string
	QuantityChange int64
	Notes          string
}

// ApplyMovement valida variante y ubicación, y dentro de una transacción:
// bloquea el nivel del par (creándolo en cero si no existe), verifica que la
// cantidad resultante no sea negativa, actualiza el nivel e inserta el
// movimiento con timestamp del servidor. Devuelve el movimiento persistido.
//
// Conflictos de serialización (domain.ErrTxConflict) se reintentan hasta
// maxTxAttempts veces con backoff corto antes de propagarse.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input ApplyMovementInput) (*entity.StockMovement, error) {
	if input.VariantID == "" || input.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}

	// Validar FKs por adelantado: error de dominio limpio en lugar del
	// fallo genérico de constraint que daría la BD.
	variant, err := uc.variantRepo.GetByID(input.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrVariantNotFound
	}
	location, err := uc.locationRepo.GetByID(input.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrLocationNotFound
	}

	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		created, err := uc.applyOnce(ctx, input)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, domain.ErrTxConflict) {
			return nil, err
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 25 * time.Millisecond):
		}
	}
	return nil, lastErr
}

// applyOnce ejecuta un intento completo dentro de una transacción.
func (uc *ApplyMovementUseCase) applyOnce(ctx context.Context, input ApplyMovementInput) (*entity.StockMovement, error) {
	var created *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del par; si nunca hubo stock el repositorio la
		// materializa en cero antes de bloquearla.
		level, err := levelRepo.GetForUpdate(input.VariantID, input.LocationID)
		if err != nil {
			return err
		}

		newQuantity := level.Quantity + input.QuantityChange
		if newQuantity < 0 {
			// Verificación explícita antes del commit: el CHECK de la columna
			// queda solo como segunda barrera.
			return domain.ErrInsufficientStock
		}

		now := time.Now().UTC()
		level.Quantity = newQuantity
		level.UpdatedAt = now
		if err := levelRepo.Upsert(level); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			VariantID:      input.VariantID,
			LocationID:     input.LocationID,
			QuantityChange: input.QuantityChange,
			Timestamp:      now,
			Notes:          input.Notes,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
