package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de ledger:
// o se escriben nivel y movimiento juntos, o no se escribe nada.
// Si la transacción falla por serialización/deadlock, Run devuelve
// domain.ErrTxConflict (envuelto) para que el caso de uso pueda reintentar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// StockReportGenerator genera el PDF de niveles de stock actuales (export del dashboard).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, generatedAt time.Time, items []repository.StockLevelDetail) ([]byte, error)
}
