package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockQueryUseCase lecturas puras del ledger: niveles actuales y bitácora.
// Trabaja sobre repositorios atados al pool (sin transacción).
type StockQueryUseCase struct {
	levelRepo repository.StockLevelRepository
	movRepo   repository.StockMovementRepository
	reportGen StockReportGenerator
}

// NewStockQueryUseCase construye el caso de uso. reportGen puede ser nil si
// no se expone el export PDF.
func NewStockQueryUseCase(
	levelRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	reportGen StockReportGenerator,
) *StockQueryUseCase {
	return &StockQueryUseCase{levelRepo: levelRepo, movRepo: movRepo, reportGen: reportGen}
}

// GetStockLevel devuelve la cantidad actual en caché del par, o nil si esa
// variante nunca se ha almacenado en esa ubicación.
func (uc *StockQueryUseCase) GetStockLevel(variantID, locationID string) (*entity.StockLevel, error) {
	return uc.levelRepo.Get(variantID, locationID)
}

// ListStockLevels lista niveles actuales con variante/producto/ubicación
// anidados (una sola consulta con joins), orden estable por id.
func (uc *StockQueryUseCase) ListStockLevels(ctx context.Context, filter repository.StockLevelFilter, limit, offset int) (*dto.StockLevelListResponse, error) {
	details, err := uc.levelRepo.ListDetailed(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLevelResponse, 0, len(details))
	for _, d := range details {
		items = append(items, toStockLevelResponse(d))
	}
	return &dto.StockLevelListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetMovement devuelve un movimiento por id, o nil si no existe.
func (uc *StockQueryUseCase) GetMovement(id string) (*entity.StockMovement, error) {
	return uc.movRepo.GetByID(id)
}

// ListMovements lista la bitácora de movimientos, más reciente primero.
func (uc *StockQueryUseCase) ListMovements(filter repository.MovementFilter, limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Tamaño máximo del export PDF; el reporte es una foto completa, no paginada.
const reportMaxRows = 10000

// GenerateStockReport arma el PDF con los niveles actuales (export del dashboard).
func (uc *StockQueryUseCase) GenerateStockReport(ctx context.Context, filter repository.StockLevelFilter) ([]byte, error) {
	details, err := uc.levelRepo.ListDetailed(ctx, filter, reportMaxRows, 0)
	if err != nil {
		return nil, err
	}
	return uc.reportGen.GenerateStockReport(ctx, time.Now(), details)
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		VariantID:      m.VariantID,
		LocationID:     m.LocationID,
		QuantityChange: m.QuantityChange,
		Timestamp:      m.Timestamp,
		Notes:          m.Notes,
	}
}

func toStockLevelResponse(d repository.StockLevelDetail) dto.StockLevelResponse {
	return dto.StockLevelResponse{
		ID:        d.Level.ID,
		Quantity:  d.Level.Quantity,
		UpdatedAt: d.Level.UpdatedAt,
		Variant: dto.StockLevelVariantDTO{
			ID:        d.Variant.ID,
			Size:      d.Variant.Size,
			Color:     d.Variant.Color,
			UniqueSKU: d.Variant.UniqueSKU,
			Product: dto.ProductResponse{
				ID:          d.Product.ID,
				Name:        d.Product.Name,
				Description: d.Product.Description,
				BaseSKU:     d.Product.BaseSKU,
				CreatedAt:   d.Product.CreatedAt,
				UpdatedAt:   d.Product.UpdatedAt,
			},
		},
		Location: dto.LocationResponse{
			ID:        d.Location.ID,
			Name:      d.Location.Name,
			CreatedAt: d.Location.CreatedAt,
			UpdatedAt: d.Location.UpdatedAt,
		},
	}
}
