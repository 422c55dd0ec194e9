package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// VariantUseCase casos de uso para variantes de producto.
type VariantUseCase struct {
	repo        repository.VariantRepository
	productRepo repository.ProductRepository
}

// NewVariantUseCase construye el caso de uso.
func NewVariantUseCase(repo repository.VariantRepository, productRepo repository.ProductRepository) *VariantUseCase {
	return &VariantUseCase{repo: repo, productRepo: productRepo}
}

// Create crea una variante. Valida que el producto exista; el repositorio
// devuelve domain.ErrDuplicate si el unique_sku o la tupla
// (producto, talla, color) ya existen.
func (uc *VariantUseCase) Create(in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	variant := &entity.ProductVariant{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Size:      in.Size,
		Color:     in.Color,
		UniqueSKU: in.UniqueSKU,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(variant); err != nil {
		return nil, err
	}
	out := toVariantResponse(variant)
	out.ProductName = product.Name
	return out, nil
}

// GetByID obtiene una variante por ID; nil si no existe.
func (uc *VariantUseCase) GetByID(id string) (*dto.VariantResponse, error) {
	variant, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, nil
	}
	return toVariantResponse(variant), nil
}

// List lista variantes ordenadas por nombre de producto, talla y color.
func (uc *VariantUseCase) List(limit, offset int) (*dto.VariantListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VariantResponse, 0, len(list))
	for _, vw := range list {
		out := toVariantResponse(&vw.Variant)
		out.ProductName = vw.ProductName
		items = append(items, *out)
	}
	return &dto.VariantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toVariantResponse(v *entity.ProductVariant) *dto.VariantResponse {
	if v == nil {
		return nil
	}
	return &dto.VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Size:      v.Size,
		Color:     v.Color,
		UniqueSKU: v.UniqueSKU,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
