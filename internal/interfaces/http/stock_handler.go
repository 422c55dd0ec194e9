package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockHandler maneja las lecturas de niveles de stock (feed del dashboard).
type StockHandler struct {
	query *ledger.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(query *ledger.StockQueryUseCase) *StockHandler {
	return &StockHandler{query: query}
}

// List godoc
// @Summary      Listar niveles de stock actuales
// @Description  Feed principal del dashboard: cada nivel incluye variante,
// @Description  producto y ubicación anidados. Filtrable por variant_id y location_id.
// @Tags         stock-levels
// @Produce      json
// @Param        variant_id   query  string  false  "Filtrar por variante"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.StockLevelListResponse
// @Router       /stock-levels [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.StockLevelFilter{
		VariantID:  c.Query("variant_id"),
		LocationID: c.Query("location_id"),
	}
	out, err := h.query.ListStockLevels(c.Context(), filter, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Export PDF de niveles de stock
// @Tags         stock-levels
// @Produce      application/pdf
// @Param        variant_id   query  string  false  "Filtrar por variante"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Success      200  {file}  binary
// @Router       /stock-levels/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	filter := repository.StockLevelFilter{
		VariantID:  c.Query("variant_id"),
		LocationID: c.Query("location_id"),
	}
	pdfBytes, err := h.query.GenerateStockReport(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.pdf"`)
	return c.Send(pdfBytes)
}
