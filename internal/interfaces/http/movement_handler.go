package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// MovementHandler maneja la escritura y consulta de movimientos de stock.
type MovementHandler struct {
	apply *ledger.ApplyMovementUseCase
	query *ledger.StockQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(apply *ledger.ApplyMovementUseCase, query *ledger.StockQueryUseCase) *MovementHandler {
	return &MovementHandler{apply: apply, query: query}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Description  Único endpoint de escritura del ledger: aplica el cambio al nivel
// @Description  del par (variante, ubicación) e inserta el registro de auditoría,
// @Description  todo en una transacción. El timestamp lo asigna el servidor.
// @Tags         stock-movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "variant_id, location_id, quantity_change, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /stock-movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.apply.ApplyMovement(c.Context(), ledger.ApplyMovementInput{
		VariantID:      in.VariantID,
		LocationID:     in.LocationID,
		QuantityChange: in.QuantityChange,
		Notes:          in.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "variant_id y location_id son requeridos"})
		case errors.Is(err, domain.ErrVariantNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_VARIANT", Message: "variante no existe: " + in.VariantID})
		case errors.Is(err, domain.ErrLocationNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_LOCATION", Message: "ubicación no existe: " + in.LocationID})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_REFERENCE", Message: "variante o ubicación no existe"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "la cantidad resultante sería negativa"})
		case errors.Is(err, domain.ErrTxConflict):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TX_CONFLICT", Message: "conflicto de concurrencia, reintente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := ledger.ToMovementResponse(mov)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         stock-movements
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock-movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	mov, err := h.query.GetMovement(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if mov == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	out := ledger.ToMovementResponse(mov)
	return c.JSON(out)
}

// List godoc
// @Summary      Consultar bitácora de movimientos
// @Tags         stock-movements
// @Produce      json
// @Param        variant_id   query  string  false  "Filtrar por variante"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        from         query  string  false  "Desde (RFC3339)"
// @Param        to           query  string  false  "Hasta (RFC3339)"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /stock-movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	filter := repository.MovementFilter{
		VariantID:  c.Query("variant_id"),
		LocationID: c.Query("location_id"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}
	out, err := h.query.ListMovements(filter, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
