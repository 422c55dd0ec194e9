package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/catalog"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *catalog.ProductUseCase
	VariantUC     *catalog.VariantUseCase
	LocationUC    *catalog.LocationUseCase
	ApplyMovement *ledger.ApplyMovementUseCase
	StockQuery    *ledger.StockQueryUseCase
	// JWTSecret vacío deja todas las rutas públicas (útil en desarrollo).
	JWTSecret string
}

// Router registra las rutas de la API.
// Las lecturas son públicas; las escrituras exigen token cuando hay secreto:
// catálogo solo admin, movimientos admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	writeGuard := func(roles ...string) []fiber.Handler {
		if deps.JWTSecret == "" {
			return nil
		}
		return []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(roles...)}
	}
	catalogGuard := writeGuard(RoleAdmin)
	movementGuard := writeGuard(RoleAdmin, RoleBodeguero)

	// Products
	products := app.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", append(catalogGuard, productHandler.Create)...)
	products.Delete("/:id", append(catalogGuard, productHandler.Delete)...)

	// Variants
	variants := app.Group("/variants")
	variantHandler := NewVariantHandler(deps.VariantUC)
	variants.Get("/", variantHandler.List)
	variants.Get("/:id", variantHandler.GetByID)
	variants.Post("/", append(catalogGuard, variantHandler.Create)...)

	// Locations
	locations := app.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", append(catalogGuard, locationHandler.Create)...)

	// Stock levels (solo lectura: el único escritor es el caso de uso de movimientos)
	levels := app.Group("/stock-levels")
	stockHandler := NewStockHandler(deps.StockQuery)
	levels.Get("/", stockHandler.List)
	levels.Get("/report", stockHandler.Report)

	// Stock movements
	movements := app.Group("/stock-movements")
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.StockQuery)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/", append(movementGuard, movementHandler.Create)...)
}
