package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/catalog"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/stock-ledger-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para montar la API completa sin base de datos
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	variants  map[string]*entity.ProductVariant
	locations map[string]*entity.Location
	levels    map[string]*entity.StockLevel
	movements []*entity.StockMovement
}

func newMemDB() *memDB {
	return &memDB{
		products:  make(map[string]*entity.Product),
		variants:  make(map[string]*entity.ProductVariant),
		locations: make(map[string]*entity.Location),
		levels:    make(map[string]*entity.StockLevel),
	}
}

func pairKey(variantID, locationID string) string { return variantID + "|" + locationID }

type productStore struct{ db *memDB }

func (r productStore) Create(p *entity.Product) error {
	for _, e := range r.db.products {
		if e.BaseSKU == p.BaseSKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r productStore) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.db.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r productStore) GetByBaseSKU(baseSKU string) (*entity.Product, error) {
	for _, p := range r.db.products {
		if p.BaseSKU == baseSKU {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r productStore) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.db.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r productStore) Delete(id string) error {
	delete(r.db.products, id)
	// Cascada como los FK del esquema: variantes y sus niveles de stock.
	for vid, v := range r.db.variants {
		if v.ProductID != id {
			continue
		}
		delete(r.db.variants, vid)
		for k, lv := range r.db.levels {
			if lv.VariantID == vid {
				delete(r.db.levels, k)
			}
		}
	}
	return nil
}

type variantStore struct{ db *memDB }

func (r variantStore) Create(v *entity.ProductVariant) error {
	for _, e := range r.db.variants {
		if e.UniqueSKU == v.UniqueSKU {
			return domain.ErrDuplicate
		}
		if e.ProductID == v.ProductID && e.Size == v.Size && e.Color == v.Color {
			return domain.ErrDuplicate
		}
	}
	cp := *v
	r.db.variants[v.ID] = &cp
	return nil
}

func (r variantStore) GetByID(id string) (*entity.ProductVariant, error) {
	if v, ok := r.db.variants[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r variantStore) GetByUniqueSKU(sku string) (*entity.ProductVariant, error) {
	for _, v := range r.db.variants {
		if v.UniqueSKU == sku {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r variantStore) List(limit, offset int) ([]repository.VariantWithProduct, error) {
	var out []repository.VariantWithProduct
	for _, v := range r.db.variants {
		name := ""
		if p, ok := r.db.products[v.ProductID]; ok {
			name = p.Name
		}
		out = append(out, repository.VariantWithProduct{Variant: *v, ProductName: name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductName != out[j].ProductName {
			return out[i].ProductName < out[j].ProductName
		}
		if out[i].Variant.Size != out[j].Variant.Size {
			return out[i].Variant.Size < out[j].Variant.Size
		}
		return out[i].Variant.Color < out[j].Variant.Color
	})
	return out, nil
}

func (r variantStore) ListByProduct(productID string) ([]*entity.ProductVariant, error) {
	var out []*entity.ProductVariant
	for _, v := range r.db.variants {
		if v.ProductID == productID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

type locationStore struct{ db *memDB }

func (r locationStore) Create(l *entity.Location) error {
	for _, e := range r.db.locations {
		if e.Name == l.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *l
	r.db.locations[l.ID] = &cp
	return nil
}

func (r locationStore) GetByID(id string) (*entity.Location, error) {
	if l, ok := r.db.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r locationStore) List(limit, offset int) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.db.locations {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type levelStore struct{ db *memDB }

func (r levelStore) Get(variantID, locationID string) (*entity.StockLevel, error) {
	if lv, ok := r.db.levels[pairKey(variantID, locationID)]; ok {
		cp := *lv
		return &cp, nil
	}
	return nil, nil
}

func (r levelStore) GetForUpdate(variantID, locationID string) (*entity.StockLevel, error) {
	key := pairKey(variantID, locationID)
	lv, ok := r.db.levels[key]
	if !ok {
		// El adaptador real materializa la fila en cero antes de bloquearla.
		lv = &entity.StockLevel{ID: uuid.New().String(), VariantID: variantID, LocationID: locationID}
		r.db.levels[key] = lv
	}
	cp := *lv
	return &cp, nil
}

func (r levelStore) Upsert(level *entity.StockLevel) error {
	cp := *level
	r.db.levels[pairKey(level.VariantID, level.LocationID)] = &cp
	return nil
}

func (r levelStore) ListDetailed(ctx context.Context, filter repository.StockLevelFilter, limit, offset int) ([]repository.StockLevelDetail, error) {
	var out []repository.StockLevelDetail
	for _, lv := range r.db.levels {
		if filter.VariantID != "" && lv.VariantID != filter.VariantID {
			continue
		}
		if filter.LocationID != "" && lv.LocationID != filter.LocationID {
			continue
		}
		variant := r.db.variants[lv.VariantID]
		product := r.db.products[variant.ProductID]
		location := r.db.locations[lv.LocationID]
		out = append(out, repository.StockLevelDetail{
			Level: *lv, Variant: *variant, Product: *product, Location: *location,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level.ID < out[j].Level.ID })
	return out, nil
}

type movementStore struct{ db *memDB }

func (r movementStore) Create(m *entity.StockMovement) error {
	cp := *m
	r.db.movements = append(r.db.movements, &cp)
	return nil
}

func (r movementStore) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.db.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r movementStore) List(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.db.movements {
		if filter.VariantID != "" && m.VariantID != filter.VariantID {
			continue
		}
		if filter.LocationID != "" && m.LocationID != filter.LocationID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// memRunner serializa las "transacciones" con el mutex y restaura el estado si fn falla.
type memRunner struct{ db *memDB }

func (r memRunner) Run(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	snapLevels := make(map[string]*entity.StockLevel, len(r.db.levels))
	for k, v := range r.db.levels {
		cp := *v
		snapLevels[k] = &cp
	}
	snapMovs := len(r.db.movements)

	if err := fn(levelStore{db: r.db}, movementStore{db: r.db}); err != nil {
		r.db.levels = snapLevels
		r.db.movements = r.db.movements[:snapMovs]
		return err
	}
	return nil
}

// conflictRunner siempre falla con conflicto de serialización.
type conflictRunner struct{}

func (conflictRunner) Run(ctx context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fmt.Errorf("%w: deadlock simulado", domain.ErrTxConflict)
}

// buildApp monta la API completa sobre los fakes, con el router real.
func buildApp(jwtSecret string, runner ledger.TxRunner) (*fiber.App, *memDB) {
	db := newMemDB()
	if runner == nil {
		runner = memRunner{db: db}
	}
	productRepo := productStore{db: db}
	variantRepo := variantStore{db: db}
	locationRepo := locationStore{db: db}

	stockQuery := ledger.NewStockQueryUseCase(
		levelStore{db: db}, movementStore{db: db},
		infrapdf.NewMarotoStockReportGenerator(),
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:     catalog.NewProductUseCase(productRepo),
		VariantUC:     catalog.NewVariantUseCase(variantRepo, productRepo),
		LocationUC:    catalog.NewLocationUseCase(locationRepo),
		ApplyMovement: ledger.NewApplyMovementUseCase(runner, variantRepo, locationRepo),
		StockQuery:    stockQuery,
		JWTSecret:     jwtSecret,
	})
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw := make([]byte, 0)
	if resp.Body != nil {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		resp.Body.Close()
		raw = buf.Bytes()
	}
	return resp, raw
}

// seedCatalog crea producto, variante y ubicación vía API y devuelve los IDs.
func seedCatalog(t *testing.T, app *fiber.App) (variantID, locationID string) {
	t.Helper()
	resp, raw := doJSON(t, app, http.MethodPost, "/products/", dto.CreateProductRequest{
		Name: "Camiseta Clásica", BaseSKU: "TSHIRT-CLASSIC",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var product dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &product))

	resp, raw = doJSON(t, app, http.MethodPost, "/variants/", dto.CreateVariantRequest{
		ProductID: product.ID, Size: "M", Color: "Rojo", UniqueSKU: "TSHIRT-CLASSIC-M-RED",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var variant dto.VariantResponse
	require.NoError(t, json.Unmarshal(raw, &variant))

	resp, raw = doJSON(t, app, http.MethodPost, "/locations/", dto.CreateLocationRequest{
		Name: "Bodega Central",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var location dto.LocationResponse
	require.NoError(t, json.Unmarshal(raw, &location))

	return variant.ID, location.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestHTTP_Productos_CRUD(t *testing.T) {
	app, _ := buildApp("", nil)

	resp, raw := doJSON(t, app, http.MethodPost, "/products/", dto.CreateProductRequest{
		Name: "Camiseta", BaseSKU: "TSHIRT",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.NotEmpty(t, created.ID)

	resp, raw = doJSON(t, app, http.MethodGet, "/products/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodGet, "/products/no-existe", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "NOT_FOUND")

	// base_sku repetido
	resp, raw = doJSON(t, app, http.MethodPost, "/products/", dto.CreateProductRequest{
		Name: "Otra", BaseSKU: "TSHIRT",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "DUPLICATE")

	// body sin campos requeridos
	resp, raw = doJSON(t, app, http.MethodPost, "/products/", dto.CreateProductRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")
}

// Eliminar un producto arrastra sus variantes, igual que la cascada del esquema.
func TestHTTP_Productos_Delete(t *testing.T) {
	app, db := buildApp("", nil)
	variantID, locationID := seedCatalog(t, app)

	// Con stock registrado, para verificar que el nivel también cae en cascada.
	resp, raw := doJSON(t, app, http.MethodPost, "/stock-movements/", dto.ApplyMovementRequest{
		VariantID: variantID, LocationID: locationID, QuantityChange: 5,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = doJSON(t, app, http.MethodGet, "/products/", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list.Items, 1)
	productID := list.Items[0].ID

	resp, _ = doJSON(t, app, http.MethodDelete, "/products/"+productID, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodGet, "/products/"+productID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "NOT_FOUND")

	assert.Empty(t, db.variants, "las variantes del producto caen con él")
	assert.Empty(t, db.levels, "los niveles de las variantes también")

	// Repetir la eliminación: ya no existe.
	resp, raw = doJSON(t, app, http.MethodDelete, "/products/"+productID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "NOT_FOUND")
}

// El listado de variantes sale ordenado por producto, talla y color,
// con el nombre del producto resuelto.
func TestHTTP_Variantes_OrdenDeListado(t *testing.T) {
	app, _ := buildApp("", nil)

	resp, raw := doJSON(t, app, http.MethodPost, "/products/", dto.CreateProductRequest{
		Name: "Pantalón", BaseSKU: "PANTS",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var pants dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &pants))

	resp, raw = doJSON(t, app, http.MethodPost, "/products/", dto.CreateProductRequest{
		Name: "Camiseta", BaseSKU: "TSHIRT",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var shirt dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &shirt))

	for _, v := range []dto.CreateVariantRequest{
		{ProductID: pants.ID, Size: "32", UniqueSKU: "PANTS-32"},
		{ProductID: shirt.ID, Size: "M", Color: "Rojo", UniqueSKU: "TSHIRT-M-RED"},
		{ProductID: shirt.ID, Size: "M", Color: "Azul", UniqueSKU: "TSHIRT-M-BLUE"},
	} {
		resp, raw = doJSON(t, app, http.MethodPost, "/variants/", v, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	}

	resp, raw = doJSON(t, app, http.MethodGet, "/variants/", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.VariantListResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Items, 3)

	assert.Equal(t, "TSHIRT-M-BLUE", out.Items[0].UniqueSKU)
	assert.Equal(t, "TSHIRT-M-RED", out.Items[1].UniqueSKU)
	assert.Equal(t, "PANTS-32", out.Items[2].UniqueSKU)
	assert.Equal(t, "Camiseta", out.Items[0].ProductName)
}

func TestHTTP_Variantes_ProductoInexistente(t *testing.T) {
	app, _ := buildApp("", nil)

	resp, raw := doJSON(t, app, http.MethodPost, "/variants/", dto.CreateVariantRequest{
		ProductID: "no-existe", UniqueSKU: "SKU-X",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "UNKNOWN_PRODUCT")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger vía HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestHTTP_FlujoDeMovimientos(t *testing.T) {
	app, _ := buildApp("", nil)
	variantID, locationID := seedCatalog(t, app)

	// Entrada de 10
	resp, raw := doJSON(t, app, http.MethodPost, "/stock-movements/", dto.ApplyMovementRequest{
		VariantID: variantID, LocationID: locationID, QuantityChange: 10, Notes: "recepción",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var mov dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &mov))
	assert.Equal(t, int64(10), mov.QuantityChange)
	assert.False(t, mov.Timestamp.IsZero())

	// Salida de 3
	resp, _ = doJSON(t, app, http.MethodPost, "/stock-movements/", dto.ApplyMovementRequest{
		VariantID: variantID, LocationID: locationID, QuantityChange: -3,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// El nivel refleja la suma, con relaciones anidadas
	resp, raw = doJSON(t, app, http.MethodGet, "/stock-levels/", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var levels dto.StockLevelListResponse
	require.NoError(t, json.Unmarshal(raw, &levels))
	require.Len(t, levels.Items, 1)
	assert.Equal(t, int64(7), levels.Items[0].Quantity)
	assert.Equal(t, "TSHIRT-CLASSIC-M-RED", levels.Items[0].Variant.UniqueSKU)
	assert.Equal(t, "Camiseta Clásica", levels.Items[0].Variant.Product.Name)
	assert.Equal(t, "Bodega Central", levels.Items[0].Location.Name)

	// Salida mayor al disponible: rechazada, nivel intacto
	resp, raw = doJSON(t, app, http.MethodPost, "/stock-movements/", dto.ApplyMovementRequest{
		VariantID: variantID, LocationID: locationID, QuantityChange: -20,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "INSUFFICIENT_STOCK")

	resp, raw = doJSON(t, app, http.MethodGet, "/stock-levels/?variant_id="+variantID, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &levels))
	require.Len(t, levels.Items, 1)
	assert.Equal(t, int64(7), levels.Items[0].Quantity)

	// Bitácora: solo los dos movimientos aceptados
	resp, raw = doJSON(t, app, http.MethodGet, "/stock-movements/", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movs dto.MovementListResponse
	require.NoError(t, json.Unmarshal(raw, &movs))
	assert.Len(t, movs.Items, 2)
}

func TestHTTP_Movimiento_ReferenciasInexistentes(t *testing.T) {
	app, _ := buildApp("", nil)
	variantID, locationID := seedCatalog(t, app)

	resp, raw := doJSON(t, app, http.MethodPost, "/stock-movements/", dto.ApplyMovementRequest{
		VariantID: "no-existe", LocationID: locationID, QuantityChange: 1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "UNKNOWN_VARIANT")

	resp, raw = doJSON(t, app, http.MethodPost, "/stock-movements/", dto.ApplyMovementRequest{
		VariantID: variantID, LocationID: "no-existe", QuantityChange: 1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "UNKNOWN_LOCATION")
}

// El timestamp del cliente se descarta: siempre manda el reloj del servidor.
func TestHTTP_Movimiento_TimestampDelClienteSeIgnora(t *testing.T) {
	app, _ := buildApp("", nil)
	variantID, locationID := seedCatalog(t, app)

	body := map[string]interface{}{
		"variant_id":      variantID,
		"location_id":     locationID,
		"quantity_change": 5,
		"timestamp":       "1999-01-01T00:00:00Z",
	}
	resp, raw := doJSON(t, app, http.MethodPost, "/stock-movements/", body, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var mov dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &mov))
	assert.WithinDuration(t, time.Now(), mov.Timestamp, time.Minute,
		"el timestamp debe ser el del servidor, no el del cliente")
}

func TestHTTP_Movimiento_ConflictoPersistente503(t *testing.T) {
	app, _ := buildApp("", conflictRunner{})
	variantID, locationID := seedCatalog(t, app)

	resp, raw := doJSON(t, app, http.MethodPost, "/stock-movements/", dto.ApplyMovementRequest{
		VariantID: variantID, LocationID: locationID, QuantityChange: 1,
	}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(raw), "TX_CONFLICT")
}

func TestHTTP_ReportePDF(t *testing.T) {
	app, _ := buildApp("", nil)
	variantID, locationID := seedCatalog(t, app)

	resp, _ := doJSON(t, app, http.MethodPost, "/stock-movements/", dto.ApplyMovementRequest{
		VariantID: variantID, LocationID: locationID, QuantityChange: 8,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodGet, "/stock-levels/report", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "la respuesta debe ser un PDF")
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización en rutas de escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestHTTP_EscriturasProtegidasConJWT(t *testing.T) {
	app, _ := buildApp(testJWTSecret, nil)

	// Lecturas siguen públicas
	resp, _ := doJSON(t, app, http.MethodGet, "/products/", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Escritura sin token
	resp, raw := doJSON(t, app, http.MethodPost, "/products/", dto.CreateProductRequest{
		Name: "Camiseta", BaseSKU: "TSHIRT",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(raw), "MISSING_TOKEN")

	// Catálogo es solo admin: bodeguero bloqueado
	resp, raw = doJSON(t, app, http.MethodPost, "/products/", dto.CreateProductRequest{
		Name: "Camiseta", BaseSKU: "TSHIRT",
	}, map[string]string{"Authorization": tokenForRole(t, "bodeguero")})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(raw), "FORBIDDEN")

	// Admin sí puede crear catálogo
	adminHeaders := map[string]string{"Authorization": tokenForRole(t, "admin")}
	resp, raw = doJSON(t, app, http.MethodPost, "/products/", dto.CreateProductRequest{
		Name: "Camiseta", BaseSKU: "TSHIRT",
	}, adminHeaders)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var product dto.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &product))

	resp, _ = doJSON(t, app, http.MethodPost, "/variants/", dto.CreateVariantRequest{
		ProductID: product.ID, Size: "M", Color: "Rojo", UniqueSKU: "TSHIRT-M-RED",
	}, adminHeaders)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, raw = doJSON(t, app, http.MethodPost, "/locations/", dto.CreateLocationRequest{
		Name: "Bodega Central",
	}, adminHeaders)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var variant dto.VariantResponse
	_, rawVariants := doJSON(t, app, http.MethodGet, "/variants/", nil, nil)
	var variants dto.VariantListResponse
	require.NoError(t, json.Unmarshal(rawVariants, &variants))
	require.Len(t, variants.Items, 1)
	variant = variants.Items[0]

	var location dto.LocationResponse
	require.NoError(t, json.Unmarshal(raw, &location))

	// Movimientos: bodeguero sí está autorizado
	resp, raw = doJSON(t, app, http.MethodPost, "/stock-movements/", dto.ApplyMovementRequest{
		VariantID: variant.ID, LocationID: location.ID, QuantityChange: 10,
	}, map[string]string{"Authorization": tokenForRole(t, "bodeguero")})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
}
