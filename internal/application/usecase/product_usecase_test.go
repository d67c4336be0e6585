package usecase

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// fakeProductRepo repositorio en memoria para los tests del caso de uso.
// List reproduce la semántica del adaptador: search_name LIKE o lower(sku) LIKE.
type fakeProductRepo struct {
	products    map[string]*entity.Product
	lastSearch  string
	getBySKUErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	if f.getBySKUErr != nil {
		return nil, f.getBySKUErr
	}
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) UpdateStockAndCost(id string, stock int64, cost decimal.Decimal) error {
	p, ok := f.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock, p.Cost = stock, cost
	return nil
}

func (f *fakeProductRepo) List(search string, limit, offset int) ([]*entity.Product, error) {
	f.lastSearch = search
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		if search != "" && !strings.Contains(p.SearchName, search) && !strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) ListLowStock(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.Stock <= p.LowStockThreshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Delete(id string) error {
	if _, ok := f.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// normalizeSearch
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeSearch_QuitaTildesYBajaMinusculas(t *testing.T) {
	cases := map[string]string{
		"Lámpara":   "lampara",
		"CAFÉ":      "cafe",
		"  Jamón  ": "jamon",
		"ñoño":      "nono", // la eñe descompone en n + tilde combinante y pierde la virgulilla
		"azucar":    "azucar",
		"":          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeSearch(in), "entrada: %q", in)
	}
}

func TestList_NormalizaElFiltroAntesDeConsultar(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo)

	_, err := uc.List("Lámpara LED", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "lampara led", repo.lastSearch)
}

// Los dos lados de la búsqueda usan la misma normalización: el filtro se
// normaliza al consultar y el nombre se persiste normalizado en search_name,
// así un nombre con tilde se encuentra tanto con tilde como sin ella.
func TestList_EncuentraNombresConTilde(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo)

	_, err := uc.Create(dto.CreateProductRequest{SKU: "LAMP-1", Name: "Lámpara LED", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	for _, q := range []string{"Lámpara", "lampara", "LÁMPARA LED"} {
		out, err := uc.List(q, 10, 0)
		require.NoError(t, err)
		require.Len(t, out, 1, "búsqueda: %q", q)
		assert.Equal(t, "Lámpara LED", out[0].Name)
	}
}

func TestCreateYUpdate_MantienenSearchName(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo)

	created, err := uc.Create(dto.CreateProductRequest{SKU: "CAF-1", Name: "Café Molido", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Equal(t, "cafe molido", repo.products[created.ID].SearchName)

	_, err = uc.Update(created.ID, dto.UpdateProductRequest{Name: "Café en Grano"})
	require.NoError(t, err)
	assert.Equal(t, "cafe en grano", repo.products[created.ID].SearchName)
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_IniciaSinStockNiCosto(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	out, err := uc.Create(dto.CreateProductRequest{
		SKU:   "SKU-1",
		Name:  "Tornillo 3mm",
		Price: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Stock)
	assert.True(t, out.Cost.IsZero(), "el costo promedio debe iniciar en 0")
}

func TestCreateProduct_SKUDuplicado(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(dto.CreateProductRequest{SKU: "SKU-1", Name: "A", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{SKU: "SKU-1", Name: "B", Price: decimal.NewFromInt(20)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProduct_ErrorAlVerificarSKU(t *testing.T) {
	repo := newFakeProductRepo()
	repo.getBySKUErr = assert.AnError
	uc := NewProductUseCase(repo)

	_, err := uc.Create(dto.CreateProductRequest{SKU: "SKU-1", Name: "A", Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, assert.AnError, "un fallo de infraestructura no debe pasar por SKU libre")
	assert.Empty(t, repo.products, "no debe insertarse nada si la verificación falló")
}

func TestCreateProduct_Validacion(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(dto.CreateProductRequest{SKU: "", Name: "X", Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{SKU: "S", Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_NoExiste(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	out, err := uc.Update("no-existe", dto.UpdateProductRequest{Name: "Nuevo"})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestUpdateProduct_NoTocaStockNiCosto(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo)

	created, err := uc.Create(dto.CreateProductRequest{SKU: "SKU-9", Name: "Caja", Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	// Simular que el motor ya movió stock y costo.
	repo.products[created.ID].Stock = 7
	repo.products[created.ID].Cost = decimal.NewFromInt(42)

	out, err := uc.Update(created.ID, dto.UpdateProductRequest{Name: "Caja grande"})
	require.NoError(t, err)
	assert.Equal(t, "Caja grande", out.Name)
	assert.Equal(t, int64(7), out.Stock)
	assert.True(t, decimal.NewFromInt(42).Equal(out.Cost))
}
