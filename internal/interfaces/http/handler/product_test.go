package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/poslite/backend/internal/application/catalog"
	"github.com/poslite/backend/internal/domain/catalog"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// MockEntryRepository implements ledger.EntryRepository for testing
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Entry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ledger.Entry, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]ledger.Entry, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindByCounterparty(ctx context.Context, tenantID, counterpartyID uuid.UUID) ([]ledger.Entry, error) {
	args := m.Called(ctx, tenantID, counterpartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Entry), args.Error(1)
}

func (m *MockEntryRepository) CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) CountByCounterparty(ctx context.Context, tenantID, counterpartyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, counterpartyID)
	return args.Get(0).(int64), args.Error(1)
}

// setTenant injects a tenant ID the way the tenant middleware does
func setTenant(tenantID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.TenantIDKey, tenantID)
		c.Next()
	}
}

func setupProductRouter(tenantID uuid.UUID, productRepo *MockProductRepository, entryRepo *MockEntryRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := catalogapp.NewProductService(productRepo, entryRepo)
	h := NewProductHandler(service)

	r := gin.New()
	r.Use(setTenant(tenantID))
	r.POST("/products", h.Create)
	r.GET("/products/:id", h.GetByID)
	r.DELETE("/products/:id", h.Delete)
	return r
}

func TestProductHandler_Create(t *testing.T) {
	tenantID := uuid.New()
	productRepo := new(MockProductRepository)
	entryRepo := new(MockEntryRepository)
	r := setupProductRouter(tenantID, productRepo, entryRepo)

	productRepo.On("FindByCode", mock.Anything, tenantID, "COLA-330").Return(nil, shared.ErrNotFound)
	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	body, _ := json.Marshal(CreateProductRequest{
		Code:      "cola-330",
		Name:      "Cola 330ml",
		UnitPrice: "15",
	})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"COLA-330"`)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Create_DuplicateCode(t *testing.T) {
	tenantID := uuid.New()
	productRepo := new(MockProductRepository)
	entryRepo := new(MockEntryRepository)
	r := setupProductRouter(tenantID, productRepo, entryRepo)

	existing, err := catalog.NewProduct(tenantID, "COLA-330", "Cola", decimal.NewFromInt(15), decimal.NewFromInt(10))
	require.NoError(t, err)
	productRepo.On("FindByCode", mock.Anything, tenantID, "COLA-330").Return(existing, nil)

	body, _ := json.Marshal(CreateProductRequest{
		Code:      "COLA-330",
		Name:      "Cola 330ml",
		UnitPrice: "15",
	})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ALREADY_EXISTS")
}

func TestProductHandler_Create_InvalidBody(t *testing.T) {
	tenantID := uuid.New()
	r := setupProductRouter(tenantID, new(MockProductRepository), new(MockEntryRepository))

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader([]byte(`{"name":"no code"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	tenantID := uuid.New()
	productRepo := new(MockProductRepository)
	r := setupProductRouter(tenantID, productRepo, new(MockEntryRepository))

	missingID := uuid.New()
	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, missingID).Return(nil, shared.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/products/"+missingID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestProductHandler_Delete_ReferencedByLedger(t *testing.T) {
	tenantID := uuid.New()
	productRepo := new(MockProductRepository)
	entryRepo := new(MockEntryRepository)
	r := setupProductRouter(tenantID, productRepo, entryRepo)

	product, err := catalog.NewProduct(tenantID, "COLA-330", "Cola", decimal.NewFromInt(15), decimal.NewFromInt(10))
	require.NoError(t, err)
	productRepo.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
	entryRepo.On("CountByProduct", mock.Anything, tenantID, product.ID).Return(int64(3), nil)

	req := httptest.NewRequest(http.MethodDelete, "/products/"+product.ID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "REFERENTIAL_CONFLICT")
	productRepo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
}
