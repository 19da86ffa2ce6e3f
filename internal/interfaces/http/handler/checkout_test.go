package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/poslite/backend/internal/application/trade"
	"github.com/poslite/backend/internal/domain/catalog"
	"github.com/poslite/backend/internal/domain/partner"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository implements partner.CustomerRepository for testing
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindDebtors(ctx context.Context, tenantID uuid.UUID) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

// noopUnitOfWork commits without touching storage
type noopUnitOfWork struct{}

func (noopUnitOfWork) RegisterNew(entity any)           {}
func (noopUnitOfWork) RegisterDirty(entity any)         {}
func (noopUnitOfWork) Commit(ctx context.Context) error { return nil }

type noopUoWFactory struct{}

func (noopUoWFactory) New() shared.UnitOfWork { return noopUnitOfWork{} }

func setupCheckoutRouter(tenantID uuid.UUID, productRepo *MockProductRepository, customerRepo *MockCustomerRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := tradeapp.NewCheckoutService(productRepo, customerRepo, noopUoWFactory{})
	h := NewCheckoutHandler(service)

	r := gin.New()
	r.Use(setTenant(tenantID))
	r.POST("/checkout", h.Checkout)
	r.POST("/customers/:id/payments", h.CustomerPayment)
	return r
}

func newCheckoutProduct(t *testing.T, tenantID uuid.UUID, stock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, "COLA-330", "Cola 330ml",
		decimal.NewFromInt(15), decimal.NewFromInt(10))
	require.NoError(t, err)
	product.Stock = stock
	return product
}

func TestCheckoutHandler_CashSale(t *testing.T) {
	tenantID := uuid.New()
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	r := setupCheckoutRouter(tenantID, productRepo, customerRepo)

	product := newCheckoutProduct(t, tenantID, 50)
	productRepo.On("FindByIDs", mock.Anything, tenantID, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)

	body, _ := json.Marshal(CheckoutRequest{
		Lines:      []CheckoutLineRequest{{ProductID: product.ID.String(), Quantity: 2}},
		AmountPaid: "30",
	})
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"sale"`)
	assert.Contains(t, w.Body.String(), `"total":"30"`)
}

func TestCheckoutHandler_InsufficientStock(t *testing.T) {
	tenantID := uuid.New()
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	r := setupCheckoutRouter(tenantID, productRepo, customerRepo)

	product := newCheckoutProduct(t, tenantID, 1)
	productRepo.On("FindByIDs", mock.Anything, tenantID, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)

	body, _ := json.Marshal(CheckoutRequest{
		Lines:      []CheckoutLineRequest{{ProductID: product.ID.String(), Quantity: 5}},
		AmountPaid: "75",
	})
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INSUFFICIENT_STOCK")
}

func TestCheckoutHandler_EmptyCart(t *testing.T) {
	tenantID := uuid.New()
	r := setupCheckoutRouter(tenantID, new(MockProductRepository), new(MockCustomerRepository))

	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader([]byte(`{"lines":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutHandler_CustomerPayment(t *testing.T) {
	tenantID := uuid.New()
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	r := setupCheckoutRouter(tenantID, productRepo, customerRepo)

	customer, err := partner.NewCustomer(tenantID, "Ali")
	require.NoError(t, err)
	customer.Balance = decimal.NewFromInt(100)
	customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)

	body, _ := json.Marshal(PaymentRequest{Amount: "40"})
	req := httptest.NewRequest(http.MethodPost, "/customers/"+customer.ID.String()+"/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"customer_payment"`)
}

func TestCheckoutHandler_NegativePayment(t *testing.T) {
	tenantID := uuid.New()
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	r := setupCheckoutRouter(tenantID, productRepo, customerRepo)

	customer, err := partner.NewCustomer(tenantID, "Ali")
	require.NoError(t, err)
	customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)

	body, _ := json.Marshal(PaymentRequest{Amount: "-5"})
	req := httptest.NewRequest(http.MethodPost, "/customers/"+customer.ID.String()+"/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AMOUNT")
}
