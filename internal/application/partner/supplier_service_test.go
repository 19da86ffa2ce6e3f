package partner

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/partner"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, entity *partner.Supplier) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockSupplierRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) FindDebtors(ctx context.Context, tenantID uuid.UUID) ([]partner.Supplier, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func purchaseEntry(tenantID uuid.UUID, counterpartyID uuid.UUID, total, paid decimal.Decimal, occurredAt time.Time) ledger.Entry {
	return ledger.Entry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                ledger.KindPurchase,
		CounterpartyID:      &counterpartyID,
		Totals: ledger.EntryTotals{
			Subtotal:     total,
			Total:        total,
			AmountPaid:   paid,
			BalanceDelta: total.Sub(paid),
		},
		OccurredAt: occurredAt,
	}
}

func TestSupplierService_Create_Success(t *testing.T) {
	mockSupplierRepo := new(MockSupplierRepository)
	mockEntryRepo := new(MockEntryRepository)
	service := NewSupplierService(mockSupplierRepo, mockEntryRepo, 30)

	ctx := context.Background()
	tenantID := uuid.New()
	req := CreateSupplierRequest{Name: "Metro Wholesale", Phone: "555-0202"}

	mockSupplierRepo.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).Return(nil)

	result, err := service.Create(ctx, tenantID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Metro Wholesale", result.Name)
	assert.True(t, result.Balance.IsZero())
	mockSupplierRepo.AssertExpectations(t)
}

func TestSupplierService_Statement_PartiallyPaidInvoice(t *testing.T) {
	mockSupplierRepo := new(MockSupplierRepository)
	mockEntryRepo := new(MockEntryRepository)
	service := NewSupplierService(mockSupplierRepo, mockEntryRepo, 30)

	ctx := context.Background()
	tenantID := uuid.New()
	supplier, _ := partner.NewSupplier(tenantID, "Metro Wholesale")
	supplier.RecordInvoice(decimal.NewFromInt(500), decimal.NewFromInt(200))

	base := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	entries := []ledger.Entry{
		purchaseEntry(tenantID, supplier.ID, decimal.NewFromInt(500), decimal.NewFromInt(200), base),
	}

	mockSupplierRepo.On("FindByIDForTenant", ctx, tenantID, supplier.ID).Return(supplier, nil)
	mockEntryRepo.On("FindByCounterparty", ctx, tenantID, supplier.ID).Return(entries, nil)

	result, err := service.Statement(ctx, tenantID, supplier.ID)

	require.NoError(t, err)
	require.Len(t, result.Lines, 1)
	assert.True(t, result.StartingBalance.IsZero())
	assert.True(t, result.Lines[0].BalanceAfter.Equal(decimal.NewFromInt(300)))
	assert.True(t, result.ClosingBalance.Equal(supplier.Balance))
}

func TestSupplierService_ListDebtAlerts_SettlementDay(t *testing.T) {
	mockSupplierRepo := new(MockSupplierRepository)
	mockEntryRepo := new(MockEntryRepository)
	service := NewSupplierService(mockSupplierRepo, mockEntryRepo, 30)

	ctx := context.Background()
	tenantID := uuid.New()
	supplier, _ := partner.NewSupplier(tenantID, "Metro Wholesale")
	today := time.Now().Day()
	require.NoError(t, supplier.SetSettlementDay(&today))
	supplier.RecordInvoice(decimal.NewFromInt(500), decimal.Zero)

	// Invoice from earlier this cycle; the settlement day lands on today.
	origin := time.Now().AddDate(0, 0, -2)
	entries := []ledger.Entry{
		purchaseEntry(tenantID, supplier.ID, decimal.NewFromInt(500), decimal.Zero, origin),
	}

	mockSupplierRepo.On("FindDebtors", ctx, tenantID).Return([]partner.Supplier{*supplier}, nil)
	mockEntryRepo.On("FindByCounterparty", ctx, tenantID, supplier.ID).Return(entries, nil)

	alerts, err := service.ListDebtAlerts(ctx, tenantID)

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, supplier.ID, alerts[0].CounterpartyID)
	assert.True(t, alerts[0].Balance.Equal(decimal.NewFromInt(500)))
}
