package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/catalog"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/partner"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.ProductModel{},
		&models.CustomerModel{},
		&models.SupplierModel{},
		&models.EntryModel{},
		&models.EntryLineModel{},
	)
	require.NoError(t, err)

	return db
}

func mustNewProduct(t *testing.T, tenantID uuid.UUID, code string, unitPrice, purchasePrice int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, code, "Product "+code,
		decimal.NewFromInt(unitPrice), decimal.NewFromInt(purchasePrice))
	require.NoError(t, err)
	return product
}

func mustNewCustomer(t *testing.T, tenantID uuid.UUID, name string) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(tenantID, name)
	require.NoError(t, err)
	return customer
}

func newSaleEntry(tenantID uuid.UUID, counterpartyID *uuid.UUID, productID uuid.UUID, total, paid int64, occurredAt time.Time) *ledger.Entry {
	totalDec := decimal.NewFromInt(total)
	paidDec := decimal.NewFromInt(paid)
	return &ledger.Entry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                ledger.KindSale,
		CounterpartyID:      counterpartyID,
		Lines: []ledger.EntryLine{
			{
				ProductID:   productID,
				ProductName: "Cola 330ml",
				Quantity:    2,
				UnitPrice:   totalDec.Div(decimal.NewFromInt(2)),
				LineTotal:   totalDec,
			},
		},
		Totals: ledger.EntryTotals{
			Subtotal:     totalDec,
			Total:        totalDec,
			AmountPaid:   paidDec,
			BalanceDelta: totalDec.Sub(paidDec),
		},
		OccurredAt: occurredAt,
	}
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	product := mustNewProduct(t, tenantID, "COLA-330", 15, 10)
	product.Stock = 40
	require.NoError(t, repo.Save(ctx, product))

	t.Run("by ID", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, tenantID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "COLA-330", found.Code)
		assert.Equal(t, int64(40), found.Stock)
		assert.True(t, found.UnitPrice.Equal(decimal.NewFromInt(15)))
	})

	t.Run("by code is case insensitive", func(t *testing.T) {
		found, err := repo.FindByCode(ctx, tenantID, "cola-330")
		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
	})

	t.Run("not found maps to domain error", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, tenantID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("other tenant cannot see it", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_BoxTierRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	product := mustNewProduct(t, tenantID, "COLA-330", 15, 10)
	require.NoError(t, product.SetBoxTier(24, decimal.NewFromInt(300)))
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByIDForTenant(ctx, tenantID, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found.QuantityPerBox)
	require.NotNil(t, found.BoxPrice)
	assert.Equal(t, int64(24), *found.QuantityPerBox)
	assert.True(t, found.BoxPrice.Equal(decimal.NewFromInt(300)))
}

func TestGormProductRepository_FindLowStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	low := mustNewProduct(t, tenantID, "LOW-1", 10, 5)
	low.Stock = 3
	low.MinStock = 5
	require.NoError(t, repo.Save(ctx, low))

	healthy := mustNewProduct(t, tenantID, "OK-1", 10, 5)
	healthy.Stock = 50
	healthy.MinStock = 5
	require.NoError(t, repo.Save(ctx, healthy))

	noThreshold := mustNewProduct(t, tenantID, "ZERO-1", 10, 5)
	noThreshold.Stock = 0
	require.NoError(t, repo.Save(ctx, noThreshold))

	found, err := repo.FindLowStock(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "LOW-1", found[0].Code)
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	first := mustNewProduct(t, tenantID, "A-1", 10, 5)
	second := mustNewProduct(t, tenantID, "B-2", 20, 10)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	found, err := repo.FindByIDs(ctx, tenantID, []uuid.UUID{first.ID, second.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	empty, err := repo.FindByIDs(ctx, tenantID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	product := mustNewProduct(t, tenantID, "DEL-1", 10, 5)
	require.NoError(t, repo.Save(ctx, product))

	require.NoError(t, repo.DeleteForTenant(ctx, tenantID, product.ID))

	_, err := repo.FindByIDForTenant(ctx, tenantID, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.DeleteForTenant(ctx, tenantID, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCustomerRepository_FindDebtors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	debtor := mustNewCustomer(t, tenantID, "Ali")
	debtor.Balance = decimal.NewFromInt(120)
	require.NoError(t, repo.Save(ctx, debtor))

	bigDebtor := mustNewCustomer(t, tenantID, "Sara")
	bigDebtor.Balance = decimal.NewFromInt(300)
	require.NoError(t, repo.Save(ctx, bigDebtor))

	settled := mustNewCustomer(t, tenantID, "Omar")
	require.NoError(t, repo.Save(ctx, settled))

	debtors, err := repo.FindDebtors(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, debtors, 2)
	assert.Equal(t, "Sara", debtors[0].Name)
	assert.Equal(t, "Ali", debtors[1].Name)
}

func TestGormCustomerRepository_SettlementDayRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	customer := mustNewCustomer(t, tenantID, "Ali")
	settlementDay := 15
	require.NoError(t, customer.SetSettlementDay(&settlementDay))
	require.NoError(t, repo.Save(ctx, customer))

	found, err := repo.FindByIDForTenant(ctx, tenantID, customer.ID)
	require.NoError(t, err)
	require.NotNil(t, found.SettlementDay)
	assert.Equal(t, 15, *found.SettlementDay)
}

func TestGormSupplierRepository_FindDebtors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	owed, err := partner.NewSupplier(tenantID, "Wholesale Co")
	require.NoError(t, err)
	owed.Balance = decimal.NewFromInt(500)
	require.NoError(t, repo.Save(ctx, owed))

	settled, err := partner.NewSupplier(tenantID, "Settled Co")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, settled))

	debtors, err := repo.FindDebtors(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.Equal(t, "Wholesale Co", debtors[0].Name)
}

func TestGormEntryRepository_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEntryRepository(db)
	uow := NewGormUnitOfWork(db)
	ctx := context.Background()
	tenantID := uuid.New()
	customerID := uuid.New()
	productID := uuid.New()

	entry := newSaleEntry(tenantID, &customerID, productID, 100, 60, time.Now())
	uow.RegisterNew(entry)
	require.NoError(t, uow.Commit(ctx))

	found, err := repo.FindByIDForTenant(ctx, tenantID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.KindSale, found.Kind)
	require.NotNil(t, found.CounterpartyID)
	assert.Equal(t, customerID, *found.CounterpartyID)
	require.Len(t, found.Lines, 1)
	assert.Equal(t, productID, found.Lines[0].ProductID)
	assert.Equal(t, int64(2), found.Lines[0].Quantity)
	assert.True(t, found.Totals.BalanceDelta.Equal(decimal.NewFromInt(40)))
}

func TestGormEntryRepository_FindByCounterpartyOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEntryRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	customerID := uuid.New()
	productID := uuid.New()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := newSaleEntry(tenantID, &customerID, productID, 200, 0, base.Add(48*time.Hour))
	earlier := newSaleEntry(tenantID, &customerID, productID, 100, 100, base)
	other := newSaleEntry(tenantID, &customerID, productID, 50, 50, base.Add(time.Hour))
	unrelatedID := uuid.New()
	unrelated := newSaleEntry(tenantID, &unrelatedID, productID, 999, 0, base)

	uow := NewGormUnitOfWork(db)
	uow.RegisterNew(later)
	uow.RegisterNew(earlier)
	uow.RegisterNew(other)
	uow.RegisterNew(unrelated)
	require.NoError(t, uow.Commit(ctx))

	entries, err := repo.FindByCounterparty(ctx, tenantID, customerID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Totals.Total.Equal(decimal.NewFromInt(100)))
	assert.True(t, entries[1].Totals.Total.Equal(decimal.NewFromInt(50)))
	assert.True(t, entries[2].Totals.Total.Equal(decimal.NewFromInt(200)))
}

func TestGormEntryRepository_FindByPeriod(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEntryRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	productID := uuid.New()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	inside := newSaleEntry(tenantID, nil, productID, 100, 100, from.Add(24*time.Hour))
	atStart := newSaleEntry(tenantID, nil, productID, 50, 50, from)
	atEnd := newSaleEntry(tenantID, nil, productID, 75, 75, to)
	before := newSaleEntry(tenantID, nil, productID, 25, 25, from.Add(-time.Second))

	uow := NewGormUnitOfWork(db)
	uow.RegisterNew(inside)
	uow.RegisterNew(atStart)
	uow.RegisterNew(atEnd)
	uow.RegisterNew(before)
	require.NoError(t, uow.Commit(ctx))

	entries, err := repo.FindByPeriod(ctx, tenantID, from, to)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Totals.Total.Equal(decimal.NewFromInt(50)))
	assert.True(t, entries[1].Totals.Total.Equal(decimal.NewFromInt(100)))
}

func TestGormEntryRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormEntryRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	customerID := uuid.New()
	productID := uuid.New()

	entry := newSaleEntry(tenantID, &customerID, productID, 100, 100, time.Now())
	uow := NewGormUnitOfWork(db)
	uow.RegisterNew(entry)
	require.NoError(t, uow.Commit(ctx))

	byProduct, err := repo.CountByProduct(ctx, tenantID, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byProduct)

	byOther, err := repo.CountByProduct(ctx, tenantID, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, byOther)

	byCounterparty, err := repo.CountByCounterparty(ctx, tenantID, customerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byCounterparty)
}

func TestGormUnitOfWork_AtomicSaleGroup(t *testing.T) {
	db := setupTestDB(t)
	productRepo := NewGormProductRepository(db)
	customerRepo := NewGormCustomerRepository(db)
	entryRepo := NewGormEntryRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	product := mustNewProduct(t, tenantID, "COLA-330", 15, 10)
	product.Stock = 50
	require.NoError(t, productRepo.Save(ctx, product))

	customer := mustNewCustomer(t, tenantID, "Ali")
	require.NoError(t, customerRepo.Save(ctx, customer))

	product.Stock = 47
	customer.Balance = decimal.NewFromInt(45)
	entry := newSaleEntry(tenantID, &customer.ID, product.ID, 45, 0, time.Now())

	uow := NewGormUnitOfWork(db)
	uow.RegisterNew(entry)
	uow.RegisterDirty(product)
	uow.RegisterDirty(customer)
	require.NoError(t, uow.Commit(ctx))

	savedProduct, err := productRepo.FindByIDForTenant(ctx, tenantID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(47), savedProduct.Stock)

	savedCustomer, err := customerRepo.FindByIDForTenant(ctx, tenantID, customer.ID)
	require.NoError(t, err)
	assert.True(t, savedCustomer.Balance.Equal(decimal.NewFromInt(45)))

	savedEntry, err := entryRepo.FindByIDForTenant(ctx, tenantID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.KindSale, savedEntry.Kind)
}

func TestGormUnitOfWork_RollbackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	productRepo := NewGormProductRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	product := mustNewProduct(t, tenantID, "COLA-330", 15, 10)
	product.Stock = 50
	require.NoError(t, productRepo.Save(ctx, product))

	product.Stock = 47

	type notAnAggregate struct{}

	uow := NewGormUnitOfWork(db)
	uow.RegisterDirty(product)
	uow.RegisterDirty(&notAnAggregate{})
	err := uow.Commit(ctx)
	require.Error(t, err)

	// The valid update must have been rolled back with the group.
	saved, err := productRepo.FindByIDForTenant(ctx, tenantID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), saved.Stock)
}

func TestGormUnitOfWork_SingleUse(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	uow := NewGormUnitOfWork(db)
	require.NoError(t, uow.Commit(ctx))

	err := uow.Commit(ctx)
	require.Error(t, err)
	assert.Equal(t, "INVALID_STATE", shared.ErrorCode(err))
}
