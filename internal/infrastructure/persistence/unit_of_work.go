package persistence

import (
	"context"
	"fmt"

	"github.com/poslite/backend/internal/domain/catalog"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/partner"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUnitOfWork applies a registered group of domain mutations inside a
// single database transaction. It only knows the aggregate types the ledger
// appliers produce; registering anything else fails the commit rather than
// silently dropping the mutation.
type GormUnitOfWork struct {
	db        *gorm.DB
	news      []any
	dirty     []any
	committed bool
}

// NewGormUnitOfWork creates a unit of work bound to the given connection
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// RegisterNew schedules a brand-new entity for insertion
func (u *GormUnitOfWork) RegisterNew(entity any) {
	u.news = append(u.news, entity)
}

// RegisterDirty schedules an existing entity for update
func (u *GormUnitOfWork) RegisterDirty(entity any) {
	u.dirty = append(u.dirty, entity)
}

// Commit applies every registered mutation in one transaction
func (u *GormUnitOfWork) Commit(ctx context.Context) error {
	if u.committed {
		return shared.NewDomainError("INVALID_STATE", "Unit of work has already been committed")
	}
	u.committed = true

	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entity := range u.news {
			model, err := toModel(entity)
			if err != nil {
				return err
			}
			if err := tx.Create(model).Error; err != nil {
				return err
			}
		}
		for _, entity := range u.dirty {
			model, err := toModel(entity)
			if err != nil {
				return err
			}
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func toModel(entity any) (any, error) {
	switch e := entity.(type) {
	case *ledger.Entry:
		return models.EntryModelFromDomain(e), nil
	case *catalog.Product:
		return models.ProductModelFromDomain(e), nil
	case *partner.Customer:
		return models.CustomerModelFromDomain(e), nil
	case *partner.Supplier:
		return models.SupplierModelFromDomain(e), nil
	default:
		return nil, fmt.Errorf("unit of work cannot persist entity of type %T", entity)
	}
}

// GormUnitOfWorkFactory creates one GormUnitOfWork per engine call
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a new GormUnitOfWorkFactory
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// New returns a fresh unit of work
func (f *GormUnitOfWorkFactory) New() shared.UnitOfWork {
	return NewGormUnitOfWork(f.db)
}

// Ensure the implementations satisfy the domain ports
var (
	_ shared.UnitOfWork        = (*GormUnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*GormUnitOfWorkFactory)(nil)
)
