package persistence

import (
	"github.com/poslite/backend/internal/infrastructure/persistence/models"
)

// AutoMigrate creates or updates the schema for every persistence model.
// Production deployments run the SQL migrations instead; this exists for
// the sqlite driver and for tests.
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&models.ProductModel{},
		&models.CustomerModel{},
		&models.SupplierModel{},
		&models.EntryModel{},
		&models.EntryLineModel{},
	)
}
