package models

import (
	"github.com/poslite/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity
type ProductModel struct {
	TenantAggregateModel
	Code           string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_code,priority:2"`
	Name           string           `gorm:"type:varchar(200);not null"`
	Category       string           `gorm:"type:varchar(100);index"`
	UnitPrice      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	PurchasePrice  decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Stock          int64            `gorm:"not null;default:0"`
	MinStock       int64            `gorm:"not null;default:0"`
	QuantityPerBox *int64           `gorm:""`
	BoxPrice       *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		Code:           m.Code,
		Name:           m.Name,
		Category:       m.Category,
		UnitPrice:      m.UnitPrice,
		PurchasePrice:  m.PurchasePrice,
		Stock:          m.Stock,
		MinStock:       m.MinStock,
		QuantityPerBox: m.QuantityPerBox,
		BoxPrice:       m.BoxPrice,
	}
	m.PopulateTenantAggregateRoot(&p.TenantAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Product entity
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.Category = p.Category
	m.UnitPrice = p.UnitPrice
	m.PurchasePrice = p.PurchasePrice
	m.Stock = p.Stock
	m.MinStock = p.MinStock
	m.QuantityPerBox = p.QuantityPerBox
	m.BoxPrice = p.BoxPrice
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
