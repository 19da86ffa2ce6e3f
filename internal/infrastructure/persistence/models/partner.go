package models

import (
	"github.com/poslite/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity
type CustomerModel struct {
	TenantAggregateModel
	Name          string          `gorm:"type:varchar(200);not null"`
	Phone         string          `gorm:"type:varchar(50)"`
	Notes         string          `gorm:"type:text"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0;index"`
	Spent         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SettlementDay *int            `gorm:""`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity
func (m *CustomerModel) ToDomain() *partner.Customer {
	c := &partner.Customer{
		Name:          m.Name,
		Phone:         m.Phone,
		Notes:         m.Notes,
		Balance:       m.Balance,
		Spent:         m.Spent,
		SettlementDay: m.SettlementDay,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Customer entity
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Notes = c.Notes
	m.Balance = c.Balance
	m.Spent = c.Spent
	m.SettlementDay = c.SettlementDay
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// SupplierModel is the persistence model for the Supplier domain entity
type SupplierModel struct {
	TenantAggregateModel
	Name          string          `gorm:"type:varchar(200);not null"`
	Phone         string          `gorm:"type:varchar(50)"`
	Notes         string          `gorm:"type:text"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0;index"`
	SettlementDay *int            `gorm:""`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity
func (m *SupplierModel) ToDomain() *partner.Supplier {
	s := &partner.Supplier{
		Name:          m.Name,
		Phone:         m.Phone,
		Notes:         m.Notes,
		Balance:       m.Balance,
		SettlementDay: m.SettlementDay,
	}
	m.PopulateTenantAggregateRoot(&s.TenantAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Supplier entity
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.Name = s.Name
	m.Phone = s.Phone
	m.Notes = s.Notes
	m.Balance = s.Balance
	m.SettlementDay = s.SettlementDay
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}
