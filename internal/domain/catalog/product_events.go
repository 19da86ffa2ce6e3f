package catalog

import (
	"github.com/poslite/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeProductCreated = "catalog.product.created"
)

// ProductCreatedEvent is raised when a new product enters the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
}

// NewProductCreatedEvent creates a ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, p.ID, p.TenantID),
		ProductID:       p.ID.String(),
		Code:            p.Code,
		Name:            p.Name,
	}
}
