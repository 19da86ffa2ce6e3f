package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is a request to create a product
type CreateProductRequest struct {
	Code           string
	Name           string
	Category       string
	UnitPrice      decimal.Decimal
	PurchasePrice  decimal.Decimal
	MinStock       int64
	QuantityPerBox *int64
	BoxPrice       *decimal.Decimal
}

// UpdateProductRequest is a request to update a product; nil fields are
// left unchanged.
type UpdateProductRequest struct {
	Name           *string
	Category       *string
	UnitPrice      *decimal.Decimal
	MinStock       *int64
	QuantityPerBox *int64
	BoxPrice       *decimal.Decimal
	ClearBoxTier   bool
}

// ProductResponse is the application-level view of a product
type ProductResponse struct {
	ID             uuid.UUID        `json:"id"`
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	Category       string           `json:"category,omitempty"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	PurchasePrice  decimal.Decimal  `json:"purchase_price"`
	Stock          int64            `json:"stock"`
	MinStock       int64            `json:"min_stock"`
	QuantityPerBox *int64           `json:"quantity_per_box,omitempty"`
	BoxPrice       *decimal.Decimal `json:"box_price,omitempty"`
	LowStock       bool             `json:"low_stock"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToProductResponse maps a domain product to its response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		Category:       p.Category,
		UnitPrice:      p.UnitPrice,
		PurchasePrice:  p.PurchasePrice,
		Stock:          p.Stock,
		MinStock:       p.MinStock,
		QuantityPerBox: p.QuantityPerBox,
		BoxPrice:       p.BoxPrice,
		LowStock:       p.IsLowStock(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponses maps a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
