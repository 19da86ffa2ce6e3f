package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/catalog"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/shared"
)

// ProductService handles catalog maintenance. Stock and cost mutations do
// not live here; those belong to the ledger services so every movement
// leaves a transaction record.
type ProductService struct {
	productRepo catalog.ProductRepository
	entryRepo   ledger.EntryRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, entryRepo ledger.EntryRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		entryRepo:   entryRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.productRepo.FindByCode(ctx, tenantID, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	product, err := catalog.NewProduct(tenantID, req.Code, req.Name, req.UnitPrice, req.PurchasePrice)
	if err != nil {
		return nil, err
	}
	product.Category = req.Category
	if req.MinStock > 0 {
		if err := product.SetPricing(req.UnitPrice, req.MinStock); err != nil {
			return nil, err
		}
	}
	if req.QuantityPerBox != nil && req.BoxPrice != nil {
		if err := product.SetBoxTier(*req.QuantityPerBox, *req.BoxPrice); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// ListLowStock retrieves products at or below their minimum stock level
func (s *ProductService) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update updates a product's descriptive and pricing fields
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}
	if err := product.Update(name, category); err != nil {
		return nil, err
	}

	unitPrice := product.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	minStock := product.MinStock
	if req.MinStock != nil {
		minStock = *req.MinStock
	}
	if err := product.SetPricing(unitPrice, minStock); err != nil {
		return nil, err
	}

	if req.ClearBoxTier {
		product.ClearBoxTier()
	} else if req.QuantityPerBox != nil && req.BoxPrice != nil {
		if err := product.SetBoxTier(*req.QuantityPerBox, *req.BoxPrice); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product. Products referenced by ledger history cannot be
// deleted; corrections happen through offsetting entries instead.
func (s *ProductService) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID); err != nil {
		return err
	}

	refs, err := s.entryRepo.CountByProduct(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return shared.ErrReferentialConflict
	}

	return s.productRepo.DeleteForTenant(ctx, tenantID, productID)
}
