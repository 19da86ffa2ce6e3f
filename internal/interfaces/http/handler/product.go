package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/poslite/backend/internal/application/catalog"
	"github.com/poslite/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest is the request body for creating a product
type CreateProductRequest struct {
	Code           string  `json:"code" binding:"required,min=1,max=50"`
	Name           string  `json:"name" binding:"required,min=1,max=200"`
	Category       string  `json:"category" binding:"max=100"`
	UnitPrice      string  `json:"unit_price" binding:"required"`
	PurchasePrice  string  `json:"purchase_price"`
	MinStock       int64   `json:"min_stock" binding:"min=0"`
	QuantityPerBox *int64  `json:"quantity_per_box" binding:"omitempty,min=2"`
	BoxPrice       *string `json:"box_price"`
}

// UpdateProductRequest is the request body for updating a product
type UpdateProductRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1,max=200"`
	Category       *string `json:"category" binding:"omitempty,max=100"`
	UnitPrice      *string `json:"unit_price"`
	MinStock       *int64  `json:"min_stock" binding:"omitempty,min=0"`
	QuantityPerBox *int64  `json:"quantity_per_box" binding:"omitempty,min=2"`
	BoxPrice       *string `json:"box_price"`
	ClearBoxTier   bool    `json:"clear_box_tier"`
}

// Create handles POST /catalog/products
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unitPrice, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		h.BadRequest(c, "Invalid unit_price")
		return
	}
	purchasePrice := decimal.Zero
	if req.PurchasePrice != "" {
		if purchasePrice, err = decimal.NewFromString(req.PurchasePrice); err != nil {
			h.BadRequest(c, "Invalid purchase_price")
			return
		}
	}

	appReq := catalogapp.CreateProductRequest{
		Code:           req.Code,
		Name:           req.Name,
		Category:       req.Category,
		UnitPrice:      unitPrice,
		PurchasePrice:  purchasePrice,
		MinStock:       req.MinStock,
		QuantityPerBox: req.QuantityPerBox,
	}
	if req.BoxPrice != nil {
		boxPrice, err := decimal.NewFromString(*req.BoxPrice)
		if err != nil {
			h.BadRequest(c, "Invalid box_price")
			return
		}
		appReq.BoxPrice = &boxPrice
	}

	product, err := h.productService.Create(c.Request.Context(), tenantID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID handles GET /catalog/products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// List handles GET /catalog/products
func (h *ProductHandler) List(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toFilter(req)
	products, total, err := h.productService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// ListLowStock handles GET /catalog/products/low-stock
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}

	products, err := h.productService.ListLowStock(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, products)
}

// Update handles PUT /catalog/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := catalogapp.UpdateProductRequest{
		Name:           req.Name,
		Category:       req.Category,
		MinStock:       req.MinStock,
		QuantityPerBox: req.QuantityPerBox,
		ClearBoxTier:   req.ClearBoxTier,
	}
	if req.UnitPrice != nil {
		unitPrice, err := decimal.NewFromString(*req.UnitPrice)
		if err != nil {
			h.BadRequest(c, "Invalid unit_price")
			return
		}
		appReq.UnitPrice = &unitPrice
	}
	if req.BoxPrice != nil {
		boxPrice, err := decimal.NewFromString(*req.BoxPrice)
		if err != nil {
			h.BadRequest(c, "Invalid box_price")
			return
		}
		appReq.BoxPrice = &boxPrice
	}

	product, err := h.productService.Update(c.Request.Context(), tenantID, productID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete handles DELETE /catalog/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), tenantID, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
