package shared

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidTenant       = NewDomainError("INVALID_TENANT", "Tenant context is missing or invalid")
	ErrInvalidAmount       = NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrReferentialConflict = NewDomainError("REFERENTIAL_CONFLICT", "Resource is still referenced by ledger history")
	ErrDuplicateRequest    = NewDomainError("DUPLICATE_REQUEST", "Request with this idempotency key was already processed")
)

// InsufficientStockError is returned when a sale would drive a product's stock
// below zero. It identifies the offending product and the shortfall so the
// caller can surface an actionable message; the whole sale is rejected, never
// partially applied.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int64
	Available   int64
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// Code returns the stable error code for transport mapping
func (e *InsufficientStockError) Code() string {
	return "INSUFFICIENT_STOCK"
}

// Shortfall returns how many units the sale is short by
func (e *InsufficientStockError) Shortfall() int64 {
	return e.Requested - e.Available
}

// NewInsufficientStockError creates an InsufficientStockError for a product
func NewInsufficientStockError(productID uuid.UUID, name string, requested, available int64) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID:   productID,
		ProductName: name,
		Requested:   requested,
		Available:   available,
	}
}

// NegativeCostError guards the costing invariant that revaluation never
// produces a negative cost basis. Seeing it means the invoice input was
// malformed; nothing is persisted.
type NegativeCostError struct {
	ProductID uuid.UUID
	Cost      decimal.Decimal
}

// Error implements the error interface
func (e *NegativeCostError) Error() string {
	return fmt.Sprintf("revaluation produced negative cost %s for product %s", e.Cost, e.ProductID)
}

// Code returns the stable error code for transport mapping
func (e *NegativeCostError) Code() string {
	return "NEGATIVE_COST"
}

// ErrorCode extracts the stable code from any domain error, falling back to
// INTERNAL for unknown error types.
func ErrorCode(err error) string {
	switch e := err.(type) {
	case *DomainError:
		return e.Code
	case *InsufficientStockError:
		return e.Code()
	case *NegativeCostError:
		return e.Code()
	default:
		return "INTERNAL"
	}
}
