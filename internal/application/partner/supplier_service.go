package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/partner"
	"github.com/poslite/backend/internal/domain/shared"
)

// SupplierService handles supplier maintenance and account reporting.
type SupplierService struct {
	supplierRepo     partner.SupplierRepository
	entryRepo        ledger.EntryRepository
	paymentTermsDays int
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, entryRepo ledger.EntryRepository, paymentTermsDays int) *SupplierService {
	return &SupplierService{
		supplierRepo:     supplierRepo,
		entryRepo:        entryRepo,
		paymentTermsDays: paymentTermsDays,
	}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, req.Phone, req.Notes); err != nil {
		return nil, err
	}
	if err := supplier.SetSettlementDay(req.SettlementDay); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, tenantID, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SupplierResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}

	suppliers, err := s.supplierRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToSupplierResponses(suppliers), total, nil
}

// Update updates a supplier's contact details and settlement day
func (s *SupplierService) Update(ctx context.Context, tenantID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	name := supplier.Name
	if req.Name != nil {
		name = *req.Name
	}
	phone := supplier.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	notes := supplier.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := supplier.Update(name, phone, notes); err != nil {
		return nil, err
	}

	if req.ClearSettlementDay {
		if err := supplier.SetSettlementDay(nil); err != nil {
			return nil, err
		}
	} else if req.SettlementDay != nil {
		if err := supplier.SetSettlementDay(req.SettlementDay); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Delete removes a supplier. Suppliers referenced by ledger history cannot
// be deleted.
func (s *SupplierService) Delete(ctx context.Context, tenantID, supplierID uuid.UUID) error {
	if _, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID); err != nil {
		return err
	}

	refs, err := s.entryRepo.CountByCounterparty(ctx, tenantID, supplierID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return shared.ErrReferentialConflict
	}

	return s.supplierRepo.DeleteForTenant(ctx, tenantID, supplierID)
}

// Statement reconstructs the supplier's running account history from their
// current balance and entry history.
func (s *SupplierService) Statement(ctx context.Context, tenantID, supplierID uuid.UUID) (*StatementResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.FindByCounterparty(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	stmt := ledger.BuildStatement(supplier.Balance, entries)
	resp := ToStatementResponse(supplierID, stmt)
	return &resp, nil
}

// ListDebtAlerts returns every supplier whose oldest unpaid invoice falls
// due tomorrow, today, or is already past due.
func (s *SupplierService) ListDebtAlerts(ctx context.Context, tenantID uuid.UUID) ([]DebtAlertResponse, error) {
	debtors, err := s.supplierRepo.FindDebtors(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	alerts := make([]DebtAlertResponse, 0)
	for i := range debtors {
		supplier := &debtors[i]
		entries, err := s.entryRepo.FindByCounterparty(ctx, tenantID, supplier.ID)
		if err != nil {
			return nil, err
		}

		policy := ledger.AgingPolicy{
			PaymentTermsDays: s.paymentTermsDays,
			SettlementDay:    supplier.SettlementDay,
		}
		alert := ledger.ResolveDebtAging(supplier.Balance, entries, policy, today)
		if alert == nil {
			continue
		}
		alerts = append(alerts, DebtAlertResponse{
			CounterpartyID: supplier.ID,
			Name:           supplier.Name,
			Balance:        alert.Balance,
			OriginDate:     alert.OriginDate,
			DueDate:        alert.DueDate,
			DaysUntilDue:   alert.DaysUntilDue,
			Overdue:        alert.Overdue,
		})
	}
	return alerts, nil
}
