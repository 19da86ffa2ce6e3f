package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/partner"
	"github.com/poslite/backend/internal/domain/shared"
)

// CustomerService handles customer maintenance and account reporting.
// Balance mutations never happen here; they are side effects of ledger
// entries applied by the trade services.
type CustomerService struct {
	customerRepo     partner.CustomerRepository
	entryRepo        ledger.EntryRepository
	paymentTermsDays int
}

// NewCustomerService creates a new CustomerService. paymentTermsDays is the
// global credit window applied to customers without a settlement day.
func NewCustomerService(customerRepo partner.CustomerRepository, entryRepo ledger.EntryRepository, paymentTermsDays int) *CustomerService {
	return &CustomerService{
		customerRepo:     customerRepo,
		entryRepo:        entryRepo,
		paymentTermsDays: paymentTermsDays,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.Name, req.Phone, req.Notes); err != nil {
		return nil, err
	}
	if err := customer.SetSettlementDay(req.SettlementDay); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}

	customers, err := s.customerRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToCustomerResponses(customers), total, nil
}

// Update updates a customer's contact details and settlement day
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	if req.Name != nil {
		name = *req.Name
	}
	phone := customer.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	notes := customer.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := customer.Update(name, phone, notes); err != nil {
		return nil, err
	}

	if req.ClearSettlementDay {
		if err := customer.SetSettlementDay(nil); err != nil {
			return nil, err
		}
	} else if req.SettlementDay != nil {
		if err := customer.SetSettlementDay(req.SettlementDay); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Delete removes a customer. Customers referenced by ledger history cannot
// be deleted.
func (s *CustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID); err != nil {
		return err
	}

	refs, err := s.entryRepo.CountByCounterparty(ctx, tenantID, customerID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return shared.ErrReferentialConflict
	}

	return s.customerRepo.DeleteForTenant(ctx, tenantID, customerID)
}

// Statement reconstructs the customer's running account history from their
// current balance and entry history.
func (s *CustomerService) Statement(ctx context.Context, tenantID, customerID uuid.UUID) (*StatementResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.FindByCounterparty(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	stmt := ledger.BuildStatement(customer.Balance, entries)
	resp := ToStatementResponse(customerID, stmt)
	return &resp, nil
}

// ListDebtAlerts returns every customer whose oldest outstanding debt is
// due tomorrow, today, or already past due.
func (s *CustomerService) ListDebtAlerts(ctx context.Context, tenantID uuid.UUID) ([]DebtAlertResponse, error) {
	debtors, err := s.customerRepo.FindDebtors(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	alerts := make([]DebtAlertResponse, 0)
	for i := range debtors {
		customer := &debtors[i]
		entries, err := s.entryRepo.FindByCounterparty(ctx, tenantID, customer.ID)
		if err != nil {
			return nil, err
		}

		policy := ledger.AgingPolicy{
			PaymentTermsDays: s.paymentTermsDays,
			SettlementDay:    customer.SettlementDay,
		}
		alert := ledger.ResolveDebtAging(customer.Balance, entries, policy, today)
		if alert == nil {
			continue
		}
		alerts = append(alerts, DebtAlertResponse{
			CounterpartyID: customer.ID,
			Name:           customer.Name,
			Balance:        alert.Balance,
			OriginDate:     alert.OriginDate,
			DueDate:        alert.DueDate,
			DaysUntilDue:   alert.DaysUntilDue,
			Overdue:        alert.Overdue,
		})
	}
	return alerts, nil
}
