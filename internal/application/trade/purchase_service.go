package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/catalog"
	"github.com/poslite/backend/internal/domain/inventory"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/partner"
	"github.com/poslite/backend/internal/domain/shared"
)

// PurchaseService records supplier invoices and payments. Invoices restock
// and revalue products under the configured costing policy; the unpaid
// remainder becomes supplier debt.
type PurchaseService struct {
	productRepo    catalog.ProductRepository
	supplierRepo   partner.SupplierRepository
	uowFactory     shared.UnitOfWorkFactory
	eventPublisher shared.EventPublisher
	defaultPolicy  inventory.CostingPolicy
}

// NewPurchaseService creates a new PurchaseService. defaultPolicy applies
// to invoices that do not name a costing policy themselves.
func NewPurchaseService(productRepo catalog.ProductRepository, supplierRepo partner.SupplierRepository, uowFactory shared.UnitOfWorkFactory, defaultPolicy inventory.CostingPolicy) *PurchaseService {
	return &PurchaseService{
		productRepo:    productRepo,
		supplierRepo:   supplierRepo,
		uowFactory:     uowFactory,
		eventPublisher: shared.NoopEventPublisher{},
		defaultPolicy:  defaultPolicy,
	}
}

// SetEventPublisher sets the publisher notified after commits
func (s *PurchaseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordSupplierInvoice records a supplier invoice, restocking and
// revaluing the received products in the same atomic group as the entry.
func (s *PurchaseService) RecordSupplierInvoice(ctx context.Context, tenantID, supplierID uuid.UUID, req PurchaseRequest) (*EntryResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(req.Lines))
	for _, line := range req.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	policy := req.Policy
	if policy == "" {
		policy = s.defaultPolicy
	}

	lines := make([]inventory.ReceiptLine, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = inventory.ReceiptLine{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitCost:       line.UnitCost,
			QuantityPerBox: line.QuantityPerBox,
			BoxPrice:       line.BoxPrice,
		}
	}

	plan, err := ledger.PlanPurchase(tenantID, products, supplier, ledger.PurchaseInput{
		Lines:      lines,
		AmountPaid: req.AmountPaid,
		Policy:     policy,
		OccurredAt: req.OccurredAt,
	})
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	uow.RegisterNew(plan.Entry)
	for i := range plan.Products {
		uow.RegisterDirty(&plan.Products[i])
	}
	uow.RegisterDirty(plan.Supplier)
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, plan.Entry)

	resp := ToEntryResponse(plan.Entry)
	return &resp, nil
}

// RecordSupplierPayment records money paid to a supplier against the
// outstanding owed balance.
func (s *PurchaseService) RecordSupplierPayment(ctx context.Context, tenantID, supplierID uuid.UUID, req PaymentRequest) (*EntryResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, supplierID)
	if err != nil {
		return nil, err
	}

	plan, err := ledger.PlanSupplierPayment(tenantID, supplier, req.Amount, req.OccurredAt)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	uow.RegisterNew(plan.Entry)
	uow.RegisterDirty(plan.Supplier)
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, plan.Entry)

	resp := ToEntryResponse(plan.Entry)
	return &resp, nil
}

func (s *PurchaseService) publishEvents(ctx context.Context, entry *ledger.Entry) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, entry.GetDomainEvents()...)
	entry.ClearDomainEvents()
}
