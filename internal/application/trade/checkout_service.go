package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/catalog"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/partner"
	"github.com/poslite/backend/internal/domain/shared"
)

// CheckoutService records sales and customer payments. Each operation loads
// current snapshots, asks the ledger planner for a mutation group, and
// commits the whole group through one UnitOfWork. Nothing is written when
// planning fails.
type CheckoutService struct {
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	uowFactory     shared.UnitOfWorkFactory
	eventPublisher shared.EventPublisher
	idempotency    shared.IdempotencyStore
	idempotencyCfg shared.IdempotencyConfig
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(productRepo catalog.ProductRepository, customerRepo partner.CustomerRepository, uowFactory shared.UnitOfWorkFactory) *CheckoutService {
	return &CheckoutService{
		productRepo:    productRepo,
		customerRepo:   customerRepo,
		uowFactory:     uowFactory,
		eventPublisher: shared.NoopEventPublisher{},
		idempotencyCfg: shared.DefaultIdempotencyConfig(),
	}
}

// SetEventPublisher sets the publisher notified after commits
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIdempotencyStore enables duplicate-request protection for checkouts
func (s *CheckoutService) SetIdempotencyStore(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) {
	s.idempotency = store
	s.idempotencyCfg = cfg
}

// RecordSale records a sale. Cash sales have no customer; account sales
// advance the customer's balance by the unpaid remainder.
func (s *CheckoutService) RecordSale(ctx context.Context, tenantID uuid.UUID, req CheckoutRequest) (*EntryResponse, error) {
	if err := s.reserveKey(ctx, tenantID, "sale", req.IdempotencyKey); err != nil {
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

	var customer *partner.Customer
	if req.CustomerID != nil {
		customer, err = s.customerRepo.FindByIDForTenant(ctx, tenantID, *req.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	lines := make([]ledger.SaleLineInput, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = ledger.SaleLineInput{ProductID: line.ProductID, Quantity: line.Quantity}
	}

	plan, err := ledger.PlanSale(tenantID, products, customer, ledger.SaleInput{
		Lines:      lines,
		Discount:   req.Discount,
		AmountPaid: req.AmountPaid,
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
	if plan.Customer != nil {
		uow.RegisterDirty(plan.Customer)
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, plan.Entry)

	resp := ToEntryResponse(plan.Entry)
	return &resp, nil
}

// RecordCustomerPayment records money received from a customer against
// their outstanding balance. Overpayment is allowed and leaves the customer
// in credit.
func (s *CheckoutService) RecordCustomerPayment(ctx context.Context, tenantID, customerID uuid.UUID, req PaymentRequest) (*EntryResponse, error) {
	if err := s.reserveKey(ctx, tenantID, "customer-payment", req.IdempotencyKey); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	plan, err := ledger.PlanCustomerPayment(tenantID, customer, req.Amount, req.OccurredAt)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	uow.RegisterNew(plan.Entry)
	uow.RegisterDirty(plan.Customer)
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, plan.Entry)

	resp := ToEntryResponse(plan.Entry)
	return &resp, nil
}

func (s *CheckoutService) reserveKey(ctx context.Context, tenantID uuid.UUID, op, key string) error {
	if s.idempotency == nil || !s.idempotencyCfg.Enabled || key == "" {
		return nil
	}
	scoped := fmt.Sprintf("%s:%s:%s", tenantID, op, key)
	fresh, err := s.idempotency.MarkProcessed(ctx, scoped, s.idempotencyCfg.TTL)
	if err != nil {
		return err
	}
	if !fresh {
		return shared.ErrDuplicateRequest
	}
	return nil
}

func (s *CheckoutService) publishEvents(ctx context.Context, entry *ledger.Entry) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, entry.GetDomainEvents()...)
	entry.ClearDomainEvents()
}
