package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Summarizer turns an aggregated period summary into a short plain-language
// narrative. Implementations only ever see the aggregates, never individual
// transactions or counterparty names.
type Summarizer interface {
	Summarize(ctx context.Context, summary PeriodSummaryResponse) (string, error)
}

// SummaryService aggregates ledger activity into period reports
type SummaryService struct {
	entryRepo  ledger.EntryRepository
	summarizer Summarizer
	logger     *zap.Logger
	topLimit   int
}

// NewSummaryService creates a new SummaryService. summarizer may be nil;
// reports are then produced without a narrative.
func NewSummaryService(entryRepo ledger.EntryRepository, summarizer Summarizer, logger *zap.Logger) *SummaryService {
	return &SummaryService{
		entryRepo:  entryRepo,
		summarizer: summarizer,
		logger:     logger,
		topLimit:   5,
	}
}

// PeriodSummary aggregates all ledger entries in [from, to) into totals and
// a top-product ranking. A narrative is attached when a summarizer is
// configured; summarizer failures degrade to a report without one.
func (s *SummaryService) PeriodSummary(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*PeriodSummaryResponse, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Report period end must be after its start")
	}

	entries, err := s.entryRepo.FindByPeriod(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	summary := PeriodSummaryResponse{
		From:             from,
		To:               to,
		SalesTotal:       decimal.Zero,
		DiscountTotal:    decimal.Zero,
		PaymentsReceived: decimal.Zero,
		PurchasesTotal:   decimal.Zero,
		PaymentsMade:     decimal.Zero,
		CreditExtended:   decimal.Zero,
	}

	type productAgg struct {
		name     string
		quantity int64
		revenue  decimal.Decimal
	}
	byProduct := make(map[uuid.UUID]*productAgg)

	for i := range entries {
		entry := &entries[i]
		switch entry.Kind {
		case ledger.KindSale:
			summary.SalesCount++
			summary.SalesTotal = summary.SalesTotal.Add(entry.Totals.Total)
			summary.DiscountTotal = summary.DiscountTotal.Add(entry.Totals.Discount)
			if entry.Totals.BalanceDelta.IsPositive() {
				summary.CreditExtended = summary.CreditExtended.Add(entry.Totals.BalanceDelta)
			}
			for _, line := range entry.Lines {
				agg, ok := byProduct[line.ProductID]
				if !ok {
					agg = &productAgg{name: line.ProductName, revenue: decimal.Zero}
					byProduct[line.ProductID] = agg
				}
				agg.quantity += line.Quantity
				agg.revenue = agg.revenue.Add(line.LineTotal)
			}
		case ledger.KindCustomerPayment:
			summary.PaymentsReceived = summary.PaymentsReceived.Add(entry.Totals.AmountPaid)
		case ledger.KindPurchase:
			summary.PurchasesTotal = summary.PurchasesTotal.Add(entry.Totals.Total)
		case ledger.KindSupplierPayment:
			summary.PaymentsMade = summary.PaymentsMade.Add(entry.Totals.AmountPaid)
		}
	}

	top := make([]TopProductResponse, 0, len(byProduct))
	for id, agg := range byProduct {
		top = append(top, TopProductResponse{
			ProductID: id,
			Name:      agg.name,
			Quantity:  agg.quantity,
			Revenue:   agg.revenue,
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if !top[i].Revenue.Equal(top[j].Revenue) {
			return top[i].Revenue.GreaterThan(top[j].Revenue)
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > s.topLimit {
		top = top[:s.topLimit]
	}
	summary.TopProducts = top

	if s.summarizer != nil {
		narrative, err := s.summarizer.Summarize(ctx, summary)
		if err != nil {
			s.logger.Warn("report narrative unavailable", zap.Error(err))
		} else {
			summary.Narrative = narrative
		}
	}

	return &summary, nil
}
