package reports

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avellaneda-dev/storefront-backend/pkg/config"
	pkgerrors "github.com/avellaneda-dev/storefront-backend/pkg/errors"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
)

// test seam
var timeNowUTC = func() time.Time { return time.Now().UTC() }

// OrderReader exposes the order aggregates the dashboard needs.
type OrderReader interface {
	ListInRange(ctx context.Context, start *time.Time, end time.Time) ([]OrderRecord, error)
	AggregateTotals(ctx context.Context, start *time.Time, end time.Time) (*OrderTotals, error)
	EarliestOrderAt(ctx context.Context) (*time.Time, error)
}

// UserReader exposes customer counts and signup timestamps for the dashboard.
type UserReader interface {
	CountInRange(ctx context.Context, start *time.Time, end time.Time) (int64, error)
	ListSignupsInRange(ctx context.Context, start *time.Time, end time.Time) ([]time.Time, error)
	EarliestUserAt(ctx context.Context) (*time.Time, error)
}

// ProductReader exposes catalog counts for the dashboard.
type ProductReader interface {
	CountByAvailability(ctx context.Context) (active int64, inactive int64, err error)
}

// Service assembles admin dashboard payloads. All money math stays in
// integer cents until formatting.
type Service struct {
	orders   OrderReader
	users    UserReader
	products ProductReader
	cfg      config.ReportsConfig
	logg     *logger.Logger
}

// NewService validates dependencies and builds the reporting service.
func NewService(orders OrderReader, users UserReader, products ProductReader, cfg config.ReportsConfig, logg *logger.Logger) (*Service, error) {
	if orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order reader is required")
	}
	if users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user reader is required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product reader is required")
	}
	return &Service{
		orders:   orders,
		users:    users,
		products: products,
		cfg:      cfg,
		logg:     logg,
	}, nil
}

// Summary builds the scalar dashboard cards for the requested window.
func (s *Service) Summary(ctx context.Context, params RangeParams) (*DashboardSummary, error) {
	ctx, cancel := s.boundQuery(ctx)
	defer cancel()

	window := ResolveRange(params, timeNowUTC(), s.cfg.Location())

	totals, err := s.orders.AggregateTotals(ctx, window.Start, window.End)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate orders")
	}

	userCount, err := s.users.CountInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}

	active, inactive, err := s.products.CountByAvailability(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}

	avgCents := int64(0)
	if userCount > 0 {
		avgCents = totals.TotalCents / userCount
	}

	return &DashboardSummary{
		Range: s.rangeInfo(window),
		Sales: SalesCard{
			TotalAmount: formatCents(totals.TotalCents),
			OrderCount:  totals.OrderCount,
		},
		Customers: CustomersCard{
			UserCount:           userCount,
			AverageValuePerUser: formatCents(avgCents),
		},
		Products: ProductsCard{
			ActiveCount:   active,
			InactiveCount: inactive,
		},
	}, nil
}

// Charts builds the zero-filled daily sales and signup series plus the
// revenue-by-product breakdown for the requested window.
func (s *Service) Charts(ctx context.Context, params RangeParams) (*DashboardCharts, error) {
	ctx, cancel := s.boundQuery(ctx)
	defer cancel()

	window := ResolveRange(params, timeNowUTC(), s.cfg.Location())

	records, err := s.orders.ListInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	signups, err := s.users.ListSignupsInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list signups")
	}

	start, err := s.effectiveStart(ctx, window)
	if err != nil {
		return nil, err
	}

	loc := s.cfg.Location()
	buckets := BuildDayBuckets(start.In(loc), window.End.In(loc))
	for _, record := range records {
		buckets.Add(record.CreatedAt.In(loc), record.AmountCents)
	}

	daily := make([]DailySalesPoint, 0, buckets.Len())
	for _, bucket := range buckets.Buckets {
		daily = append(daily, DailySalesPoint{
			Date:       bucket.Date,
			Amount:     formatCents(bucket.TotalCents),
			OrderCount: bucket.OrderCount,
		})
	}

	signupBuckets := BuildDayBuckets(start.In(loc), window.End.In(loc))
	for _, at := range signups {
		signupBuckets.Add(at.In(loc), 0)
	}

	dailySignups := make([]DailySignupsPoint, 0, signupBuckets.Len())
	for _, bucket := range signupBuckets.Buckets {
		dailySignups = append(dailySignups, DailySignupsPoint{
			Date:      bucket.Date,
			UserCount: bucket.OrderCount,
		})
	}

	return &DashboardCharts{
		Range:            s.rangeInfo(window),
		DailySales:       daily,
		DailySignups:     dailySignups,
		RevenueByProduct: revenueByProduct(records),
	}, nil
}

// effectiveStart pins an unbounded window to the earliest recorded activity
// so the chart does not stretch back forever. Falls back to today when the
// store has no history at all.
func (s *Service) effectiveStart(ctx context.Context, window Range) (time.Time, error) {
	if window.Start != nil {
		return *window.Start, nil
	}

	earliestOrder, err := s.orders.EarliestOrderAt(ctx)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "earliest order")
	}
	earliestUser, err := s.users.EarliestUserAt(ctx)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "earliest user")
	}

	candidates := []*time.Time{earliestOrder, earliestUser}
	var earliest *time.Time
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		if earliest == nil || candidate.Before(*earliest) {
			earliest = candidate
		}
	}
	if earliest == nil {
		return timeNowUTC().In(s.cfg.Location()), nil
	}
	return *earliest, nil
}

func revenueByProduct(records []OrderRecord) []ProductRevenuePoint {
	type acc struct {
		name  string
		cents int64
		count int64
	}
	byProduct := make(map[uuid.UUID]*acc)
	for _, record := range records {
		entry, ok := byProduct[record.ProductID]
		if !ok {
			entry = &acc{name: record.ProductName}
			byProduct[record.ProductID] = entry
		}
		entry.cents += record.AmountCents
		entry.count++
	}

	type entry struct {
		id  uuid.UUID
		acc *acc
	}
	entries := make([]entry, 0, len(byProduct))
	for id, a := range byProduct {
		if a.cents <= 0 {
			continue
		}
		entries = append(entries, entry{id: id, acc: a})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].acc.cents != entries[j].acc.cents {
			return entries[i].acc.cents > entries[j].acc.cents
		}
		return entries[i].acc.name < entries[j].acc.name
	})

	points := make([]ProductRevenuePoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, ProductRevenuePoint{
			ProductID:  e.id,
			Name:       e.acc.name,
			Revenue:    formatCents(e.acc.cents),
			OrderCount: e.acc.count,
		})
	}
	return points
}

func (s *Service) rangeInfo(window Range) RangeInfo {
	info := RangeInfo{
		Label: window.Label,
		End:   window.End.Format(bucketDateLayout),
	}
	if window.Start != nil {
		info.Start = window.Start.Format(bucketDateLayout)
	}
	return info
}

func (s *Service) boundQuery(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.QueryTimeout)
}

// formatCents renders integer cents as a major-unit decimal string.
func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
