package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	"github.com/svergara/heladeria-api/internal/domain/repository"
)

// maxReportProducts caps the product subset a report accepts. Ids beyond the
// cap are silently dropped. Kept for compatibility with the previous system;
// callers supplying more ids get no signal that the extras were ignored.
const maxReportProducts = 3

// topProductCount is how many products the ranking lists
const topProductCount = 5

// mixOtherThreshold is the share of total units below which a product is
// collapsed into the "Other" mix bucket
const mixOtherThreshold = 0.05

// ReportService computes dashboard metrics over the sales ledger
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
}

// NewReportService creates a new report service
func NewReportService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
) *ReportService {
	return &ReportService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
	}
}

// ReportInput selects what a dashboard report covers
type ReportInput struct {
	Period     enum.ReportPeriod
	Status     enum.ReportStatusFilter
	ProductIDs []uuid.UUID
	Today      time.Time
}

// Card is one headline metric with its period-over-period change
type Card struct {
	Label         string  `json:"label"`
	Value         float64 `json:"value"`
	IsCurrency    bool    `json:"is_currency"`
	PercentChange float64 `json:"percent_change"`
}

// TrendSeries is a chronological per-bucket series
type TrendSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// RankedProduct is one entry in the top-products ranking
type RankedProduct struct {
	Name  string `json:"name"`
	Units int64  `json:"units"`
}

// MixEntry is one slice of the product-mix breakdown
type MixEntry struct {
	Name  string `json:"name"`
	Units int64  `json:"units"`
}

// Dashboard is the full report payload
type Dashboard struct {
	Period       string          `json:"period"`
	StatusFilter string          `json:"status_filter"`
	Range        string          `json:"range"`
	Cards        []Card          `json:"cards"`
	MarginTrend  TrendSeries     `json:"margin_trend"`
	OrdersTrend  TrendSeries     `json:"orders_trend"`
	TopProducts  []RankedProduct `json:"top_products"`
	ProductMix   []MixEntry      `json:"product_mix"`
	KPIs         DashboardKPIs   `json:"kpis"`
}

// DashboardKPIs are the scalar figures below the charts
type DashboardKPIs struct {
	Orders            int64   `json:"orders"`
	OrderGrowth       float64 `json:"order_growth"`
	AverageOrderValue float64 `json:"average_order_value"`
	TopProduct        string  `json:"top_product"`
}

// PercentChange returns the period-over-period change as a percentage rounded
// to one decimal. Both values zero yields 0; a zero previous with a nonzero
// current yields +100 or -100 matching the sign of current, so new activity
// shows as a full swing instead of dividing by zero.
func PercentChange(current, previous float64) float64 {
	if current == 0 && previous == 0 {
		return 0
	}
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return -100
	}
	return math.Round((current-previous)/previous*100*10) / 10
}

// BuildDashboard computes the full report payload. Aggregate queries run
// sequentially with no shared transaction; two queries in the same report may
// observe different data if a write lands between them.
func (s *ReportService) BuildDashboard(ctx context.Context, input *ReportInput) (*Dashboard, error) {
	today := input.Today
	if today.IsZero() {
		today = time.Now()
	}
	windows := ResolveWindows(input.Period, today)

	productIDs := input.ProductIDs
	if len(productIDs) > maxReportProducts {
		productIDs = productIDs[:maxReportProducts]
	}
	filter := repository.SalesFilter{
		Statuses:   input.Status.Statuses(),
		ProductIDs: productIDs,
	}

	dashboard := &Dashboard{
		Period:       input.Period.String(),
		StatusFilter: input.Status.String(),
		Range:        FormatRange(windows.Trend),
	}

	cards, err := s.buildCards(ctx, windows, filter)
	if err != nil {
		return nil, err
	}
	dashboard.Cards = cards

	marginTrend, ordersTrend, err := s.buildTrends(ctx, windows, filter)
	if err != nil {
		return nil, err
	}
	dashboard.MarginTrend = marginTrend
	dashboard.OrdersTrend = ordersTrend

	ranking, err := s.analyticsRepo.UnitsByProduct(ctx, windows.Trend.Start, windows.Trend.EndExclusive(), filter)
	if err != nil {
		return nil, err
	}
	dashboard.TopProducts = topProducts(ranking)
	dashboard.ProductMix = productMix(ranking)

	kpis, err := s.buildKPIs(ctx, windows, filter, dashboard.TopProducts)
	if err != nil {
		return nil, err
	}
	dashboard.KPIs = kpis

	return dashboard, nil
}

// buildCards returns per-product units and revenue cards when the report is
// scoped to products, or the four overall cards otherwise. Each card compares
// the current partial bucket against the previous full bucket.
func (s *ReportService) buildCards(ctx context.Context, windows ReportWindows, filter repository.SalesFilter) ([]Card, error) {
	cur := windows.Current
	prev := windows.Previous

	if len(filter.ProductIDs) > 0 {
		// Requested ids with no matching product are skipped
		products, err := s.productRepo.GetByIDs(ctx, filter.ProductIDs)
		if err != nil {
			return nil, err
		}

		cards := make([]Card, 0, len(products)*2)
		for i := range products {
			single := repository.SalesFilter{
				Statuses:   filter.Statuses,
				ProductIDs: []uuid.UUID{products[i].ID},
			}

			curUnits, curRevenue, err := s.analyticsRepo.UnitsAndRevenue(ctx, cur.Start, cur.EndExclusive(), single)
			if err != nil {
				return nil, err
			}
			prevUnits, prevRevenue, err := s.analyticsRepo.UnitsAndRevenue(ctx, prev.Start, prev.EndExclusive(), single)
			if err != nil {
				return nil, err
			}

			cards = append(cards,
				Card{
					Label:         products[i].Name + " (unidades)",
					Value:         float64(curUnits),
					PercentChange: PercentChange(float64(curUnits), float64(prevUnits)),
				},
				Card{
					Label:         products[i].Name + " (ventas)",
					Value:         float64(curRevenue) / 100,
					IsCurrency:    true,
					PercentChange: PercentChange(float64(curRevenue), float64(prevRevenue)),
				},
			)
		}
		return cards, nil
	}

	curUnits, curRevenue, err := s.analyticsRepo.UnitsAndRevenue(ctx, cur.Start, cur.EndExclusive(), filter)
	if err != nil {
		return nil, err
	}
	prevUnits, prevRevenue, err := s.analyticsRepo.UnitsAndRevenue(ctx, prev.Start, prev.EndExclusive(), filter)
	if err != nil {
		return nil, err
	}

	curOrders, err := s.analyticsRepo.CountSales(ctx, cur.Start, cur.EndExclusive(), filter)
	if err != nil {
		return nil, err
	}
	prevOrders, err := s.analyticsRepo.CountSales(ctx, prev.Start, prev.EndExclusive(), filter)
	if err != nil {
		return nil, err
	}

	curCustomers, err := s.analyticsRepo.CountDistinctCustomers(ctx, cur.Start, cur.EndExclusive(), filter)
	if err != nil {
		return nil, err
	}
	prevCustomers, err := s.analyticsRepo.CountDistinctCustomers(ctx, prev.Start, prev.EndExclusive(), filter)
	if err != nil {
		return nil, err
	}

	return []Card{
		{
			Label:         "Unidades vendidas",
			Value:         float64(curUnits),
			PercentChange: PercentChange(float64(curUnits), float64(prevUnits)),
		},
		{
			Label:         "Ventas",
			Value:         float64(curOrders),
			PercentChange: PercentChange(float64(curOrders), float64(prevOrders)),
		},
		{
			Label:         "Ingresos",
			Value:         float64(curRevenue) / 100,
			IsCurrency:    true,
			PercentChange: PercentChange(float64(curRevenue), float64(prevRevenue)),
		},
		{
			Label:         "Clientes",
			Value:         float64(curCustomers),
			PercentChange: PercentChange(float64(curCustomers), float64(prevCustomers)),
		},
	}, nil
}

// buildTrends computes the per-bucket margin and order-count series. Margin
// only counts lines carrying both price and cost snapshots; a line missing
// either is excluded, not treated as zero.
func (s *ReportService) buildTrends(ctx context.Context, windows ReportWindows, filter repository.SalesFilter) (TrendSeries, TrendSeries, error) {
	marginValues := make([]float64, 0, len(windows.Buckets))
	orderValues := make([]float64, 0, len(windows.Buckets))

	for _, bucket := range windows.Buckets {
		_, margin, err := s.analyticsRepo.MarginRevenue(ctx, bucket.Start, bucket.EndExclusive(), filter)
		if err != nil {
			return TrendSeries{}, TrendSeries{}, err
		}
		marginValues = append(marginValues, float64(margin)/100)

		orders, err := s.analyticsRepo.CountSales(ctx, bucket.Start, bucket.EndExclusive(), filter)
		if err != nil {
			return TrendSeries{}, TrendSeries{}, err
		}
		orderValues = append(orderValues, float64(orders))
	}

	marginTrend := TrendSeries{Labels: windows.Labels, Values: marginValues}
	ordersTrend := TrendSeries{Labels: windows.Labels, Values: orderValues}
	return marginTrend, ordersTrend, nil
}

func (s *ReportService) buildKPIs(ctx context.Context, windows ReportWindows, filter repository.SalesFilter, top []RankedProduct) (DashboardKPIs, error) {
	orders, err := s.analyticsRepo.CountSales(ctx, windows.Trend.Start, windows.Trend.EndExclusive(), filter)
	if err != nil {
		return DashboardKPIs{}, err
	}
	priorOrders, err := s.analyticsRepo.CountSales(ctx, windows.PriorTrend.Start, windows.PriorTrend.EndExclusive(), filter)
	if err != nil {
		return DashboardKPIs{}, err
	}

	_, revenue, err := s.analyticsRepo.UnitsAndRevenue(ctx, windows.Trend.Start, windows.Trend.EndExclusive(), filter)
	if err != nil {
		return DashboardKPIs{}, err
	}

	kpis := DashboardKPIs{
		Orders:      orders,
		OrderGrowth: PercentChange(float64(orders), float64(priorOrders)),
		TopProduct:  "N/A",
	}
	if orders > 0 {
		kpis.AverageOrderValue = float64(revenue) / 100 / float64(orders)
	}
	if len(top) > 0 {
		kpis.TopProduct = top[0].Name
	}
	return kpis, nil
}

// topProducts truncates the ranking to the top N. The repository orders by
// units descending with product id ascending as the tie-break.
func topProducts(ranking []repository.ProductUnitsResult) []RankedProduct {
	limit := topProductCount
	if len(ranking) < limit {
		limit = len(ranking)
	}

	top := make([]RankedProduct, 0, limit)
	for _, row := range ranking[:limit] {
		top = append(top, RankedProduct{Name: row.Name, Units: row.Units})
	}
	return top
}

// productMix collapses products below the share threshold into a single
// "Other" entry. When nothing falls below the threshold no "Other" entry
// appears.
func productMix(ranking []repository.ProductUnitsResult) []MixEntry {
	var totalUnits int64
	for _, row := range ranking {
		totalUnits += row.Units
	}

	mix := make([]MixEntry, 0, len(ranking))
	var otherUnits int64
	collapsed := false

	for _, row := range ranking {
		if totalUnits > 0 && float64(row.Units)/float64(totalUnits) < mixOtherThreshold {
			otherUnits += row.Units
			collapsed = true
			continue
		}
		mix = append(mix, MixEntry{Name: row.Name, Units: row.Units})
	}

	if collapsed {
		mix = append(mix, MixEntry{Name: "Other", Units: otherUnits})
	}
	return mix
}
