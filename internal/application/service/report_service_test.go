package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	"github.com/svergara/heladeria-api/internal/domain/repository"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"both zero", 0, 0, 0},
		{"previous zero, positive current", 50, 0, 100},
		{"previous zero, negative current", -50, 0, -100},
		{"drop to zero", 0, 80, -100},
		{"sixty percent drop", 40, 100, -60},
		{"doubling", 200, 100, 100},
		{"rounded to one decimal", 1, 3, -66.7},
		{"small growth", 103, 100, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentChange(tt.current, tt.previous))
		})
	}
}

func TestBuildDashboardOverall(t *testing.T) {
	today := date(2024, time.March, 15)

	analytics := &mockAnalyticsRepo{
		unitsAndRevenue: func(from, _ time.Time, _ repository.SalesFilter) (int64, int64, error) {
			// Current month sells less than the previous one
			if from.Equal(date(2024, time.March, 1)) {
				return 40, 200_00, nil
			}
			if from.Equal(date(2024, time.February, 1)) {
				return 100, 500_00, nil
			}
			return 500, 2500_00, nil
		},
		countSales: func(from, _ time.Time, _ repository.SalesFilter) (int64, error) {
			if from.Equal(date(2024, time.March, 1)) {
				return 10, nil
			}
			return 25, nil
		},
		countCustomers: func(_, _ time.Time, _ repository.SalesFilter) (int64, error) {
			return 8, nil
		},
		marginRevenue: func(_, _ time.Time, _ repository.SalesFilter) (int64, int64, error) {
			return 100_00, 35_00, nil
		},
		unitsByProduct: func(_, _ time.Time, _ repository.SalesFilter) ([]repository.ProductUnitsResult, error) {
			return []repository.ProductUnitsResult{
				{ProductID: uuid.New(), Name: "Pistacho", Units: 300},
				{ProductID: uuid.New(), Name: "Frutilla", Units: 150},
				{ProductID: uuid.New(), Name: "Limon", Units: 50},
			}, nil
		},
	}

	svc := NewReportService(analytics, newMockProductRepo())
	dashboard, err := svc.BuildDashboard(context.Background(), &ReportInput{
		Period: enum.ReportPeriodMonthly12,
		Status: enum.ReportStatusCompleted,
		Today:  today,
	})
	require.NoError(t, err)

	assert.Equal(t, "12months", dashboard.Period)
	assert.Equal(t, "COMPLETED", dashboard.StatusFilter)
	assert.Equal(t, "2023-04-01..2024-03-15", dashboard.Range)

	// Four overall cards when no products are selected
	require.Len(t, dashboard.Cards, 4)
	assert.Equal(t, "Unidades vendidas", dashboard.Cards[0].Label)
	assert.Equal(t, float64(40), dashboard.Cards[0].Value)
	assert.Equal(t, -60.0, dashboard.Cards[0].PercentChange)

	assert.Equal(t, "Ingresos", dashboard.Cards[2].Label)
	assert.True(t, dashboard.Cards[2].IsCurrency)
	assert.Equal(t, 200.0, dashboard.Cards[2].Value)
	assert.Equal(t, -60.0, dashboard.Cards[2].PercentChange)

	// Series and labels always line up, one point per bucket
	require.Len(t, dashboard.MarginTrend.Values, 12)
	assert.Equal(t, dashboard.MarginTrend.Labels, dashboard.OrdersTrend.Labels)
	assert.Len(t, dashboard.OrdersTrend.Values, 12)
	assert.Equal(t, 35.0, dashboard.MarginTrend.Values[0])

	require.Len(t, dashboard.TopProducts, 3)
	assert.Equal(t, "Pistacho", dashboard.TopProducts[0].Name)
	assert.Equal(t, "Pistacho", dashboard.KPIs.TopProduct)
	assert.Equal(t, int64(25), dashboard.KPIs.Orders)
	assert.InDelta(t, 100.0, dashboard.KPIs.AverageOrderValue, 0.001)
}

func TestBuildDashboardPerProductCards(t *testing.T) {
	ice := &entity.Product{ID: uuid.New(), Name: "Pistacho", Active: true}
	analytics := &mockAnalyticsRepo{
		unitsAndRevenue: func(_, _ time.Time, filter repository.SalesFilter) (int64, int64, error) {
			require.Len(t, filter.ProductIDs, 1)
			return 12, 60_00, nil
		},
	}

	svc := NewReportService(analytics, newMockProductRepo(ice))
	dashboard, err := svc.BuildDashboard(context.Background(), &ReportInput{
		Period:     enum.ReportPeriodDaily7,
		Status:     enum.ReportStatusBoth,
		ProductIDs: []uuid.UUID{ice.ID},
		Today:      date(2024, time.March, 15),
	})
	require.NoError(t, err)

	// A units card and a revenue card per selected product
	require.Len(t, dashboard.Cards, 2)
	assert.Equal(t, "Pistacho (unidades)", dashboard.Cards[0].Label)
	assert.False(t, dashboard.Cards[0].IsCurrency)
	assert.Equal(t, "Pistacho (ventas)", dashboard.Cards[1].Label)
	assert.True(t, dashboard.Cards[1].IsCurrency)
}

func TestBuildDashboardCapsProductSelection(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	var seen [][]uuid.UUID
	analytics := &mockAnalyticsRepo{
		unitsByProduct: func(_, _ time.Time, filter repository.SalesFilter) ([]repository.ProductUnitsResult, error) {
			seen = append(seen, filter.ProductIDs)
			return nil, nil
		},
	}

	svc := NewReportService(analytics, newMockProductRepo())
	_, err := svc.BuildDashboard(context.Background(), &ReportInput{
		Period:     enum.ReportPeriodDaily7,
		Status:     enum.ReportStatusCompleted,
		ProductIDs: ids,
		Today:      date(2024, time.March, 15),
	})
	require.NoError(t, err)

	// Only the first three ids reach the aggregates
	require.NotEmpty(t, seen)
	assert.Equal(t, ids[:3], seen[0])
}

func TestTopProductsTruncation(t *testing.T) {
	ranking := make([]repository.ProductUnitsResult, 8)
	for i := range ranking {
		ranking[i] = repository.ProductUnitsResult{Name: "p", Units: int64(100 - i)}
	}

	top := topProducts(ranking)
	require.Len(t, top, 5)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Units, top[i].Units)
	}

	assert.Len(t, topProducts(ranking[:2]), 2)
	assert.Empty(t, topProducts(nil))
}

func TestProductMixCollapsesSmallShares(t *testing.T) {
	ranking := []repository.ProductUnitsResult{
		{Name: "Pistacho", Units: 60},
		{Name: "Frutilla", Units: 30},
		{Name: "Limon", Units: 4},
		{Name: "Menta", Units: 3},
		{Name: "Mango", Units: 3},
	}

	mix := productMix(ranking)
	require.Len(t, mix, 3)
	assert.Equal(t, "Other", mix[2].Name)
	assert.Equal(t, int64(10), mix[2].Units)

	// Unit totals survive the collapse
	var total int64
	for _, entry := range mix {
		total += entry.Units
	}
	assert.Equal(t, int64(100), total)
}

func TestProductMixWithoutSmallShares(t *testing.T) {
	ranking := []repository.ProductUnitsResult{
		{Name: "Pistacho", Units: 60},
		{Name: "Frutilla", Units: 40},
	}

	mix := productMix(ranking)
	require.Len(t, mix, 2)
	for _, entry := range mix {
		assert.NotEqual(t, "Other", entry.Name)
	}
}
