package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svergara/heladeria-api/internal/domain/enum"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveWindowsMonthly(t *testing.T) {
	// 2024 is a leap year: February runs through the 29th
	today := date(2024, time.March, 15)
	windows := ResolveWindows(enum.ReportPeriodMonthly12, today)

	require.Len(t, windows.Buckets, 12)
	require.Len(t, windows.Labels, 12)

	// Current bucket is the partial month ending today
	assert.Equal(t, date(2024, time.March, 1), windows.Current.Start)
	assert.Equal(t, today, windows.Current.End)

	// Previous bucket is the last full month, leap day included
	assert.Equal(t, date(2024, time.February, 1), windows.Previous.Start)
	assert.Equal(t, date(2024, time.February, 29), windows.Previous.End)

	// First bucket is twelve month-starts back
	assert.Equal(t, date(2023, time.April, 1), windows.Buckets[0].Start)
	assert.Equal(t, "Apr 2023", windows.Labels[0])
	assert.Equal(t, "Mar 2024", windows.Labels[11])

	// Trend spans the whole bucket range
	assert.Equal(t, windows.Buckets[0].Start, windows.Trend.Start)
	assert.Equal(t, today, windows.Trend.End)
}

func TestResolveWindowsWeekly(t *testing.T) {
	// 2024-03-15 is a Friday; its week starts Monday 2024-03-11
	today := date(2024, time.March, 15)
	windows := ResolveWindows(enum.ReportPeriodWeekly10, today)

	require.Len(t, windows.Buckets, 10)

	assert.Equal(t, date(2024, time.March, 11), windows.Current.Start)
	assert.Equal(t, today, windows.Current.End)

	// Previous week is full, Monday through Sunday
	assert.Equal(t, date(2024, time.March, 4), windows.Previous.Start)
	assert.Equal(t, date(2024, time.March, 10), windows.Previous.End)

	for _, bucket := range windows.Buckets {
		assert.Equal(t, time.Monday, bucket.Start.Weekday())
	}
}

func TestResolveWindowsWeeklyOnMonday(t *testing.T) {
	// Today itself is a Monday; the current bucket is a single day
	today := date(2024, time.March, 11)
	windows := ResolveWindows(enum.ReportPeriodWeekly10, today)

	assert.Equal(t, today, windows.Current.Start)
	assert.Equal(t, today, windows.Current.End)
	assert.Equal(t, 1, windows.Current.Days())
}

func TestResolveWindowsDaily(t *testing.T) {
	today := date(2024, time.March, 15)
	windows := ResolveWindows(enum.ReportPeriodDaily7, today)

	require.Len(t, windows.Buckets, 7)

	assert.Equal(t, today, windows.Current.Start)
	assert.Equal(t, today, windows.Current.End)
	assert.Equal(t, date(2024, time.March, 14), windows.Previous.Start)
	assert.Equal(t, date(2024, time.March, 9), windows.Buckets[0].Start)

	// Every bucket covers exactly one day
	for _, bucket := range windows.Buckets {
		assert.Equal(t, 1, bucket.Days())
	}
}

func TestResolveWindowsBucketsAreContiguous(t *testing.T) {
	today := date(2024, time.March, 15)

	for _, period := range []enum.ReportPeriod{
		enum.ReportPeriodMonthly12,
		enum.ReportPeriodWeekly10,
		enum.ReportPeriodDaily7,
	} {
		windows := ResolveWindows(period, today)
		for i := 1; i < len(windows.Buckets); i++ {
			prev := windows.Buckets[i-1]
			cur := windows.Buckets[i]
			assert.Equal(t, prev.End.AddDate(0, 0, 1), cur.Start,
				"bucket %d of %s does not start right after its predecessor", i, period)
		}
	}
}

func TestResolveWindowsPriorTrend(t *testing.T) {
	today := date(2024, time.March, 15)
	windows := ResolveWindows(enum.ReportPeriodDaily7, today)

	// Prior trend is the equal-length window ending the day before the trend
	assert.Equal(t, windows.Trend.Days(), windows.PriorTrend.Days())
	assert.Equal(t, windows.Trend.Start.AddDate(0, 0, -1), windows.PriorTrend.End)
}

func TestDateRangeEndExclusive(t *testing.T) {
	r := DateRange{Start: date(2024, time.February, 1), End: date(2024, time.February, 29)}
	assert.Equal(t, date(2024, time.March, 1), r.EndExclusive())
	assert.Equal(t, 29, r.Days())
}
