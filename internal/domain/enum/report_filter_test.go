package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReportPeriodFallsBackToMonthly(t *testing.T) {
	assert.Equal(t, ReportPeriodMonthly12, ParseReportPeriod(""))
	assert.Equal(t, ReportPeriodMonthly12, ParseReportPeriod("garbage"))
	assert.Equal(t, ReportPeriodWeekly10, ParseReportPeriod("10weeks"))
	assert.Equal(t, ReportPeriodDaily7, ParseReportPeriod("7days"))
	assert.Equal(t, ReportPeriodMonthly12, ParseReportPeriod("12months"))
}

func TestReportPeriodBucketCount(t *testing.T) {
	assert.Equal(t, 12, ReportPeriodMonthly12.BucketCount())
	assert.Equal(t, 10, ReportPeriodWeekly10.BucketCount())
	assert.Equal(t, 7, ReportPeriodDaily7.BucketCount())
}

func TestReportStatusFilterStatuses(t *testing.T) {
	assert.Equal(t, []SaleStatus{SaleStatusCompleted}, ReportStatusCompleted.Statuses())
	assert.Equal(t, []SaleStatus{SaleStatusPending}, ReportStatusPending.Statuses())
	assert.Equal(t, []SaleStatus{SaleStatusCompleted, SaleStatusPending}, ReportStatusBoth.Statuses())
	assert.Equal(t, []SaleStatus{SaleStatusCancelled}, ReportStatusCancelled.Statuses())

	// Cancelled sales never leak into another filter's expansion
	for _, f := range []ReportStatusFilter{ReportStatusCompleted, ReportStatusPending, ReportStatusBoth} {
		assert.NotContains(t, f.Statuses(), SaleStatusCancelled)
	}
}

func TestParseReportStatusFilterFallsBackToCompleted(t *testing.T) {
	assert.Equal(t, ReportStatusCompleted, ParseReportStatusFilter(""))
	assert.Equal(t, ReportStatusCompleted, ParseReportStatusFilter("completed"))
	assert.Equal(t, ReportStatusBoth, ParseReportStatusFilter("BOTH"))
	assert.Equal(t, ReportStatusCancelled, ParseReportStatusFilter("CANCELLED"))
}
