package enum

// ReportPeriod selects the trend window granularity for sales reports
type ReportPeriod int

const (
	ReportPeriodMonthly12 ReportPeriod = 0
	ReportPeriodWeekly10  ReportPeriod = 1
	ReportPeriodDaily7    ReportPeriod = 2
)

func (p ReportPeriod) String() string {
	switch p {
	case ReportPeriodWeekly10:
		return "10weeks"
	case ReportPeriodDaily7:
		return "7days"
	}
	return "12months"
}

// BucketCount returns how many trend buckets the period produces
func (p ReportPeriod) BucketCount() int {
	switch p {
	case ReportPeriodWeekly10:
		return 10
	case ReportPeriodDaily7:
		return 7
	}
	return 12
}

// ParseReportPeriod converts a period selector into a ReportPeriod.
// Unrecognized input falls back to the monthly default.
func ParseReportPeriod(value string) ReportPeriod {
	switch value {
	case "10weeks":
		return ReportPeriodWeekly10
	case "7days":
		return ReportPeriodDaily7
	}
	return ReportPeriodMonthly12
}

// ReportStatusFilter selects which sale statuses feed report aggregates
type ReportStatusFilter int

const (
	ReportStatusCompleted ReportStatusFilter = 0
	ReportStatusPending   ReportStatusFilter = 1
	ReportStatusBoth      ReportStatusFilter = 2
	ReportStatusCancelled ReportStatusFilter = 3
)

func (f ReportStatusFilter) String() string {
	switch f {
	case ReportStatusPending:
		return "PENDING"
	case ReportStatusBoth:
		return "BOTH"
	case ReportStatusCancelled:
		return "CANCELLED"
	}
	return "COMPLETED"
}

// Statuses expands the filter into the sale statuses it covers.
// CANCELLED sales only appear when explicitly requested.
func (f ReportStatusFilter) Statuses() []SaleStatus {
	switch f {
	case ReportStatusPending:
		return []SaleStatus{SaleStatusPending}
	case ReportStatusBoth:
		return []SaleStatus{SaleStatusCompleted, SaleStatusPending}
	case ReportStatusCancelled:
		return []SaleStatus{SaleStatusCancelled}
	}
	return []SaleStatus{SaleStatusCompleted}
}

// ParseReportStatusFilter converts a status selector into a filter.
// Unrecognized input falls back to COMPLETED.
func ParseReportStatusFilter(value string) ReportStatusFilter {
	switch value {
	case "PENDING":
		return ReportStatusPending
	case "BOTH":
		return ReportStatusBoth
	case "CANCELLED":
		return ReportStatusCancelled
	}
	return ReportStatusCompleted
}
