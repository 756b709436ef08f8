package service

import (
	"fmt"
	"time"

	"github.com/svergara/heladeria-api/internal/domain/enum"
)

// DateRange is an inclusive span of calendar days
type DateRange struct {
	Start time.Time
	End   time.Time
}

// EndExclusive returns the first instant after the range, for half-open
// sale_date queries
func (r DateRange) EndExclusive() time.Time {
	return r.End.AddDate(0, 0, 1)
}

// Days returns the number of calendar days the range covers
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// ReportWindows holds every date range a report needs: the trend window with
// its buckets, the current/previous comparison pair, and the prior trend
// window for trend-level growth.
type ReportWindows struct {
	Trend      DateRange
	Current    DateRange
	Previous   DateRange
	PriorTrend DateRange
	Buckets    []DateRange
	Labels     []string
}

// ResolveWindows computes the report windows for a period selector. Bucket
// boundaries are calendar-aligned: month starts for monthly, Monday-start
// weeks for weekly, calendar days for daily. The last bucket is partial,
// ending at today; the previous comparison window is the last full bucket.
func ResolveWindows(period enum.ReportPeriod, today time.Time) ReportWindows {
	day := atMidnight(today)

	var starts []time.Time
	var labels []string
	count := period.BucketCount()

	switch period {
	case enum.ReportPeriodWeekly10:
		weekStart := startOfWeek(day)
		for i := count - 1; i >= 0; i-- {
			start := weekStart.AddDate(0, 0, -7*i)
			starts = append(starts, start)
			labels = append(labels, "Wk "+start.Format("02/01"))
		}
	case enum.ReportPeriodDaily7:
		for i := count - 1; i >= 0; i-- {
			start := day.AddDate(0, 0, -i)
			starts = append(starts, start)
			labels = append(labels, start.Format("02/01"))
		}
	default:
		for i := count - 1; i >= 0; i-- {
			// time.Date normalizes out-of-range months, so January minus
			// two is November of the prior year
			start := time.Date(day.Year(), day.Month()-time.Month(i), 1, 0, 0, 0, 0, day.Location())
			starts = append(starts, start)
			labels = append(labels, start.Format("Jan 2006"))
		}
	}

	buckets := make([]DateRange, len(starts))
	for i, start := range starts {
		end := day
		if i < len(starts)-1 {
			end = starts[i+1].AddDate(0, 0, -1)
		}
		buckets[i] = DateRange{Start: start, End: end}
	}

	last := len(buckets) - 1
	trend := DateRange{Start: buckets[0].Start, End: day}
	current := buckets[last]
	previous := buckets[last-1]

	priorEnd := trend.Start.AddDate(0, 0, -1)
	priorStart := trend.Start.AddDate(0, 0, -trend.Days())
	priorTrend := DateRange{Start: priorStart, End: priorEnd}

	return ReportWindows{
		Trend:      trend,
		Current:    current,
		Previous:   previous,
		PriorTrend: priorTrend,
		Buckets:    buckets,
		Labels:     labels,
	}
}

// atMidnight truncates a timestamp to the start of its calendar day
func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday of the day's week
func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// FormatRange renders a range for log and payload metadata
func FormatRange(r DateRange) string {
	return fmt.Sprintf("%s..%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}
