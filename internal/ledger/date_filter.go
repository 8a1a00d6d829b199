package ledger

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/apperr"
)

type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// DateFilter bounds transaction creation time. From is inclusive. To is
// exclusive unless ToInclusive is set. A nil bound is open.
type DateFilter struct {
	From        *time.Time
	To          *time.Time
	ToInclusive bool
}

func (f DateFilter) IsZero() bool {
	return f.From == nil && f.To == nil
}

// Contains reports whether t falls inside the filter.
func (f DateFilter) Contains(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil {
		if f.ToInclusive {
			return !t.After(*f.To)
		}
		return t.Before(*f.To)
	}
	return true
}

// ResolveDateFilter turns an explicit day range or a rolling period into a
// DateFilter. An explicit from or to always wins over period. from and to are
// whole days: from starts at midnight and to covers its entire day.
func ResolveDateFilter(from, to *time.Time, period Period, now time.Time) DateFilter {
	if from != nil || to != nil {
		var filter DateFilter
		if from != nil {
			start := startOfDay(*from)
			filter.From = &start
		}
		if to != nil {
			end := startOfDay(*to).AddDate(0, 0, 1)
			filter.To = &end
		}
		return filter
	}

	var start time.Time
	switch period {
	case PeriodWeekly:
		start = now.AddDate(0, 0, -7)
	case PeriodMonthly:
		start = now.AddDate(0, -1, 0)
	case PeriodYearly:
		start = now.AddDate(-1, 0, 0)
	default:
		return DateFilter{}
	}
	end := now
	return DateFilter{From: &start, To: &end, ToInclusive: true}
}

// ParseDate reads a YYYY-MM-DD day in loc. RFC3339 timestamps are accepted
// and truncated to their day in loc. An empty value yields nil.
func ParseDate(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if day, err := time.ParseInLocation(time.DateOnly, value, loc); err == nil {
		return &day, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, apperr.Validation("invalid date %q, expected YYYY-MM-DD", value)
	}
	day := startOfDay(ts.In(loc))
	return &day, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
