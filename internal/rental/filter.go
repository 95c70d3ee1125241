package rental

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// FilterRange keeps the rows of df whose day falls inside r (inclusive).
// df must carry the ColDay column built by DayFrame or HourFrame.
func FilterRange(df dataframe.DataFrame, r DateRange) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, df.Err
	}
	lo, hi := dayOrdinal(r.Start), dayOrdinal(r.End)

	out := df.Filter(dataframe.F{
		Colname:    ColDay,
		Comparator: series.CompFunc,
		Comparando: func(e series.Element) bool {
			d, err := e.Int()
			return err == nil && d >= lo && d <= hi
		},
	})
	if out.Err != nil {
		return out, fmt.Errorf("filter %s..%s: %w", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), out.Err)
	}
	return out, nil
}

// Bounds returns the earliest and latest date of the daily table.
// An empty table yields the zero range.
func Bounds(days []DayRecord) DateRange {
	if len(days) == 0 {
		return DateRange{}
	}
	lo, hi := days[0].Date, days[0].Date
	for _, d := range days[1:] {
		if d.Date.Before(lo) {
			lo = d.Date
		}
		if d.Date.After(hi) {
			hi = d.Date
		}
	}
	return NewDateRange(lo, hi)
}
