package rental

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/i474232898/bike-rental-dashboard/internal/common"
)

// HourTotal is the summed total rentals for one hour of the day.
type HourTotal struct {
	Hour      int   `json:"hour"`
	TotalRent int64 `json:"totalRent"`
}

// CategoryValue is one group of a single-key aggregation.
type CategoryValue struct {
	Category string `json:"category"`
	Value    int64  `json:"value"`
}

// DailyPoint is one point of the rentals-over-time series.
type DailyPoint struct {
	Date      time.Time `json:"date"`
	TotalRent int64     `json:"totalRent"`
}

// RFMRow groups hourly rows by their "registered" value.
// Recency is measured in whole days against the latest date of the filtered table.
type RFMRow struct {
	CustomerID string `json:"customerId"`
	Recency    int    `json:"recency"`
	Monetary   int64  `json:"monetary"`
	Frequency  int    `json:"frequency"`
}

// Pivot holds mean total rentals per (weekday, hour).
// Cells[i][j] belongs to Weekdays[i] and Hours[j]; missing pairs are NaN.
type Pivot struct {
	Weekdays []string    `json:"weekdays"`
	Hours    []int       `json:"hours"`
	Cells    [][]float64 `json:"-"`
}

// Defined reports whether the (row, col) pair had at least one record.
func (p Pivot) Defined(row, col int) bool {
	return !math.IsNaN(p.Cells[row][col])
}

// MarshalJSON writes undefined cells as null.
func (p Pivot) MarshalJSON() ([]byte, error) {
	cells := make([][]*float64, len(p.Cells))
	for i, row := range p.Cells {
		cells[i] = make([]*float64, len(row))
		for j := range row {
			if p.Defined(i, j) {
				v := row[j]
				cells[i][j] = &v
			}
		}
	}
	return json.Marshal(struct {
		Weekdays []string     `json:"weekdays"`
		Hours    []int        `json:"hours"`
		Cells    [][]*float64 `json:"cells"`
	}{p.Weekdays, p.Hours, cells})
}

const (
	aggSum   = dataframe.Aggregation_SUM
	aggCount = dataframe.Aggregation_COUNT
	aggMean  = dataframe.Aggregation_MEAN
	aggMax   = dataframe.Aggregation_MAX
)

// aggColumn is the name gota gives an aggregated column.
func aggColumn(col string, typ dataframe.AggregationType) string {
	return col + "_" + typ.String()
}

func present(e series.Element) bool { return !e.IsNA() }

// groupAggregate groups df by keys and applies typs[i] to cols[i].
// Rows with a missing key are dropped, like a pandas groupby. ok is false
// when no group remains; gota cannot aggregate zero groups.
func groupAggregate(df dataframe.DataFrame, keys []string, typs []dataframe.AggregationType, cols []string) (out dataframe.DataFrame, ok bool, err error) {
	selected := make([]string, 0, len(keys)+len(cols))
	seen := make(map[string]bool)
	for _, c := range append(append([]string{}, keys...), cols...) {
		if !seen[c] {
			seen[c] = true
			selected = append(selected, c)
		}
	}

	df = df.Select(selected)
	for _, k := range keys {
		df = df.Filter(dataframe.F{Colname: k, Comparator: series.CompFunc, Comparando: present})
	}
	if df.Err != nil {
		return df, false, fmt.Errorf("group by %v: %w", keys, df.Err)
	}
	if df.Nrow() == 0 {
		return df, false, nil
	}

	groups := df.GroupBy(keys...)
	if groups.Err != nil {
		return df, false, fmt.Errorf("group by %v: %w", keys, groups.Err)
	}
	out = groups.Aggregation(typs, cols)
	if out.Err != nil {
		return out, false, fmt.Errorf("aggregate %v: %w", cols, out.Err)
	}
	return out, true, nil
}

func intColumn(df dataframe.DataFrame, name string) ([]int, error) {
	s := df.Col(name)
	if s.Err != nil {
		return nil, fmt.Errorf("column %s: %w", name, s.Err)
	}
	vals, err := s.Int()
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", name, err)
	}
	return vals, nil
}

func floatColumn(df dataframe.DataFrame, name string) ([]float64, error) {
	s := df.Col(name)
	if s.Err != nil {
		return nil, fmt.Errorf("column %s: %w", name, s.Err)
	}
	return s.Float(), nil
}

func stringColumn(df dataframe.DataFrame, name string) ([]string, error) {
	s := df.Col(name)
	if s.Err != nil {
		return nil, fmt.Errorf("column %s: %w", name, s.Err)
	}
	return s.Records(), nil
}

// sumColumn totals an integer column; an empty frame sums to zero.
func sumColumn(df dataframe.DataFrame, name string) (int64, error) {
	if df.Nrow() == 0 {
		return 0, nil
	}
	vals, err := floatColumn(df, name)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, v := range vals {
		total += v
	}
	return int64(math.Round(total)), nil
}

// categoryValues reads (key, value) pairs of an aggregated frame in natural key order.
func categoryValues(df dataframe.DataFrame, key, value string) ([]CategoryValue, error) {
	keys, err := stringColumn(df, key)
	if err != nil {
		return nil, err
	}
	vals, err := floatColumn(df, value)
	if err != nil {
		return nil, err
	}

	result := make([]CategoryValue, len(keys))
	for i := range keys {
		result[i] = CategoryValue{Category: keys[i], Value: int64(math.Round(vals[i]))}
	}
	sort.SliceStable(result, func(i, j int) bool { return common.NaturalLess(result[i].Category, result[j].Category) })
	return result, nil
}

// TopHours sums total rentals per hour and keeps the n largest, descending.
// Equal sums keep ascending hour order.
func TopHours(hours dataframe.DataFrame, n int) ([]HourTotal, error) {
	out, ok, err := groupAggregate(hours,
		[]string{ColHour}, []dataframe.AggregationType{aggSum}, []string{ColTotalRent})
	if err != nil || !ok {
		return []HourTotal{}, err
	}

	total := aggColumn(ColTotalRent, aggSum)
	out = out.Arrange(dataframe.RevSort(total), dataframe.Sort(ColHour))
	if n >= 0 && out.Nrow() > n {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		out = out.Subset(idx)
	}
	if out.Err != nil {
		return nil, fmt.Errorf("top hours: %w", out.Err)
	}

	hourCol, err := intColumn(out, ColHour)
	if err != nil {
		return nil, err
	}
	totals, err := floatColumn(out, total)
	if err != nil {
		return nil, err
	}

	result := make([]HourTotal, len(hourCol))
	for i := range hourCol {
		result[i] = HourTotal{Hour: hourCol[i], TotalRent: int64(math.Round(totals[i]))}
	}
	return result, nil
}

// SumBy sums value per key, groups in natural key order.
func SumBy(df dataframe.DataFrame, key, value string) ([]CategoryValue, error) {
	out, ok, err := groupAggregate(df,
		[]string{key}, []dataframe.AggregationType{aggSum}, []string{value})
	if err != nil || !ok {
		return []CategoryValue{}, err
	}
	return categoryValues(out, key, aggColumn(value, aggSum))
}

// CountBy counts rows per key, groups in natural key order.
func CountBy(df dataframe.DataFrame, key string) ([]CategoryValue, error) {
	out, ok, err := groupAggregate(df,
		[]string{key}, []dataframe.AggregationType{aggCount}, []string{key})
	if err != nil || !ok {
		return []CategoryValue{}, err
	}
	return categoryValues(out, key, aggColumn(key, aggCount))
}

// DistinctBy counts distinct values per key, largest count first.
// The first grouping collapses duplicate (key, value) pairs, the second counts them.
func DistinctBy(df dataframe.DataFrame, key, value string) ([]CategoryValue, error) {
	pairs, ok, err := groupAggregate(df,
		[]string{key, value}, []dataframe.AggregationType{aggCount}, []string{value})
	if err != nil || !ok {
		return []CategoryValue{}, err
	}
	out, ok, err := groupAggregate(pairs,
		[]string{key}, []dataframe.AggregationType{aggCount}, []string{value})
	if err != nil || !ok {
		return []CategoryValue{}, err
	}

	result, err := categoryValues(out, key, aggColumn(value, aggCount))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Value > result[j].Value })
	return result, nil
}

// WeekdayHourPivot averages total rentals per (weekday, hour) and reshapes
// the grouped means into a weekday x hour grid.
func WeekdayHourPivot(hours dataframe.DataFrame) (Pivot, error) {
	empty := Pivot{Weekdays: []string{}, Hours: []int{}, Cells: [][]float64{}}

	meanCol := aggColumn(ColTotalRent, aggMean)
	out, ok, err := groupAggregate(hours,
		[]string{ColWeekday, ColHour}, []dataframe.AggregationType{aggMean}, []string{ColTotalRent})
	if err != nil || !ok {
		return empty, err
	}

	weekdayCol, err := stringColumn(out, ColWeekday)
	if err != nil {
		return empty, err
	}
	hourCol, err := intColumn(out, ColHour)
	if err != nil {
		return empty, err
	}
	means, err := floatColumn(out, meanCol)
	if err != nil {
		return empty, err
	}

	rowIndex := make(map[string]int)
	var weekdays []string
	colIndex := make(map[int]int)
	var hourCols []int
	for i := range weekdayCol {
		if _, ok := rowIndex[weekdayCol[i]]; !ok {
			rowIndex[weekdayCol[i]] = 0
			weekdays = append(weekdays, weekdayCol[i])
		}
		if _, ok := colIndex[hourCol[i]]; !ok {
			colIndex[hourCol[i]] = 0
			hourCols = append(hourCols, hourCol[i])
		}
	}
	common.SortNatural(weekdays)
	sort.Ints(hourCols)
	for i, wd := range weekdays {
		rowIndex[wd] = i
	}
	for i, h := range hourCols {
		colIndex[h] = i
	}

	cells := make([][]float64, len(weekdays))
	for i := range cells {
		cells[i] = make([]float64, len(hourCols))
		for j := range cells[i] {
			cells[i][j] = math.NaN()
		}
	}
	for i := range means {
		cells[rowIndex[weekdayCol[i]]][colIndex[hourCol[i]]] = means[i]
	}

	return Pivot{Weekdays: weekdays, Hours: hourCols, Cells: cells}, nil
}

// RFM builds the recency/frequency/monetary table keyed by the registered value.
// Recency counts days from a group's latest row to the latest row of hours.
func RFM(hours dataframe.DataFrame) ([]RFMRow, error) {
	if hours.Err != nil {
		return nil, hours.Err
	}
	if hours.Nrow() == 0 {
		return []RFMRow{}, nil
	}
	current := hours.Col(ColDay).Max()

	out, ok, err := groupAggregate(hours,
		[]string{ColRegistered},
		[]dataframe.AggregationType{aggMax, aggSum, aggCount},
		[]string{ColDay, ColTotalRent, ColTotalRent},
	)
	if err != nil || !ok {
		return []RFMRow{}, err
	}

	ids, err := stringColumn(out, ColRegistered)
	if err != nil {
		return nil, err
	}
	latest, err := floatColumn(out, aggColumn(ColDay, aggMax))
	if err != nil {
		return nil, err
	}
	monetary, err := floatColumn(out, aggColumn(ColTotalRent, aggSum))
	if err != nil {
		return nil, err
	}
	frequency, err := floatColumn(out, aggColumn(ColTotalRent, aggCount))
	if err != nil {
		return nil, err
	}

	rows := make([]RFMRow, len(ids))
	for i := range ids {
		rows[i] = RFMRow{
			CustomerID: ids[i],
			Recency:    int(current - latest[i]),
			Monetary:   int64(math.Round(monetary[i])),
			Frequency:  int(frequency[i]),
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return common.NaturalLess(rows[i].CustomerID, rows[j].CustomerID) })
	return rows, nil
}

// DailySeries returns the daily totals in date order.
func DailySeries(days dataframe.DataFrame) ([]DailyPoint, error) {
	if days.Err != nil {
		return nil, days.Err
	}
	if days.Nrow() == 0 {
		return []DailyPoint{}, nil
	}

	sorted := days.Arrange(dataframe.Sort(ColDay))
	ordinals, err := intColumn(sorted, ColDay)
	if err != nil {
		return nil, err
	}
	totals, err := floatColumn(sorted, ColTotalRent)
	if err != nil {
		return nil, err
	}

	points := make([]DailyPoint, len(ordinals))
	for i := range ordinals {
		points[i] = DailyPoint{Date: fromOrdinal(ordinals[i]), TotalRent: int64(math.Round(totals[i]))}
	}
	return points, nil
}

