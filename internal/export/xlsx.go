package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/i474232898/bike-rental-dashboard/internal/rental"
)

// Sheet names, in workbook order.
const (
	SheetSummary     = "Summary"
	SheetTopHours    = "Top Hours"
	SheetDayCategory = "Day Category"
	SheetWeekdayHour = "Weekday x Hour"
	SheetDailyTrend  = "Daily Trend"
	SheetSeason      = "Season"
	SheetRFM         = "RFM"
	SheetWeather     = "Weather"
	SheetHumidity    = "Humidity"
)

// WriteWorkbook writes every derived table of a as an xlsx workbook.
func WriteWorkbook(w io.Writer, a rental.Artifacts) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}

	summary := [][]interface{}{
		{"Start", a.Range.Start.Format("2006-01-02")},
		{"End", a.Range.End.Format("2006-01-02")},
		{"Total Rentals", a.Metrics.TotalRentals},
		{"Total Registered", a.Metrics.TotalRegistered},
		{"Total Casual", a.Metrics.TotalCasual},
	}
	if err := writeRows(f, SheetSummary, []string{"Metric", "Value"}, summary); err != nil {
		return err
	}

	var rows [][]interface{}
	for _, h := range a.TopHours {
		rows = append(rows, []interface{}{h.Hour, h.TotalRent})
	}
	if err := addSheet(f, SheetTopHours, []string{"hour", "total_rent"}, rows); err != nil {
		return err
	}

	if err := addSheet(f, SheetDayCategory, []string{"day_category", "total_rent"}, categoryRows(a.DayCategory)); err != nil {
		return err
	}

	if err := writePivot(f, a.WeekdayHour); err != nil {
		return err
	}

	rows = rows[:0]
	for _, p := range a.DailyTrend {
		rows = append(rows, []interface{}{p.Date.Format("2006-01-02"), p.TotalRent})
	}
	if err := addSheet(f, SheetDailyTrend, []string{"dteday", "total_rent"}, rows); err != nil {
		return err
	}

	if err := addSheet(f, SheetSeason, []string{"season", "total_rent"}, categoryRows(a.Season)); err != nil {
		return err
	}

	rows = rows[:0]
	for _, r := range a.RFM {
		rows = append(rows, []interface{}{r.CustomerID, r.Recency, r.Monetary, r.Frequency})
	}
	if err := addSheet(f, SheetRFM, []string{"Customer_ID", "Recency", "Monetary", "Frequency"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	distinct := make(map[string]int64, len(a.WeatherDistinct))
	for _, d := range a.WeatherDistinct {
		distinct[d.Category] = d.Value
	}
	for _, g := range a.Weather {
		rows = append(rows, []interface{}{g.Category, g.Value, distinct[g.Category]})
	}
	if err := addSheet(f, SheetWeather, []string{"weather", "total_rent", "distinct_total_rent"}, rows); err != nil {
		return err
	}

	if err := addSheet(f, SheetHumidity, []string{"humidity_category", "count"}, categoryRows(a.Humidity)); err != nil {
		return err
	}

	return f.Write(w)
}

func categoryRows(groups []rental.CategoryValue) [][]interface{} {
	rows := make([][]interface{}, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []interface{}{g.Category, g.Value})
	}
	return rows
}

func addSheet(f *excelize.File, name string, header []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}
	return writeRows(f, name, header, rows)
}

func writeRows(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// writePivot lays the pivot out with weekdays down and hours across.
// Undefined cells stay blank.
func writePivot(f *excelize.File, p rental.Pivot) error {
	if _, err := f.NewSheet(SheetWeekdayHour); err != nil {
		return fmt.Errorf("new sheet %s: %w", SheetWeekdayHour, err)
	}

	header := []interface{}{"weekday"}
	for _, h := range p.Hours {
		header = append(header, h)
	}
	if err := f.SetSheetRow(SheetWeekdayHour, "A1", &header); err != nil {
		return err
	}

	for i, wd := range p.Weekdays {
		row := []interface{}{wd}
		for j := range p.Hours {
			if p.Defined(i, j) {
				row = append(row, p.Cells[i][j])
			} else {
				row = append(row, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetWeekdayHour, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
