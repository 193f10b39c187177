package report

import (
	"fmt"
	"strings"

	"weatherreport/internal/calculator"
	"weatherreport/internal/model"
)

// Reporter renders text summaries of a dataset.
type Reporter struct {
	Dates DateFormatter // defaults to LongDate
}

var defaultReporter = Reporter{Dates: LongDate{}}

// Summarize computes the overview figures for every record in ds.
// Ties keep the first occurrence. ok is false for an empty dataset.
func Summarize(ds model.Dataset) (model.Overview, bool) {
	return defaultReporter.Summarize(ds)
}

// GenerateOverviewSummary renders the multi-day overview, or "" for an empty dataset.
func GenerateOverviewSummary(ds model.Dataset) string {
	return defaultReporter.GenerateOverviewSummary(ds)
}

// GenerateDailySummary renders one block per record, or "" for an empty dataset.
func GenerateDailySummary(ds model.Dataset) string {
	return defaultReporter.GenerateDailySummary(ds)
}

// GenerateStatsSummary renders aggregate statistics, or calculator.ErrEmptyInput for an empty dataset.
func GenerateStatsSummary(ds model.Dataset) (string, error) {
	return defaultReporter.GenerateStatsSummary(ds)
}

func (r Reporter) dates() DateFormatter {
	if r.Dates == nil {
		return LongDate{}
	}
	return r.Dates
}

// Summarize computes the overview figures for every record in ds.
func (r Reporter) Summarize(ds model.Dataset) (model.Overview, bool) {
	if len(ds) == 0 {
		return model.Overview{}, false
	}

	ov := model.Overview{Days: len(ds)}
	var sumLow, sumHigh float64
	for i, rec := range ds {
		low := calculator.FahrenheitToCelsius(float64(rec.LowF))
		high := calculator.FahrenheitToCelsius(float64(rec.HighF))

		// strict comparisons: the earliest day wins a tie
		if i == 0 || low < ov.LowestC {
			ov.LowestC = low
			ov.LowestDate = r.dates().FormatDate(rec.Date)
		}
		if i == 0 || high > ov.HighestC {
			ov.HighestC = high
			ov.HighestDate = r.dates().FormatDate(rec.Date)
		}
		sumLow += low
		sumHigh += high
	}
	ov.AverageLowC = sumLow / float64(len(ds))
	ov.AverageHighC = sumHigh / float64(len(ds))
	return ov, true
}

// GenerateOverviewSummary renders the multi-day overview, or "" for an empty dataset.
func (r Reporter) GenerateOverviewSummary(ds model.Dataset) string {
	ov, ok := r.Summarize(ds)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d Day Overview\n", ov.Days))
	b.WriteString(fmt.Sprintf("  The lowest temperature will be %.1f%s, and will occur on %s.\n",
		ov.LowestC, DegreeSymbol, ov.LowestDate))
	b.WriteString(fmt.Sprintf("  The highest temperature will be %.1f%s, and will occur on %s.\n",
		ov.HighestC, DegreeSymbol, ov.HighestDate))
	b.WriteString(fmt.Sprintf("  The average low this week is %.1f%s.\n", ov.AverageLowC, DegreeSymbol))
	b.WriteString(fmt.Sprintf("  The average high this week is %.1f%s.\n", ov.AverageHighC, DegreeSymbol))
	return b.String()
}

// GenerateDailySummary renders one block per record, or "" for an empty dataset.
func (r Reporter) GenerateDailySummary(ds model.Dataset) string {
	var b strings.Builder
	for _, rec := range ds {
		b.WriteString(fmt.Sprintf("---- %s ----\n", r.dates().FormatDate(rec.Date)))
		b.WriteString(fmt.Sprintf("  Minimum Temperature: %.1f%s\n",
			calculator.FahrenheitToCelsius(float64(rec.LowF)), DegreeSymbol))
		b.WriteString(fmt.Sprintf("  Maximum Temperature: %.1f%s\n",
			calculator.FahrenheitToCelsius(float64(rec.HighF)), DegreeSymbol))
		b.WriteString("\n")
	}
	return b.String()
}

// GenerateStatsSummary renders means and extremes of the raw readings.
// Extremes use the most recent day on ties.
func (r Reporter) GenerateStatsSummary(ds model.Dataset) (string, error) {
	lows, highs := ds.Lows(), ds.Highs()

	meanLow, err := calculator.Mean(lows)
	if err != nil {
		return "", fmt.Errorf("mean low: %w", err)
	}
	meanHigh, err := calculator.Mean(highs)
	if err != nil {
		return "", fmt.Errorf("mean high: %w", err)
	}
	coldest, _ := calculator.FindMin(lows)
	warmest, _ := calculator.FindMax(highs)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d Day Statistics\n", len(ds)))
	b.WriteString(fmt.Sprintf("  Mean low: %s\n",
		FormatTemperature(calculator.FahrenheitToCelsius(meanLow))))
	b.WriteString(fmt.Sprintf("  Mean high: %s\n",
		FormatTemperature(calculator.FahrenheitToCelsius(meanHigh))))
	b.WriteString(fmt.Sprintf("  Coldest low: %s on %s (day %d)\n",
		FormatTemperature(calculator.FahrenheitToCelsius(coldest.Value)),
		r.dates().FormatDate(ds[coldest.Index].Date), coldest.Index+1))
	b.WriteString(fmt.Sprintf("  Warmest high: %s on %s (day %d)\n",
		FormatTemperature(calculator.FahrenheitToCelsius(warmest.Value)),
		r.dates().FormatDate(ds[warmest.Index].Date), warmest.Index+1))
	return b.String(), nil
}
