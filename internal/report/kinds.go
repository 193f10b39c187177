package report

import (
	"errors"
	"fmt"
	"strings"

	"weatherreport/internal/model"
)

// Report kinds accepted by Render.
const (
	KindOverview = "overview"
	KindDaily    = "daily"
	KindStats    = "stats"
)

// Kinds lists every report kind in display order.
var Kinds = []string{KindOverview, KindDaily, KindStats}

// ErrUnknownKind is returned by Render for an unrecognised report kind.
var ErrUnknownKind = errors.New("unknown report kind")

// Render produces the requested reports in order, separated by a blank line.
// Reports that are empty for ds are left out.
func Render(ds model.Dataset, kinds ...string) (string, error) {
	return defaultReporter.Render(ds, kinds...)
}

// Render produces the requested reports in order, separated by a blank line.
func (r Reporter) Render(ds model.Dataset, kinds ...string) (string, error) {
	var parts []string
	for _, kind := range kinds {
		var (
			out string
			err error
		)
		switch kind {
		case KindOverview:
			out = r.GenerateOverviewSummary(ds)
		case KindDaily:
			out = r.GenerateDailySummary(ds)
		case KindStats:
			out, err = r.GenerateStatsSummary(ds)
		default:
			return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
		if err != nil {
			return "", fmt.Errorf("%s report: %w", kind, err)
		}
		if out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n"), nil
}
