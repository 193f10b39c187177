package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherreport/internal/config"
	"weatherreport/internal/loader"
	"weatherreport/internal/report"
)

func testConfig(t *testing.T, csv string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "week.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	cfg := &config.Config{}
	cfg.Data.Path = path
	cfg.Data.Reports = []string{report.KindOverview}
	return cfg
}

func TestRunOnce(t *testing.T) {
	cfg := testConfig(t, "date,min,max\n2021-07-06,49,67\n")

	var out bytes.Buffer
	require.NoError(t, runOnce(&out, cfg))
	assert.Equal(t, "1 Day Overview\n"+
		"  The lowest temperature will be 9.4°C, and will occur on Tuesday 06 July 2021.\n"+
		"  The highest temperature will be 19.4°C, and will occur on Tuesday 06 July 2021.\n"+
		"  The average low this week is 9.4°C.\n"+
		"  The average high this week is 19.4°C.\n", out.String())
}

func TestRunOnce_Malformed(t *testing.T) {
	cfg := testConfig(t, "date,min,max\n2021-07-06,49\n")

	var out bytes.Buffer
	err := runOnce(&out, cfg)
	assert.ErrorIs(t, err, loader.ErrMalformedRow)
	assert.Empty(t, out.String())
}

func TestApplyFlags(t *testing.T) {
	cfg := &config.Config{}
	cfg.Data.Path = "data/weather.csv"
	cfg.Data.Reports = []string{report.KindOverview}

	applyFlags(cfg, "", "")
	assert.Equal(t, "data/weather.csv", cfg.Data.Path)
	assert.Equal(t, []string{report.KindOverview}, cfg.Data.Reports)

	applyFlags(cfg, "week.xlsx", " daily , stats,")
	assert.Equal(t, "week.xlsx", cfg.Data.Path)
	assert.Equal(t, []string{report.KindDaily, report.KindStats}, cfg.Data.Reports)

	applyFlags(cfg, "", "all")
	assert.Equal(t, report.Kinds, cfg.Data.Reports)
}
