package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"delivery-risk/internal/pipeline"
	"delivery-risk/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(scenario string) GeneratorConfig {
	return GeneratorConfig{
		Scenario:     scenario,
		Distribution: "uniform",
		Orders:       400,
		Drivers:      20,
		Customers:    50,
		Seed:         7,
		Now:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func sources(dir, ext string) pipeline.Sources {
	src := func(name, file string) pipeline.Source {
		return pipeline.Source{Name: name, Path: filepath.Join(dir, file+ext)}
	}
	return pipeline.Sources{
		Orders:       src("orders", "orders"),
		Drivers:      src("drivers", "drivers_data"),
		Products:     src("products", "products_data"),
		Customers:    src("customers", "customers_data"),
		MissingItems: src("missing items", "missing_items_data"),
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(testConfig("chaos"))
	b := Generate(testConfig("chaos"))
	assert.Equal(t, a, b)

	require.Len(t, a.Orders, 400)
	require.Len(t, a.Drivers, 20)
	require.Len(t, a.Customers, 50)
	for _, o := range a.Orders {
		assert.GreaterOrEqual(t, o.ItemsDelivered, 0)
		assert.GreaterOrEqual(t, o.ItemsMissing, 0)
	}
}

func TestGenerate_MissingItemsMatchOrders(t *testing.T) {
	ds := Generate(testConfig("drift"))

	withMissing := 0
	for _, o := range ds.Orders {
		if o.ItemsMissing > 0 {
			withMissing++
		}
	}
	assert.Equal(t, withMissing, len(ds.MissingItems))
	for _, m := range ds.MissingItems {
		assert.NotEmpty(t, m.ProductID1)
	}
}

func TestSave_CSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := Generate(testConfig("chaos"))

	paths, err := Save(dir, ds, "csv")
	require.NoError(t, err)
	require.Len(t, paths, 5)

	res, err := pipeline.NewWithSources(sources(dir, ".csv"), ',', stats.DefaultOptions()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ds, res.Raw)
	assert.Len(t, res.Analysis.Drivers, 20)
	assert.Positive(t, res.Analysis.KPIs.TotalFinancialImpact)
}

func TestSave_WorkbookRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig("mild")
	cfg.Orders = 30
	ds := Generate(cfg)

	_, err := Save(dir, ds, "xlsx")
	require.NoError(t, err)

	loaded, err := pipeline.NewWithSources(sources(dir, ".xlsx"), ',', stats.DefaultOptions()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ds.Orders, loaded.Orders)
	assert.Equal(t, ds.Drivers, loaded.Drivers)
}

func TestSave_UnknownFormat(t *testing.T) {
	_, err := Save(t.TempDir(), Generate(testConfig("mild")), "parquet")
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12, "$12.00"},
		{999.999, "$1,000.00"},
		{1234.5, "$1,234.50"},
		{123456.789, "$123,456.79"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
