package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"delivery-risk/internal/config"
	"delivery-risk/internal/filter"
	"delivery-risk/internal/pipeline"
	"delivery-risk/internal/records"
	"delivery-risk/internal/stats"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	res   *pipeline.Result
	err   error
	calls int
}

func (r *stubRunner) Run(ctx context.Context) (*pipeline.Result, error) {
	r.calls++
	return r.res, r.err
}

func fixtureResult() *pipeline.Result {
	ds := records.Dataset{
		Orders: []records.Order{
			{OrderID: "O1", OrderAmount: "$100", Region: "North", ItemsDelivered: 9, ItemsMissing: 1, DeliveryHour: "09:00", DriverID: "D1"},
			{OrderID: "O2", OrderAmount: "$200", Region: "South", ItemsDelivered: 10, ItemsMissing: 0, DeliveryHour: "14:30", DriverID: "D2"},
			{OrderID: "O3", OrderAmount: "$50", Region: "South", ItemsDelivered: 100, ItemsMissing: 0, DeliveryHour: "14:45", DriverID: "D3"},
		},
		Drivers: []records.Driver{
			{DriverID: "D1", DriverName: "Ana"},
			{DriverID: "D2", DriverName: "Bo"},
			{DriverID: "D3", DriverName: "Cy"},
		},
		Products: []records.Product{
			{ProductID: "P1", ProductName: "Milk", Category: "Dairy", Price: "$2"},
			{ProductID: "P2", ProductName: "Bread", Category: "Bakery", Price: "$3"},
		},
		MissingItems: []records.MissingItem{{OrderID: "O1", ProductID1: "P1"}},
	}
	return &pipeline.Result{
		Raw:      ds,
		Analysis: stats.Analyze(ds, stats.DefaultOptions()),
		Metadata: pipeline.Metadata{
			RunID:             "run-42",
			TotalOrders:       len(ds.Orders),
			TotalDrivers:      len(ds.Drivers),
			TotalProducts:     len(ds.Products),
			TotalMissingItems: len(ds.MissingItems),
			ProcessedAt:       time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		},
	}
}

func newTestServer(runner Runner, charts bool) *Server {
	return NewServerWithRunner(&config.AppConfig{EnableMermaidCharts: charts}, runner, "test")
}

func TestAnalyzeDeliveryRisk_FiltersAndCharts(t *testing.T) {
	s := newTestServer(&stubRunner{res: fixtureResult()}, true)

	_, out, err := s.handleAnalyzeDeliveryRisk(context.Background(), nil, filter.Options{Regions: []string{"South"}})
	require.NoError(t, err)

	require.Len(t, out.Analysis.Regions, 1)
	assert.Equal(t, "South", out.Analysis.Regions[0].Region)
	assert.Len(t, out.Analysis.Drivers, 3, "region filter must not touch drivers")
	assert.InDelta(t, 1.0/120.0, out.Analysis.KPIs.OverallMissingRate, 1e-12)
	assert.Equal(t, "run-42", out.Run.RunID)
	assert.Equal(t, "2024-03-01T08:00:00Z", out.Run.ProcessedAt)
	assert.Contains(t, out.Charts["regions"], "xychart-beta")
	assert.Empty(t, out.Warnings)
}

func TestAnalyzeDeliveryRisk_InvalidFilter(t *testing.T) {
	runner := &stubRunner{res: fixtureResult()}
	s := newTestServer(runner, false)

	_, _, err := s.handleAnalyzeDeliveryRisk(context.Background(), nil, filter.Options{DriverClusters: []int{7}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter options")
	assert.Zero(t, runner.calls, "invalid input must not trigger a run")
}

func TestHandlers_HideLoadFailure(t *testing.T) {
	s := newTestServer(&stubRunner{err: errors.New("open /secret/orders.csv: permission denied")}, false)

	_, _, err := s.handleGetKPIs(context.Background(), nil, NoInput{})
	require.Error(t, err)
	assert.Equal(t, "failed to process data", err.Error())
}

func TestGetDriverRisk_RanksAndLimits(t *testing.T) {
	s := newTestServer(&stubRunner{res: fixtureResult()}, false)

	_, out, err := s.handleGetDriverRisk(context.Background(), nil, DriverRiskInput{Limit: 1})
	require.NoError(t, err)
	require.Len(t, out.Drivers, 1)
	assert.Equal(t, "D1", out.Drivers[0].DriverID)
	assert.Equal(t, stats.ClusterHighRisk, out.Drivers[0].Cluster)

	total := 0
	for _, c := range out.Clusters {
		total += c.DriverCount
	}
	assert.Equal(t, 3, total, "summary covers every matching driver before the limit")

	_, _, err = s.handleGetDriverRisk(context.Background(), nil, DriverRiskInput{Limit: -1})
	assert.Error(t, err)
}

func TestGetDriverRisk_OutliersOnly(t *testing.T) {
	s := newTestServer(&stubRunner{res: fixtureResult()}, false)

	_, out, err := s.handleGetDriverRisk(context.Background(), nil, DriverRiskInput{OutliersOnly: true})
	require.NoError(t, err)
	assert.Empty(t, out.Drivers, "three drivers cannot produce a 3 sigma outlier")
}

func TestGetProductLosses_Categories(t *testing.T) {
	s := newTestServer(&stubRunner{res: fixtureResult()}, false)

	_, out, err := s.handleGetProductLosses(context.Background(), nil, ProductLossInput{Categories: []string{"Dairy"}})
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "P1", out.Products[0].ProductID)
	assert.Equal(t, 1, out.Products[0].MissingCount)
	assert.InDelta(t, 100, out.Products[0].TotalValueLost, 1e-9)
}

func TestGetTimePatternsAndDiagnostics(t *testing.T) {
	s := newTestServer(&stubRunner{res: fixtureResult()}, true)

	_, tp, err := s.handleGetTimePatterns(context.Background(), nil, NoInput{})
	require.NoError(t, err)
	require.Len(t, tp.TimePatterns, 2)
	assert.Equal(t, 9, tp.TimePatterns[0].Hour)
	assert.Equal(t, 14, tp.TimePatterns[1].Hour)
	assert.Contains(t, tp.Chart, "line [")

	_, diag, err := s.handleGetClusterDiagnostics(context.Background(), nil, NoInput{})
	require.NoError(t, err)
	assert.Len(t, diag.Summary, stats.ClusterCount)
	assert.NotEmpty(t, diag.Centroids)
}

func TestWarnings_EmptyDataset(t *testing.T) {
	res := &pipeline.Result{}
	assert.Len(t, warnings(res), 2)
}

func TestServer_ListsAndCallsToolsOverSession(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(&stubRunner{res: fixtureResult()}, false)

	clientTransport, serverTransport := sdk.NewInMemoryTransports()
	serverSession, err := s.Build().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"analyze_delivery_risk", "get_driver_risk", "get_product_losses",
		"get_region_analysis", "get_time_patterns", "get_kpis", "get_cluster_diagnostics",
	}, names)

	result, err := session.CallTool(ctx, &sdk.CallToolParams{Name: "get_kpis", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*sdk.TextContent)
	require.True(t, ok)
	var out KPIOutput
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	assert.Equal(t, 1, out.KPIs.HighRiskDrivers)
	assert.Equal(t, stats.CriticalRegionsCount, out.KPIs.CriticalRegions)
}
