package mcp

import (
	"context"
	"fmt"
	"time"

	"delivery-risk/internal/filter"
	"delivery-risk/internal/pipeline"
	"delivery-risk/internal/stats"
	"delivery-risk/internal/visuals"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NoInput is the argument set of tools that take no parameters.
type NoInput struct{}

// AnalyzeInput narrows the full analysis. Every field is optional.
type AnalyzeInput = filter.Options

type DriverRiskInput struct {
	DriverClusters []int    `json:"driverClusters,omitempty" jsonschema:"keep only drivers in these risk clusters (0-3)"`
	MinMissingRate *float64 `json:"minMissingRate,omitempty" jsonschema:"lowest missing rate to keep (0-1)"`
	MaxMissingRate *float64 `json:"maxMissingRate,omitempty" jsonschema:"highest missing rate to keep (0-1)"`
	OutliersOnly   bool     `json:"outliersOnly,omitempty" jsonschema:"keep only statistical outliers"`
	Limit          int      `json:"limit,omitempty" jsonschema:"maximum number of drivers to return; 0 returns all"`
}

type ProductLossInput struct {
	Categories []string `json:"categories,omitempty" jsonschema:"keep only products in these categories"`
	Limit      int      `json:"limit,omitempty" jsonschema:"maximum number of products to return; 0 returns all"`
}

type RegionInput struct {
	Regions []string `json:"regions,omitempty" jsonschema:"keep only these regions"`
}

// RunInfo identifies the pipeline run behind a tool result.
type RunInfo struct {
	RunID             string `json:"runId"`
	TotalOrders       int    `json:"totalOrders"`
	TotalDrivers      int    `json:"totalDrivers"`
	TotalProducts     int    `json:"totalProducts"`
	TotalCustomers    int    `json:"totalCustomers"`
	TotalMissingItems int    `json:"totalMissingItems"`
	ProcessedAt       string `json:"processedAt"`
}

type AnalyzeOutput struct {
	Analysis stats.Analysis    `json:"analysis"`
	Run      RunInfo           `json:"run"`
	Charts   map[string]string `json:"charts,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

type DriverRiskOutput struct {
	Drivers  []stats.DriverAnalysis `json:"drivers"`
	Clusters []stats.ClusterSummary `json:"clusters"`
	Run      RunInfo                `json:"run"`
	Chart    string                 `json:"chart,omitempty"`
	Warnings []string               `json:"warnings,omitempty"`
}

type ProductLossOutput struct {
	Products []stats.ProductAnalysis `json:"products"`
	Run      RunInfo                 `json:"run"`
	Chart    string                  `json:"chart,omitempty"`
	Warnings []string                `json:"warnings,omitempty"`
}

type RegionOutput struct {
	Regions  []stats.RegionAnalysis `json:"regions"`
	Run      RunInfo                `json:"run"`
	Chart    string                 `json:"chart,omitempty"`
	Warnings []string               `json:"warnings,omitempty"`
}

type TimePatternOutput struct {
	TimePatterns []stats.TimePattern `json:"timePatterns"`
	Run          RunInfo             `json:"run"`
	Chart        string              `json:"chart,omitempty"`
	Warnings     []string            `json:"warnings,omitempty"`
}

type KPIOutput struct {
	KPIs     stats.KPIMetrics `json:"kpis"`
	Run      RunInfo          `json:"run"`
	Warnings []string         `json:"warnings,omitempty"`
}

type ClusterDiagnosticsOutput struct {
	Summary   []stats.ClusterSummary `json:"summary"`
	Centroids []stats.ClusterResult  `json:"centroids"`
	Run       RunInfo                `json:"run"`
	Chart     string                 `json:"chart,omitempty"`
	Warnings  []string               `json:"warnings,omitempty"`
}

func (s *Server) handleAnalyzeDeliveryRisk(ctx context.Context, _ *sdk.CallToolRequest, in AnalyzeInput) (*sdk.CallToolResult, AnalyzeOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, AnalyzeOutput{}, err
	}
	res, err := s.run(ctx, "analyze_delivery_risk")
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	a := filter.Apply(res.Analysis, in)
	out := AnalyzeOutput{
		Analysis: a,
		Run:      runInfo(res.Metadata),
		Warnings: warnings(res),
	}
	if s.chartsEnabled() {
		out.Charts = map[string]string{
			"clusters": visuals.GenerateClusterPie(stats.SummarizeClusters(a.Drivers)),
			"products": visuals.GenerateProductLossChart(a.Products),
			"regions":  visuals.GenerateRegionChart(a.Regions),
			"hours":    visuals.GenerateHourlyChart(a.TimePatterns),
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetDriverRisk(ctx context.Context, _ *sdk.CallToolRequest, in DriverRiskInput) (*sdk.CallToolResult, DriverRiskOutput, error) {
	opts := filter.Options{
		DriverClusters: in.DriverClusters,
		MinMissingRate: in.MinMissingRate,
		MaxMissingRate: in.MaxMissingRate,
	}
	if err := opts.Validate(); err != nil {
		return nil, DriverRiskOutput{}, err
	}
	if in.Limit < 0 {
		return nil, DriverRiskOutput{}, fmt.Errorf("limit must not be negative, got %d", in.Limit)
	}
	res, err := s.run(ctx, "get_driver_risk")
	if err != nil {
		return nil, DriverRiskOutput{}, err
	}

	drivers := stats.RankDrivers(filter.Drivers(res.Analysis.Drivers, opts))
	if in.OutliersOnly {
		kept := drivers[:0]
		for _, d := range drivers {
			if d.IsOutlier {
				kept = append(kept, d)
			}
		}
		drivers = kept
	}
	summary := stats.SummarizeClusters(drivers)
	drivers = limit(drivers, in.Limit)

	out := DriverRiskOutput{
		Drivers:  drivers,
		Clusters: summary,
		Run:      runInfo(res.Metadata),
		Warnings: warnings(res),
	}
	if s.chartsEnabled() {
		out.Chart = visuals.GenerateClusterPie(summary)
	}
	return nil, out, nil
}

func (s *Server) handleGetProductLosses(ctx context.Context, _ *sdk.CallToolRequest, in ProductLossInput) (*sdk.CallToolResult, ProductLossOutput, error) {
	if in.Limit < 0 {
		return nil, ProductLossOutput{}, fmt.Errorf("limit must not be negative, got %d", in.Limit)
	}
	res, err := s.run(ctx, "get_product_losses")
	if err != nil {
		return nil, ProductLossOutput{}, err
	}

	products := limit(filter.Products(res.Analysis.Products, filter.Options{Categories: in.Categories}), in.Limit)
	out := ProductLossOutput{
		Products: products,
		Run:      runInfo(res.Metadata),
		Warnings: warnings(res),
	}
	if s.chartsEnabled() {
		out.Chart = visuals.GenerateProductLossChart(products)
	}
	return nil, out, nil
}

func (s *Server) handleGetRegionAnalysis(ctx context.Context, _ *sdk.CallToolRequest, in RegionInput) (*sdk.CallToolResult, RegionOutput, error) {
	res, err := s.run(ctx, "get_region_analysis")
	if err != nil {
		return nil, RegionOutput{}, err
	}

	regions := filter.Regions(res.Analysis.Regions, filter.Options{Regions: in.Regions})
	out := RegionOutput{
		Regions:  regions,
		Run:      runInfo(res.Metadata),
		Warnings: warnings(res),
	}
	if s.chartsEnabled() {
		out.Chart = visuals.GenerateRegionChart(regions)
	}
	return nil, out, nil
}

func (s *Server) handleGetTimePatterns(ctx context.Context, _ *sdk.CallToolRequest, _ NoInput) (*sdk.CallToolResult, TimePatternOutput, error) {
	res, err := s.run(ctx, "get_time_patterns")
	if err != nil {
		return nil, TimePatternOutput{}, err
	}

	out := TimePatternOutput{
		TimePatterns: res.Analysis.TimePatterns,
		Run:          runInfo(res.Metadata),
		Warnings:     warnings(res),
	}
	if s.chartsEnabled() {
		out.Chart = visuals.GenerateHourlyChart(res.Analysis.TimePatterns)
	}
	return nil, out, nil
}

func (s *Server) handleGetKPIs(ctx context.Context, _ *sdk.CallToolRequest, _ NoInput) (*sdk.CallToolResult, KPIOutput, error) {
	res, err := s.run(ctx, "get_kpis")
	if err != nil {
		return nil, KPIOutput{}, err
	}
	return nil, KPIOutput{
		KPIs:     res.Analysis.KPIs,
		Run:      runInfo(res.Metadata),
		Warnings: warnings(res),
	}, nil
}

func (s *Server) handleGetClusterDiagnostics(ctx context.Context, _ *sdk.CallToolRequest, _ NoInput) (*sdk.CallToolResult, ClusterDiagnosticsOutput, error) {
	res, err := s.run(ctx, "get_cluster_diagnostics")
	if err != nil {
		return nil, ClusterDiagnosticsOutput{}, err
	}

	summary := stats.SummarizeClusters(res.Analysis.Drivers)
	out := ClusterDiagnosticsOutput{
		Summary:   summary,
		Centroids: res.Analysis.Clusters,
		Run:       runInfo(res.Metadata),
		Warnings:  warnings(res),
	}
	if s.chartsEnabled() {
		out.Chart = visuals.GenerateClusterPie(summary)
	}
	return nil, out, nil
}

func runInfo(md pipeline.Metadata) RunInfo {
	return RunInfo{
		RunID:             md.RunID,
		TotalOrders:       md.TotalOrders,
		TotalDrivers:      md.TotalDrivers,
		TotalProducts:     md.TotalProducts,
		TotalCustomers:    md.TotalCustomers,
		TotalMissingItems: md.TotalMissingItems,
		ProcessedAt:       md.ProcessedAt.Format(time.RFC3339),
	}
}

// warnings flags inputs that make the analysis meaningless so the client
// does not read zeros as good news.
func warnings(res *pipeline.Result) []string {
	var w []string
	if res.Metadata.TotalOrders == 0 {
		w = append(w, "no orders were loaded; every rate and total is zero")
	}
	if res.Metadata.TotalDrivers == 0 {
		w = append(w, "no drivers were loaded; driver risk and high-risk counts are empty")
	}
	if res.Metadata.TotalOrders > 0 && res.Metadata.TotalMissingItems == 0 {
		w = append(w, "no missing-item records were loaded; product losses are empty")
	}
	return w
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
