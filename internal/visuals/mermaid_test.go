package visuals

import (
	"strings"
	"testing"

	"delivery-risk/internal/stats"
)

func TestGenerateClusterPie(t *testing.T) {
	if got := GenerateClusterPie(stats.SummarizeClusters(nil)); got != "" {
		t.Errorf("Expected empty chart for no drivers, got %q", got)
	}

	summaries := stats.SummarizeClusters([]stats.DriverAnalysis{
		{Cluster: stats.ClusterHighRisk, MissingRate: 0.2},
		{Cluster: stats.ClusterTopPerformer},
	})
	chart := GenerateClusterPie(summaries)
	if !strings.HasPrefix(chart, "```mermaid\npie") {
		t.Errorf("Expected mermaid pie, got %q", chart)
	}
	if !strings.Contains(chart, "\"High Risk - Immediate Action Required\" : 1") {
		t.Errorf("Missing high risk slice: %q", chart)
	}
	if strings.Contains(chart, "Novice") {
		t.Errorf("Empty clusters should be omitted: %q", chart)
	}
}

func TestGenerateHourlyChart_FillsAllHours(t *testing.T) {
	chart := GenerateHourlyChart([]stats.TimePattern{{Hour: 3, MissingRate: 0.5}, {Hour: 99, MissingRate: 9}})
	if !strings.Contains(chart, "\"00\"") || !strings.Contains(chart, "\"23\"") {
		t.Errorf("Expected 24 hour axis: %q", chart)
	}
	if !strings.Contains(chart, "line [0.00, 0.00, 0.00, 0.50,") {
		t.Errorf("Expected hour 3 value in line: %q", chart)
	}
	if strings.Contains(chart, "9.00") {
		t.Errorf("Out of range hours must be ignored: %q", chart)
	}
}

func TestGenerateRegionAndProductCharts(t *testing.T) {
	if GenerateRegionChart(nil) != "" || GenerateProductLossChart(nil) != "" {
		t.Error("Expected empty charts for empty input")
	}

	region := GenerateRegionChart([]stats.RegionAnalysis{{Region: "North \"A\"", MissingRate: 1.5}})
	if !strings.Contains(region, "\"North 'A'\"") || !strings.Contains(region, "bar [1.50]") {
		t.Errorf("Unexpected region chart: %q", region)
	}

	products := GenerateProductLossChart([]stats.ProductAnalysis{
		{ProductID: "P1", ProductName: "Milk", MissingCount: 4},
		{ProductID: "P2", MissingCount: 1},
		{ProductID: "P3", MissingCount: 0},
	})
	if !strings.Contains(products, "x-axis [\"Milk\", \"P2\"]") {
		t.Errorf("Unexpected product chart: %q", products)
	}
}
