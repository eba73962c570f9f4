package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"delivery-risk/internal/pipeline"
	"delivery-risk/internal/stats"
	"delivery-risk/internal/visuals"
)

// DefaultTopN bounds every ranked table in the report.
const DefaultTopN = 10

// Options controls report rendering.
type Options struct {
	TopN   int
	Charts bool
}

// Render writes a markdown risk report for one pipeline run.
func Render(w io.Writer, res *pipeline.Result, opts Options) error {
	_, err := io.WriteString(w, Markdown(res, opts))
	return err
}

// Markdown builds the report text.
func Markdown(res *pipeline.Result, opts Options) string {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	a := res.Analysis
	md := res.Metadata

	var sb strings.Builder
	sb.WriteString("# Delivery Risk Report\n\n")
	sb.WriteString(fmt.Sprintf("Run `%s` processed at %s over %d orders, %d drivers, %d products, %d customers and %d missing-item records.\n\n",
		md.RunID, md.ProcessedAt.Format(time.RFC3339), md.TotalOrders, md.TotalDrivers, md.TotalProducts, md.TotalCustomers, md.TotalMissingItems))

	sb.WriteString("## Key Indicators\n\n")
	sb.WriteString("| Indicator | Value |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Overall missing rate | %s |\n", percent(a.KPIs.OverallMissingRate)))
	sb.WriteString(fmt.Sprintf("| Financial impact | %s |\n", money(a.KPIs.TotalFinancialImpact)))
	sb.WriteString(fmt.Sprintf("| High-risk drivers | %d |\n", a.KPIs.HighRiskDrivers))
	sb.WriteString(fmt.Sprintf("| Critical regions | %d |\n\n", a.KPIs.CriticalRegions))

	summaries := stats.SummarizeClusters(a.Drivers)
	sb.WriteString("## Driver Risk Clusters\n\n")
	sb.WriteString("| Cluster | Drivers | Avg rate | Median rate | Outliers |\n|---|---|---|---|---|\n")
	for _, s := range summaries {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %d |\n",
			s.Description, s.DriverCount, percent(s.AvgMissingRate), percent(s.MedianMissingRate), s.OutlierCount))
	}
	sb.WriteString("\n")
	chart(&sb, opts.Charts, visuals.GenerateClusterPie(summaries))

	sb.WriteString("## Riskiest Drivers\n\n")
	sb.WriteString("| Driver | Trips | Missing | Rate | Value lost | Outlier |\n|---|---|---|---|---|---|\n")
	for _, d := range riskiestDrivers(a.Drivers, opts.TopN) {
		outlier := ""
		if d.IsOutlier {
			outlier = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %s (%s) | %d | %d | %s | %s | %s |\n",
			cell(d.DriverName), d.DriverID, d.TotalTrips, d.TotalMissing, percent(d.MissingRate), money(d.TotalValueLost), outlier))
	}
	sb.WriteString("\n")

	sb.WriteString("## Most Missed Products\n\n")
	sb.WriteString("| Product | Category | Incidents | Value lost |\n|---|---|---|---|\n")
	for i, p := range a.Products {
		if i >= opts.TopN {
			break
		}
		sb.WriteString(fmt.Sprintf("| %s (%s) | %s | %d | %s |\n",
			cell(p.ProductName), p.ProductID, cell(p.Category), p.MissingCount, money(p.TotalValueLost)))
	}
	sb.WriteString("\n")
	chart(&sb, opts.Charts, visuals.GenerateProductLossChart(a.Products))

	sb.WriteString("## Regions\n\n")
	sb.WriteString("| Region | Orders | Missing | Missing / order | Value lost |\n|---|---|---|---|---|\n")
	for _, r := range a.Regions {
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.2f | %s |\n",
			cell(r.Region), r.TotalOrders, r.TotalMissing, r.MissingRate, money(r.TotalValueLost)))
	}
	sb.WriteString("\n")
	chart(&sb, opts.Charts, visuals.GenerateRegionChart(a.Regions))

	sb.WriteString("## Delivery Hours\n\n")
	sb.WriteString("| Hour | Orders | Missing | Missing / order |\n|---|---|---|---|\n")
	for _, tp := range a.TimePatterns {
		sb.WriteString(fmt.Sprintf("| %02d | %d | %d | %.2f |\n", tp.Hour, tp.TotalOrders, tp.MissingCount, tp.MissingRate))
	}
	sb.WriteString("\n")
	chart(&sb, opts.Charts, visuals.GenerateHourlyChart(a.TimePatterns))

	return sb.String()
}

func riskiestDrivers(drivers []stats.DriverAnalysis, n int) []stats.DriverAnalysis {
	ranked := stats.RankDrivers(drivers)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func chart(sb *strings.Builder, enabled bool, mermaid string) {
	if !enabled || mermaid == "" {
		return
	}
	sb.WriteString(mermaid)
	sb.WriteString("\n\n")
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// cell keeps user data from breaking table rows.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
