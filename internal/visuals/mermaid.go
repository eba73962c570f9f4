package visuals

import (
	"fmt"
	"math"
	"strings"

	"delivery-risk/internal/stats"
)

// maxBars keeps bar charts readable in Mermaid's layout engine.
const maxBars = 15

// GenerateClusterPie creates a Mermaid pie chart of drivers per risk cluster.
func GenerateClusterPie(summaries []stats.ClusterSummary) string {
	total := 0
	for _, s := range summaries {
		total += s.DriverCount
	}
	if total == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie title Driver Risk Clusters\n")
	for _, s := range summaries {
		if s.DriverCount == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" : %d\n", s.Description, s.DriverCount))
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateRegionChart creates a Mermaid bar chart of missing items per order by region.
func GenerateRegionChart(regions []stats.RegionAnalysis) string {
	if len(regions) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0

	for i, r := range regions {
		if i >= maxBars {
			break
		}
		labels = append(labels, quote(r.Region))
		values = append(values, fmt.Sprintf("%.2f", r.MissingRate))
		maxVal = math.Max(maxVal, r.MissingRate)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Missing Items per Order by Region\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Missing / Order\" 0 --> %s\n", axisMax(maxVal)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateHourlyChart creates a Mermaid line chart across all 24 hours.
// Hours without orders are drawn as zero.
func GenerateHourlyChart(patterns []stats.TimePattern) string {
	if len(patterns) == 0 {
		return ""
	}

	rates := make([]float64, 24)
	for _, p := range patterns {
		if p.Hour >= 0 && p.Hour < 24 {
			rates[p.Hour] = p.MissingRate
		}
	}

	labels := make([]string, 24)
	values := make([]string, 24)
	maxVal := 0.0
	for h := 0; h < 24; h++ {
		labels[h] = fmt.Sprintf("\"%02d\"", h)
		values[h] = fmt.Sprintf("%.2f", rates[h])
		maxVal = math.Max(maxVal, rates[h])
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Missing Items per Order by Delivery Hour\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Missing / Order\" 0 --> %s\n", axisMax(maxVal)))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateProductLossChart creates a Mermaid bar chart of the most frequently missing products.
func GenerateProductLossChart(products []stats.ProductAnalysis) string {
	var labels []string
	var values []string
	maxVal := 0

	for _, p := range products {
		if len(labels) >= maxBars || p.MissingCount == 0 {
			break
		}
		name := p.ProductName
		if name == "" {
			name = p.ProductID
		}
		labels = append(labels, quote(name))
		values = append(values, fmt.Sprintf("%d", p.MissingCount))
		maxVal = max(maxVal, p.MissingCount)
	}
	if len(labels) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Most Frequently Missing Products\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Incidents\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

func quote(label string) string {
	return fmt.Sprintf("\"%s\"", strings.ReplaceAll(label, "\"", "'"))
}

// axisMax leaves headroom above the tallest value and never collapses to zero.
func axisMax(v float64) string {
	top := v * 1.2
	if top <= 0 {
		top = 1
	}
	return fmt.Sprintf("%.2f", top)
}
