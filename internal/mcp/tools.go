package mcp

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools(server *sdk.Server) {
	sdk.AddTool(server, &sdk.Tool{
		Name: "analyze_delivery_risk",
		Description: "Run the full delivery risk analysis over the configured order, driver, product, customer and missing-item sources. " +
			"Returns per-driver, per-product, per-region and per-hour analytics plus headline KPIs. " +
			"Optional filters narrow drivers, products and regions; KPIs and time patterns always cover the whole dataset.",
		InputSchema: inputSchema[AnalyzeInput](),
	}, s.handleAnalyzeDeliveryRisk)

	sdk.AddTool(server, &sdk.Tool{
		Name: "get_driver_risk",
		Description: "List drivers with their missing-item rate, value lost and risk cluster " +
			"(0 Moderate Risk, 1 Top Performers, 2 Novice, 3 High Risk). Drivers more than 3 standard deviations above the mean are flagged as outliers. " +
			"Results are ordered by missing rate, highest first.",
		InputSchema: inputSchema[DriverRiskInput](),
	}, s.handleGetDriverRisk)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "get_product_losses",
		Description: "List products by number of missing-item incidents, with the order value lost to each product.",
		InputSchema: inputSchema[ProductLossInput](),
	}, s.handleGetProductLosses)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "get_region_analysis",
		Description: "Missing items per order and value lost for each region, worst region first.",
		InputSchema: inputSchema[RegionInput](),
	}, s.handleGetRegionAnalysis)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "get_time_patterns",
		Description: "Missing items per order for each delivery hour that has orders, in hour order.",
		InputSchema: inputSchema[NoInput](),
	}, s.handleGetTimePatterns)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "get_kpis",
		Description: "Headline indicators: overall missing rate, total financial impact, high-risk driver count and critical region threshold.",
		InputSchema: inputSchema[NoInput](),
	}, s.handleGetKPIs)

	sdk.AddTool(server, &sdk.Tool{
		Name: "get_cluster_diagnostics",
		Description: "Driver counts per risk cluster and the k-means centroids computed over driver missing rates. " +
			"The centroids are diagnostic only; cluster labels come from fixed missing-rate thresholds.",
		InputSchema: inputSchema[NoInput](),
	}, s.handleGetClusterDiagnostics)
}
