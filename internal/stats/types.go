package stats

// Risk cluster labels assigned to drivers.
const (
	ClusterModerateRisk  = 0
	ClusterTopPerformer  = 1
	ClusterNovice        = 2
	ClusterHighRisk      = 3
	ClusterCount         = 4
	CriticalRegionsCount = 3
)

// DriverAnalysis aggregates every order a driver delivered.
type DriverAnalysis struct {
	DriverID       string  `json:"driver_id"`
	DriverName     string  `json:"driver_name"`
	TotalTrips     int     `json:"total_trips"`
	TotalMissing   int     `json:"total_missing"`
	TotalDelivered int     `json:"total_delivered"`
	MissingRate    float64 `json:"missing_rate"`     // missing / (missing + delivered)
	TotalValueLost float64 `json:"total_value_lost"` // order value apportioned by missing share
	Cluster        int     `json:"cluster"`
	IsOutlier      bool    `json:"is_outlier"`
}

// ProductAnalysis aggregates missing-item incidents for one product.
// MissingRate is incidents per order across the whole dataset, not per sale.
type ProductAnalysis struct {
	ProductID      string  `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Category       string  `json:"category"`
	MissingCount   int     `json:"missing_count"`
	TotalValueLost float64 `json:"total_value_lost"`
	MissingRate    float64 `json:"missing_rate"`
	Price          float64 `json:"price"`
}

// RegionAnalysis aggregates orders per region. MissingRate is missing items
// per order.
type RegionAnalysis struct {
	Region         string  `json:"region"`
	TotalOrders    int     `json:"total_orders"`
	TotalMissing   int     `json:"total_missing"`
	MissingRate    float64 `json:"missing_rate"`
	TotalValueLost float64 `json:"total_value_lost"`
}

// TimePattern aggregates orders delivered within one clock hour.
type TimePattern struct {
	Hour         int     `json:"hour"`
	MissingCount int     `json:"missing_count"`
	TotalOrders  int     `json:"total_orders"`
	MissingRate  float64 `json:"missing_rate"`
}

type KPIMetrics struct {
	OverallMissingRate   float64 `json:"overall_missing_rate"`
	TotalFinancialImpact float64 `json:"total_financial_impact"`
	HighRiskDrivers      int     `json:"high_risk_drivers"`
	CriticalRegions      int     `json:"critical_regions"` // static business threshold
}

// ClusterResult describes one k-means centroid over driver features.
// These are diagnostics; DriverAnalysis.Cluster comes from fixed thresholds.
type ClusterResult struct {
	ClusterID      int       `json:"cluster_id"`
	Center         []float64 `json:"center"`
	Drivers        []string  `json:"drivers"`
	AvgMissingRate float64   `json:"avg_missing_rate"`
	Description    string    `json:"description"`
}

// ClusterSummary counts drivers per assigned risk label.
type ClusterSummary struct {
	ClusterID         int     `json:"cluster_id"`
	Description       string  `json:"description"`
	DriverCount       int     `json:"driver_count"`
	AvgMissingRate    float64 `json:"avg_missing_rate"`
	MedianMissingRate float64 `json:"median_missing_rate"`
	OutlierCount      int     `json:"outlier_count"`
}

// Analysis is the full analytical output of one pipeline run.
type Analysis struct {
	Drivers      []DriverAnalysis  `json:"drivers"`
	Products     []ProductAnalysis `json:"products"`
	Regions      []RegionAnalysis  `json:"regions"`
	TimePatterns []TimePattern     `json:"timePatterns"`
	KPIs         KPIMetrics        `json:"kpis"`
	Clusters     []ClusterResult   `json:"clusters,omitempty"`
}
