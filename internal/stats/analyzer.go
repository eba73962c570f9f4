package stats

import (
	"math/rand"

	"delivery-risk/internal/records"

	"github.com/rs/zerolog/log"
)

// Options tunes a single Analyze call.
type Options struct {
	// Seed initialises k-means centroids.
	Seed int64
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{Seed: DefaultSeed}
}

// Analyze runs every analyzer over one dataset. The analyzers share no
// state; each builds its own aggregation maps and discards them on return.
func Analyze(ds records.Dataset, opts Options) Analysis {
	rng := rand.New(rand.NewSource(opts.Seed))

	driverRisk := AnalyzeDrivers(ds.Orders, ds.Drivers, rng)
	products := AnalyzeProducts(ds.Orders, ds.Products, ds.MissingItems)
	regions := AnalyzeRegions(ds.Orders)
	hours := AnalyzeTimePatterns(ds.Orders)
	kpis := CalculateKPIs(ds.Orders, driverRisk.Drivers)

	log.Debug().
		Int("drivers", len(driverRisk.Drivers)).
		Int("products", len(products)).
		Int("regions", len(regions)).
		Int("hours", len(hours)).
		Int("highRiskDrivers", kpis.HighRiskDrivers).
		Msg("Analysis complete")

	return Analysis{
		Drivers:      driverRisk.Drivers,
		Products:     products,
		Regions:      regions,
		TimePatterns: hours,
		KPIs:         kpis,
		Clusters:     driverRisk.Clusters,
	}
}
