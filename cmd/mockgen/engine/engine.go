package engine

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"delivery-risk/internal/records"
)

type GeneratorConfig struct {
	Scenario     string // "mild", "chaos" or "drift"
	Distribution string // "uniform" or "weibull"
	Orders       int
	Drivers      int
	Customers    int
	Seed         int64
	Now          time.Time
}

var (
	regions    = []string{"North", "South", "East", "West", "Central"}
	firstNames = []string{"Ana", "Bruno", "Chen", "Dana", "Emeka", "Fatima", "Goran", "Hana", "Ivan", "Jade", "Kofi", "Lena"}
	lastNames  = []string{"Smith", "Okafor", "Silva", "Novak", "Haddad", "Kim", "Moreau", "Rossi"}
	catalog    = []struct {
		name     string
		category string
		price    float64
	}{
		{"Whole Milk", "Dairy", 2.49},
		{"Greek Yogurt", "Dairy", 4.99},
		{"Cheddar", "Dairy", 6.75},
		{"Sourdough", "Bakery", 5.50},
		{"Croissants", "Bakery", 7.20},
		{"Bananas", "Produce", 1.99},
		{"Avocados", "Produce", 6.00},
		{"Strawberries", "Produce", 4.25},
		{"Chicken Breast", "Meat", 12.80},
		{"Ground Beef", "Meat", 9.40},
		{"Salmon Fillet", "Seafood", 15.99},
		{"Olive Oil", "Pantry", 11.49},
		{"Coffee Beans", "Pantry", 13.99},
		{"Sparkling Water", "Beverages", 5.99},
		{"Orange Juice", "Beverages", 4.49},
	}
)

// Generate builds a synthetic dataset. The same config always yields the
// same dataset.
//
// Scenarios shape the per-driver missing-item probability:
//   - mild: every driver is reliable
//   - chaos: a few drivers lose items far more often, and late evening
//     deliveries are worse for everyone
//   - drift: the whole fleet degrades over the covered period
func Generate(cfg GeneratorConfig) records.Dataset {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	cfg.Orders = max(cfg.Orders, 0)
	cfg.Drivers = max(cfg.Drivers, 1)
	cfg.Customers = max(cfg.Customers, 1)
	rng := rand.New(rand.NewSource(cfg.Seed))

	var ds records.Dataset

	for i, p := range catalog {
		ds.Products = append(ds.Products, records.Product{
			ProductID:   fmt.Sprintf("PRD-%03d", i+1),
			ProductName: p.name,
			Category:    p.category,
			Price:       formatAmount(p.price),
		})
	}

	propensity := make([]float64, cfg.Drivers)
	for i := range propensity {
		ds.Drivers = append(ds.Drivers, records.Driver{
			DriverID:   fmt.Sprintf("DRV-%03d", i+1),
			DriverName: randomName(rng),
			Age:        21 + rng.Intn(40),
			Trips:      50 + rng.Intn(450),
		})
		propensity[i] = baseMissingRate(cfg, rng)
	}

	for i := 0; i < cfg.Customers; i++ {
		ds.Customers = append(ds.Customers, records.Customer{
			CustomerID:   fmt.Sprintf("CUS-%04d", i+1),
			CustomerName: randomName(rng),
			CustomerAge:  18 + rng.Intn(65),
		})
	}

	// Orders spread over the last 90 days, oldest first.
	const days = 90
	for i := 0; i < cfg.Orders; i++ {
		progress := float64(i) / math.Max(1, float64(cfg.Orders))
		date := cfg.Now.AddDate(0, 0, -days+int(progress*days))
		d := rng.Intn(cfg.Drivers)
		hour := 8 + rng.Intn(14)

		p := propensity[d]
		switch cfg.Scenario {
		case "chaos":
			if hour >= 19 {
				p *= 2
			}
		case "drift":
			p *= 1 + 3*progress
		}
		p = math.Min(p, 0.9)

		items := 5 + rng.Intn(36)
		missing := 0
		for j := 0; j < items; j++ {
			if rng.Float64() < p {
				missing++
			}
		}

		orderID := fmt.Sprintf("ORD-%06d", i+1)
		ds.Orders = append(ds.Orders, records.Order{
			Date:           date.Format("2006-01-02"),
			OrderID:        orderID,
			OrderAmount:    formatAmount(float64(items) * (3 + rng.Float64()*9)),
			Region:         regions[rng.Intn(len(regions))],
			ItemsDelivered: items - missing,
			ItemsMissing:   missing,
			DeliveryHour:   fmt.Sprintf("%02d:%02d", hour, rng.Intn(60)),
			DriverID:       ds.Drivers[d].DriverID,
			CustomerID:     ds.Customers[rng.Intn(cfg.Customers)].CustomerID,
		})

		if missing > 0 {
			slots := make([]string, 3)
			for s := 0; s < min(missing, 3); s++ {
				slots[s] = ds.Products[rng.Intn(len(ds.Products))].ProductID
			}
			ds.MissingItems = append(ds.MissingItems, records.MissingItem{
				OrderID:    orderID,
				ProductID1: slots[0],
				ProductID2: slots[1],
				ProductID3: slots[2],
			})
		}
	}

	return ds
}

// baseMissingRate samples how often a driver loses an item.
func baseMissingRate(cfg GeneratorConfig, rng *rand.Rand) float64 {
	var rate float64
	if cfg.Distribution == "weibull" {
		// Scale 0.01 with a fat right tail for chaos.
		k := 1.5
		if cfg.Scenario == "chaos" {
			k = 0.7
		}
		rate = weibullSample(rng, k, 0.01)
	} else {
		rate = 0.001 + rng.Float64()*0.025
	}
	if cfg.Scenario == "chaos" && rng.Float64() < 0.1 {
		rate += 0.08 + rng.Float64()*0.12
	}
	return math.Min(rate, 0.5)
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}

func randomName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

// formatAmount renders money the way the source exports do: "$1,234.56".
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return "$" + b.String() + "." + frac
}
