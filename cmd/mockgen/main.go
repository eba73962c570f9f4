package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"delivery-risk/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, chaos, drift")
	distribution := flag.String("distribution", "uniform", "Driver missing-rate distribution: uniform, weibull")
	outDir := flag.String("out", "./data", "Output directory for the source files")
	format := flag.String("format", "csv", "File format: csv, xlsx")
	orders := flag.Int("orders", 2000, "Number of orders to generate")
	drivers := flag.Int("drivers", 40, "Number of drivers")
	customers := flag.Int("customers", 300, "Number of customers")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:     *scenario,
		Distribution: *distribution,
		Orders:       *orders,
		Drivers:      *drivers,
		Customers:    *customers,
		Seed:         *seed,
		Now:          time.Now(),
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Orders: %d, Drivers: %d) to %s...\n", cfg.Scenario, cfg.Distribution, cfg.Orders, cfg.Drivers, *outDir)

	ds := engine.Generate(cfg)

	paths, err := engine.Save(*outDir, ds, *format)
	if err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Println("  " + p)
	}

	fmt.Println("Done.")
}
