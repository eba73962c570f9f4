package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"delivery-risk/internal/config"
	"delivery-risk/internal/records"
	"delivery-risk/internal/stats"
	"delivery-risk/internal/tabular"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrSourceUnavailable wraps every failure to read one of the input sources.
var ErrSourceUnavailable = errors.New("source unavailable")

// Source names one tabular input and where to read it from.
type Source struct {
	Name string
	Path string
}

// Sources lists the five inputs of a run.
type Sources struct {
	Orders       Source
	Drivers      Source
	Products     Source
	Customers    Source
	MissingItems Source
}

// SourcesFromConfig resolves the configured source files.
func SourcesFromConfig(cfg *config.AppConfig) Sources {
	return Sources{
		Orders:       Source{Name: "orders", Path: cfg.SourcePath(cfg.Orders)},
		Drivers:      Source{Name: "drivers", Path: cfg.SourcePath(cfg.Drivers)},
		Products:     Source{Name: "products", Path: cfg.SourcePath(cfg.Products)},
		Customers:    Source{Name: "customers", Path: cfg.SourcePath(cfg.Customers)},
		MissingItems: Source{Name: "missing items", Path: cfg.SourcePath(cfg.MissingItems)},
	}
}

// Metadata describes the inputs and timing of a run.
type Metadata struct {
	RunID             string    `json:"runId"`
	TotalOrders       int       `json:"totalOrders"`
	TotalDrivers      int       `json:"totalDrivers"`
	TotalProducts     int       `json:"totalProducts"`
	TotalCustomers    int       `json:"totalCustomers"`
	TotalMissingItems int       `json:"totalMissingItems"`
	ProcessedAt       time.Time `json:"processedAt"`
}

// Result is everything one run produces.
type Result struct {
	Raw      records.Dataset `json:"raw"`
	Analysis stats.Analysis  `json:"analysis"`
	Metadata Metadata        `json:"metadata"`
}

// Pipeline turns the five sources into a Result. It holds configuration
// only; every Run reads and computes from scratch.
type Pipeline struct {
	sources   Sources
	delimiter rune
	opts      stats.Options
	now       func() time.Time
}

// New builds a pipeline from application configuration.
func New(cfg *config.AppConfig) *Pipeline {
	return &Pipeline{
		sources:   SourcesFromConfig(cfg),
		delimiter: cfg.DelimiterRune(),
		opts:      stats.Options{Seed: cfg.KMeansSeed},
		now:       time.Now,
	}
}

// NewWithSources builds a pipeline over explicit sources.
func NewWithSources(sources Sources, delimiter rune, opts stats.Options) *Pipeline {
	return &Pipeline{
		sources:   sources,
		delimiter: delimiter,
		opts:      opts,
		now:       time.Now,
	}
}

// Run loads all sources and computes the analysis. Any unreadable source
// fails the whole run; no partial result is returned.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ds, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Raw:      ds,
		Analysis: stats.Analyze(ds, p.opts),
		Metadata: Metadata{
			RunID:             uuid.New().String(),
			TotalOrders:       len(ds.Orders),
			TotalDrivers:      len(ds.Drivers),
			TotalProducts:     len(ds.Products),
			TotalCustomers:    len(ds.Customers),
			TotalMissingItems: len(ds.MissingItems),
			ProcessedAt:       p.now().UTC(),
		},
	}

	log.Info().
		Str("runId", result.Metadata.RunID).
		Int("orders", result.Metadata.TotalOrders).
		Int("drivers", result.Metadata.TotalDrivers).
		Msg("Pipeline run complete")

	return result, nil
}

// Load reads and transforms the five sources concurrently. Each reader owns
// its own slot of the dataset.
func (p *Pipeline) Load(ctx context.Context) (records.Dataset, error) {
	var ds records.Dataset
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := p.read(ctx, p.sources.Orders)
		ds.Orders = records.TransformOrders(rows)
		return err
	})
	g.Go(func() error {
		rows, err := p.read(ctx, p.sources.Drivers)
		ds.Drivers = records.TransformDrivers(rows)
		return err
	})
	g.Go(func() error {
		rows, err := p.read(ctx, p.sources.Products)
		ds.Products = records.TransformProducts(rows)
		return err
	})
	g.Go(func() error {
		rows, err := p.read(ctx, p.sources.Customers)
		ds.Customers = records.TransformCustomers(rows)
		return err
	})
	g.Go(func() error {
		rows, err := p.read(ctx, p.sources.MissingItems)
		ds.MissingItems = records.TransformMissingItems(rows)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Failed to load delivery sources")
		return records.Dataset{}, err
	}
	return ds, nil
}

func (p *Pipeline) read(ctx context.Context, src Source) ([]tabular.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name, err)
	}

	var rows []tabular.Row
	if strings.EqualFold(filepath.Ext(src.Path), ".xlsx") {
		var err error
		rows, err = tabular.ReadWorkbook(src.Path, "")
		if err != nil {
			return nil, fmt.Errorf("load %s: %w: %w", src.Name, ErrSourceUnavailable, err)
		}
	} else {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w: %w", src.Name, ErrSourceUnavailable, err)
		}
		rows = tabular.ParseWithDelimiter(string(data), p.delimiter)
	}

	log.Debug().Str("source", src.Name).Str("path", src.Path).Int("rows", len(rows)).Msg("Loaded source")
	return rows, nil
}
