package filter

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"delivery-risk/internal/stats"

	"github.com/go-playground/validator/v10"
)

// Options restricts already computed analysis collections. A nil or empty
// field leaves its dimension unrestricted; supplied dimensions are ANDed.
type Options struct {
	Regions        []string `json:"regions,omitempty" jsonschema:"keep only these regions"`
	DriverClusters []int    `json:"driverClusters,omitempty" validate:"omitempty,dive,min=0,max=3" jsonschema:"keep only drivers in these risk clusters (0-3)"`
	Categories     []string `json:"categories,omitempty" jsonschema:"keep only products in these categories"`
	MinMissingRate *float64 `json:"minMissingRate,omitempty" validate:"omitempty,min=0,max=1" jsonschema:"lowest driver missing rate to keep"`
	MaxMissingRate *float64 `json:"maxMissingRate,omitempty" validate:"omitempty,min=0,max=1" jsonschema:"highest driver missing rate to keep"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// IsZero reports whether no dimension is restricted.
func (o Options) IsZero() bool {
	return len(o.Regions) == 0 && len(o.DriverClusters) == 0 && len(o.Categories) == 0 &&
		o.MinMissingRate == nil && o.MaxMissingRate == nil
}

// Validate checks cluster ids and the missing-rate range.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid filter options: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid filter options: %w", err)
	}
	if o.MinMissingRate != nil && o.MaxMissingRate != nil && *o.MinMissingRate > *o.MaxMissingRate {
		return fmt.Errorf("invalid filter options: minMissingRate %v exceeds maxMissingRate %v", *o.MinMissingRate, *o.MaxMissingRate)
	}
	return nil
}

// Apply returns a copy of a with drivers, products and regions narrowed by
// opts. Time patterns, KPIs and cluster diagnostics pass through unchanged;
// nothing is recomputed.
func Apply(a stats.Analysis, opts Options) stats.Analysis {
	out := a
	out.Drivers = Drivers(a.Drivers, opts)
	out.Products = Products(a.Products, opts)
	out.Regions = Regions(a.Regions, opts)
	return out
}

// Drivers keeps drivers whose cluster is listed and whose missing rate lies
// within [MinMissingRate, MaxMissingRate].
func Drivers(drivers []stats.DriverAnalysis, opts Options) []stats.DriverAnalysis {
	return keep(drivers, func(d stats.DriverAnalysis) bool {
		if len(opts.DriverClusters) > 0 && !slices.Contains(opts.DriverClusters, d.Cluster) {
			return false
		}
		if opts.MinMissingRate != nil && d.MissingRate < *opts.MinMissingRate {
			return false
		}
		if opts.MaxMissingRate != nil && d.MissingRate > *opts.MaxMissingRate {
			return false
		}
		return true
	})
}

func Products(products []stats.ProductAnalysis, opts Options) []stats.ProductAnalysis {
	if len(opts.Categories) == 0 {
		return slices.Clone(products)
	}
	return keep(products, func(p stats.ProductAnalysis) bool {
		return slices.Contains(opts.Categories, p.Category)
	})
}

func Regions(regions []stats.RegionAnalysis, opts Options) []stats.RegionAnalysis {
	if len(opts.Regions) == 0 {
		return slices.Clone(regions)
	}
	return keep(regions, func(r stats.RegionAnalysis) bool {
		return slices.Contains(opts.Regions, r.Region)
	})
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}
