package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"delivery-risk/internal/filter"
	"delivery-risk/internal/pipeline"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var analyzeFlags struct {
	format     string
	output     string
	regions    []string
	clusters   []int
	categories []string
	minRate    float64
	maxRate    float64
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the analysis and print the result as JSON or YAML",
	Example: `  delivery-risk analyze --format yaml
  delivery-risk analyze --region North --cluster 3 --min-rate 0.05`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := filterOptions(cmd)
		if err := opts.Validate(); err != nil {
			return err
		}

		res, err := pipeline.New(cfg).Run(cmd.Context())
		if err != nil {
			return err
		}
		res.Analysis = filter.Apply(res.Analysis, opts)

		if analyzeFlags.output == "" {
			return writeResult(cmd.OutOrStdout(), res, analyzeFlags.format)
		}
		if err := writeResultFile(analyzeFlags.output, res, analyzeFlags.format); err != nil {
			return err
		}
		log.Info().Str("path", analyzeFlags.output).Msg("Analysis written")
		return nil
	},
}

// writeResultFile writes res to path. A failed Close is reported since it
// can be the only sign of a short write.
func writeResultFile(path string, res *pipeline.Result, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := writeResult(f, res, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// filterOptions collects only the filter flags the user actually set.
func filterOptions(cmd *cobra.Command) filter.Options {
	opts := filter.Options{
		Regions:        analyzeFlags.regions,
		DriverClusters: analyzeFlags.clusters,
		Categories:     analyzeFlags.categories,
	}
	if cmd.Flags().Changed("min-rate") {
		v := analyzeFlags.minRate
		opts.MinMissingRate = &v
	}
	if cmd.Flags().Changed("max-rate") {
		v := analyzeFlags.maxRate
		opts.MaxMissingRate = &v
	}
	return opts
}

// writeResult encodes res in the requested format. YAML goes through the
// JSON encoding so both formats share the same field names.
func writeResult(w io.Writer, res *pipeline.Result, format string) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	switch format {
	case "json", "":
		data = append(data, '\n')
	case "yaml", "yml":
		var generic interface{}
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		data, err = yaml.Marshal(generic)
		if err != nil {
			return fmt.Errorf("encode result as yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}

	_, err = w.Write(data)
	return err
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeFlags.format, "format", "f", "json", "output format: json or yaml")
	f.StringVarP(&analyzeFlags.output, "output", "o", "", "write to this file instead of stdout")
	f.StringSliceVar(&analyzeFlags.regions, "region", nil, "keep only these regions")
	f.IntSliceVar(&analyzeFlags.clusters, "cluster", nil, "keep only drivers in these risk clusters (0-3)")
	f.StringSliceVar(&analyzeFlags.categories, "category", nil, "keep only products in these categories")
	f.Float64Var(&analyzeFlags.minRate, "min-rate", 0, "lowest driver missing rate to keep")
	f.Float64Var(&analyzeFlags.maxRate, "max-rate", 1, "highest driver missing rate to keep")
	rootCmd.AddCommand(analyzeCmd)
}
