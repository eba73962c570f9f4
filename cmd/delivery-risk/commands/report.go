package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"delivery-risk/internal/pipeline"
	"delivery-risk/internal/report"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var reportFlags struct {
	output string
	top    int
	charts bool
	open   bool
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a markdown risk report",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := pipeline.New(cfg).Run(cmd.Context())
		if err != nil {
			return err
		}

		opts := report.Options{
			TopN:   reportFlags.top,
			Charts: cfg.EnableMermaidCharts,
		}
		if cmd.Flags().Changed("charts") {
			opts.Charts = reportFlags.charts
		}

		path, err := filepath.Abs(reportFlags.output)
		if err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		if err := report.Render(f, res, opts); err != nil {
			f.Close()
			return fmt.Errorf("write report: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		log.Info().Str("path", path).Str("runId", res.Metadata.RunID).Msg("Report written")
		fmt.Fprintln(cmd.OutOrStdout(), path)

		if reportFlags.open {
			if err := browser.OpenFile(path); err != nil {
				log.Warn().Err(err).Msg("Failed to open report")
			}
		}
		return nil
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportFlags.output, "output", "o", "delivery-risk-report.md", "report file to write")
	f.IntVar(&reportFlags.top, "top", report.DefaultTopN, "rows per ranked table")
	f.BoolVar(&reportFlags.charts, "charts", false, "embed mermaid charts (defaults to DELIVERY_ENABLE_MERMAID_CHARTS)")
	f.BoolVar(&reportFlags.open, "open", false, "open the report once written")
	rootCmd.AddCommand(reportCmd)
}
