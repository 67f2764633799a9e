package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xuhaidong1/idgen/cmd/ioc"
	"github.com/xuhaidong1/idgen/internal/bench"
)

func newBenchCmd(opts *rootOptions) *cobra.Command {
	var (
		workers int
		count   int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "多协程并发发号，检查唯一性和单调性",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("invalid --count %d; must be positive", count)
			}
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := ioc.InitLogger(cfg.Log)
			g, err := ioc.NewGenerator(cfg.Generator, logger, nil)
			if err != nil {
				return err
			}
			runner, err := bench.NewRunner(g, workers, logger)
			if err != nil {
				return err
			}
			defer func() {
				_ = runner.Release(3 * time.Second)
			}()

			report, err := runner.Run(cmd.Context(), count)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err = enc.Encode(struct {
				bench.Report
				RatePerSecond float64 `json:"rate_per_second"`
			}{report, report.Rate()}); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("bench failed: %d duplicates, %d errors, %d non-monotonic",
					report.Duplicates, report.Errors, report.NonMonotonic)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 8, "并发协程数")
	cmd.Flags().IntVar(&count, "count", 100000, "生成总数")
	return cmd
}
