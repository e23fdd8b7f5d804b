// Command diffbench runs work-precision sweeps and shootout comparisons
// described by a suite config file. Integrator bindings are expected to
// register themselves into solver.DefaultRegistry via blank imports added to
// a local build of this command.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/diffbench/diffbench/benchmark"
	"github.com/diffbench/diffbench/problem"
	"github.com/diffbench/diffbench/solver"
)

var (
	suitePath string
	outputDir string
	timeout   time.Duration
	verbose   bool
)

func main() {
	root := &cobra.Command{
		Use:   "diffbench",
		Short: "Work-precision and efficiency benchmarking for ODE/SDE integrators",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
				&slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().StringVarP(&suitePath, "suite", "s", "suite.yaml", "suite config file (YAML or JSON)")
	root.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides suite config)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", time.Hour, "overall sweep timeout")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(runCmd(), shootoutCmd(), initCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadSuite() (*benchmark.SuiteConfig, *problem.Spec, error) {
	sc, err := benchmark.LoadSuiteConfig(suitePath)
	if err != nil {
		return nil, nil, err
	}
	if outputDir != "" {
		sc.OutputDir = outputDir
	}
	if err := sc.Validate(); err != nil {
		return nil, nil, err
	}
	spec, err := problem.ByName(sc.Problem)
	if err != nil {
		return nil, nil, err
	}
	return sc, spec, nil
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the work-precision sweep described by the suite config",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, spec, err := loadSuite()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			engine := benchmark.WorkPrecision{
				Registry:    solver.DefaultRegistry,
				Collector:   sc.Collector(),
				Parallelism: sc.Parallelism,
			}
			set, err := engine.Run(ctx, spec, sc.Configs, sc.Tolerances, sc.Dts)
			if err != nil {
				return err
			}

			path, err := benchmark.SaveWorkPrecisionSet(set, sc.OutputDir)
			if err != nil {
				return err
			}
			fmt.Printf("work-precision results written to %s\n", path)
			return nil
		},
	}
}

func shootoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shootout",
		Short: "Run a single-tolerance head-to-head comparison",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, spec, err := loadSuite()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			engine := benchmark.Shootout{
				Registry:  solver.DefaultRegistry,
				Collector: sc.Collector(),
			}
			rs, err := engine.Run(ctx, spec, sc.Configs)
			if err != nil {
				return err
			}

			path, err := benchmark.SaveResultSet(rs, sc.OutputDir)
			if err != nil {
				return err
			}

			fmt.Printf("best: %s\n", rs.Best().Config.Label())
			names, ratios := rs.Names(), rs.EffRatios
			for i := range names {
				fmt.Printf("  %-24s effratio=%.3g\n", names[i], ratios[i])
			}
			fmt.Printf("results written to %s\n", path)
			return nil
		},
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default suite config to the --suite path",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := benchmark.DefaultSuiteConfig()
			if err := sc.Save(suitePath); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", suitePath)
			return nil
		},
	}
}
