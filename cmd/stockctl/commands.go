package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/inventory-insights/internal/insight"
	"github.com/rogerio-castellano/inventory-insights/internal/models"
	"github.com/rogerio-castellano/inventory-insights/internal/seed"
	"github.com/rogerio-castellano/inventory-insights/internal/stock"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

type rootOptions struct {
	seed      uint64
	scoreMode string
	score     float64
	logLevel  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Inspect stock levels and insights from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetLevel(opts.logLevel)
		},
	}
	root.PersistentFlags().Uint64Var(&opts.seed, "seed", 1, "seed for the generated sales history")
	root.PersistentFlags().StringVar(&opts.scoreMode, "score-mode", string(stock.ScoreFixed), "optimization score mode (fixed|derived)")
	root.PersistentFlags().Float64Var(&opts.score, "score", stock.DefaultScoring.Fixed, "fixed optimization score")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(summaryCmd(opts))
	root.AddCommand(classifyCmd())
	root.AddCommand(insightsCmd(opts))
	return root
}

func (o *rootOptions) scoring() (stock.Scoring, error) {
	mode := stock.ScoreMode(o.scoreMode)
	if mode != stock.ScoreFixed && mode != stock.ScoreDerived {
		return stock.Scoring{}, fmt.Errorf("unknown score mode %q", o.scoreMode)
	}
	return stock.Scoring{Mode: mode, Fixed: o.score}, nil
}

func summaryCmd(opts *rootOptions) *cobra.Command {
	var watch int
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate the catalogue and list products close to depletion",
		RunE: func(cmd *cobra.Command, args []string) error {
			scoring, err := opts.scoring()
			if err != nil {
				return err
			}
			products := seed.Products(opts.seed)
			return printJSON(cmd.OutOrStdout(), struct {
				stock.Summary
				Watchlist []string `json:"watchlist"`
			}{
				Summary:   stock.Aggregate(products, scoring),
				Watchlist: names(stock.DepletionWatchlist(products, watch)),
			})
		},
	}
	cmd.Flags().IntVar(&watch, "watch", 3, "watchlist size")
	return cmd
}

func classifyCmd() *cobra.Command {
	var current, min, max int
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a single stock level",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), stock.Classify(current, min, max))
		},
	}
	cmd.Flags().IntVar(&current, "current", 0, "current stock")
	cmd.Flags().IntVar(&min, "min", 0, "minimum stock")
	cmd.Flags().IntVar(&max, "max", 0, "maximum stock")
	_ = cmd.MarkFlagRequired("current")
	return cmd
}

func insightsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Run the offline analysis over the catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries := insight.Summarize(seed.Products(opts.seed))
			raw, err := insight.HeuristicProvider{}.Analyze(cmd.Context(), summaries)
			if err != nil {
				return err
			}
			insights, err := insight.Normalize(raw)
			if err != nil {
				return fmt.Errorf("heuristic output rejected: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), insights)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}
