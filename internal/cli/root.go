package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"MovieMatch/internal/cli/subcommands"
	"MovieMatch/internal/config"

	"github.com/spf13/cobra"
)

// Execute is the entry point for the MovieMatch CLI.
func Execute() int {
	var code int
	cmd := newRootCommand(&code)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return code
}

// datasetFlags override the dataset section of the resolved configuration.
type datasetFlags struct {
	path   string
	format string
	table  string
	top    int
}

func (f datasetFlags) apply(cfg *config.Config) {
	if f.path != "" {
		cfg.Dataset.Path = f.path
	}
	if f.format != "" {
		cfg.Dataset.Format = strings.ToLower(f.format)
	}
	if f.table != "" {
		cfg.Dataset.Table = f.table
	}
	if f.top > 0 {
		cfg.Recommend.Limit = f.top
	}
}

// newRootCommand builds the command tree. Subcommand exit codes are stored in
// code; returned errors are reserved for usage and configuration failures.
func newRootCommand(code *int) *cobra.Command {
	var flags datasetFlags
	var cfg config.Config

	rootCmd := &cobra.Command{
		Use:           "moviematch",
		Short:         "Content-based movie recommendations from genre similarity",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.Resolve()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			flags.apply(&resolved)
			cfg = resolved
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = subcommands.RunTui(cmd.Context(), cfg)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.path, "dataset", "d", "", "Path to the movie dataset (csv, tsv, sqlite, duckdb, parquet or json)")
	pf.StringVar(&flags.format, "format", "", "Dataset format (overrides the file extension)")
	pf.StringVar(&flags.table, "table", "", "Table holding the catalog in SQL datasets")
	pf.IntVarP(&flags.top, "top", "n", 0, "Maximum number of recommendations (0 uses config default)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Open the interactive recommendation window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = subcommands.RunTui(cmd.Context(), cfg)
			return nil
		},
	})

	rootCmd.AddCommand(newRecommendCommand(&cfg, code))
	rootCmd.AddCommand(newServeCommand(&cfg, code))

	rootCmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = subcommands.RunConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	})

	return rootCmd
}

func newRecommendCommand(cfg *config.Config, code *int) *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Print the movies most similar to a catalog title",
		Long: "Print the movies most similar to a catalog title.\n\n" +
			"The title must match the catalog exactly, including case and spacing.\n" +
			"Several arguments are joined with single spaces.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = subcommands.RunRecommend(cmd.Context(), *cfg, strings.Join(args, " "), serverURL)
			return nil
		},
	}
	cmd.Flags().StringVar(&serverURL, "server", "", "Query a running `moviematch serve` at this URL instead of loading the dataset")
	return cmd
}

func newServeCommand(cfg *config.Config, code *int) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer recommendation queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = subcommands.RunServe(cmd.Context(), *cfg, host, port)
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Server host address (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port (overrides config)")
	return cmd
}
