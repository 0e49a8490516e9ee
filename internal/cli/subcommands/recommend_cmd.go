package subcommands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"MovieMatch/client"
	"MovieMatch/internal/config"
	"MovieMatch/internal/logging"
	"MovieMatch/internal/metrics"
	"MovieMatch/internal/recommend"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RunRecommend answers a single query and prints the ranked titles. With a
// server URL the query goes to a running `moviematch serve` instead of a
// locally built index.
func RunRecommend(ctx context.Context, cfg config.Config, title, serverURL string) int {
	if err := logging.Init(cfg.LogToFile(), cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		return 1
	}
	defer logging.Close()

	if serverURL != "" {
		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		results, err := client.NewHTTPClient(serverURL).Recommend(ctx, title)
		var nf *client.NotFoundError
		switch {
		case errors.As(err, &nf):
			printNotFound(os.Stderr, nf.Suggestions)
			return 1
		case err != nil:
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		if len(results) == 0 {
			printNotFound(os.Stderr, nil)
			return 1
		}
		renderResults(os.Stdout, results)
		return 0
	}

	rec, err := loadRecommender(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, startupMessage(err, cfg.Dataset.Path))
		return 1
	}

	results, found := rec.Ranked(title)
	metrics.ObserveQuery("cli", found && len(results) > 0)
	if len(results) == 0 {
		printNotFound(os.Stderr, rec.Suggest(title, cfg.Recommend.Suggestions))
		return 1
	}

	renderResults(os.Stdout, results)
	return 0
}

func printNotFound(w io.Writer, suggestions []string) {
	fmt.Fprintln(w, notFoundText)
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(w, "Did you mean:")
	for _, s := range suggestions {
		fmt.Fprintf(w, "  %s\n", s)
	}
}

// renderResults writes results as a table with rank, title and score.
func renderResults(w io.Writer, results []recommend.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Title", "Score"})
	for i, r := range results {
		t.AppendRow(table.Row{i + 1, r.Title, fmt.Sprintf("%.4f", r.Score)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}
