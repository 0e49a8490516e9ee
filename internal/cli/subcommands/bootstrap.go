package subcommands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MovieMatch/internal/catalog"
	"MovieMatch/internal/config"
	"MovieMatch/internal/logging"
	"MovieMatch/internal/metrics"
	"MovieMatch/internal/recommend"
	"MovieMatch/internal/similarity"

	"go.uber.org/zap"
)

// loadRecommender loads the catalog and builds the similarity index once.
// Everything it returns is read-only for the rest of the process.
func loadRecommender(ctx context.Context, cfg config.Config) (*recommend.Recommender, error) {
	start := time.Now()
	src := catalog.Source{
		Path:   cfg.Dataset.Path,
		Format: cfg.Dataset.Format,
		Table:  cfg.Dataset.Table,
	}

	cat, err := catalog.Load(ctx, src)
	if err != nil {
		logging.L().Error("failed to load catalog", zap.String("path", src.Path), zap.Error(err))
		return nil, err
	}

	matrix := similarity.Build(cat.Genres())
	took := time.Since(start)
	metrics.ObserveIndex(cat.Len(), len(matrix.Vocabulary()), took)
	logging.L().Info("similarity index ready",
		zap.String("path", src.Path),
		zap.String("format", src.ResolveFormat()),
		zap.Int("entries", cat.Len()),
		zap.Int("dropped", cat.Dropped()),
		zap.Int("vocabulary", len(matrix.Vocabulary())),
		zap.Duration("took", took),
	)

	return recommend.New(cat, matrix, cfg.Recommend.Limit), nil
}

// startupMessage turns a load failure into the text shown to the user.
func startupMessage(err error, path string) string {
	var schemaErr *catalog.SchemaError
	switch {
	case errors.Is(err, catalog.ErrDatasetNotFound):
		return fmt.Sprintf("Dataset not found! Make sure '%s' exists (path is relative to the working directory).", path)
	case errors.As(err, &schemaErr):
		return fmt.Sprintf("Dataset must have '%s' and '%s' columns.", catalog.TitleColumn, catalog.GenreColumn)
	default:
		return fmt.Sprintf("Failed to load dataset: %v", err)
	}
}

// notFoundText is shown for every title missing from the catalog.
const notFoundText = "Movie not found in the database."
