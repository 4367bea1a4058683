package chunker

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// ChunkBatch runs Chunk over every input with bounded concurrency. Each
// file's failure is captured in its own BatchResult.Err rather than aborting
// the batch, so one malformed file never prevents the rest from completing.
func ChunkBatch(ctx context.Context, registry *LanguageRegistry, files []FileInput, batchOpts BatchOptions, gen DescriptionGenerator, logger *slog.Logger) []BatchResult {
	if batchOpts.Concurrency <= 0 {
		batchOpts = DefaultBatchOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]BatchResult, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(batchOpts.Concurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			opts := file.Options
			text, chunks, err := Chunk(gCtx, registry, file.Metadata.FilePath, []byte(file.Code), file.Metadata, &opts, gen, logger)
			results[i] = BatchResult{
				FilePath:      file.Metadata.FilePath,
				FormattedText: text,
				Chunks:        chunks,
				Err:           err,
			}
			return nil
		})
	}

	// g.Wait's error is always nil here since each goroutine captures its
	// own failure into results rather than returning it; the errgroup is
	// used purely for its bounded-concurrency scheduling.
	_ = g.Wait()

	return results
}
