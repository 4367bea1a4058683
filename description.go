package chunker

import (
	"context"
	"fmt"
)

// DescriptionGenerator produces human-readable descriptions for a file's
// chunks. Implementations may call out to an LLM; failures are expected and
// must be handled by falling back to a placeholder rather than propagating,
// since a missing description should never fail the whole chunking call.
type DescriptionGenerator interface {
	GenerateDescriptions(ctx context.Context, chunks []ChunkRecord, fullFileContent string) ([]ChunkRecord, error)
}

// NoopDescriptionGenerator leaves chunks untouched and never fails. The
// chunkctl command passes it to Chunk.
type NoopDescriptionGenerator struct{}

func (NoopDescriptionGenerator) GenerateDescriptions(_ context.Context, chunks []ChunkRecord, _ string) ([]ChunkRecord, error) {
	return chunks, nil
}

// applyPlaceholderDescriptions marks every chunk's file and relational
// descriptions as unavailable, recording why. Used both when descriptions are
// requested but no generator is configured and when a generator errors out.
func applyPlaceholderDescriptions(chunks []ChunkRecord, reason string) []ChunkRecord {
	placeholder := fmt.Sprintf("... unavailable (%s)", reason)
	for i := range chunks {
		chunks[i].Metadata.FileDescription = placeholder
		chunks[i].Metadata.RelationalDescription = placeholder
	}
	return chunks
}

// generateDescriptions runs gen over chunks, falling back to placeholders on
// any error (or when gen is nil) so that a description-provider outage
// degrades gracefully instead of failing the whole chunking call. The error
// is not logged; it is visible only in the placeholder text.
func generateDescriptions(ctx context.Context, gen DescriptionGenerator, chunks []ChunkRecord, fullFileContent string) []ChunkRecord {
	if gen == nil {
		return applyPlaceholderDescriptions(chunks, "no description generator configured")
	}
	updated, err := gen.GenerateDescriptions(ctx, chunks, fullFileContent)
	if err != nil {
		return applyPlaceholderDescriptions(chunks, err.Error())
	}
	return updated
}
