package chunker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkBatchProcessesAllFiles(t *testing.T) {
	registry := NewLanguageRegistry()
	files := []FileInput{
		{Code: "package main\nfunc a() {}\n", Metadata: FileMetadata{FilePath: "a.go"}},
		{Code: "package main\nfunc b() {}\n", Metadata: FileMetadata{FilePath: "b.go"}},
		{Code: "plain text\nfile\n", Metadata: FileMetadata{FilePath: "c.txt"}},
	}

	results := ChunkBatch(context.Background(), registry, files, DefaultBatchOptions(), nil, nil)
	require.Len(t, results, 3)
	for _, r := range results {
		require.NoError(t, r.Err)
		require.NotEmpty(t, r.Chunks)
	}
}

func TestChunkBatchDefaultsConcurrencyWhenUnset(t *testing.T) {
	registry := NewLanguageRegistry()
	files := []FileInput{{Code: "package main\n", Metadata: FileMetadata{FilePath: "a.go"}}}
	results := ChunkBatch(context.Background(), registry, files, BatchOptions{}, nil, nil)
	require.Len(t, results, 1)
}
