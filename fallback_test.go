package chunker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkByLinesWindowsWithOverlap(t *testing.T) {
	var content string
	for i := 0; i < 100; i++ {
		content += "line\n"
	}
	records, err := chunkByLines([]byte(content), FileMetadata{Repo: "r", FilePath: "f.txt"}, 40, 15)
	require.NoError(t, err)
	require.NotEmpty(t, records)
	require.Equal(t, "line-based", string(records[0].Metadata.ChunkingMethod))
	require.Equal(t, 1, records[0].Metadata.StartLine)
	require.Equal(t, 40, records[0].Metadata.EndLine)
	require.Equal(t, 26, records[1].Metadata.StartLine)
}

func TestChunkByLinesRejectsInvalidOverlap(t *testing.T) {
	_, err := chunkByLines([]byte("a\nb\n"), FileMetadata{}, 10, 10)
	require.ErrorIs(t, err, ErrInvalidFallbackOverlap)

	_, err = chunkByLines([]byte("a\nb\n"), FileMetadata{}, 10, -1)
	require.ErrorIs(t, err, ErrInvalidFallbackOverlap)
}

func TestChunkByLinesEmptyContent(t *testing.T) {
	records, err := chunkByLines(nil, FileMetadata{}, 40, 15)
	require.NoError(t, err)
	require.Nil(t, records)
}
