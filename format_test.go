package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChunksTaggedMode(t *testing.T) {
	records := []ChunkRecord{
		{
			Content:     "func greet() {}\n",
			ImportLines: []string{`"fmt"`},
			Metadata:    ChunkMetadata{ChunkID: "a"},
		},
	}
	text, structured := formatChunks(records, true)
	require.Contains(t, text, "<<IMPORTS_START>>")
	require.Contains(t, text, `"fmt"`)
	require.Contains(t, text, "<<ORIGINAL_CHUNK_START>>")
	require.Len(t, structured, 1)
	require.Equal(t, structured[0].OriginalContent, records[0].Content)
}

func TestFormatChunksPlaceholderMode(t *testing.T) {
	records := []ChunkRecord{
		{Content: "func greet() {}\n", ImportLines: []string{`"fmt"`}},
	}
	text, _ := formatChunks(records, false)
	require.Contains(t, text, placeholderText)
	require.NotContains(t, text, "<<IMPORTS_START>>")
}

func TestFormatChunksSeparatorJoinsMultipleChunks(t *testing.T) {
	records := []ChunkRecord{
		{Content: "a"},
		{Content: "b"},
	}
	text, _ := formatChunks(records, true)
	require.Equal(t, 1, strings.Count(text, "CHUNK SEPARATOR"))
}

func TestDropDuplicateLastParentBlock(t *testing.T) {
	blocks := []string{"func outer() {", "func inner() {"}
	result := dropDuplicateLastParentBlock(blocks, "func inner() {\n  body\n}")
	require.Len(t, result, 1)
	require.Equal(t, "func outer() {", result[0])
}
