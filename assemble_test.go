package chunker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssembleChunksProducesSequentialChunks(t *testing.T) {
	r := NewLanguageRegistry()
	code := []byte(`package main

import "fmt"

func greet() {
	fmt.Println("hello")
}

func farewell() {
	fmt.Println("bye")
}
`)
	result, err := parseWithContext(context.Background(), r, code, "go")
	require.NoError(t, err)
	profile, _ := r.Profile("go")
	root := result.Tree.RootNode()

	spans := buildSpans(root, code, 1500, 100)
	records := assembleChunks(root, code, "go", profile, spans, FileMetadata{Repo: "myrepo", FilePath: "main.go"})

	require.NotEmpty(t, records)
	for i, rec := range records {
		require.Equal(t, i, rec.Metadata.ChunkIndex)
		require.Equal(t, "myrepo/main.go", rec.Metadata.FilePath)
		require.Equal(t, MethodTreeSitter, rec.Metadata.ChunkingMethod)
	}
}

func TestApplyWhitespaceHandoffPreservesBytes(t *testing.T) {
	records := []ChunkRecord{
		{Content: "line one  "},
		{Content: "line two"},
	}
	totalBefore := len(records[0].Content) + len(records[1].Content)

	applyWhitespaceHandoff(records)

	totalAfter := len(records[0].Content) + len(records[1].Content)
	require.Equal(t, totalBefore, totalAfter)
	require.Equal(t, "line one", records[0].Content)
	require.Equal(t, "  line two", records[1].Content)
}

func TestIsImportOnlySpanTrueForImportBlock(t *testing.T) {
	r := NewLanguageRegistry()
	code := []byte("package main\n\nimport \"fmt\"\n")
	result, err := parseWithContext(context.Background(), r, code, "go")
	require.NoError(t, err)
	profile, _ := r.Profile("go")
	root := result.Tree.RootNode()

	importStart := indexOf(string(code), "import")
	sp := Span{Start: importStart, End: len(code)}
	require.True(t, isImportOnlySpan(root, code, sp, profile))
}
