package chunker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkGoFileProducesFormattedChunks(t *testing.T) {
	registry := NewLanguageRegistry()
	code := []byte(`package main

import "fmt"

func greet() {
	fmt.Println("hello")
}
`)
	text, chunks, err := Chunk(context.Background(), registry, "src/main.go", code, FileMetadata{Repo: "demo"}, nil, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	require.NotEmpty(t, text)
	require.Equal(t, "go", chunks[0].Metadata.Language)
}

func TestChunkUnknownExtensionFallsBackToLines(t *testing.T) {
	registry := NewLanguageRegistry()
	code := []byte("some\nplain\ntext\nfile\n")
	_, chunks, err := Chunk(context.Background(), registry, "notes.xyz", code, FileMetadata{}, nil, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	require.Equal(t, MethodLineBased, chunks[0].Metadata.ChunkingMethod)
}

func TestChunkNotebookFile(t *testing.T) {
	registry := NewLanguageRegistry()
	doc := []byte(`{"cells": [{"cell_type": "code", "source": "print(1)"}]}`)
	_, chunks, err := Chunk(context.Background(), registry, "analysis.ipynb", doc, FileMetadata{}, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, MethodNotebook, chunks[0].Metadata.ChunkingMethod)
}

func TestChunkMalformedGoFallsBackToLines(t *testing.T) {
	registry := NewLanguageRegistry()
	code := []byte("package main\n\nfunc broken( {\n")
	_, chunks, err := Chunk(context.Background(), registry, "broken.go", code, FileMetadata{}, nil, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	require.Equal(t, MethodLineBased, chunks[0].Metadata.ChunkingMethod)
}
