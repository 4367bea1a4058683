package chunker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const goImportFixture = `package main

import (
	"fmt"
	"os"
)

func useFmt() {
	fmt.Println("hi")
}

func useOS() {
	os.Exit(0)
}
`

func TestCollectGlobalImportsGo(t *testing.T) {
	r := NewLanguageRegistry()
	result, err := parseWithContext(context.Background(), r, []byte(goImportFixture), "go")
	require.NoError(t, err)
	profile, _ := r.Profile("go")

	nodes := collectGlobalImports(result.Tree.RootNode(), []byte(goImportFixture), profile)
	require.Len(t, nodes, 1)

	lines := importLines(nodes)
	require.Contains(t, lines, "\t\"fmt\"")
	require.Contains(t, lines, "\t\"os\"")
}

func TestFilterImportsForChunkOnlyKeepsUsedNames(t *testing.T) {
	code := []byte(goImportFixture)
	r := NewLanguageRegistry()
	result, err := parseWithContext(context.Background(), r, code, "go")
	require.NoError(t, err)
	profile, _ := r.Profile("go")

	root := result.Tree.RootNode()
	nodes := collectGlobalImports(root, code, profile)
	lines := importLines(nodes)

	// Span covering only useFmt's body.
	fnStart := indexOf(string(code), "func useFmt")
	fnEnd := fnStart + len(`func useFmt() {
	fmt.Println("hi")
}`)

	filtered := filterImportsForChunk(nodes, lines, root, code, profile, "go", fnStart, fnEnd)
	require.Contains(t, filtered, `"fmt"`)
	require.NotContains(t, filtered, `"os"`)
}

func TestFilterImportsForChunkWildcardTaintsEverything(t *testing.T) {
	code := []byte("from os import *\nimport sys\n\ndef use():\n    getcwd()\n")
	r := NewLanguageRegistry()
	result, err := parseWithContext(context.Background(), r, code, "python")
	require.NoError(t, err)
	profile, _ := r.Profile("python")
	root := result.Tree.RootNode()
	nodes := collectGlobalImports(root, code, profile)
	lines := importLines(nodes)

	filtered := filterImportsForChunk(nodes, lines, root, code, profile, "python", 0, len(code))
	require.Equal(t, lines, filtered)
	require.Contains(t, filtered, "import sys")
}

func TestStripQuotes(t *testing.T) {
	require.Equal(t, "fmt", stripQuotes(`"fmt"`))
	require.Equal(t, "bare", stripQuotes("bare"))
}
