package chunker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIdentifiersInSpanGo(t *testing.T) {
	r := NewLanguageRegistry()
	code := []byte(`package main

func use() {
	fmt.Println(os.Args)
}
`)
	result, err := parseWithContext(context.Background(), r, code, "go")
	require.NoError(t, err)
	profile, _ := r.Profile("go")

	root := result.Tree.RootNode()
	start := 0
	end := len(code)
	ids := findIdentifiersInSpan(root, start, end, code, profile)

	require.True(t, ids["fmt"])
	require.True(t, ids["Println"])
	require.True(t, ids["os"])
	require.True(t, ids["Args"])
}

func TestFindIdentifiersInSpanEmptyRange(t *testing.T) {
	r := NewLanguageRegistry()
	code := []byte("package main\n")
	result, err := parseWithContext(context.Background(), r, code, "go")
	require.NoError(t, err)
	profile, _ := r.Profile("go")

	ids := findIdentifiersInSpan(result.Tree.RootNode(), 5, 5, code, profile)
	require.Empty(t, ids)
}
