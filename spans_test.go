package chunker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNwsCumsumCountsNonWhitespace(t *testing.T) {
	code := []byte("a b\tc\n")
	cumsum := preprocessNwsCumsum(code)
	require.Equal(t, 3, cumsum.count(0, len(code)))
	require.Equal(t, 1, cumsum.count(0, 1))
}

func TestBuildSpansRespectsChildBoundaries(t *testing.T) {
	r := NewLanguageRegistry()
	code := []byte(`package main

func a() {
	println("a")
}

func b() {
	println("b")
}
`)
	result, err := parseWithContext(context.Background(), r, code, "go")
	require.NoError(t, err)

	spans := buildSpans(result.Tree.RootNode(), code, 1500, 100)
	require.NotEmpty(t, spans)

	// the full file should be covered, end to end, with no overlap.
	require.Equal(t, int(result.Tree.RootNode().StartByte()), spans[0].Start)
	require.Equal(t, int(result.Tree.RootNode().EndByte()), spans[len(spans)-1].End)
	for i := 1; i < len(spans); i++ {
		require.Equal(t, spans[i-1].End, spans[i].Start)
	}
}

func TestBuildSpansSplitsOversizedFile(t *testing.T) {
	r := NewLanguageRegistry()
	var code []byte
	for i := 0; i < 50; i++ {
		code = append(code, []byte("func f"+string(rune('a'+i%26))+"() {\n\tprintln(1)\n}\n\n")...)
	}
	result, err := parseWithContext(context.Background(), r, append([]byte("package main\n\n"), code...), "go")
	require.NoError(t, err)

	spans := buildSpans(result.Tree.RootNode(), append([]byte("package main\n\n"), code...), 200, 20)
	require.Greater(t, len(spans), 1)
}

func TestDropInsignificantSpansRemovesBlank(t *testing.T) {
	code := []byte("   \n\n  x")
	cumsum := preprocessNwsCumsum(code)
	spans := []Span{{Start: 0, End: 5}, {Start: 5, End: 8}}
	kept := dropInsignificantSpans(spans, cumsum)
	require.Len(t, kept, 1)
	require.Equal(t, Span{Start: 5, End: 8}, kept[0])
}
