package chunker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpanLenAndUnion(t *testing.T) {
	a := Span{Start: 10, End: 20}
	require.Equal(t, 10, a.Len())

	b := Span{Start: 15, End: 30}
	u := a.Union(b)
	require.Equal(t, Span{Start: 10, End: 30}, u)
}

func TestSpanSliceClampsToBounds(t *testing.T) {
	code := []byte("0123456789")
	require.Equal(t, []byte("234"), Span{Start: 2, End: 5}.Slice(code))
	require.Equal(t, []byte("0123456789"), Span{Start: -5, End: 100}.Slice(code))
	require.Equal(t, []byte{}, Span{Start: 8, End: 3}.Slice(code))
}

func TestLineSpanForSpan(t *testing.T) {
	code := []byte("line1\nline2\nline3\n")
	ls := lineSpanForSpan(code, Span{Start: 0, End: 6})
	require.Equal(t, 1, ls.StartLine)
	require.Equal(t, 1, ls.EndLine)

	ls2 := lineSpanForSpan(code, Span{Start: 6, End: 12})
	require.Equal(t, 2, ls2.StartLine)
	require.Equal(t, 2, ls2.EndLine)
}

func TestLanguageProfileTypeSets(t *testing.T) {
	p := &LanguageProfile{
		ImportTypes:    []string{"import_statement"},
		ContainerTypes: []string{"function_definition", "class_definition"},
	}
	p.prepare()

	require.True(t, p.IsImportType("import_statement"))
	require.False(t, p.IsImportType("call"))
	require.True(t, p.IsContainerType("class_definition"))
	require.False(t, p.IsStopAtType("class_definition"))
}

func TestFileMetadataNormalizedFilePath(t *testing.T) {
	m := FileMetadata{Repo: "myrepo", FilePath: "/home/user/myrepo/src/main.go"}
	require.Equal(t, "myrepo/src/main.go", m.normalizedFilePath())

	m2 := FileMetadata{Repo: "myrepo", FilePath: "/elsewhere/main.go"}
	require.Equal(t, "myrepo/main.go", m2.normalizedFilePath())
}

func TestChunkOptionsWithDefaults(t *testing.T) {
	o := ChunkOptions{}.withDefaults()
	require.Equal(t, DefaultMaxChars, o.MaxChars)
	require.Equal(t, DefaultCoalesce, o.Coalesce)
	require.Equal(t, DefaultFallbackChunkSize, o.FallbackChunkSize)
}
