package chunker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWithContextUnsupportedLanguage(t *testing.T) {
	r := NewLanguageRegistry()
	_, err := parseWithContext(context.Background(), r, []byte("whatever"), "cobol")
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestParseWithContextValidGo(t *testing.T) {
	r := NewLanguageRegistry()
	code := []byte("package main\n\nfunc main() {}\n")
	result, err := parseWithContext(context.Background(), r, code, "go")
	require.NoError(t, err)
	require.NotNil(t, result.Tree)
	require.False(t, result.HasError)
}

func TestParseWithContextErrorTree(t *testing.T) {
	r := NewLanguageRegistry()
	code := []byte("package main\n\nfunc main( {\n")
	result, err := parseWithContext(context.Background(), r, code, "go")
	require.NoError(t, err)
	require.True(t, result.HasError)
}
