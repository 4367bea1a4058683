package chunker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectLanguageByExtension(t *testing.T) {
	cases := map[string]string{
		"src/main.go":       "go",
		"pkg/util.py":       "python",
		"app/Component.tsx":  "tsx",
		"lib/Thing.rs":      "rust",
		"notebook.ipynb":    "notebook",
		"unknown.xyz":       "",
	}
	for path, want := range cases {
		require.Equal(t, want, DetectLanguage(path), path)
	}
}

func TestDetectLanguageByKnownFilename(t *testing.T) {
	require.Equal(t, "dockerfile", DetectLanguage("Dockerfile"))
	require.Equal(t, "dockerfile", DetectLanguage("Dockerfile.prod"))
	require.Equal(t, "ruby", DetectLanguage("Gemfile"))
	require.Equal(t, "makefile", DetectLanguage("makefile"))
}

func TestNewLanguageRegistryWiresGoGrammar(t *testing.T) {
	r := NewLanguageRegistry()
	require.NotNil(t, r.Grammar("go"))
	require.Nil(t, r.Grammar("markdown"))

	profile, ok := r.Profile("go")
	require.True(t, ok)
	require.Equal(t, StatusTreeSitter, profile.Status)
	require.True(t, profile.IsImportType("import_declaration"))
}

func TestLanguageRegistryUnknownLanguage(t *testing.T) {
	r := NewLanguageRegistry()
	_, ok := r.Profile("cobol")
	require.False(t, ok)
}
