package chunker

import (
	"context"
	"errors"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

var (
	// ErrUnsupportedLanguage is returned when the language has no grammar.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrParseFailed is returned when the underlying parser call fails.
	ErrParseFailed = errors.New("parse failed")
)

// parserPool hands out *sitter.Parser instances for reuse across goroutines.
// tree-sitter parsers are not safe for concurrent use by multiple goroutines
// at once, but are cheap to reset between uses, so a sync.Pool amortizes
// allocation without requiring one parser per language kept alive forever.
var parserPool = sync.Pool{
	New: func() interface{} {
		return sitter.NewParser()
	},
}

func getParser() *sitter.Parser {
	return parserPool.Get().(*sitter.Parser)
}

func putParser(p *sitter.Parser) {
	parserPool.Put(p)
}

// ParseResult is the outcome of parsing one file's bytes.
type ParseResult struct {
	Tree    *sitter.Tree
	HasError bool
}

// parseWithContext parses code using the grammar the registry has wired for
// lang. Returns ErrUnsupportedLanguage if the registry has no grammar for it
// (plaintext/notebook status, or an unknown language name).
func parseWithContext(ctx context.Context, registry *LanguageRegistry, code []byte, lang string) (*ParseResult, error) {
	grammar := registry.Grammar(lang)
	if grammar == nil {
		return nil, ErrUnsupportedLanguage
	}

	parser := getParser()
	defer putParser(parser)
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, code)
	if err != nil {
		return nil, errors.Join(ErrParseFailed, err)
	}

	return &ParseResult{
		Tree:     tree,
		HasError: tree.RootNode().HasError(),
	}, nil
}
