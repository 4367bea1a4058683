// Package chunker provides AST-aware code chunking for semantic search and RAG
// pipelines.
//
// It uses tree-sitter to split source code at semantic boundaries (functions,
// classes, methods) rather than arbitrary character windows, and falls back
// to a size-bounded notebook-cell split or a line-based window when no parser
// applies. Each chunk carries ancestor-signature context and the import lines
// its identifiers actually reference.
//
// # Basic usage
//
//	text, chunks, err := chunker.Chunk(ctx, registry, "src/user.py", source, chunker.FileMetadata{Repo: "myrepo"}, nil, nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
package chunker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Chunk is the main entry point. It detects the language from filePath
// (or uses opts.Language if set), runs the appropriate pipeline, and returns
// the whole-file formatted text, the structured per-chunk output, and an
// error. A panic inside any pipeline stage is recovered and reported as an
// error rather than crashing the caller, mirroring the tri-tuple contract
// callers of the originating system depend on.
func Chunk(ctx context.Context, registry *LanguageRegistry, filePath string, code []byte, meta FileMetadata, opts *ChunkOptions, gen DescriptionGenerator, logger *slog.Logger) (formattedText string, chunks []FormattedChunk, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("chunking panic: %v\n%s", r, debug.Stack())
			logger.Error("recovered panic while chunking", "file_path", filePath, "error", err)
		}
	}()

	options := DefaultChunkOptions()
	if opts != nil {
		options = opts.withDefaults()
	}
	meta.FilePath = filePath

	lang := options.Language
	if lang == "" {
		lang = DetectLanguage(filePath)
	}

	records, pipelineErr := runPipeline(ctx, registry, lang, code, meta, options, logger)
	if pipelineErr != nil {
		return "", nil, pipelineErr
	}

	if options.GenerateDescriptions {
		records = generateDescriptions(ctx, gen, records, string(code))
	}

	text, formatted := formatChunks(records, options.IncludeTokens)
	return text, formatted, nil
}

// runPipeline picks among the tree-sitter, notebook, and line-fallback
// pipelines based on the detected language's registered status, downgrading
// to the line fallback whenever tree-sitter parsing is unavailable or the
// resulting tree contains errors.
func runPipeline(ctx context.Context, registry *LanguageRegistry, lang string, code []byte, meta FileMetadata, opts ChunkOptions, logger *slog.Logger) ([]ChunkRecord, error) {
	if lang == "notebook" {
		return chunkNotebook(code, meta, opts.MaxChars), nil
	}

	profile, known := registry.Profile(lang)
	if !known || profile.Status == StatusPlaintext {
		return chunkByLines(code, meta, opts.FallbackChunkSize, opts.FallbackOverlap)
	}
	if profile.Status == StatusNotebook {
		return chunkNotebook(code, meta, opts.MaxChars), nil
	}

	result, err := parseWithContext(ctx, registry, code, lang)
	if err != nil {
		logger.Warn("tree-sitter parse unavailable, falling back to line-based chunking", "file_path", meta.FilePath, "language", lang, "error", err)
		return chunkByLines(code, meta, opts.FallbackChunkSize, opts.FallbackOverlap)
	}
	if result.HasError {
		logger.Warn("tree-sitter parse produced an error tree, falling back to line-based chunking", "file_path", meta.FilePath, "language", lang)
		return chunkByLines(code, meta, opts.FallbackChunkSize, opts.FallbackOverlap)
	}

	root := result.Tree.RootNode()
	spans := buildSpans(root, code, opts.MaxChars, opts.Coalesce)
	return assembleChunks(root, code, lang, profile, spans, meta), nil
}
