package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	chunker "github.com/codeforge-labs/chunkweave"
	"github.com/codeforge-labs/chunkweave/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagRepo     string
	flagBranch   string
	flagMaxChars int
)

var chunkCmd = &cobra.Command{
	Use:   "chunk [files...]",
	Short: "Split one or more source files into chunks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChunk,
}

func init() {
	chunkCmd.Flags().StringVar(&flagRepo, "repo", "", "Repository name attached to chunk metadata")
	chunkCmd.Flags().StringVar(&flagBranch, "branch", "", "Branch name attached to chunk metadata")
	chunkCmd.Flags().IntVar(&flagMaxChars, "max-chars", 0, "Override the configured max chunk size")
}

func runChunk(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	loader := config.NewLoader(projectRoot)
	cfg, err := loader.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	registry := chunker.NewLanguageRegistry()
	if cfg.LanguageOverridesFile != "" {
		if err := registry.LoadOverridesFile(cfg.LanguageOverridesFile); err != nil {
			return fmt.Errorf("load language overrides: %w", err)
		}
	}

	maxChars := cfg.MaxChars
	if flagMaxChars > 0 {
		maxChars = flagMaxChars
	}

	opts := chunker.ChunkOptions{
		MaxChars:             maxChars,
		Coalesce:             cfg.Coalesce,
		IncludeTokens:        includeTokens || cfg.IncludeTokens,
		GenerateDescriptions: cfg.GenerateDescriptions,
		FallbackChunkSize:    cfg.FallbackChunkSize,
		FallbackOverlap:      cfg.FallbackOverlap,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, path := range args {
		code, err := os.ReadFile(path)
		if err != nil {
			logger.Error("failed to read file", "path", path, "error", err)
			continue
		}

		meta := chunker.FileMetadata{FilePath: path, Repo: flagRepo, Branch: flagBranch}
		text, chunks, err := chunker.Chunk(ctx, registry, path, code, meta, &opts, chunker.NoopDescriptionGenerator{}, logger)
		if err != nil {
			logger.Error("failed to chunk file", "path", path, "error", err)
			continue
		}

		if IsJSONOutput() {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(chunks); err != nil {
				return fmt.Errorf("encode chunks: %w", err)
			}
			continue
		}

		fmt.Println(text)
	}

	return nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if IsVerbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
