// Package cli implements the chunkctl command-line interface.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "0.1.0"

	jsonOutput    bool
	verbose       bool
	includeTokens bool
	projectRoot   string
)

var rootCmd = &cobra.Command{
	Use:   "chunkctl",
	Short: "chunkctl splits source files into semantically coherent chunks",
	Long: `chunkctl is a local-first AST-aware code chunker.

It parses source files with tree-sitter and emits chunks split at function
and class boundaries, each carrying its enclosing signatures and the import
lines its own identifiers use, for embedding and retrieval pipelines.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&includeTokens, "tagged", false, "Format chunks with <<TAG>> markers instead of placeholder comments")
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "project", "p", "", "Project root directory (default: current directory)")
	cobra.OnInitialize(initProjectRoot)
	rootCmd.AddCommand(chunkCmd)
}

func initProjectRoot() {
	if projectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return
		}
		projectRoot = wd
	}
}

func IsJSONOutput() bool { return jsonOutput }
func IsVerbose() bool    { return verbose }
