package chunker

import (
	"fmt"
	"strings"
)

// ErrInvalidFallbackOverlap is returned when overlap is negative or not
// strictly less than chunkSize, which would otherwise produce a
// non-advancing or reversing window.
var ErrInvalidFallbackOverlap = fmt.Errorf("fallback overlap must satisfy 0 <= overlap < chunk size")

// chunkByLines windows a file's lines with fixed overlap. Triggered whenever
// the language is unknown, declared plaintext, or the parser reported an
// error tree. No import or ancestor-context handling applies here.
func chunkByLines(content []byte, meta FileMetadata, chunkSize, overlap int) ([]ChunkRecord, error) {
	if len(content) == 0 {
		return nil, nil
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("fallback chunk size must be positive")
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, ErrInvalidFallbackOverlap
	}

	lines := splitLinesKeepTerminators(string(content))
	total := len(lines)
	normalizedPath := meta.normalizedFilePath()

	var records []ChunkRecord
	start := 0
	index := 0
	step := chunkSize - overlap

	for start < total {
		end := start + chunkSize
		if end > total {
			end = total
		}
		chunkLines := lines[start:end]
		if len(chunkLines) == 0 {
			break
		}
		chunkContent := strings.Join(chunkLines, "")

		startLine := start + 1
		endLine := end

		records = append(records, ChunkRecord{
			Content: chunkContent,
			Metadata: ChunkMetadata{
				Repo:                  meta.Repo,
				Branch:                meta.Branch,
				FilePath:              normalizedPath,
				Language:              "plaintext",
				ChunkingMethod:        MethodLineBased,
				ChunkID:               fmt.Sprintf("%s-L%d-L%d", normalizedPath, startLine, endLine),
				ChunkIndex:            index,
				StartLine:             startLine,
				EndLine:               endLine,
				RelationalDescription: "Line-based code chunk",
			},
		})

		start += step
		index++
	}

	return records, nil
}

// splitLinesKeepTerminators splits s into lines, keeping each line's
// trailing "\n" so rejoining the slice reproduces s exactly (mirrors
// Python's str.splitlines(keepends=True)).
func splitLinesKeepTerminators(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
