package chunker

import (
	"encoding/json"
	"fmt"
	"strings"
)

type notebookCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

type notebookDocument struct {
	Cells []notebookCell `json:"cells"`
}

// cellSource normalizes a cell's "source" field, which Jupyter serializes as
// either a single string or an array of line strings.
func cellSource(raw json.RawMessage) string {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asLines []string
	if err := json.Unmarshal(raw, &asLines); err == nil {
		return strings.Join(asLines, "")
	}
	return ""
}

// chunkNotebook parses a Jupyter .ipynb document and slices each non-empty
// cell into one or more size-bounded chunks. Invalid JSON yields an empty
// (not erroring) chunk list, since an ill-formed notebook is common input
// rather than an exceptional one.
func chunkNotebook(content []byte, meta FileMetadata, maxChars int) []ChunkRecord {
	var doc notebookDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil
	}

	normalizedPath := meta.normalizedFilePath()
	var records []ChunkRecord

	for idx, cell := range doc.Cells {
		source := cellSource(cell.Source)
		if strings.TrimSpace(source) == "" {
			continue
		}

		if len(source) <= maxChars {
			records = append(records, newNotebookChunk(source, meta, normalizedPath, cell.CellType, idx, 0, 1, countNewlinesInString(source)+1))
			continue
		}

		start := 0
		sub := 0
		for start < len(source) {
			end := start + maxChars
			if end > len(source) {
				end = len(source)
			}
			if newlinePos := strings.LastIndex(source[start:end], "\n"); newlinePos != -1 && newlinePos > maxChars/4 {
				end = start + newlinePos + 1
			}

			subContent := source[start:end]
			if strings.TrimSpace(subContent) != "" {
				startLine := countNewlinesInString(source[:start]) + 1
				endLine := countNewlinesInString(source[:end]) + 1
				records = append(records, newNotebookChunk(subContent, meta, normalizedPath, cell.CellType, idx, sub, startLine, endLine))
			}

			start = end
			sub++
		}
	}

	for i := range records {
		records[i].Metadata.ChunkIndex = i
	}
	return records
}

func newNotebookChunk(content string, meta FileMetadata, normalizedPath, cellType string, cellIdx, subIdx, startLine, endLine int) ChunkRecord {
	idxCopy := cellIdx
	return ChunkRecord{
		Content: content,
		Metadata: ChunkMetadata{
			Repo:                  meta.Repo,
			Branch:                meta.Branch,
			FilePath:              normalizedPath,
			Language:              "notebook",
			ChunkingMethod:        MethodNotebook,
			ChunkID:               fmt.Sprintf("%s-cell%d-%d", normalizedPath, cellIdx, subIdx),
			StartLine:             startLine,
			EndLine:               endLine,
			RelationalDescription: fmt.Sprintf("Notebook cell %d (%s)", cellIdx, cellType),
			CellType:              cellType,
			OriginalCellIndex:     &idxCopy,
		},
	}
}

func countNewlinesInString(s string) int {
	return strings.Count(s, "\n")
}
