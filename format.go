package chunker

import "strings"

const (
	placeholderText = "#... some code ..."
	chunkSeparator  = "\n\n========== CHUNK SEPARATOR ==========\n\n"
)

// formatChunks renders every record into a formatted block (tagged or
// placeholder mode per includeTokens) and a whole-file text joining them,
// plus the structured per-chunk output list.
func formatChunks(records []ChunkRecord, includeTokens bool) (string, []FormattedChunk) {
	blocks := make([]string, 0, len(records))
	structured := make([]FormattedChunk, 0, len(records))

	for _, r := range records {
		imports := strings.Join(r.ImportLines, "\n")
		content := strings.TrimLeft(r.Content, "\n")

		parentList := dropDuplicateLastParentBlock(r.ParentContextText, content)
		parentContext := strings.Join(parentList, "\n"+placeholderText+"\n")

		var block string
		if includeTokens {
			block = formatTagged(imports, parentContext, content, r.Content)
		} else {
			block = formatPlaceholder(imports, parentContext, content, r.Content)
		}

		blocks = append(blocks, block)
		structured = append(structured, FormattedChunk{
			FormattedChunkBlock: block,
			OriginalContent:     r.Content,
			Metadata:            r.Metadata,
		})
	}

	return strings.Join(blocks, chunkSeparator), structured
}

// dropDuplicateLastParentBlock removes the final parent-context block when
// its first line matches the chunk content's first line (both trimmed),
// avoiding a chunk duplicating its own signature as its own context.
func dropDuplicateLastParentBlock(parentBlocks []string, content string) []string {
	if len(parentBlocks) == 0 {
		return parentBlocks
	}
	last := parentBlocks[len(parentBlocks)-1]
	lastFirstLine := strings.TrimSpace(firstLine(last))
	contentFirstLine := strings.TrimSpace(firstLine(content))
	if lastFirstLine != "" && lastFirstLine == contentFirstLine {
		return parentBlocks[:len(parentBlocks)-1]
	}
	return parentBlocks
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		return s[:idx]
	}
	return s
}

func formatTagged(imports, parentContext, content, rawContent string) string {
	var parts []string
	if imports != "" {
		parts = append(parts, "<<IMPORTS_START>>\n"+imports+"\n<<IMPORTS_END>>")
	}
	if parentContext != "" {
		parts = append(parts, "<<PARENT_CONTEXT_START>>\n"+parentContext+"\n<<PARENT_CONTEXT_END>>")
	}
	if strings.TrimSpace(rawContent) != "" {
		parts = append(parts, "<<ORIGINAL_CHUNK_START>>\n"+content+"\n<<ORIGINAL_CHUNK_END>>")
	}
	return strings.Join(parts, "\n\n")
}

func formatPlaceholder(imports, parentContext, content, rawContent string) string {
	var parts []string
	if imports != "" {
		parts = append(parts, placeholderText, imports, placeholderText)
	}
	if parentContext != "" {
		parts = append(parts, placeholderText, parentContext, placeholderText)
	}
	if strings.TrimSpace(rawContent) != "" {
		parts = append(parts, placeholderText, content, placeholderText)
	}

	if len(parts) == 0 {
		return ""
	}
	parts[0] = ""
	if len(parts) > 1 {
		parts[len(parts)-1] = ""
	}

	var final []string
	for _, p := range parts {
		if p == "" {
			continue
		}
		if p == placeholderText && len(final) > 0 && final[len(final)-1] == placeholderText {
			continue
		}
		final = append(final, p)
	}
	return strings.Join(final, "\n")
}
