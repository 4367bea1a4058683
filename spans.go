package chunker

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// nwsCumsum is a prefix-sum array letting any [start,end) non-whitespace
// byte count be answered in O(1) instead of rescanning the slice each time.
type nwsCumsum []uint32

func isWhitespaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func nonWhitespaceLen(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if !isWhitespaceByte(s[i]) {
			count++
		}
	}
	return count
}

func preprocessNwsCumsum(code []byte) nwsCumsum {
	cumsum := make(nwsCumsum, len(code)+1)
	var count uint32
	for i, b := range code {
		if !isWhitespaceByte(b) {
			count++
		}
		cumsum[i+1] = count
	}
	return cumsum
}

func (c nwsCumsum) count(start, end int) int {
	if start < 0 {
		start = 0
	}
	if end > len(c)-1 {
		end = len(c) - 1
	}
	if start >= end {
		return 0
	}
	return int(c[end] - c[start])
}

// buildByteSpans recursively partitions root's byte range into spans no
// larger than maxChars where possible, splitting on child boundaries so that
// statements stay whole. A single child larger than maxChars is recursed
// into rather than split blindly; only an indivisible (childless) oversized
// node can make a resulting span exceed maxChars.
func buildByteSpans(root *sitter.Node, maxChars int) []Span {
	spans := buildByteSpansInRange(root, int(root.StartByte()), int(root.EndByte()), maxChars)
	return spans
}

func buildByteSpansInRange(node *sitter.Node, rangeStart, rangeEnd, maxChars int) []Span {
	childCount := int(node.ChildCount())
	if childCount == 0 {
		return []Span{{Start: rangeStart, End: rangeEnd}}
	}

	var spans []Span
	curStart := rangeStart
	curEnd := rangeStart

	flush := func() {
		if curEnd > curStart {
			spans = append(spans, Span{Start: curStart, End: curEnd})
		}
	}

	for i := 0; i < childCount; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		childStart := int(child.StartByte())
		childEnd := int(child.EndByte())
		if childEnd <= childStart {
			continue
		}
		childSize := childEnd - childStart

		switch {
		case childSize > maxChars:
			flush()
			spans = append(spans, buildByteSpansInRange(child, childStart, childEnd, maxChars)...)
			curStart = childEnd
			curEnd = childEnd
		case (childEnd - curStart) > maxChars && curEnd > curStart:
			flush()
			curStart = childStart
			curEnd = childEnd
		default:
			if curEnd == curStart {
				curStart = childStart
			}
			curEnd = childEnd
		}
	}

	flush()

	if rangeEnd > curEnd {
		last := Span{Start: curEnd, End: rangeEnd}
		if len(spans) > 0 && spans[len(spans)-1].End > last.Start {
			// guard against overlap with the last emitted span
			last.Start = spans[len(spans)-1].End
		}
		if last.End > last.Start {
			spans = append(spans, last)
		}
	}

	if len(spans) == 0 {
		return []Span{{Start: rangeStart, End: rangeEnd}}
	}
	return spans
}

// fillGaps inserts spans for any untouched byte regions so the returned
// sequence covers [fileStart, fileEnd) with no holes.
func fillGaps(spans []Span, fileStart, fileEnd int) []Span {
	var filled []Span
	prevEnd := fileStart
	for _, sp := range spans {
		if sp.Start > prevEnd {
			filled = append(filled, Span{Start: prevEnd, End: sp.Start})
		}
		filled = append(filled, sp)
		prevEnd = sp.End
	}
	if fileEnd > prevEnd {
		filled = append(filled, Span{Start: prevEnd, End: fileEnd})
	}
	return filled
}

// coalesceSpans merges a short span into its successor when it would only
// fragment otherwise-contiguous code: the span's non-whitespace content is
// below coalesce, the merge stays under 1.5x maxChars, and the merge either
// introduces few newlines or the span is very small.
func coalesceSpans(spans []Span, code []byte, cumsum nwsCumsum, maxChars, coalesce int) []Span {
	if len(spans) == 0 {
		return spans
	}

	var merged []Span
	cur := spans[0]

	for i := 1; i < len(spans); i++ {
		next := spans[i]
		curNws := cumsum.count(cur.Start, cur.End)
		combined := Span{Start: cur.Start, End: next.End}

		if curNws < coalesce && combined.Len() < (maxChars*3)/2 {
			newlineCount := countBytes(code, cur.Start, next.End, '\n') - countBytes(code, cur.Start, cur.End, '\n')
			if newlineCount < 3 || curNws < coalesce/2 {
				cur = combined
				continue
			}
		}

		merged = append(merged, cur)
		cur = next
	}
	merged = append(merged, cur)
	return merged
}

func countBytes(code []byte, start, end int, target byte) int {
	if start < 0 {
		start = 0
	}
	if end > len(code) {
		end = len(code)
	}
	count := 0
	for i := start; i < end; i++ {
		if code[i] == target {
			count++
		}
	}
	return count
}

// dropInsignificantSpans removes spans whose non-whitespace byte count is 0,
// the final step of the coalescer pipeline.
func dropInsignificantSpans(spans []Span, cumsum nwsCumsum) []Span {
	var kept []Span
	for _, sp := range spans {
		if cumsum.count(sp.Start, sp.End) > 0 {
			kept = append(kept, sp)
		}
	}
	return kept
}

// buildSpans runs the full byte-span builder + gap-filler + coalescer
// pipeline described for a parsed file.
func buildSpans(root *sitter.Node, code []byte, maxChars, coalesce int) []Span {
	cumsum := preprocessNwsCumsum(code)
	raw := buildByteSpans(root, maxChars)
	filled := fillGaps(raw, int(root.StartByte()), int(root.EndByte()))
	coalesced := coalesceSpans(filled, code, cumsum, maxChars, coalesce)
	return dropInsignificantSpans(coalesced, cumsum)
}
