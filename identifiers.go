package chunker

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// memberAccessTypes are node types representing "obj.member"-shaped access
// across the grammars in the registry; both the object and member/property
// parts are surfaced as identifiers even when the node itself isn't typed as
// a plain identifier.
var memberAccessTypes = map[string]bool{
	"member_expression":          true,
	"attribute":                  true,
	"field_access":               true,
	"selector_expression":        true,
	"scoped_identifier":          true,
	"member_access_expression":   true,
}

// findIdentifiersInSpan walks the smallest node covering [start,end) and
// every overlapping descendant (iteratively, via an explicit queue so deep
// trees don't recurse), collecting identifier texts per profile. Mirrors the
// approach of an import filter that needs "what names does this span use"
// without a full name-resolution pass.
func findIdentifiersInSpan(root *sitter.Node, start, end int, code []byte, profile *LanguageProfile) map[string]bool {
	identifiers := make(map[string]bool)
	if start >= end {
		return identifiers
	}

	startNode := root.NamedDescendantForByteRange(uint32(start), uint32(end))
	if startNode == nil {
		startNode = root
	}

	queue := []*sitter.Node{startNode}
	visited := map[nodeKey]bool{nodeID(startNode): true}

	addIfIdentifier := func(n *sitter.Node) {
		if n == nil {
			return
		}
		if profile.IsIdentifierType(n.Type()) {
			text := string(code[n.StartByte():n.EndByte()])
			if text != "" {
				identifiers[text] = true
			}
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		nodeStart := int(node.StartByte())
		nodeEnd := int(node.EndByte())
		if nodeStart >= end || nodeEnd <= start {
			continue
		}

		addIfIdentifier(node)

		if memberAccessTypes[node.Type()] {
			addIfIdentifier(node.ChildByFieldName("object"))
			prop := node.ChildByFieldName("property")
			if prop == nil {
				prop = node.ChildByFieldName("attribute")
			}
			if prop == nil {
				prop = node.ChildByFieldName("field")
			}
			if prop != nil && (profile.IsIdentifierType(prop.Type()) || prop.Type() == "identifier") {
				identifiers[string(code[prop.StartByte():prop.EndByte()])] = true
			}
		}

		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			id := nodeID(child)
			if visited[id] {
				continue
			}
			childStart := int(child.StartByte())
			childEnd := int(child.EndByte())
			if childEnd > start && childStart < end {
				visited[id] = true
				queue = append(queue, child)
			}
		}
	}

	return identifiers
}

// nodeID gives a stable per-node identity usable as a map key; tree-sitter
// nodes are value types whose pointer is unstable, but the byte range plus
// type is unique enough within a single tree for visited-tracking purposes.
type nodeKey struct {
	start, end uint32
	typ        string
}

func nodeID(n *sitter.Node) nodeKey {
	return nodeKey{start: n.StartByte(), end: n.EndByte(), typ: n.Type()}
}
