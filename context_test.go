package chunker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

const goNestedFixture = `package main

type Server struct{}

func (s *Server) Handle() {
	body := func() {
		println("nested")
	}
	body()
}
`

func TestFindDefiningNodeAndAncestors(t *testing.T) {
	r := NewLanguageRegistry()
	code := []byte(goNestedFixture)
	result, err := parseWithContext(context.Background(), r, code, "go")
	require.NoError(t, err)
	profile, _ := r.Profile("go")
	root := result.Tree.RootNode()

	innerStart := indexOf(string(code), `println("nested")`)
	innerEnd := innerStart + len(`println("nested")`)

	defining := findDefiningNode(root, code, innerStart, innerEnd, profile)
	require.NotNil(t, defining)

	ancestors := ancestorContainers(defining, profile)
	require.NotEmpty(t, ancestors)
}

func TestSignatureSpanUsesBodyField(t *testing.T) {
	r := NewLanguageRegistry()
	code := []byte(goNestedFixture)
	result, err := parseWithContext(context.Background(), r, code, "go")
	require.NoError(t, err)
	profile, _ := r.Profile("go")
	root := result.Tree.RootNode()

	methodStart := indexOf(string(code), "func (s *Server) Handle")
	node := root.NamedDescendantForByteRange(uint32(methodStart), uint32(methodStart))
	for node != nil && node.Type() != "method_declaration" {
		node = node.Parent()
	}
	require.NotNil(t, node)

	sig := signatureSpan(node, profile, code)
	sigText := string(sig.Slice(code))
	require.Contains(t, sigText, "func (s *Server) Handle()")
	require.NotContains(t, sigText, "nested")
}

func TestFindDefiningNodeStopsAtFirstDisqualifyingAncestor(t *testing.T) {
	r := NewLanguageRegistry()
	code := []byte("class A:\n    def m(self):\n        return 1\n")
	result, err := parseWithContext(context.Background(), r, code, "python")
	require.NoError(t, err)
	profile, _ := r.Profile("python")
	root := result.Tree.RootNode()

	mStart := indexOf(string(code), "def m")
	mEnd := len(code)

	defining := findDefiningNode(root, code, mStart, mEnd, profile)
	require.NotNil(t, defining)
	require.Equal(t, "function_definition", defining.Type())

	ancestors := ancestorContainers(defining, profile)
	require.Len(t, ancestors, 1)
	require.Equal(t, "class_definition", ancestors[0].Type())
}

func TestContainerName(t *testing.T) {
	r := NewLanguageRegistry()
	code := []byte(goNestedFixture)
	result, err := parseWithContext(context.Background(), r, code, "go")
	require.NoError(t, err)
	root := result.Tree.RootNode()

	typeStart := indexOf(string(code), "type Server")
	node := root.NamedDescendantForByteRange(uint32(typeStart), uint32(typeStart))
	for node != nil && node.Type() != "type_declaration" {
		node = node.Parent()
	}
	require.NotNil(t, node)
	require.NotEmpty(t, containerName(node, code))
}

func TestRelationalDescriptionImportOnly(t *testing.T) {
	desc := relationalDescription(nil, nil, true, nil)
	require.Equal(t, "Chunk containing primarily imports", desc)
}

func TestRelationalDescriptionTopLevel(t *testing.T) {
	desc := relationalDescription(nil, nil, false, nil)
	require.Equal(t, "Top-level code chunk", desc)
}
