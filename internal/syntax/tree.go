package syntax

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// rustLanguage is the single tree-sitter grammar this package parses with.
// The module-tree resolver and crate-graph projector only ever deal in one
// file-based-module systems language (see spec.md §1's scope note); there is
// no per-language dispatch here the way the teacher's multi-language
// extractor has one.
var rustLanguage = tree_sitter.NewLanguage(tree_sitter_rust.Language())

// Tree wraps a parsed tree-sitter syntax tree together with the source bytes
// it was parsed from. Trees are immutable once built; a fresh Tree is
// produced each time a file is re-parsed across engine revisions (spec.md
// §4.4, "source(id)").
type Tree struct {
	root   *tree_sitter.Node
	source []byte
	inner  *tree_sitter.Tree
}

// Root returns the tree's root node.
func (t *Tree) Root() *tree_sitter.Node { return t.root }

// Source returns the raw bytes the tree was parsed from.
func (t *Tree) Source() []byte { return t.source }

// Close releases the underlying tree-sitter tree. Safe to call once the
// caller is done walking it; Trees are not safe for concurrent mutation but
// are safe for concurrent read (spec.md §5's shared-immutable contract).
func (t *Tree) Close() {
	if t.inner != nil {
		t.inner.Close()
	}
}

// Parser parses source bytes into Trees. A new tree-sitter parser instance
// is created per Parse call (matching onedusk-pd's TreeSitterParser), so
// Parse calls on the same Parser share no parser state, whether made one
// after another or concurrently.
type Parser struct {
	mu sync.Mutex
}

// NewParser returns a Parser ready to parse Rust source files.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses source into a Tree. The returned Tree must be Close'd by the
// caller once it is no longer needed.
func (p *Parser) Parse(source []byte) (*Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(rustLanguage); err != nil {
		return nil, fmt.Errorf("syntax: set language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("syntax: tree-sitter returned nil tree")
	}

	root := tree.RootNode()
	return &Tree{root: &root, source: source, inner: tree}, nil
}
