package moduletree

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/modnav/internal/syntax"
)

// SubmoduleDecl is one out-of-line submodule declaration found in a file,
// in source order.
type SubmoduleDecl struct {
	Name string
	Node *tree_sitter.Node
}

// ExtractSubmodules returns the ordered sequence of out-of-line submodule
// declarations directly inside root's own item list — `mod name;` forms,
// with no inline body. Only root's direct children are considered
// (imp.rs's `root.modules()`): a nested declaration inside an inline
// `mod a { mod b; }` belongs to a's scope, not root's, and is picked up
// when a's own body is enumerated (see scope.go), matching spec.md §4.1's
// "handled directly during scope enumeration".
//
// Malformed declarations (no name field) are silently skipped; there is no
// failure mode for this operation.
func ExtractSubmodules(tree *syntax.Tree) []SubmoduleDecl {
	var decls []SubmoduleDecl
	root := tree.Root()
	source := tree.Source()

	count := root.ChildCount()
	for i := uint(0); i < count; i++ {
		node := root.Child(i)
		if node == nil || node.Kind() != "mod_item" || hasInlineBody(node) {
			continue
		}
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Utf8Text(source)
		if name == "" {
			continue
		}
		decls = append(decls, SubmoduleDecl{Name: name, Node: node})
	}
	return decls
}

// hasInlineBody reports whether a mod_item carries a `{ ... }` body, i.e. is
// the inline form rather than the out-of-line `mod name;` form.
func hasInlineBody(node *tree_sitter.Node) bool {
	return node.ChildByFieldName("body") != nil
}
