package moduletree

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/dusk-indust/modnav/internal/syntax"
)

// ItemKind classifies a declaration found directly inside a module body.
// This enumerates the kinds spec.md §4.5 requires: function, struct-like,
// enum, trait, type alias, constant, static, module, use-import, and
// extern-crate.
type ItemKind string

const (
	ItemFunction    ItemKind = "function"
	ItemStructLike  ItemKind = "struct-like"
	ItemEnum        ItemKind = "enum"
	ItemTrait       ItemKind = "trait"
	ItemTypeAlias   ItemKind = "type-alias"
	ItemConstant    ItemKind = "constant"
	ItemStatic      ItemKind = "static"
	ItemModule      ItemKind = "module"
	ItemUseImport   ItemKind = "use-import"
	ItemExternCrate ItemKind = "extern-crate"
)

// nodeKindToItem maps a tree-sitter-rust node kind to the ItemKind it
// introduces. Nodes not present in this table (expression statements,
// attributes, doc comments, ...) do not declare a named item and are
// skipped by NewModuleScope.
var nodeKindToItem = map[string]ItemKind{
	"function_item":           ItemFunction,
	"struct_item":             ItemStructLike,
	"union_item":              ItemStructLike,
	"enum_item":               ItemEnum,
	"trait_item":              ItemTrait,
	"type_item":               ItemTypeAlias,
	"const_item":              ItemConstant,
	"static_item":             ItemStatic,
	"mod_item":                ItemModule,
	"use_declaration":         ItemUseImport,
	"extern_crate_declaration": ItemExternCrate,
}

// ModuleScope is a mapping from declared identifier to the kind of item that
// introduced it, for the items declared directly inside one module body.
type ModuleScope struct {
	items map[string]ItemKind
}

// Lookup returns the kind of item bound to name in this scope, if any.
func (s *ModuleScope) Lookup(name string) (ItemKind, bool) {
	k, ok := s.items[name]
	return k, ok
}

// Names returns the identifiers declared in this scope. Order is
// unspecified.
func (s *ModuleScope) Names() []string {
	names := make([]string, 0, len(s.items))
	for n := range s.items {
		names = append(names, n)
	}
	return names
}

// Len reports the number of distinct identifiers in the scope.
func (s *ModuleScope) Len() int {
	return len(s.items)
}

// NewModuleScope builds a scope from the item nodes directly contained by a
// module body: the root item list for a file-backed module, the
// brace-delimited item list for an inline module, or no nodes at all for a
// bodyless inline form (spec.md §4.5).
func NewModuleScope(items []*tree_sitter.Node, source []byte) *ModuleScope {
	scope := &ModuleScope{items: make(map[string]ItemKind, len(items))}
	for _, node := range items {
		kind, ok := nodeKindToItem[node.Kind()]
		if !ok {
			continue
		}
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			// use_declaration doesn't carry a "name" field the same way
			// type items do; fall back to the
			// declaration's own text as the key so imports are still
			// enumerable, matching rsExtractor's use-declaration handling
			// in the teacher's tree-sitter layer.
			text := node.Utf8Text(source)
			if text == "" {
				continue
			}
			scope.items[text] = kind
			continue
		}
		name := nameNode.Utf8Text(source)
		if name == "" {
			continue
		}
		scope.items[name] = kind
	}
	return scope
}

// ItemsOf returns the direct item-node children of a module body: either
// the root node's children (file-backed module) or, for an inline module,
// the children of its declaration_list ("body" field).
func ItemsOf(tree *syntax.Tree, source ModuleSource) []*tree_sitter.Node {
	switch source.Kind {
	case ModuleSourceFile:
		return childNodes(tree.Root())
	case ModuleSourceInline:
		node := resolveNodePath(tree.Root(), source.Node)
		if node == nil {
			return nil
		}
		body := node.ChildByFieldName("body")
		if body == nil {
			return nil
		}
		return childNodes(body)
	default:
		return nil
	}
}

// childNodes returns the direct children of node as a slice.
func childNodes(node *tree_sitter.Node) []*tree_sitter.Node {
	count := node.ChildCount()
	out := make([]*tree_sitter.Node, 0, count)
	for i := uint(0); i < count; i++ {
		if child := node.Child(i); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// resolveNodePath walks down from root by child index, re-anchoring an
// Inline ModuleSource after its file's syntax tree has been freshly
// re-parsed (spec.md §9, "Polymorphism of ModuleSource").
func resolveNodePath(root *tree_sitter.Node, path NodePath) *tree_sitter.Node {
	node := root
	for _, idx := range path {
		if node == nil {
			return nil
		}
		node = node.Child(uint(idx))
	}
	return node
}
