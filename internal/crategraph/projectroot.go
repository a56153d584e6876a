package crategraph

import "strings"

// commonIgnoredDirs is checked for every root. Carried verbatim from
// ra/lib.rs's COMMON_IGNORED_DIRS — spec.md §4.7 names only a representative
// subset ("node_modules, target, .git, build artefacts and vendored-compiler
// directories"); the full list is restored here per SPEC_FULL.md
// Supplemented Features #4.
var commonIgnoredDirs = map[string]bool{
	"node_modules":    true,
	"target":          true,
	".git":            true,
	"obj":             true,
	"build":           true,
	"ci":              true,
	"jemalloc":        true,
	"llvm-emscripten": true,
	"llvm":            true,
	"llvm-project":    true,
	"docs":            true,
	"lld":             true,
	"lldb":            true,
	"clang":           true,
}

// externalIgnoredDirs additionally excludes test/example/bench subtrees of
// non-member (external dependency) roots.
var externalIgnoredDirs = map[string]bool{
	"examples": true,
	"tests":    true,
	"benches":  true,
}

// sourceExtension is the canonical file extension for the systems language
// this resolver targets.
const sourceExtension = ".rs"

// ProjectRoot describes a workspace root folder: its path, and whether it is
// a member of the user's workspace (vs. an external dependency whose
// test/example/bench subtrees should be skipped).
type ProjectRoot struct {
	Path     string
	IsMember bool
}

// IncludeDir reports whether a directory (given as its slash-separated
// path components relative to the root) should be descended into by the
// file-crawler external collaborator.
func (r ProjectRoot) IncludeDir(components []string) bool {
	for _, c := range components {
		if commonIgnoredDirs[c] {
			return false
		}
		if !r.IsMember && externalIgnoredDirs[c] {
			return false
		}
		if strings.HasPrefix(c, ".") {
			return false
		}
	}
	return true
}

// IncludeFile reports whether a file should be included, based solely on
// its extension matching the source language's canonical extension.
func (r ProjectRoot) IncludeFile(path string) bool {
	return strings.HasSuffix(path, sourceExtension)
}
