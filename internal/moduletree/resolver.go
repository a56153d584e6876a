package moduletree

import (
	"fmt"

	"github.com/dusk-indust/modnav/internal/syntax"
)

// directoryOwnerStems are the file stems allowed to declare submodules
// backed by separate files (spec.md §4.2 step 2).
var directoryOwnerStems = map[string]bool{
	"mod":  true,
	"lib":  true,
	"main": true,
}

// isDirectoryOwner reports whether stem is one of the file stems that may
// declare out-of-line submodules.
func isDirectoryOwner(stem string) bool {
	return directoryOwnerStems[stem]
}

// ResolveSubmodule applies path conventions to locate the file(s) backing
// a declared submodule, following spec.md §4.2 exactly:
//
//  1. A directory-owner file (stem "mod", "lib", or "main") may resolve a
//     submodule to "../name.rs" (file form) and/or "../name/mod.rs"
//     (directory form). Both are reported when both exist — resolving the
//     ambiguity is a downstream concern (spec.md §9's open question).
//  2. A non-directory-owner file can never back a file-form submodule; the
//     result carries a NotDirOwner problem naming where the owner should
//     move to.
func ResolveSubmodule(anchor syntax.FileHandle, name string, fr syntax.FileResolver) ([]syntax.FileHandle, *Problem) {
	stem := fr.FileStem(anchor)

	fileCandidate := fmt.Sprintf("../%s.rs", name)

	if !isDirectoryOwner(stem) {
		return nil, &Problem{
			Kind:      ProblemNotDirOwner,
			Candidate: fileCandidate,
			MoveTo:    fmt.Sprintf("../%s/mod.rs", stem),
		}
	}

	dirCandidate := fmt.Sprintf("../%s/mod.rs", name)

	var candidates []syntax.FileHandle
	if h, ok := fr.Resolve(anchor, fileCandidate); ok {
		candidates = append(candidates, h)
	}
	if h, ok := fr.Resolve(anchor, dirCandidate); ok {
		candidates = append(candidates, h)
	}

	if len(candidates) == 0 {
		return nil, &Problem{
			Kind:      ProblemUnresolvedModule,
			Candidate: fileCandidate,
		}
	}
	return candidates, nil
}
