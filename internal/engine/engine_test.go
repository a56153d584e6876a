package engine

import (
	"testing"

	"github.com/dusk-indust/modnav/internal/moduletree"
	"github.com/dusk-indust/modnav/internal/syntax"
)

func TestEngine_AddFileRoundTrips(t *testing.T) {
	e := New()
	h := e.AddFile("src/lib.rs", []byte("fn f() {}"))

	path, ok := e.Path(h)
	if !ok || path != "src/lib.rs" {
		t.Fatalf("Path = %q, %v, want src/lib.rs, true", path, ok)
	}
	src, ok := e.Source(h)
	if !ok || string(src) != "fn f() {}" {
		t.Fatalf("Source = %q, %v, want fn f() {}, true", src, ok)
	}

	if _, ok := e.Path(syntax.FileHandle(99)); ok {
		t.Error("unknown handle should not resolve")
	}
}

func TestEngine_NewSourceRootAndContents(t *testing.T) {
	e := New()
	h1 := e.AddFile("src/lib.rs", []byte("mod foo;"))
	h2 := e.AddFile("src/foo.rs", []byte("fn f() {}"))

	root := e.NewSourceRoot([]syntax.FileHandle{h1, h2})
	contents, err := e.SourceRootContents(root)
	if err != nil {
		t.Fatalf("SourceRootContents: %v", err)
	}
	if len(contents.Files) != 2 || contents.Files[0] != h1 || contents.Files[1] != h2 {
		t.Fatalf("Files = %v, want [%v %v] in order", contents.Files, h1, h2)
	}
	if contents.Resolver == nil {
		t.Error("expected a non-nil Resolver")
	}
}

func TestEngine_SourceRootContents_UnknownID(t *testing.T) {
	e := New()
	if _, err := e.SourceRootContents(moduletree.SourceRootID(42)); err == nil {
		t.Error("expected an error for an unregistered source root")
	}
}

func TestEngine_FileSyntax_ParsesRegisteredSource(t *testing.T) {
	e := New()
	h := e.AddFile("src/lib.rs", []byte("fn f() {}"))
	tree, err := e.FileSyntax(h)
	if err != nil {
		t.Fatalf("FileSyntax: %v", err)
	}
	defer tree.Close()
}

func TestEngine_FileSyntax_UnknownHandle(t *testing.T) {
	e := New()
	if _, err := e.FileSyntax(syntax.FileHandle(7)); err == nil {
		t.Error("expected an error for an unregistered file handle")
	}
}

func TestEngine_CancelIsObservedByCheckCanceled(t *testing.T) {
	e := New()
	if err := e.CheckCanceled(); err != nil {
		t.Fatalf("CheckCanceled on fresh engine: %v", err)
	}
	e.Cancel()
	if err := e.CheckCanceled(); err != moduletree.ErrCancelled {
		t.Fatalf("CheckCanceled after Cancel = %v, want ErrCancelled", err)
	}
}
