package crategraph

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEdition(t *testing.T) {
	if got := parseEdition("2015"); got != Edition2015 {
		t.Errorf("parseEdition(2015) = %v, want Edition2015", got)
	}
	if got := parseEdition("2018"); got != Edition2018 {
		t.Errorf("parseEdition(2018) = %v, want Edition2018", got)
	}
	if got := parseEdition("2021"); got != Edition2018 {
		t.Errorf("parseEdition(2021) = %v, want Edition2018 fallback", got)
	}
}

func TestClassifyTargetKind(t *testing.T) {
	tests := []struct {
		kinds []string
		want  TargetKind
	}{
		{[]string{"lib"}, TargetLib},
		{[]string{"rlib"}, TargetLib},
		{[]string{"bin"}, TargetBin},
		{[]string{"example"}, TargetOther},
		{[]string{"test"}, TargetOther},
		{nil, TargetOther},
	}
	for _, tt := range tests {
		if got := classifyTargetKind(tt.kinds); got != tt.want {
			t.Errorf("classifyTargetKind(%v) = %v, want %v", tt.kinds, got, tt.want)
		}
	}
}

func TestScanCargoTomlDepNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	doc := `[package]
name = "core"
edition = "2018"

[dependencies]
alloc = { path = "../alloc" }
compiler_builtins = { version = "0.1" }

[dev-dependencies]
not-included = "1.0"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	names := scanCargoTomlDepNames(path)
	want := []string{"alloc", "compiler_builtins"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("names[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestScanCargoTomlDepNames_MissingFile(t *testing.T) {
	if names := scanCargoTomlDepNames("/does/not/exist/Cargo.toml"); names != nil {
		t.Errorf("expected nil for a missing file, got %v", names)
	}
}
