package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from modnav.yml.
type ProjectConfig struct {
	// SourceRoot is decoded from the file but not read by the CLI; discovery
	// always starts from -project-root.
	SourceRoot string `yaml:"sourceRoot,omitempty"`
	// IgnoreDirs is decoded from the file but not applied; projectroot.go's
	// built-in ignore list is the only one in effect.
	IgnoreDirs []string `yaml:"ignoreDirs,omitempty"`
	// OutputDir is decoded from the file but not read; `modnav graph` and
	// `modnav tree` always write to stdout.
	OutputDir string `yaml:"outputDir,omitempty"`
	// KuzuPath, if set and no -kuzu-path flag is given, makes `modnav graph`
	// also persist the projected crate graph to a file-backed KuzuDB at this
	// path.
	KuzuPath string `yaml:"kuzuPath,omitempty"`
	Verbose  bool   `yaml:"verbose,omitempty"`
}

// Load attempts to read modnav.yml or modnav.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"modnav.yml", "modnav.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
