package mcptools

// --- MCP Tool Input/Output Types ---
// These structs define the JSON schema for each MCP tool's input. The MCP
// Go SDK auto-generates JSON schemas from struct tags.

// ModuleTreeInput is the input for the module_tree MCP tool.
type ModuleTreeInput struct {
	RepoPath string `json:"repoPath" jsonschema:"absolute path to the crate's directory (the one containing src/lib.rs or src/main.rs)"`
	RootFile string `json:"rootFile,omitempty" jsonschema:"repo-relative path to the crate root file (default: src/lib.rs, falling back to src/main.rs)"`
}

// ModuleNode describes one module in the tree, for JSON output.
type ModuleNode struct {
	Path     string        `json:"path"`
	File     string        `json:"file"`
	Children []string      `json:"children,omitempty"`
	Problems []ProblemView `json:"problems,omitempty"`
}

// ProblemView is a diagnosable link problem, flattened for JSON output.
type ProblemView struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Candidate string `json:"candidate,omitempty"`
	MoveTo    string `json:"moveTo,omitempty"`
}

// ModuleTreeOutput is the result of the module_tree MCP tool.
type ModuleTreeOutput struct {
	Modules []ModuleNode `json:"modules"`
}

// ModuleScopeInput is the input for the module_scope MCP tool.
type ModuleScopeInput struct {
	RepoPath   string `json:"repoPath" jsonschema:"absolute path to the crate's source directory"`
	RootFile   string `json:"rootFile,omitempty" jsonschema:"repo-relative path to the crate root file (default: src/lib.rs, falling back to src/main.rs)"`
	ModulePath string `json:"modulePath" jsonschema:"dotted module path from the crate root, e.g. 'foo.bar'; empty string means the crate root module"`
}

// ScopeEntry is one declared identifier in a module scope.
type ScopeEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ModuleScopeOutput is the result of the module_scope MCP tool.
type ModuleScopeOutput struct {
	Entries []ScopeEntry `json:"entries"`
}

// CrateGraphInput is the input for the crate_graph MCP tool.
type CrateGraphInput struct {
	StartPath string `json:"startPath" jsonschema:"a path inside the workspace to start discovery from"`
}

// CrateEdgeView is one dependency edge, for JSON output.
type CrateEdgeView struct {
	From int    `json:"from"`
	Name string `json:"name"`
	To   int    `json:"to"`
}

// CrateNodeView is one crate node, for JSON output.
type CrateNodeView struct {
	ID      int    `json:"id"`
	Root    string `json:"root"`
	Edition string `json:"edition"`
}

// CrateGraphOutput is the result of the crate_graph MCP tool.
type CrateGraphOutput struct {
	Crates []CrateNodeView `json:"crates"`
	Edges  []CrateEdgeView `json:"edges"`
}
