package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewModuleNavMCPServer creates an MCP server with the 3 module-navigation
// tools registered: module_tree, module_scope, and crate_graph.
func NewModuleNavMCPServer() *mcp.Server {
	svc := NewModuleNavService()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "modnav",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "module_tree",
		Description: "Resolve a Rust crate's module tree from its source directory. Returns every module with its backing file, submodule links, and any unresolved-module or not-directory-owner diagnostics.",
	}, svc.ModuleTree)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "module_scope",
		Description: "List the identifiers declared directly inside one module of a crate (functions, types, constants, imports, nested modules), given its dotted path from the crate root.",
	}, svc.ModuleScope)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "crate_graph",
		Description: "Discover the Cargo or rust-project.json workspace reachable from a path and project its crate dependency graph.",
	}, svc.CrateGraph)

	return server
}

// RunModuleNavMCPServerStdio runs the MCP server on stdio transport,
// blocking until stdin is closed or the context is cancelled.
func RunModuleNavMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
