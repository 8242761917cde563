package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/releasegate/releasegate/internal/domain"
)

// NewReleasegateMCPServer creates a new MCP server with the validation tools
// registered. cfg carries the service endpoints the tools talk to.
func NewReleasegateMCPServer(cfg domain.PipelineConfig, log *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"releasegate",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, cfg, log)

	return s
}
