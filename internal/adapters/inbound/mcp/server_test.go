package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/releasegate/releasegate/internal/adapters/inbound/mcp"
	"github.com/releasegate/releasegate/internal/domain"
)

func TestNewReleasegateMCPServer(t *testing.T) {
	s := mcpadapter.NewReleasegateMCPServer(domain.DefaultConfig(), nil)
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewReleasegateMCPServer(domain.DefaultConfig(), nil)
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"releasegate_validate",
		"releasegate_classify_versions",
		"releasegate_reconcile_components",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools))
}
