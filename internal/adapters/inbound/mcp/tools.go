package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/releasegate/releasegate/internal/adapters/outbound/architecture"
	"github.com/releasegate/releasegate/internal/adapters/outbound/docsink"
	"github.com/releasegate/releasegate/internal/adapters/outbound/inspector"
	"github.com/releasegate/releasegate/internal/adapters/outbound/registry"
	"github.com/releasegate/releasegate/internal/adapters/outbound/ticket"
	"github.com/releasegate/releasegate/internal/application"
	"github.com/releasegate/releasegate/internal/domain"
	"github.com/releasegate/releasegate/internal/domain/reconcile"
	"github.com/releasegate/releasegate/internal/domain/version"
)

// registerTools registers the validation tools on the given server.
func registerTools(s *server.MCPServer, cfg domain.PipelineConfig, log *zap.Logger) {
	s.AddTool(
		mcplib.NewTool("releasegate_validate",
			mcplib.WithDescription("Run the full four-stage compliance validation for a ticket and return the complete run as JSON"),
			mcplib.WithString("ticket_id",
				mcplib.Required(),
				mcplib.Description("Ticket identifier to validate"),
			),
			mcplib.WithString("evaluator",
				mcplib.Description("Name recorded as the evaluator on the documentation record"),
			),
		),
		handleValidate(cfg, log),
	)

	s.AddTool(
		mcplib.NewTool("releasegate_classify_versions",
			mcplib.WithDescription("Classify the version change of each component in a ticket against the production registry"),
			mcplib.WithString("ticket_id",
				mcplib.Required(),
				mcplib.Description("Ticket whose components are classified"),
			),
		),
		handleClassifyVersions(cfg),
	)

	s.AddTool(
		mcplib.NewTool("releasegate_reconcile_components",
			mcplib.WithDescription("Match a ticket's components against the application components of its technical vision"),
			mcplib.WithString("ticket_id",
				mcplib.Required(),
				mcplib.Description("Ticket whose components are reconciled"),
			),
		),
		handleReconcileComponents(cfg),
	)
}

// newService creates the pipeline service with the standard HTTP adapters.
func newService(cfg domain.PipelineConfig, log *zap.Logger) *application.PipelineService {
	timeout := cfg.Timeout()
	return application.NewPipelineService(
		ticket.New(cfg.Ticket, timeout),
		architecture.New(cfg.Architecture, timeout),
		registry.New(cfg.Registry, timeout),
		docsink.New(cfg.DocSink, timeout),
		inspector.New(),
		cfg,
		log,
	)
}

func handleValidate(cfg domain.PipelineConfig, log *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ticketID, err := request.RequireString("ticket_id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		evaluator, _ := request.GetArguments()["evaluator"].(string)
		if evaluator == "" {
			evaluator = "releasegate-mcp"
		}

		svc := newService(cfg, log)
		run := svc.RunValidation(ctx, ticketID, evaluator)
		return jsonResult(run)
	}
}

func handleClassifyVersions(cfg domain.PipelineConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ticketID, err := request.RequireString("ticket_id")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		tickets := ticket.New(cfg.Ticket, cfg.Timeout())
		info, err := tickets.TicketComponents(ctx, ticketID)
		if err != nil {
			return errorResult(fmt.Sprintf("fetching ticket: %v", err)), nil
		}

		reg := registry.New(cfg.Registry, cfg.Timeout())
		batch := version.ClassifyAll(ctx, ticketComponents(info), reg, cfg.EffectiveConcurrency())
		return jsonResult(batch)
	}
}

func handleReconcileComponents(cfg domain.PipelineConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		ticketID, err := request.RequireString("ticket_id")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		tickets := ticket.New(cfg.Ticket, cfg.Timeout())
		info, err := tickets.TicketComponents(ctx, ticketID)
		if err != nil {
			return errorResult(fmt.Sprintf("fetching ticket: %v", err)), nil
		}

		visions := architecture.New(cfg.Architecture, cfg.Timeout())
		elements, err := visions.ModelElements(ctx, ticketID)
		if err != nil {
			return errorResult(fmt.Sprintf("fetching architecture model: %v", err)), nil
		}

		result := reconcile.Reconcile(ticketComponents(info), elements)
		return jsonResult(result)
	}
}

// ticketComponents falls back to parsing the ticket's raw text when the
// source returns no structured component list.
func ticketComponents(info *domain.TicketInfo) []domain.Component {
	if len(info.Components) > 0 {
		return info.Components
	}
	return domain.ParseComponentList(info.RawText)
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
