package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/latticehq/lattice/pkg/domain"
)

// Editor defines the document operations the MCP surface exposes.
type Editor interface {
	Get(ctx context.Context, docID string) (*domain.Page, error)
	List(ctx context.Context) ([]string, error)
	Apply(ctx context.Context, docID, targetID string, patch domain.Patch) (bool, error)
	Validate(ctx context.Context, docID string) ([]domain.Violation, error)
	Resolve(ctx context.Context, docID, blockID, currentStepID string) (domain.Resolution, error)
	ResolveRuntime(ctx context.Context, docID, blockID, currentStepID string) (domain.Resolution, error)
	Graph(ctx context.Context, docID, blockID string) (string, error)
}

// UpdateResponse is the structured result of the document_update tool.
type UpdateResponse struct {
	Applied bool `json:"applied" jsonschema_description:"Whether a node with the given id was found and patched"`
}

// ValidateResponse is the structured result of the document_validate tool.
type ValidateResponse struct {
	Valid      bool               `json:"valid" jsonschema_description:"True when no violations were found"`
	Violations []domain.Violation `json:"violations" jsonschema_description:"Every structural violation, in document order"`
}

// Server wraps the document editor and exposes it as an MCP server so
// agent tooling can inspect and edit funnel documents.
type Server struct {
	editor    Editor
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(editor Editor, version string) *Server {
	s := &Server{
		editor:    editor,
		mcpServer: server.NewMCPServer("lattice-mcp", strings.TrimSpace(version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: document_list
	s.mcpServer.AddTool(mcp.NewTool("document_list",
		mcp.WithDescription("List the ids of all stored funnel documents."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := s.editor.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(ids)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: document_get
	s.mcpServer.AddTool(mcp.NewTool("document_get",
		mcp.WithDescription("Fetch the full document tree as JSON."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("The document id")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docID := request.GetString("document_id", "")
		page, err := s.editor.Get(ctx, docID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("get failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(page)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: document_update
	updateTool := mcp.NewTool("document_update",
		mcp.WithDescription("Apply a partial update to exactly one node of a document. A missing node id is a no-op, reported through 'applied'."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("The document id")),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("The target node id")),
		mcp.WithString("patch", mcp.Required(), mcp.Description("JSON object with the fields to change (name, content, styles, props, settings, mode, ...)")),
		mcp.WithOutputSchema[UpdateResponse](),
	)
	s.mcpServer.AddTool(updateTool, mcp.NewStructuredToolHandler(s.handleUpdate))

	// TOOL: document_validate
	validateTool := mcp.NewTool("document_validate",
		mcp.WithDescription("Validate a document, reporting every structural violation in one batch."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("The document id")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: flow_resolve
	resolveTool := mcp.NewTool("flow_resolve",
		mcp.WithDescription("Resolve the navigation outcome of leaving a flow step."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("The document id")),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("The application-flow block id")),
		mcp.WithString("current_step_id", mcp.Required(), mcp.Description("The step being left")),
		mcp.WithBoolean("strict", mcp.Description("Edit-time resolution: dangling references become errors instead of terminal outcomes")),
		mcp.WithOutputSchema[domain.Resolution](),
	)
	s.mcpServer.AddTool(resolveTool, mcp.NewStructuredToolHandler(s.handleResolve))

	// TOOL: flow_graph
	s.mcpServer.AddTool(mcp.NewTool("flow_graph",
		mcp.WithDescription("Render the mermaid flowchart for a block's embedded flow."),
		mcp.WithString("document_id", mcp.Required(), mcp.Description("The document id")),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("The application-flow block id")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		src, err := s.editor.Graph(ctx, request.GetString("document_id", ""), request.GetString("block_id", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
		}
		return mcp.NewToolResultText(src), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleUpdate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (UpdateResponse, error) {
	docID, _ := args["document_id"].(string)
	nodeID, _ := args["node_id"].(string)
	patchStr, _ := args["patch"].(string)

	var patch domain.Patch
	if err := json.Unmarshal([]byte(patchStr), &patch); err != nil {
		return UpdateResponse{}, fmt.Errorf("invalid patch: %w", err)
	}

	applied, err := s.editor.Apply(ctx, docID, nodeID, patch)
	if err != nil {
		return UpdateResponse{}, fmt.Errorf("update failed: %w", err)
	}
	return UpdateResponse{Applied: applied}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	docID, _ := args["document_id"].(string)

	violations, err := s.editor.Validate(ctx, docID)
	if err != nil {
		return ValidateResponse{}, fmt.Errorf("validate failed: %w", err)
	}
	if violations == nil {
		violations = []domain.Violation{}
	}
	return ValidateResponse{Valid: len(violations) == 0, Violations: violations}, nil
}

func (s *Server) handleResolve(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Resolution, error) {
	docID, _ := args["document_id"].(string)
	blockID, _ := args["block_id"].(string)
	stepID, _ := args["current_step_id"].(string)
	strict, _ := args["strict"].(bool)

	var res domain.Resolution
	var err error
	if strict {
		res, err = s.editor.Resolve(ctx, docID, blockID, stepID)
	} else {
		res, err = s.editor.ResolveRuntime(ctx, docID, blockID, stepID)
	}
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("resolve failed: %w", err)
	}
	return res, nil
}
