// Package server exposes the thinking engine over MCP stdio: one tool
// for submitting thought steps, helper tools for branching and session
// management, and resources documenting the strategies.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/aaronsb/think-strategies/internal/config"
	"github.com/aaronsb/think-strategies/internal/engine"
	"github.com/aaronsb/think-strategies/internal/storage"
)

const (
	docResourceURI    = "think-strategies://documentation"
	configResourceURI = "think-strategies://strategy-config"
)

// Server wraps the MCP server with the session coordinator and store.
type Server struct {
	coord  *engine.Coordinator
	table  *config.Table
	store  storage.Store
	log    *zap.Logger
	server *mcp.Server
}

// New creates the MCP server and registers every tool and resource.
func New(table *config.Table, store storage.Store, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	coord := engine.NewCoordinator(table, store, logger)
	coord.SetRenderWriter(os.Stderr)

	s := &Server{
		coord: coord,
		table: table,
		store: store,
		log:   logger,
	}

	impl := &mcp.Implementation{
		Name:    "think-strategies",
		Version: version,
	}
	s.server = mcp.NewServer(impl, nil)
	s.registerTools()
	s.registerResources()
	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "think-strategies",
		Description: "Structured thinking with 10 reasoning strategies: linear, chain_of_thought, " +
			"react, rewoo, scratchpad, self_ask, self_consistency, step_back, tree_of_thoughts, trilemma. " +
			"Start by submitting a strategy field to select one; every response lists the actions " +
			"available from the current stage with their required inputs. Supports revisions, branches, " +
			"dynamic thought-count adjustment, and switching strategy mid-session.",
	}, s.handleThink)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "think-tools",
		Description: "Helper operations for an active thinking session: 'create-branch' forks a new " +
			"branch from a prior thought by its absolute number; 'server-status' reports the active " +
			"strategy, stage, session id and thought count.",
	}, s.handleTools)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "think-session-manager",
		Description: "Manage persisted thinking sessions: 'list' stored sessions with optional " +
			"strategy/completed filters, 'get' a full session by id, 'resume' a session to continue " +
			"thinking where it left off.",
	}, s.handleSessionManager)
}

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         docResourceURI,
		Name:        "Strategy Documentation",
		Description: "How each reasoning strategy works and when to use it",
		MIMEType:    "text/markdown",
	}, s.handleDocResource)

	s.server.AddResource(&mcp.Resource{
		URI:         configResourceURI,
		Name:        "Strategy Configuration",
		Description: "The full routing table: stages, transitions and semantic actions per strategy",
		MIMEType:    "application/json",
	}, s.handleConfigResource)
}

func (s *Server) handleDocResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      docResourceURI,
			MIMEType: "text/markdown",
			Text:     strategyDocumentation,
		}},
	}, nil
}

func (s *Server) handleConfigResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	b, err := json.MarshalIndent(s.table, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal routing table: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      configResourceURI,
			MIMEType: "application/json",
			Text:     string(b),
		}},
	}, nil
}
