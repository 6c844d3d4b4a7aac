package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aaronsb/think-strategies/internal/model"
	"github.com/aaronsb/think-strategies/internal/storage"
)

// ToolsArgs is the input of the think-tools helper tool.
type ToolsArgs struct {
	Tool              string `json:"tool" jsonschema:"Helper to invoke: 'create-branch' or 'server-status'"`
	BranchFromThought int    `json:"branchFromThought,omitempty" jsonschema:"Absolute number of the thought to branch from (create-branch)"`
	BranchID          string `json:"branchId,omitempty" jsonschema:"Identifier for the new branch (create-branch)"`
	Thought           string `json:"thought,omitempty" jsonschema:"Content of the branch's first thought (create-branch)"`
}

// StatusResult reports the live session state.
type StatusResult struct {
	Initialized  bool           `json:"initialized"`
	SessionID    string         `json:"sessionId,omitempty"`
	Strategy     model.Strategy `json:"strategy,omitempty"`
	CurrentStage string         `json:"currentStage,omitempty"`
	ThoughtCount int            `json:"thoughtCount"`
}

func (s *Server) handleTools(ctx context.Context, req *mcp.CallToolRequest, args ToolsArgs) (*mcp.CallToolResult, any, error) {
	switch args.Tool {
	case "create-branch":
		resp := s.coord.CreateBranch(ctx, args.BranchFromThought, args.BranchID, args.Thought)
		return nil, resp, nil
	case "server-status":
		return nil, StatusResult{
			Initialized:  s.coord.Initialized(),
			SessionID:    s.coord.SessionID(),
			Strategy:     s.coord.Strategy(),
			CurrentStage: s.coord.Stage(),
			ThoughtCount: s.coord.LedgerLen(),
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown tool %q: use 'create-branch' or 'server-status'", args.Tool)
	}
}

// SessionManagerArgs is the input of the think-session-manager tool.
type SessionManagerArgs struct {
	Action    string `json:"action" jsonschema:"Operation to perform: 'list', 'get' or 'resume'"`
	SessionID string `json:"sessionId,omitempty" jsonschema:"Session id for 'get' and 'resume'"`
	Strategy  string `json:"strategy,omitempty" jsonschema:"Filter listed sessions by strategy (list)"`
	Completed *bool  `json:"completed,omitempty" jsonschema:"Filter listed sessions by completion state (list)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum sessions to return, default 20 (list)"`
}

// SessionListResult is the output of the 'list' action.
type SessionListResult struct {
	Sessions []model.SessionSummary `json:"sessions"`
	Message  string                 `json:"message,omitempty"`
}

// ResumeResult is the output of the 'resume' action.
type ResumeResult struct {
	SessionID    string         `json:"sessionId"`
	Strategy     model.Strategy `json:"strategy"`
	CurrentStage string         `json:"currentStage"`
	ThoughtCount int            `json:"thoughtCount"`
	Completed    bool           `json:"completed"`
	Message      string         `json:"message"`
}

func (s *Server) handleSessionManager(ctx context.Context, req *mcp.CallToolRequest, args SessionManagerArgs) (*mcp.CallToolResult, any, error) {
	if s.store == nil {
		return nil, nil, fmt.Errorf("no session storage configured")
	}

	switch args.Action {
	case "list":
		limit := args.Limit
		if limit <= 0 {
			limit = 20
		}
		summaries, err := s.store.ListSessions(ctx, storage.ListParams{
			Strategy:  args.Strategy,
			Completed: args.Completed,
			Limit:     limit,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("list sessions: %w", err)
		}
		out := SessionListResult{Sessions: summaries}
		if len(summaries) == 0 {
			out.Message = "No stored sessions match the criteria."
		}
		return nil, out, nil

	case "get":
		if args.SessionID == "" {
			return nil, nil, fmt.Errorf("sessionId is required for 'get'")
		}
		sess, err := s.store.LoadSession(ctx, args.SessionID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, nil, fmt.Errorf("session not found: %s", args.SessionID)
			}
			return nil, nil, fmt.Errorf("load session: %w", err)
		}
		return nil, sess, nil

	case "resume":
		if args.SessionID == "" {
			return nil, nil, fmt.Errorf("sessionId is required for 'resume'")
		}
		sess, err := s.store.LoadSession(ctx, args.SessionID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, nil, fmt.Errorf("session not found: %s", args.SessionID)
			}
			return nil, nil, fmt.Errorf("load session: %w", err)
		}
		if err := s.coord.Resume(sess); err != nil {
			return nil, nil, fmt.Errorf("resume session: %w", err)
		}
		return nil, ResumeResult{
			SessionID:    sess.ID,
			Strategy:     sess.Strategy,
			CurrentStage: s.coord.Stage(),
			ThoughtCount: s.coord.LedgerLen(),
			Completed:    sess.Completed,
			Message:      fmt.Sprintf("Session %s resumed at stage %s; continue with the next thought.", sess.ID, s.coord.Stage()),
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown action %q: use 'list', 'get' or 'resume'", args.Action)
	}
}
