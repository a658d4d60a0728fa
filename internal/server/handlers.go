package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/contextmem/contextmem/internal/model"
	"github.com/contextmem/contextmem/internal/prompt"
	"github.com/contextmem/contextmem/internal/store"
	"github.com/contextmem/contextmem/internal/summary"
)

// RegisterTools registers every tool on the MCP server.
func (s *Server) RegisterTools(m *server.MCPServer) {
	m.AddTool(mcp.NewTool("push_memory",
		mcp.WithDescription("Push a memory entry to the server"),
		mcp.WithString("content", mcp.Required(), mcp.Description("The memory content to store")),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project identifier")),
		mcp.WithString("memory_type", mcp.Description("Type of memory entry: fact, preference, task or other")),
		mcp.WithString("priority", mcp.Description("Priority level: low, medium or high")),
		mcp.WithArray("tags", mcp.Description("Tags for categorization"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("agent_id", mcp.Description("Optional registered agent to attribute the push to")),
	), s.handlePushMemory)

	m.AddTool(mcp.NewTool("fetch_memory",
		mcp.WithDescription("Fetch memories matching search criteria"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project identifier")),
		mcp.WithString("query", mcp.Description("Case-insensitive substring to match against content")),
		mcp.WithArray("tags", mcp.Description("Filter by tags; all supplied tags must match"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("memory_type", mcp.Description("Filter by memory type")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results")),
		mcp.WithString("agent_id", mcp.Description("Optional registered agent to attribute the query to")),
	), s.handleFetchMemory)

	m.AddTool(mcp.NewTool("register_agent",
		mcp.WithDescription("Register an agent for a project; idempotent per (name, project)"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Agent name")),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project identifier")),
		mcp.WithString("agent_type", mcp.Description("Type of agent, e.g. cli, chatbot")),
	), s.handleRegisterAgent)

	m.AddTool(mcp.NewTool("get_agent_stats",
		mcp.WithDescription("Get usage statistics for a registered agent"),
		mcp.WithString("agent_id", mcp.Required(), mcp.Description("Agent identifier")),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project identifier")),
	), s.handleAgentStats)

	m.AddTool(mcp.NewTool("get_context_summary",
		mcp.WithDescription("Generate a ranked context digest of a project's memories"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project identifier")),
		mcp.WithNumber("max_memories", mcp.Description("Maximum number of memories in the digest")),
		mcp.WithBoolean("include_recent", mcp.Description("Bias ordering toward recent memories (default true)")),
		mcp.WithArray("focus_areas", mcp.Description("Restrict the digest to memories carrying these tags"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("agent_id", mcp.Description("Optional registered agent to attribute the read to")),
	), s.handleContextSummary)

	m.AddTool(mcp.NewTool("craft_ai_prompt",
		mcp.WithDescription("Craft an AI prompt from the project's context and a declared intent"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project identifier")),
		mcp.WithString("user_message", mcp.Description("User message to incorporate into the prompt")),
		mcp.WithString("prompt_type", mcp.Description("Intent: continuation, task_focused, problem_solving, debugging, explanation, code_review or general")),
		mcp.WithArray("focus_areas", mcp.Description("Restrict the context digest to these tags"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("agent_id", mcp.Description("Optional registered agent to attribute the read to")),
	), s.handleCraftPrompt)
}

func (s *Server) handlePushMemory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return validationResult(err), nil
	}
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return validationResult(err), nil
	}
	args := req.GetArguments()

	rec, err := s.store.Push(ctx, store.PushParams{
		ProjectID:  projectID,
		Content:    content,
		MemoryType: stringArg(args, "memory_type"),
		Priority:   stringArg(args, "priority"),
		Tags:       stringSliceArg(args, "tags"),
		AgentID:    stringArg(args, "agent_id"),
	})
	if err != nil {
		s.log.Error().Err(err).Str("project_id", projectID).Msg("push_memory failed")
		return errorResult(err), nil
	}

	s.log.Debug().Str("project_id", projectID).Str("memory_id", rec.ID).Msg("push_memory completed")
	return mcp.NewToolResultText(fmt.Sprintf("Memory stored successfully with ID: %s", rec.ID)), nil
}

func (s *Server) handleFetchMemory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return validationResult(err), nil
	}
	args := req.GetArguments()

	limit := intArg(args, "limit", s.cfg.DefaultFetchLimit)
	records, err := s.store.Query(ctx, store.QueryParams{
		ProjectID:  projectID,
		Text:       stringArg(args, "query"),
		Tags:       stringSliceArg(args, "tags"),
		MemoryType: stringArg(args, "memory_type"),
		Limit:      limit,
		AgentID:    stringArg(args, "agent_id"),
	})
	if err != nil {
		s.log.Error().Err(err).Str("project_id", projectID).Msg("fetch_memory failed")
		return errorResult(err), nil
	}

	s.log.Debug().Str("project_id", projectID).Int("count", len(records)).Msg("fetch_memory completed")
	b, _ := json.MarshalIndent(records, "", "  ")
	if records == nil {
		b = []byte("[]")
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d memories:\n%s", len(records), b)), nil
}

func (s *Server) handleRegisterAgent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return validationResult(err), nil
	}
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return validationResult(err), nil
	}
	args := req.GetArguments()

	agent, err := s.store.RegisterAgent(ctx, store.RegisterParams{
		Name:      name,
		AgentType: stringArg(args, "agent_type"),
		ProjectID: projectID,
	})
	if err != nil {
		s.log.Error().Err(err).Str("project_id", projectID).Str("name", name).Msg("register_agent failed")
		return errorResult(err), nil
	}

	s.log.Debug().Str("project_id", projectID).Str("agent_id", agent.ID).Msg("register_agent completed")
	return mcp.NewToolResultText(fmt.Sprintf("Agent registered successfully with ID: %s", agent.ID)), nil
}

func (s *Server) handleAgentStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	agentID, err := req.RequireString("agent_id")
	if err != nil {
		return validationResult(err), nil
	}
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return validationResult(err), nil
	}

	st, err := s.store.AgentStats(ctx, agentID, projectID)
	if err != nil {
		s.log.Error().Err(err).Str("agent_id", agentID).Str("project_id", projectID).Msg("get_agent_stats failed")
		return errorResult(err), nil
	}

	types, _ := json.Marshal(st.MemoryTypes)
	text := fmt.Sprintf("Agent Statistics:\nAgent: %s (%s)\nProject: %s\nMemories pushed: %d\nQueries served: %d\nMemory types: %s",
		st.Agent.Name, st.Agent.ID, st.Agent.ProjectID, st.Pushes, st.Queries, types)
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleContextSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return validationResult(err), nil
	}
	args := req.GetArguments()

	digest, err := s.summarizer.Summarize(ctx, summary.Params{
		ProjectID:     projectID,
		MaxMemories:   intArg(args, "max_memories", 10),
		IncludeRecent: boolArg(args, "include_recent", true),
		FocusAreas:    stringSliceArg(args, "focus_areas"),
		AgentID:       stringArg(args, "agent_id"),
	})
	if err != nil {
		s.log.Error().Err(err).Str("project_id", projectID).Msg("get_context_summary failed")
		return errorResult(err), nil
	}

	s.log.Debug().Str("project_id", projectID).Int("records", len(digest.Records)).Msg("get_context_summary completed")
	return mcp.NewToolResultText(digest.Text), nil
}

func (s *Server) handleCraftPrompt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := req.RequireString("project_id")
	if err != nil {
		return validationResult(err), nil
	}
	args := req.GetArguments()

	crafted, err := s.crafter.Craft(ctx, prompt.Params{
		ProjectID:   projectID,
		UserMessage: stringArg(args, "user_message"),
		PromptType:  stringArg(args, "prompt_type"),
		FocusAreas:  stringSliceArg(args, "focus_areas"),
		AgentID:     stringArg(args, "agent_id"),
	})
	if err != nil {
		s.log.Error().Err(err).Str("project_id", projectID).Msg("craft_ai_prompt failed")
		return errorResult(err), nil
	}

	return mcp.NewToolResultText("🎯 **Crafted AI Prompt**\n\n" + crafted), nil
}

// errorResult maps component errors onto the protocol error envelope.
// Callers see a kind plus message, never a stack trace.
func errorResult(err error) *mcp.CallToolResult {
	kind := "internal_error"
	switch {
	case errors.Is(err, model.ErrValidation):
		kind = "validation_error"
	case errors.Is(err, model.ErrNotFound):
		kind = "not_found"
	}
	return mcp.NewToolResultError(fmt.Sprintf("[%s] %v", kind, err))
}

func validationResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("[validation_error] %v", err))
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func stringSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// intArg reads a numeric argument; JSON numbers decode as float64.
func intArg(args map[string]any, key string, def int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return def
}

func boolArg(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}
