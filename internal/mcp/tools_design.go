package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nao1215/salesqueen/internal/layout"
	"github.com/nao1215/salesqueen/internal/project"
)

func (s *Server) registerDesignTools() {
	// ── list_blocks ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_blocks",
		mcp.WithDescription("List the page blocks in order with their headlines"),
	), s.handleListBlocks)

	// ── add_block ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_block",
		mcp.WithDescription("Add a block with default content. Appends unless index is given."),
		mcp.WithString("type", mcp.Description("Block type: hero, features, testimonials, cta"), mcp.Required()),
		mcp.WithNumber("index", mcp.Description("Insert position (optional)")),
	), s.handleAddBlock)

	// ── move_block ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_block",
		mcp.WithDescription("Move a block to another position"),
		mcp.WithNumber("from", mcp.Description("Current index"), mcp.Required()),
		mcp.WithNumber("to", mcp.Description("Target index"), mcp.Required()),
	), s.handleMoveBlock)

	// ── remove_block ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("remove_block",
		mcp.WithDescription("Remove a block"),
		mcp.WithNumber("index", mcp.Description("Block index"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRemoveBlock)

	// ── style_block ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("style_block",
		mcp.WithDescription("Replace a block's inline CSS"),
		mcp.WithNumber("index", mcp.Description("Block index"), mcp.Required()),
		mcp.WithString("css", mcp.Description("Inline CSS declarations"), mcp.Required()),
	), s.handleStyleBlock)

	// ── edit_block ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("edit_block",
		mcp.WithDescription("Replace a block's HTML content"),
		mcp.WithNumber("index", mcp.Description("Block index"), mcp.Required()),
		mcp.WithString("html", mcp.Description("New markup"), mcp.Required()),
	), s.handleEditBlock)
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

type blockInfo struct {
	Index    int    `json:"index"`
	Type     string `json:"type"`
	Headline string `json:"headline,omitempty"`
	Style    string `json:"style,omitempty"`
}

func (s *Server) blocks() []blockInfo {
	s.mu.Lock()
	blocks := s.session.Aggregator().Layout().Blocks()
	s.mu.Unlock()

	out := make([]blockInfo, len(blocks))
	for i, b := range blocks {
		out[i] = blockInfo{Index: i, Type: b.Type, Style: b.Style}
		if sum, err := layout.Inspect(b.HTML); err == nil {
			out[i].Headline = sum.Headline
		}
	}
	return out
}

func (s *Server) handleListBlocks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.blocks())
}

func (s *Server) handleAddBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockType := req.GetString("type", "")
	if blockType == "" {
		return nil, fmt.Errorf("type is required")
	}
	args := req.GetArguments()
	_, hasIndex := args["index"]

	a := project.AddBlock{Type: blockType, Index: getInt(args, "index", 0), AtIndex: hasIndex}
	if _, err := s.dispatch(ctx, a); err != nil {
		return nil, err
	}
	return jsonResult(s.blocks())
}

func (s *Server) handleMoveBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	a := project.MoveBlock{From: getInt(args, "from", -1), To: getInt(args, "to", -1)}
	if _, err := s.dispatch(ctx, a); err != nil {
		return nil, err
	}
	return jsonResult(s.blocks())
}

func (s *Server) handleRemoveBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := project.RemoveBlock{Index: getInt(req.GetArguments(), "index", -1)}
	if _, err := s.dispatch(ctx, a); err != nil {
		return nil, err
	}
	return jsonResult(s.blocks())
}

func (s *Server) handleStyleBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := project.StyleBlock{Index: getInt(req.GetArguments(), "index", -1), CSS: req.GetString("css", "")}
	if _, err := s.dispatch(ctx, a); err != nil {
		return nil, err
	}
	return jsonResult(s.blocks())
}

func (s *Server) handleEditBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := project.EditBlock{Index: getInt(req.GetArguments(), "index", -1), HTML: req.GetString("html", "")}
	if _, err := s.dispatch(ctx, a); err != nil {
		return nil, err
	}
	return jsonResult(s.blocks())
}
