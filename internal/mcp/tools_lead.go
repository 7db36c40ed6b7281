package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nao1215/salesqueen/internal/geo"
	"github.com/nao1215/salesqueen/internal/lead"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/project"
)

func (s *Server) registerLeadTools() {
	// ── capture_lead ───────────────────────────────────
	opts := []mcp.ToolOption{
		mcp.WithDescription("Merge fields into the project's lead and save it. Omitted fields keep their values."),
	}
	for _, f := range lead.Fields() {
		opts = append(opts, mcp.WithString(string(f), mcp.Description("Lead "+string(f))))
	}
	s.mcp.AddTool(mcp.NewTool("capture_lead", opts...), s.handleCaptureLead)

	// ── search_places ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("search_places",
		mcp.WithDescription("Find businesses near a city or address"),
		mcp.WithString("query", mcp.Description("City, area or address"), mcp.Required()),
		mcp.WithString("industry", mcp.Description("Place type filter such as cafe or bakery (optional)")),
		mcp.WithNumber("limit", mcp.Description("Maximum results, up to 12")),
	), s.handleSearchPlaces)

	// ── claim_place ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("claim_place",
		mcp.WithDescription("Use a place from the last search as the project's lead"),
		mcp.WithString("placeId", mcp.Description("Place ID from search_places"), mcp.Required()),
	), s.handleClaimPlace)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleCaptureLead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	patch := lead.Patch{}
	for _, f := range lead.Fields() {
		if v, ok := args[string(f)].(string); ok {
			patch[f] = v
		}
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("no lead fields given")
	}

	if _, err := s.dispatch(ctx, project.SubmitLead{Patch: patch}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	l := s.session.Lead().Get()
	s.mu.Unlock()
	return jsonResult(l)
}

func (s *Server) handleSearchPlaces(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.locator == nil {
		return nil, fmt.Errorf("location lookup is not configured")
	}
	query := req.GetString("query", "")

	res := geo.Lookup(ctx, s.locator, query, geo.NearbyOptions{
		Radius:   s.radius,
		Industry: req.GetString("industry", ""),
		Limit:    getInt(req.GetArguments(), "limit", 0),
	})
	if res.Err != nil {
		return nil, res.Err
	}

	if _, err := s.dispatch(ctx, project.SetQuery{Query: query}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.places = make(map[string]model.Place, len(res.Places))
	for _, p := range res.Places {
		s.places[p.ID] = p
	}
	s.mu.Unlock()

	return jsonResult(struct {
		Location geo.Location  `json:"location"`
		Places   []model.Place `json:"places"`
	}{res.Location, res.Places})
}

func (s *Server) handleClaimPlace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("placeId", "")

	s.mu.Lock()
	place, ok := s.places[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("place %q is not in the last search results", id)
	}

	if _, err := s.dispatch(ctx, project.ClaimPlace{Place: place}); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Claimed %s as the lead.", place.Name)), nil
}
