package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/project"
	"github.com/nao1215/salesqueen/internal/report"
)

func (s *Server) registerQuoteTools() {
	// ── estimate ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("estimate",
		mcp.WithDescription("Price a website from the catalog without changing the project. Amounts are INR including 18% GST."),
		mcp.WithString("type",
			mcp.Description("Site type: ecommerce, business, portfolio, blog, custom"),
			mcp.Required(),
		),
		mcp.WithString("features", mcp.Description("Comma-separated feature IDs (optional)")),
		mcp.WithString("timeline", mcp.Description("standard, rush or flex (default standard)")),
		mcp.WithNumber("budget", mcp.Description("Client budget in INR; 0 disables the budget check")),
	), s.handleEstimate)

	// ── quote_pages ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("quote_pages",
		mcp.WithDescription("Price a website by page count without changing the project. Amounts are USD."),
		mcp.WithNumber("numPages", mcp.Description("Number of pages (>= 1)"), mcp.Required()),
		mcp.WithString("ecommerce", mcp.Description("E-commerce tier: none, basic, advanced")),
		mcp.WithString("seo", mcp.Description("SEO tier: none, standard, plus, premium")),
		mcp.WithNumber("weeks", mcp.Description("Delivery time in weeks (>= 1)"), mcp.Required()),
		mcp.WithBoolean("maintenance", mcp.Description("Add monthly maintenance")),
	), s.handleQuotePages)

	// ── update_estimate ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_estimate",
		mcp.WithDescription("Change the project's catalog selection and save it. Omitted arguments are left as they are."),
		mcp.WithString("type", mcp.Description("Site type to select")),
		mcp.WithString("add", mcp.Description("Comma-separated feature IDs to select")),
		mcp.WithString("remove", mcp.Description("Comma-separated feature IDs to deselect")),
		mcp.WithString("timeline", mcp.Description("standard, rush or flex")),
		mcp.WithNumber("budget", mcp.Description("Client budget in INR")),
	), s.handleUpdateEstimate)

	// ── submit_page_quote ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("submit_page_quote",
		mcp.WithDescription("Save a page-count quote to the project and mark the quote stage complete"),
		mcp.WithNumber("numPages", mcp.Description("Number of pages (>= 1)"), mcp.Required()),
		mcp.WithString("ecommerce", mcp.Description("E-commerce tier: none, basic, advanced")),
		mcp.WithString("seo", mcp.Description("SEO tier: none, standard, plus, premium")),
		mcp.WithNumber("weeks", mcp.Description("Delivery time in weeks (>= 1)"), mcp.Required()),
		mcp.WithBoolean("maintenance", mcp.Description("Add monthly maintenance")),
	), s.handleSubmitPageQuote)

	// ── get_progress ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_progress",
		mcp.WithDescription("Show the workflow stages and overall completion percentage"),
	), s.handleGetProgress)

	// ── get_report ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Render the project and its estimate as a report"),
		mcp.WithString("format", mcp.Description("text, json or markdown (default markdown)")),
	), s.handleGetReport)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleEstimate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typeID := req.GetString("type", "")
	if typeID == "" {
		return nil, fmt.Errorf("type is required")
	}
	catalog := pricing.DefaultCatalog()
	if _, ok := catalog.Type(typeID); !ok {
		return nil, fmt.Errorf("unknown site type %q", typeID)
	}

	sel := model.NewSelection()
	sel.Type = typeID
	sel.Features = splitList(req.GetString("features", ""))
	sel.Timeline = model.Timeline(req.GetString("timeline", "")).Normalize()
	sel.Budget = int64(getFloat(req.GetArguments(), "budget", 0))

	b := pricing.NewCatalogEstimator(catalog).Estimate(pricing.Input{Selection: sel})
	return jsonResult(b)
}

func pageQuoteArgs(req mcp.CallToolRequest) model.PageQuote {
	args := req.GetArguments()
	return model.PageQuote{
		NumPages:      getInt(args, "numPages", 0),
		Ecommerce:     req.GetString("ecommerce", ""),
		SEO:           req.GetString("seo", ""),
		TimelineWeeks: getInt(args, "weeks", 0),
		Maintenance:   getBool(args, "maintenance", false),
	}
}

func (s *Server) handleQuotePages(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	e := pricing.NewPageEstimator(pricing.DefaultPageRates())
	in := pricing.Input{Pages: pageQuoteArgs(req)}
	if err := e.Validate(in); err != nil {
		return nil, err
	}
	return jsonResult(e.Estimate(in))
}

func (s *Server) handleUpdateEstimate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	var actions []project.Action
	if _, ok := args["type"]; ok {
		actions = append(actions, project.SelectType{TypeID: req.GetString("type", "")})
	}
	for _, id := range splitList(req.GetString("add", "")) {
		actions = append(actions, project.ToggleFeature{ID: id, Selected: true})
	}
	for _, id := range splitList(req.GetString("remove", "")) {
		actions = append(actions, project.ToggleFeature{ID: id, Selected: false})
	}
	if tl := req.GetString("timeline", ""); tl != "" {
		actions = append(actions, project.SetTimeline{Timeline: model.Timeline(tl)})
	}
	if _, ok := args["budget"]; ok {
		actions = append(actions, project.SetBudget{Budget: int64(getFloat(args, "budget", 0))})
	}
	if len(actions) == 0 {
		return nil, fmt.Errorf("nothing to update: pass type, add, remove, timeline or budget")
	}

	var b pricing.Breakdown
	for _, a := range actions {
		var err error
		if b, err = s.dispatch(ctx, a); err != nil {
			return nil, fmt.Errorf("%s: %w", a.Name(), err)
		}
	}
	return jsonResult(b)
}

func (s *Server) handleSubmitPageQuote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := s.dispatch(ctx, project.SubmitPageQuote{Quote: pageQuoteArgs(req)}); err != nil {
		return nil, err
	}
	e := pricing.NewPageEstimator(pricing.DefaultPageRates())
	return jsonResult(e.Estimate(pricing.Input{Pages: pageQuoteArgs(req)}))
}

func (s *Server) handleGetProgress(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sum := s.summary()
	return jsonResult(struct {
		Percentage int                  `json:"percentage"`
		Stages     []report.StageStatus `json:"stages"`
	}{sum.Percentage, sum.Stages})
}

func (s *Server) handleGetReport(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := report.Format(req.GetString("format", string(report.FormatMarkdown)))
	text, err := s.writeReport(format)
	if err != nil {
		return nil, err
	}
	return textResult(text), nil
}
