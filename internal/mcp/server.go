// Package mcpserver exposes a SalesQueen session to AI agents over the
// Model Context Protocol.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nao1215/salesqueen/internal/geo"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/project"
	"github.com/nao1215/salesqueen/internal/report"
)

// ProjectURI is the resource URI of the current project document.
const ProjectURI = "salesqueen://project"

// Server is the MCP server of one session.
// Tool calls are serialized because a project.Session is single-threaded.
type Server struct {
	mcp     *server.MCPServer
	logger  *slog.Logger
	locator geo.Locator
	radius  int
	now     func() time.Time

	mu      sync.Mutex
	session *project.Session
	// places holds the last search results by place ID for claim_place.
	places map[string]model.Place
}

// Deps holds the services the server drives.
type Deps struct {
	Session *project.Session
	Locator geo.Locator
	Logger  *slog.Logger
	Version string
	// Radius is the nearby search radius in meters. Zero means geo.DefaultRadius.
	Radius int
}

// New creates and configures a server with all tools and resources.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := deps.Version
	if version == "" {
		version = "(devel)"
	}
	s := &Server{
		session: deps.Session,
		locator: deps.Locator,
		logger:  logger,
		radius:  deps.Radius,
		now:     time.Now,
		places:  map[string]model.Place{},
	}

	s.mcp = server.NewMCPServer(
		"salesqueen",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerQuoteTools()
	s.registerLeadTools()
	s.registerDesignTools()
	s.registerResources()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting MCP stdio server")
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server, for in-process transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// dispatch applies a to the session under the server lock.
func (s *Server) dispatch(ctx context.Context, a project.Action) (pricing.Breakdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Dispatch(ctx, a)
}

// summary builds the report summary of the current state.
func (s *Server) summary() *report.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return report.NewSummary(s.session.Snapshot(), s.session.Estimate(), pricing.DefaultCatalog(), s.now())
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// writeReport renders the current summary in format.
func (s *Server) writeReport(format report.Format) (string, error) {
	var buf bytes.Buffer
	w, err := report.NewWriter(format, &buf, false)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(s.summary()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(
		ProjectURI,
		"Current SalesQueen project",
		mcp.WithMIMEType("application/json"),
	), s.handleProjectResource)
}

func (s *Server) handleProjectResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.mu.Lock()
	doc := s.session.Snapshot()
	s.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ProjectURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
