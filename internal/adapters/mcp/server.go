// Package mcpadapter exposes the retrieval pipeline as an MCP tool so
// agent clients can ask for verified legal authority over stdio.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
	"github.com/SachinASIET26/Neethi-sub000/internal/core/ports"
)

type Server struct {
	service ports.LegalQueryService
	logger  *slog.Logger
}

func NewServer(service ports.LegalQueryService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{service: service, logger: logger}
}

// Serve blocks on stdio until the client disconnects.
func (s *Server) Serve() error {
	srv := server.NewMCPServer("neethi", "1.0.0", server.WithToolCapabilities(false))
	srv.AddTool(legalSearchTool(), s.handleLegalSearch)
	return server.ServeStdio(srv)
}

func legalSearchTool() mcp.Tool {
	return mcp.NewTool("legal_search",
		mcp.WithDescription("Search Indian statutes and case law. Every citation in the result has passed an exact-match existence check against the statute registry; an UNVERIFIED status means no authority could be confirmed."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural-language legal question."),
		),
		mcp.WithNumber("top_k",
			mcp.Description("Number of citations to return. Defaults to 5."),
		),
		mcp.WithString("act_code",
			mcp.Description("Restrict retrieval to one act, for example BNS or IPC."),
		),
		mcp.WithNumber("diversity_factor",
			mcp.Description("0 keeps strict relevance order, 1 maximizes source diversity."),
		),
	)
}

func (s *Server) handleLegalSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	bundle, err := s.service.RetrieveAndVerify(ctx, domain.RetrievalRequest{
		Query:           query,
		TopK:            req.GetInt("top_k", 0),
		ActCode:         req.GetString("act_code", ""),
		DiversityFactor: req.GetFloat("diversity_factor", 0),
	})
	if err != nil {
		s.logger.Error("legal_search failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	encoded, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
