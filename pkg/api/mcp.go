package api

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/lodestone/pkg/kit"
	"github.com/hazyhaar/lodestone/pkg/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the matching MCP tools on the server, backed
// by the same endpoints as the HTTP routes.
func RegisterMCPTools(srv *server.MCPServer, svc *service.Service, defaultTopN int, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	registerMatchEntity(srv, svc, defaultTopN, logger)
	registerMatchBatch(srv, svc, logger)
	registerCatalogInfo(srv, svc, logger)
}

func registerMatchEntity(srv *server.MCPServer, svc *service.Service, defaultTopN int, logger *slog.Logger) {
	tool := mcp.NewTool("match_entity",
		mcp.WithDescription("Fuzzy match a free-text entity name against the canonical catalog, returning ranked candidates with confidence scores."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The entity name to match")),
		mcp.WithNumber("top_n", mcp.Description(fmt.Sprintf("Number of candidates to return (default %d)", defaultTopN))),
	)

	endpoint := kit.Chain(logging(logger, "match"))(matchEndpoint(svc, defaultTopN))
	kit.RegisterMCPTool(srv, tool, endpoint, func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		query, _ := args["query"].(string)
		topN := 0
		if v, ok := args["top_n"].(float64); ok {
			topN = int(v)
		}
		return &matchReq{Query: query, TopN: topN}, nil
	})
}

func registerMatchBatch(srv *server.MCPServer, svc *service.Service, logger *slog.Logger) {
	tool := mcp.NewTool("match_batch",
		mcp.WithDescription("Fuzzy match several entity names at once; returns the best candidate per name. Failures on single names do not abort the batch."),
		mcp.WithString("names", mcp.Required(), mcp.Description("Newline-separated entity names to match")),
	)

	endpoint := kit.Chain(logging(logger, "match_batch"))(batchEndpoint(svc))
	kit.RegisterMCPTool(srv, tool, endpoint, func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		raw, _ := args["names"].(string)
		var names []string
		for _, line := range strings.Split(raw, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				names = append(names, line)
			}
		}
		return &batchReq{Names: names}, nil
	})
}

func registerCatalogInfo(srv *server.MCPServer, svc *service.Service, logger *slog.Logger) {
	tool := mcp.NewTool("catalog_info",
		mcp.WithDescription("List the canonical entity catalog the matcher scores against."),
	)

	endpoint := kit.Chain(logging(logger, "catalog"))(catalogEndpoint(svc))
	kit.RegisterMCPTool(srv, tool, endpoint, func(mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}
