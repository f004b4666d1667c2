package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/lodestone/pkg/kit"
	"github.com/hazyhaar/lodestone/pkg/match"
	"github.com/hazyhaar/lodestone/pkg/service"
)

// Shared request/response types used by both HTTP and MCP transports.

const maxBatchNames = 100

type matchReq struct {
	Query string
	TopN  int
}

type batchReq struct {
	Names []string
}

type scoreDetail struct {
	TFIDF       float64 `json:"tfidf"`
	Levenshtein float64 `json:"levenshtein"`
	TokenSet    float64 `json:"token_set"`
}

type matchResult struct {
	Entity     string      `json:"entity"`
	Confidence float64     `json:"confidence"`
	Scores     scoreDetail `json:"scores"`
}

type matchResponse struct {
	Query        string        `json:"query"`
	TopMatch     matchResult   `json:"top_match"`
	Alternatives []matchResult `json:"alternatives"`
}

type batchResponse struct {
	Results []service.BatchItem `json:"results"`
}

type catalogResponse struct {
	Entities []string `json:"entities"`
	Count    int      `json:"count"`
}

func toMatchResult(c match.Candidate) matchResult {
	return matchResult{
		Entity:     c.Entity,
		Confidence: c.Confidence,
		Scores: scoreDetail{
			TFIDF:       c.TFIDF,
			Levenshtein: c.Edit,
			TokenSet:    c.TokenSet,
		},
	}
}

func matchEndpoint(svc *service.Service, defaultTopN int) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*matchReq)
		topN := req.TopN
		if topN == 0 {
			topN = defaultTopN
		}
		candidates, err := svc.Match(req.Query, topN)
		if err != nil {
			return nil, err
		}

		resp := matchResponse{
			Query:        req.Query,
			TopMatch:     toMatchResult(candidates[0]),
			Alternatives: []matchResult{},
		}
		for _, c := range candidates[1:] {
			resp.Alternatives = append(resp.Alternatives, toMatchResult(c))
		}
		return resp, nil
	}
}

func batchEndpoint(svc *service.Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*batchReq)
		if len(req.Names) == 0 {
			return nil, &match.ValidationError{Reason: "names list is empty"}
		}
		if len(req.Names) > maxBatchNames {
			return nil, &match.ValidationError{Reason: fmt.Sprintf("too many names (max %d, got %d)", maxBatchNames, len(req.Names))}
		}
		return batchResponse{Results: svc.MatchBatch(req.Names)}, nil
	}
}

func catalogEndpoint(svc *service.Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		entities := svc.Entities()
		return catalogResponse{Entities: entities, Count: len(entities)}, nil
	}
}

// logging reports every endpoint call with its outcome and duration.
func logging(logger *slog.Logger, name string) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			if err != nil {
				logger.Warn("endpoint failed", "endpoint", name, "transport", kit.GetTransport(ctx), "request_id", kit.GetRequestID(ctx), "duration", time.Since(start), "error", err)
			} else {
				logger.Debug("endpoint ok", "endpoint", name, "transport", kit.GetTransport(ctx), "request_id", kit.GetRequestID(ctx), "duration", time.Since(start))
			}
			return resp, err
		}
	}
}
