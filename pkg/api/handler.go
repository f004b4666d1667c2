package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hazyhaar/lodestone/pkg/kit"
	"github.com/hazyhaar/lodestone/pkg/match"
	"github.com/hazyhaar/lodestone/pkg/service"
)

const maxUploadBytes = 1 << 20 // 1 MiB per uploaded catalog file

// NewRouter returns an http.Handler with all matching API routes.
func NewRouter(svc *service.Service, defaultTopN int, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	h := &handler{
		match:   kit.Chain(logging(logger, "match"))(matchEndpoint(svc, defaultTopN)),
		batch:   kit.Chain(logging(logger, "match_batch"))(batchEndpoint(svc)),
		catalog: kit.Chain(logging(logger, "catalog"))(catalogEndpoint(svc)),
		svc:     svc,
	}

	mux.HandleFunc("GET /v1/match", methodNotAllowed) // match is POST-only
	mux.HandleFunc("POST /v1/match", h.handleMatch)
	mux.HandleFunc("GET /v1/match/batch", methodNotAllowed)
	mux.HandleFunc("POST /v1/match/batch", h.handleBatch)
	mux.HandleFunc("GET /v1/catalog", h.handleCatalog)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(requestID(mux))
}

type handler struct {
	match   kit.Endpoint
	batch   kit.Endpoint
	catalog kit.Endpoint
	svc     *service.Service
}

// --- single match ---

type httpMatchRequest struct {
	Query string `json:"query"`
	TopN  int    `json:"top_n,omitempty"`
}

func (h *handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	var req httpMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.match(r.Context(), &matchReq{Query: req.Query, TopN: req.TopN})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- batch match from file upload ---

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart form must contain a 'file' part")
		return
	}
	defer file.Close()

	names, err := ExtractNames(header.Filename, file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.batch(r.Context(), &batchReq{Names: names})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- catalog ---

func (h *handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	resp, err := h.catalog(r.Context(), nil)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status   string `json:"status"`
	Entities int    `json:"entities"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Entities: h.svc.Size(),
	})
}

// --- helpers ---

// writeEndpointError maps core errors to HTTP status codes: invalid input
// is the caller's fault (400), anything else is ours (500).
func writeEndpointError(w http.ResponseWriter, err error) {
	var ve *match.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// requestID tags every request context with a fresh ID so endpoint log
// lines can be correlated per request.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(kit.WithRequestID(r.Context(), uuid.NewString())))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
