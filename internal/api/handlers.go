package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	gerrors "github.com/groupgen/groupgen/pkg/errors"
	"github.com/groupgen/groupgen/pkg/export"
	"github.com/groupgen/groupgen/pkg/model"
	"github.com/groupgen/groupgen/pkg/registry"
)

// maxBodySize caps export request bodies (options only, never code).
const maxBodySize = 1 << 20

// maxLibrarySize caps library uploads.
const maxLibrarySize = 8 << 20

// requestIDHeader carries the per-request id on responses.
const requestIDHeader = "X-Request-ID"

// requestID tags every request with a uuid for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// exportResponse is the POST /api/export success body.
type exportResponse struct {
	RunID            string `json:"run_id"`
	Root             string `json:"root"`
	Code             string `json:"code"`
	ClosureHash      string `json:"closure_hash"`
	NestedGroupCount int    `json:"nested_group_count"`
	WholeTreeWarning bool   `json:"whole_tree_warning"`
	Cached           bool   `json:"cached"`
	Stats            struct {
		GroupCount     int   `json:"group_count"`
		NodeCount      int   `json:"node_count"`
		LinkCount      int   `json:"link_count"`
		ResolveMillis  int64 `json:"resolve_ms"`
		GenerateMillis int64 `json:"generate_ms"`
	} `json:"stats"`
}

// errorResponse is the body for all failures.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// handleExport decodes options strictly, runs the export, and returns
// the generated code with run metadata.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, gerrors.New(gerrors.ErrCodeInvalidOption, "read request body"))
		return
	}

	// Decode over the defaults so omitted fields keep them.
	opts := export.DefaultOptions()
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, gerrors.Wrap(gerrors.ErrCodeInvalidOption, err, "invalid export options"))
		return
	}

	if opts.Group == "" {
		s.writeError(w, gerrors.New(gerrors.ErrCodeInvalidOption, "group is required"))
		return
	}

	result, err := s.runner.Execute(r.Context(), s.reg, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var resp exportResponse
	resp.RunID = result.RunID
	resp.Root = result.Root
	resp.Code = result.Code
	resp.ClosureHash = result.ClosureHash
	resp.NestedGroupCount = result.NestedGroupCount
	resp.WholeTreeWarning = result.WholeTreeWarning
	resp.Cached = result.CacheInfo.CodeHit
	resp.Stats.GroupCount = result.Stats.GroupCount
	resp.Stats.NodeCount = result.Stats.NodeCount
	resp.Stats.LinkCount = result.Stats.LinkCount
	resp.Stats.ResolveMillis = result.Stats.ResolveTime.Milliseconds()
	resp.Stats.GenerateMillis = result.Stats.GenerateTime.Milliseconds()

	s.writeJSON(w, http.StatusOK, resp)
}

// handleUpload stores an uploaded library, one group document at a
// time. The body is the same JSON format the CLI reads from disk, and
// every group is validated before anything is stored.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	st, ok := s.reg.(registry.Storer)
	if !ok {
		s.writeError(w, gerrors.New(gerrors.ErrCodeInvalidOption, "registry does not accept uploads"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxLibrarySize))
	if err != nil {
		s.writeError(w, gerrors.New(gerrors.ErrCodeInvalidLibrary, "read request body"))
		return
	}

	lib, err := model.ReadLibrary(bytes.NewReader(body))
	if err != nil {
		s.writeError(w, gerrors.Wrap(gerrors.ErrCodeInvalidLibrary, err, "invalid library"))
		return
	}

	for i := range lib.Groups {
		if err := st.Store(r.Context(), &lib.Groups[i]); err != nil {
			s.writeError(w, err)
			return
		}
	}

	s.logger.Info("library stored", "groups", len(lib.Groups))
	s.writeJSON(w, http.StatusOK, map[string]int{"stored": len(lib.Groups)})
}

// handleGroups lists the registry's group names.
func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	names, err := s.reg.Names(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"groups": names})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// writeJSON writes v as a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError classifies err and writes the coded error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	coded := gerrors.FromEngine(err)

	var resp errorResponse
	resp.Error.Code = string(coded.Code)
	resp.Error.Message = coded.Message

	status := statusForCode(coded.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", coded.Code, "error", err)
	}
	s.writeJSON(w, status, resp)
}

// statusForCode maps error codes to HTTP statuses.
func statusForCode(code gerrors.Code) int {
	switch code {
	case gerrors.ErrCodeInvalidOption, gerrors.ErrCodeInvalidLibrary:
		return http.StatusBadRequest
	case gerrors.ErrCodeGroupNotFound:
		return http.StatusNotFound
	case gerrors.ErrCodeInvalidGroup, gerrors.ErrCodeMissingReference,
		gerrors.ErrCodeCyclicDependency, gerrors.ErrCodeUnsupportedNodeType,
		gerrors.ErrCodeUnsupportedProperty:
		return http.StatusUnprocessableEntity
	case gerrors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
