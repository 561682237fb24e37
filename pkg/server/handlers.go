package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/darianrosebrook/portfolio-sub007/pkg/buildinfo"
	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	tokio "github.com/darianrosebrook/portfolio-sub007/pkg/io"
	"github.com/darianrosebrook/portfolio-sub007/pkg/loader"
	"github.com/darianrosebrook/portfolio-sub007/pkg/pipeline"
	"github.com/darianrosebrook/portfolio-sub007/pkg/project"
	"github.com/darianrosebrook/portfolio-sub007/pkg/validate"
)

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
	Path  string      `json:"path,omitempty"`
}

type tokensResponse struct {
	PassID   string            `json:"pass_id"`
	Tokens   map[string]any    `json:"tokens"`
	Failures map[string]string `json:"failures,omitempty"`
	CacheHit bool              `json:"cache_hit"`
}

// resolveRequest is the body of POST /v1/resolve. Without sources the
// store's documents are used.
type resolveRequest struct {
	Sources   []loader.Source   `json:"sources"`
	Fallbacks map[string]any    `json:"fallbacks"`
	Overrides map[string]any    `json:"overrides"`
	Namespace string            `json:"namespace"`
	Root      string            `json:"root"`
	Enums     []project.Enum    `json:"enums"`
	Select    map[string]string `json:"select"`
}

type projectionResponse struct {
	PassID     string              `json:"pass_id"`
	Projection *project.Projection `json:"projection"`
	Failures   map[string]string   `json:"failures,omitempty"`
	CacheHit   bool                `json:"cache_hit"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	res, err := s.runStore(r, project.Options{})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tokensResponse{
		PassID:   res.PassID,
		Tokens:   res.Resolved,
		Failures: res.Failures,
		CacheHit: res.CacheHit,
	})
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := project.Options{
		Namespace: chi.URLParam(r, "namespace"),
		Root:      q.Get("root"),
	}
	format := q.Get("format")
	if format != "" && format != "json" && format != "css" {
		s.writeError(w, errors.New(errors.CodeInvalidInput, "", "unknown format %q (want json or css)", format))
		return
	}

	res, err := s.runStore(r, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if format == "css" {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, res.Projection.CSS(q.Get("selector"))); err != nil {
			s.logger.Debug("write response", "err", err)
		}
		return
	}
	s.writeJSON(w, http.StatusOK, projectionResponse{
		PassID:     res.PassID,
		Projection: res.Projection,
		Failures:   res.Failures,
		CacheHit:   res.CacheHit,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	doc, err := tokio.Read(http.MaxBytesReader(w, r.Body, maxBodyBytes), tokio.FormatJSON)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var opts []validate.Option
	if s.StrictUnits || r.URL.Query().Get("strict_units") == "true" {
		opts = append(opts, validate.WithStrictUnits())
	}
	report := validate.Validate(doc, opts...)

	status := http.StatusOK
	if !report.OK() {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, report)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var body resolveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		s.writeError(w, errors.Wrap(errors.CodeInvalidInput, err, "invalid request body"))
		return
	}

	req := pipeline.Request{
		Sources: body.Sources,
		Project: project.Options{
			Namespace: body.Namespace,
			Root:      body.Root,
			Fallbacks: body.Fallbacks,
			Overrides: body.Overrides,
			Enums:     body.Enums,
			Select:    body.Select,
		},
		StrictUnits: s.StrictUnits,
	}
	if len(req.Sources) == 0 {
		sources, err := s.store.Documents(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		req.Sources = sources
	}

	res, err := s.runner.Run(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, projectionResponse{
		PassID:     res.PassID,
		Projection: res.Projection,
		Failures:   res.Failures,
		CacheHit:   res.CacheHit,
	})
}

// runStore runs a pass over the store's current documents.
func (s *Server) runStore(r *http.Request, opts project.Options) (*pipeline.Result, error) {
	sources, err := s.store.Documents(r.Context())
	if err != nil {
		return nil, err
	}
	return s.runner.Run(r.Context(), pipeline.Request{
		Sources:     sources,
		Project:     opts,
		StrictUnits: s.StrictUnits,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	resp := errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)}
	var e *errors.Error
	if errors.As(err, &e) {
		resp.Path = e.Path
	}
	s.writeJSON(w, status, resp)
}

// statusFor maps error codes onto HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeParseFailure, errors.CodeSchemaViolation:
		return http.StatusBadRequest
	case errors.CodeIO:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
