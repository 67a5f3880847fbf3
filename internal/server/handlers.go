package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/buildinfo"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/errors"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/mis"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/observability"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/pipeline"
	"github.com/ReFLEX-Lab-York/trafficMISBP/pkg/render/nodelink"
)

var contentTypes = map[string]string{
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type strategiesResponse struct {
	Default       string   `json:"default"`
	Strategies    []string `json:"strategies"`
	MaxExactNodes int      `json:"max_exact_nodes"`
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, strategiesResponse{
		Default:       pipeline.DefaultStrategy,
		Strategies:    mis.Names(),
		MaxExactNodes: pipeline.DefaultMaxExactNodes,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil {
		writeError(w, err)
		return
	}
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type batchRequest struct {
	Intersections []pipeline.Options `json:"intersections"`
}

type batchEntry struct {
	Name   string           `json:"name,omitempty"`
	Result *pipeline.Result `json:"result,omitempty"`
	Error  *errorBody       `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchEntry `json:"results"`
	Failed  int          `json:"failed"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Intersections) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "intersections must not be empty"))
		return
	}
	if len(req.Intersections) > s.cfg.MaxBatch {
		writeError(w, errors.New(errors.ErrCodeInvalidInput,
			"batch of %d exceeds maximum of %d", len(req.Intersections), s.cfg.MaxBatch))
		return
	}

	items, err := s.runner.ExecuteBatch(r.Context(), req.Intersections, s.cfg.Jobs)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := batchResponse{Results: make([]batchEntry, len(items))}
	for i, it := range items {
		resp.Results[i] = batchEntry{Name: it.Options.Name, Result: it.Result}
		if it.Err != nil {
			resp.Results[i].Error = newErrorBody(it.Err)
			resp.Failed++
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ropts := pipeline.RenderOptions{Format: q.Get("format"), Highlight: nodelink.NoHighlight}
	if ropts.Format == "" {
		ropts.Format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(ropts.Format); err != nil {
		writeError(w, err)
		return
	}
	if h := q.Get("highlight"); h != "" {
		n, err := strconv.Atoi(h)
		if err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "highlight must be a lane number"))
			return
		}
		ropts.Highlight = n
	}

	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil {
		writeError(w, err)
		return
	}
	opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	data, _, err := s.runner.Render(r.Context(), res, ropts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[ropts.Format])
	w.Header().Set("X-Result-Id", res.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decode reads a JSON body into v, rejecting unknown fields and oversized
// bodies.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func newErrorBody(err error) *errorBody {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return &errorBody{Code: code, Message: errors.UserMessage(err)}
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), struct {
		Error *errorBody `json:"error"`
	}{newErrorBody(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		d := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), d)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", d.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
