package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/structogram/pkg/buildinfo"
	"github.com/matzehuels/structogram/pkg/errors"
	classio "github.com/matzehuels/structogram/pkg/io"
	"github.com/matzehuels/structogram/pkg/pipeline"
	"github.com/matzehuels/structogram/pkg/render/structogram/styles"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// RenderRequest is the body of POST /v1/structogram.
type RenderRequest struct {
	Class     json.RawMessage `json:"class"`
	Method    string          `json:"method,omitempty"`
	Line      int             `json:"line,omitempty"`
	Format    string          `json:"format,omitempty"`
	Style     string          `json:"style,omitempty"`
	VizType   string          `json:"viz_type,omitempty"`
	NoTitle   bool            `json:"no_title,omitempty"`
	Scale     float64         `json:"scale,omitempty"`
	EmbedFont bool            `json:"embed_font,omitempty"`
}

// MethodsRequest is the body of POST /v1/methods.
type MethodsRequest struct {
	Class json.RawMessage `json:"class"`
}

// MethodInfo describes one method in a /v1/methods reply.
type MethodInfo struct {
	Name        string `json:"name"`
	Declaration string `json:"declaration"`
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
	HasBody     bool   `json:"has_body"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"styles": styles.Names()})
}

func (s *Server) handleMethods(w http.ResponseWriter, r *http.Request) {
	var req MethodsRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := classio.ParseClass(req.Class, classio.FormatJSON)
	if err != nil {
		writeError(w, r, err)
		return
	}

	methods := make([]MethodInfo, len(c.Methods))
	for i, m := range c.Methods {
		methods[i] = MethodInfo{
			Name:        m.Name,
			Declaration: m.Declaration(),
			StartLine:   m.StartLine,
			EndLine:     m.EndLine,
			HasBody:     m.HasBody(),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"class": c.Name, "methods": methods})
}

func (s *Server) handleStructogram(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.Class) == 0 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "class is required"))
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Source:       req.Class,
		SourceFormat: classio.FormatJSON,
		Method:       req.Method,
		Line:         req.Line,
		VizType:      req.VizType,
		Formats:      []string{format},
		Style:        req.Style,
		NoTitle:      req.NoTitle,
		Scale:        req.Scale,
		EmbedFont:    req.EmbedFont,
		Logger:       s.logger,
	}
	s.cfg.Apply(&opts)

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Cache", cacheStatus)
	if result.Stats.Width > 0 {
		h.Set("X-Structogram-Size", strconv.Itoa(result.Stats.Width)+"x"+strconv.Itoa(result.Stats.Height))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// decode reads a size-limited JSON body into v.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
