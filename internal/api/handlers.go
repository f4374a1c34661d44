package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/intergeo/pkg/buildinfo"
	"github.com/matzehuels/intergeo/pkg/dag"
	"github.com/matzehuels/intergeo/pkg/errors"
	"github.com/matzehuels/intergeo/pkg/httputil"
	"github.com/matzehuels/intergeo/pkg/intergeo"
	"github.com/matzehuels/intergeo/pkg/pipeline"
)

// Header names set on render responses.
const (
	HeaderRunID       = "X-Intergeo-Run"
	HeaderDiagnostics = "X-Intergeo-Diagnostics"
	HeaderCache       = "X-Intergeo-Cache"
)

// ImportResponse summarizes an import.
type ImportResponse struct {
	ID          string                `json:"id"`
	Source      string                `json:"source"`
	GraphHash   string                `json:"graph_hash"`
	Elements    int                   `json:"elements"`
	Nodes       int                   `json:"nodes"`
	Edges       int                   `json:"edges"`
	Applied     int                   `json:"applied"`
	Cached      bool                  `json:"cached"`
	Diagnostics []intergeo.Diagnostic `json:"diagnostics"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	im, cached, err := s.runner.ImportWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.importFailed(w, im, err)
		return
	}

	meta := im.Graph.Meta()
	elements, _ := meta.Float(dag.MetaElements)
	applied, _ := meta.Float(dag.MetaApplied)
	diags := im.Diagnostics
	if diags == nil {
		diags = []intergeo.Diagnostic{}
	}
	httputil.JSON(w, http.StatusOK, ImportResponse{
		ID:          uuid.NewString(),
		Source:      opts.Source,
		GraphHash:   im.GraphHash,
		Elements:    int(elements),
		Nodes:       im.Graph.NodeCount(),
		Edges:       im.Graph.EdgeCount(),
		Applied:     int(applied),
		Cached:      cached,
		Diagnostics: diags,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		httputil.Error(w, err)
		return
	}
	opts.Formats = []string{format}
	if v := r.URL.Query().Get("detailed"); v != "" {
		opts.Detailed, _ = strconv.ParseBool(v)
	}
	if v := r.URL.Query().Get("hidden"); v != "" {
		opts.Canvas.ShowHidden, _ = strconv.ParseBool(v)
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		var im *pipeline.Imported
		if result != nil {
			im = &pipeline.Imported{Diagnostics: result.Diagnostics}
		}
		s.importFailed(w, im, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set(HeaderRunID, result.ID)
	w.Header().Set(HeaderDiagnostics, strconv.Itoa(len(result.Diagnostics)))
	if result.CacheInfo.RenderHit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// options reads the document and builds pipeline options from the server
// defaults and the query string.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) == 0 {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "request body must contain a document")
	}

	q := r.URL.Query()
	if source := q.Get("source"); source != "" {
		if err := errors.ValidateDocumentFilename(source); err != nil {
			return pipeline.Options{}, err
		}
	}
	return pipeline.Options{
		Source:    q.Get("source"),
		Document:  data,
		Dependent: s.cfg.Dependent,
		Refresh:   q.Get("refresh") == "true",
		Canvas:    s.cfg.Canvas,
		TTL:       s.cfg.TTL,
	}, nil
}

func (s *Server) importFailed(w http.ResponseWriter, im *pipeline.Imported, err error) {
	s.logger.Warn("request failed", "err", err)
	var diags []intergeo.Diagnostic
	if im != nil {
		diags = im.Diagnostics
	}
	if len(diags) == 0 {
		httputil.Error(w, err)
		return
	}
	httputil.ErrorWith(w, err, diags)
}
