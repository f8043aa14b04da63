package server

import (
	"bytes"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/ontodag/pkg/buildinfo"
	"github.com/matzehuels/ontodag/pkg/dag"
	"github.com/matzehuels/ontodag/pkg/errors"
	"github.com/matzehuels/ontodag/pkg/graph"
	ontoio "github.com/matzehuels/ontodag/pkg/io"
	"github.com/matzehuels/ontodag/pkg/onto"
	"github.com/matzehuels/ontodag/pkg/render/nodelink"
)

// =============================================================================
// Request / Response Types
// =============================================================================

type sessionResponse struct {
	ID string `json:"id"`
}

type putRequest struct {
	Subcategory     string   `json:"subcategory"`
	SuperCategories []string `json:"super_categories"`
	Optimized       *bool    `json:"optimized,omitempty"`
}

type nodeResponse struct {
	Name            string   `json:"name"`
	Parents         []string `json:"parents"`
	Children        []string `json:"children"`
	DescendantCount int      `json:"descendant_count"`
}

type queryResponse struct {
	Categories []string `json:"categories"`
	Result     []string `json:"result"`
}

type importResponse struct {
	Categories   int          `json:"categories"`
	DroppedEdges []graph.Edge `json:"dropped_edges,omitempty"`
}

type healthResponse struct {
	Status   string         `json:"status"`
	Sessions int            `json:"sessions"`
	Build    buildinfo.Info `json:"build"`
}

func newNodeResponse(o *onto.Ontology, name string) nodeResponse {
	return nodeResponse{
		Name:            name,
		Parents:         nonNil(o.Parents(name)),
		Children:        nonNil(o.Children(name)),
		DescendantCount: o.DescendantCount(name),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// =============================================================================
// Health & Sessions
// =============================================================================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Sessions: s.sessions.Len(),
		Build:    buildinfo.Get(),
	})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessions.Create(r.Context(), nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("session created", "id", id)
	writeJSON(w, http.StatusCreated, sessionResponse{ID: id})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Whole Ontology
// =============================================================================

func (s *Server) getDAG(w http.ResponseWriter, r *http.Request) {
	var g graph.Graph
	err := s.sessions.View(r.Context(), chi.URLParam(r, "id"), "dag", func(o *onto.Ontology) error {
		g = graph.FromOntology(o)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) getDAGImage(w http.ResponseWriter, r *http.Request) {
	var g graph.Graph
	err := s.sessions.View(r.Context(), chi.URLParam(r, "id"), "dag", func(o *onto.Ontology) error {
		g = graph.FromOntology(o)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeImage(w, r, g)
}

// writeImage renders g outside any session lock.
func (s *Server) writeImage(w http.ResponseWriter, r *http.Request, g graph.Graph) {
	opts := nodelink.Options{
		RankDir:  r.URL.Query().Get("rankdir"),
		HideRoot: boolParam(r, "hide_root"),
	}
	dot := nodelink.ToDOT(g, opts)

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format := r.URL.Query().Get("format"); format {
	case "", "svg":
		data, err = nodelink.RenderSVG(r.Context(), dot)
		contentType = "image/svg+xml"
	case "png":
		data, err = nodelink.RenderPNG(r.Context(), dot)
		contentType = "image/png"
	case "dot":
		data, contentType = []byte(dot), "text/vnd.graphviz"
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q", format))
		return
	}
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render"))
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

// =============================================================================
// Categories
// =============================================================================

func (s *Server) putNode(w http.ResponseWriter, r *http.Request) {
	var req putRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateCategoryName(req.Subcategory); err != nil {
		s.writeError(w, r, err)
		return
	}

	optimized := s.optimized
	if req.Optimized != nil {
		optimized = *req.Optimized
	}
	var opts []onto.PutOption
	if optimized {
		opts = append(opts, onto.WithOptimized())
	}

	var resp nodeResponse
	err := s.sessions.Update(r.Context(), chi.URLParam(r, "id"), "put", func(o *onto.Ontology) error {
		if err := o.Put(req.Subcategory, req.SuperCategories, opts...); err != nil {
			return err
		}
		resp = newNodeResponse(o, req.Subcategory)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) getNode(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var resp nodeResponse
	err = s.sessions.View(r.Context(), chi.URLParam(r, "id"), "node", func(o *onto.Ontology) error {
		if !o.Has(name) {
			return errors.New(errors.ErrCodeUnknownCategory, "unknown category %q", name)
		}
		resp = newNodeResponse(o, name)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) removeNode(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	err = s.sessions.Update(r.Context(), chi.URLParam(r, "id"), "remove", func(o *onto.Ontology) error {
		return o.Remove(name)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Queries
// =============================================================================

func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	cats := categories(r)
	var result []string
	err := s.sessions.View(r.Context(), chi.URLParam(r, "id"), "get", func(o *onto.Ontology) error {
		var err error
		result, err = o.Get(cats...)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{Categories: cats, Result: nonNil(result)})
}

func (s *Server) queryDAG(w http.ResponseWriter, r *http.Request) {
	cats := categories(r)
	var g graph.Graph
	err := s.sessions.View(r.Context(), chi.URLParam(r, "id"), "get_as_dag", func(o *onto.Ontology) error {
		q, err := o.GetAsDAG(cats...)
		if err != nil {
			return err
		}
		g = graph.FromOntology(q)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, g)
	default:
		s.writeImage(w, r, g)
	}
}

func (s *Server) prune(w http.ResponseWriter, r *http.Request) {
	cats := categories(r)
	var g graph.Graph
	err := s.sessions.Update(r.Context(), chi.URLParam(r, "id"), "prune", func(o *onto.Ontology) error {
		if err := o.Prune(cats...); err != nil {
			return err
		}
		g = graph.FromOntology(o)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// =============================================================================
// Interchange & Snapshots
// =============================================================================

func (s *Server) importOntology(w http.ResponseWriter, r *http.Request) {
	format, err := formatParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var opts []ontoio.Option
	var dropped []graph.Edge
	if boolParam(r, "lenient") {
		opts = append(opts, ontoio.Lenient(func(e dag.Edge) {
			dropped = append(dropped, graph.Edge{From: e.From, To: e.To})
		}))
	}

	// Decode before taking the lock; only the merge runs exclusively.
	other, err := ontoio.Import(http.MaxBytesReader(w, r.Body, maxBodyBytes), format, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp importResponse
	err = s.sessions.Update(r.Context(), chi.URLParam(r, "id"), "merge", func(o *onto.Ontology) error {
		if err := o.Merge(other); err != nil {
			return err
		}
		resp.Categories = o.Len()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp.DroppedEdges = dropped
	s.logger.Info("imported ontology", "id", chi.URLParam(r, "id"), "format", format, "categories", other.Len())
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) exportOntology(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "export", "ontology", func(o *onto.Ontology) (*onto.Ontology, error) {
		return o, nil
	})
}

func (s *Server) exportQuery(w http.ResponseWriter, r *http.Request) {
	cats := categories(r)
	s.export(w, r, "get_as_dag", "query", func(o *onto.Ontology) (*onto.Ontology, error) {
		return o.GetAsDAG(cats...)
	})
}

// export encodes the ontology chosen by pick as a download named after base.
func (s *Server) export(w http.ResponseWriter, r *http.Request, op, base string, pick func(*onto.Ontology) (*onto.Ontology, error)) {
	format, err := formatParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = s.sessions.View(r.Context(), chi.URLParam(r, "id"), op, func(o *onto.Ontology) error {
		target, err := pick(o)
		if err != nil {
			return err
		}
		return ontoio.Export(target, &buf, format)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+base+`.`+string(format)+`"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) persist(w http.ResponseWriter, r *http.Request) {
	s.snapshot(w, r, s.sessions.Persist)
}

func (s *Server) restore(w http.ResponseWriter, r *http.Request) {
	s.snapshot(w, r, s.sessions.Restore)
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) error) {
	if err := fn(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
