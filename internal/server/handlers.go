package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/leapstack-labs/leapfrag/pkg/core"
	"github.com/leapstack-labs/leapfrag/pkg/dialect"
	"github.com/leapstack-labs/leapfrag/pkg/template"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

type renderRequest struct {
	Fragment string   `json:"fragment"`
	Dialect  string   `json:"dialect"`
	Types    []string `json:"types"`
	Columns  []string `json:"columns"`
	Rendered string   `json:"rendered"`
}

type renderResponse struct {
	Output  string   `json:"output"`
	Columns []string `json:"columns"`
	Dialect string   `json:"dialect,omitempty"`
	ID      string   `json:"id,omitempty"`
}

type dialectInfo struct {
	Name       string `json:"name"`
	OpenQuote  string `json:"open_quote"`
	CloseQuote string `json:"close_quote"`
	True       string `json:"true"`
	False      string `json:"false"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDialects(w http.ResponseWriter, _ *http.Request) {
	names := dialect.List()
	out := make([]dialectInfo, 0, len(names))
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		out = append(out, dialectInfo{
			Name:       d.Name,
			OpenQuote:  string(d.OpenQuote()),
			CloseQuote: string(d.CloseQuote()),
			True:       d.ToBooleanValueString(true),
			False:      d.ToBooleanValueString(false),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	name := req.Dialect
	if name == "" {
		name = s.cfg.Dialect
	}
	d, err := dialect.Lookup(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	types := dialect.TypesFor(d, slices.Concat(s.cfg.Types, req.Types)...)
	resp := renderResponse{
		Output:  template.Render(req.Fragment, d, types),
		Dialect: d.Name,
	}
	resp.Columns = nonNil(template.CollectColumnNames(resp.Output))

	if s.cfg.Store != nil {
		rec := &core.Render{Dialect: d.Name, Input: req.Fragment, Output: resp.Output, Columns: resp.Columns, Source: "http"}
		if err := s.cfg.Store.SaveRender(r.Context(), rec); err != nil {
			s.logger.Error("failed to save render", slog.Any("error", err))
		} else {
			resp.ID = rec.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	rendered := req.Rendered
	if rendered == "" {
		rendered = req.Fragment
	}
	writeJSON(w, http.StatusOK, renderResponse{
		Output:  rendered,
		Columns: nonNil(template.CollectColumnNames(rendered)),
	})
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	out := template.RenderTransformerReadFragment(req.Fragment, req.Columns...)
	writeJSON(w, http.StatusOK, renderResponse{
		Output:  out,
		Columns: nonNil(template.CollectColumnNames(out)),
	})
}

func (s *Server) handleMapping(w http.ResponseWriter, _ *http.Request) {
	if s.cfg.Mapping == "" {
		writeError(w, http.StatusNotFound, errors.New("no mapping file configured"))
		return
	}
	snap := s.currentSnapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("mapping not rendered yet"))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleEvents streams a server-sent event each time the mapping is re-rendered.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := s.notifier.subscribe()
	defer s.notifier.unsubscribe(ch)

	send := func(gen uint64) bool {
		if _, err := fmt.Fprintf(w, "event: mapping\ndata: {\"generation\":%d}\n\n", gen); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if snap := s.currentSnapshot(); snap != nil && !send(snap.Generation) {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case gen := <-ch:
			if !send(gen) {
				return
			}
		}
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*renderRequest, bool) {
	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return nil, false
	}
	return &req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
