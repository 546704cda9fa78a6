// Package introspect implements C15: a loopback-only HTTP server exposing
// a loaded Configuration for editor/tooling integration — a read-only
// debug surface, analogous to espanso's own status/env-path commands.
// Grounded on the teacher's pkg/serve (a streaming scan server), with the
// transport changed from stdin/stdout JSON-RPC to loopback HTTP since no
// example in this codebase's dependency pack reaches for an HTTP routing
// library; net/http's ServeMux is the stdlib-only choice that fits four
// fixed routes without inventing a routing layer.
package introspect

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sort"

	"github.com/expando-dev/expando/pkg/config"
	"github.com/expando-dev/expando/pkg/profile"
)

// Server serves a read-only view of one *config.Engine over HTTP.
type Server struct {
	eng *config.Engine
	srv *http.Server
}

// New builds a Server around eng. It never mutates eng.
func New(eng *config.Engine) *Server {
	s := &Server{eng: eng}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/profiles", s.handleProfiles)
	mux.HandleFunc("/matches", s.handleMatches)
	mux.HandleFunc("/errors", s.handleErrors)
	s.srv = &http.Server{Handler: mux}
	return s
}

// ListenAndServe binds addr (normally 127.0.0.1:<port> — spec.md's
// loopback-only requirement is enforced by the caller's choice of addr,
// not by this package) and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		s.srv.Close()
	}()
	err = s.srv.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type profileSummary struct {
	SourcePath string `json:"source_path"`
	IsCustom   bool   `json:"is_custom"`
	Label      string `json:"label"`
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	store := s.eng.Profiles()
	out := []profileSummary{{SourcePath: store.Default.SourcePath, IsCustom: false, Label: store.Default.Label()}}
	for _, c := range store.Custom {
		out = append(out, profileSummary{SourcePath: c.SourcePath, IsCustom: true, Label: c.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

type matchSummary struct {
	Trigger       string   `json:"trigger"`
	Triggers      []string `json:"triggers"`
	PropagateCase bool     `json:"propagate_case"`
}

// handleMatches answers GET /matches?trigger=:foo by dispatching it
// against every loaded profile's cache and reporting one entry, with its
// full trigger set, per profile whose cache serves it; the profile itself
// is not named in the entry.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	trigger := r.URL.Query().Get("trigger")
	if trigger == "" {
		writeJSON(w, http.StatusOK, []matchSummary{})
		return
	}

	store := s.eng.Profiles()
	all := append([]profile.File{store.Default}, store.Custom...)

	var out []matchSummary
	for _, p := range all {
		cache, _ := s.eng.CacheFor(p)
		if tm, ok := cache.Dispatch(trigger); ok {
			out = append(out, matchSummary{Trigger: trigger, Triggers: tm.Triggers, PropagateCase: tm.PropagateCase})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

type errorRecordJSON struct {
	File     string `json:"file"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	var out []errorRecordJSON
	for _, set := range s.eng.LoadErrors() {
		for _, rec := range set.Records {
			out = append(out, errorRecordJSON{File: set.File, Severity: rec.Severity.String(), Message: rec.Err.Error()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
