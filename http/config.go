package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/huaci"
)

// handleConfigView returns the configuration with an ETag of its content.
func (s *Server) handleConfigView(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.Config.ReadConfig(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(cfg); err != nil {
		s.Error(w, r, err)
		return
	}

	etag := ETag(buf.Bytes())
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.Logger.Warn("failed to write response", "err", err)
	}
}

// handleConfigUpdate commits a partial update and returns the result.
func (s *Server) handleConfigUpdate(w http.ResponseWriter, r *http.Request) {
	var upd huaci.ConfigUpdate
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upd); err != nil {
		s.Error(w, r, huaci.Errorf(huaci.EINVALID, "invalid JSON body: %v", err))
		return
	}

	if err := s.Config.CommitConfig(r.Context(), upd); err != nil {
		s.Error(w, r, err)
		return
	}

	cfg, err := s.Config.ReadConfig(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleConfigPath(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"path": s.Config.ConfigPath()})
}

func (s *Server) handleConfigPortable(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]bool{"portable": s.Config.IsPortable()})
}

// handleConfigWatch starts the config watcher for the server's lifetime.
func (s *Server) handleConfigWatch(w http.ResponseWriter, r *http.Request) {
	if s.Watcher == nil {
		s.Error(w, r, huaci.Errorf(huaci.ENOTIMPLEMENTED, "config watching is not available"))
		return
	}
	started, err := s.Watcher.Start(s.ctx)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"started": started})
}

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
}
