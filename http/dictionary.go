package http

import (
	"net/http"

	"github.com/fwojciec/huaci"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCollins(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Dictionary.SearchCollins(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleOxford(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Dictionary.SearchOxford(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleBase(w http.ResponseWriter, r *http.Request) {
	base, ok, err := s.Dictionary.FindWordBase(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	resp := struct {
		Base *string `json:"base"`
	}{}
	if ok {
		resp.Base = &base
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if s.Lookup == nil {
		s.Error(w, r, huaci.Errorf(huaci.ENOTIMPLEMENTED, "lemma lookup is not available"))
		return
	}
	res, err := s.Lookup.Lookup(r.Context(), chi.URLParam(r, "word"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSanitize(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		s.Error(w, r, huaci.Errorf(huaci.EINVALID, "name required"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"filename": huaci.SanitizeFilename(name)})
}
