package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fwojciec/huaci"
)

// ShellRequest is the body of the shell routes.
type ShellRequest struct {
	Target string `json:"target"`
}

// handleShell returns a handler that runs the shell operation selected by op.
func (s *Server) handleShell(op func(huaci.Shell) func(context.Context, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShellRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Error(w, r, huaci.Errorf(huaci.EINVALID, "invalid JSON body: %v", err))
			return
		}
		if req.Target == "" {
			s.Error(w, r, huaci.Errorf(huaci.EINVALID, "target required"))
			return
		}

		if err := op(s.Shell)(r.Context(), req.Target); err != nil {
			s.Error(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
