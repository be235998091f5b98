package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/koustreak/graphix/internal/decl"
	"github.com/koustreak/graphix/internal/errs"
	"github.com/koustreak/graphix/internal/native"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, native.Catalog())
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "hcl" && format != "sql" {
		s.writeError(w, r, http.StatusBadRequest,
			errs.Newf(errs.ErrKindInvalidInput, "unknown format %q (must be hcl or sql)", format))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				errs.Wrap(errs.ErrKindInvalidInput, "declaration document too large", err))
			return
		}
		s.writeError(w, r, http.StatusBadRequest, errs.Wrap(errs.ErrKindIOFailed, "failed to read body", err))
		return
	}

	decls, err := decl.ParseYAML(body)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	arts, err := s.gen.Generate(r.Context(), decls)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for i, a := range arts {
		if i > 0 {
			_, _ = io.WriteString(w, "\n")
		}
		if format == "sql" {
			_, _ = io.WriteString(w, a.DDL)
		} else {
			_, _ = w.Write(a.HCL)
		}
	}
}

// statusClientClosedRequest is the non-standard status nginx logs when the
// client goes away before the response.
const statusClientClosedRequest = 499

// statusFor maps a generation error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errs.IsDeclaration(err):
		return http.StatusUnprocessableEntity
	case errs.IsTimeout(err):
		return http.StatusServiceUnavailable
	case errs.IsCanceled(err):
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.ErrorWith("compile failed", err, map[string]any{"path": r.URL.Path})
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Kind: errs.KindOf(err).String()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
