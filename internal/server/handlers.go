package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/viktori/matteray/pkg/buildinfo"
	apperr "github.com/viktori/matteray/pkg/errors"
	"github.com/viktori/matteray/pkg/pipeline"
)

type opBody struct {
	Operands [][][]float64   `json:"operands"`
	Params   pipeline.Params `json:"params"`
}

type batchBody struct {
	Requests    []pipeline.Request `json:"requests"`
	Concurrency int                `json:"concurrency,omitempty"`
}

type batchResponse struct {
	Results []*pipeline.Result `json:"results"`
}

type versionResponse struct {
	Group    string                `json:"group"`
	Version  string                `json:"version"`
	Commit   string                `json:"commit"`
	Built    string                `json:"built"`
	Manifest []buildinfo.Attribute `json:"manifest"`
	Project  buildinfo.ProjectInfo `json:"project"`
}

type errorResponse struct {
	Code      apperr.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, versionResponse{
		Group:    buildinfo.Group,
		Version:  buildinfo.Version(),
		Commit:   buildinfo.Commit,
		Built:    buildinfo.Date,
		Manifest: buildinfo.Manifest(),
		Project:  buildinfo.Project,
	})
}

func (s *Server) handleListOperations(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string][]string{"operations": pipeline.Operations()})
}

func (s *Server) handleOperation(w http.ResponseWriter, r *http.Request) {
	var body opBody
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Run(r.Context(), pipeline.Request{
		Op:       chi.URLParam(r, "op"),
		Operands: body.Operands,
		Params:   body.Params,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !res.IsFinite() {
		s.writeError(w, r, nonFinite(res.Op))
		return
	}
	s.writeJSON(w, r, http.StatusOK, res)
}

func nonFinite(op string) error {
	return apperr.New(apperr.ErrCodeNonFinite, "result of %s contains Inf or NaN, which JSON cannot represent", op)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var body batchBody
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(body.Requests) == 0 {
		s.writeError(w, r, apperr.New(apperr.ErrCodeInvalidInput, "batch has no requests"))
		return
	}

	concurrency := body.Concurrency
	if concurrency <= 0 || concurrency > s.opts.Concurrency {
		concurrency = s.opts.Concurrency
	}

	results, err := s.runner.RunBatch(r.Context(), body.Requests, concurrency)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for i, res := range results {
		if !res.IsFinite() {
			err := nonFinite(res.Op)
			s.writeError(w, r, apperr.Wrap(apperr.GetCode(err), err, "request %d (%s)", i, res.Op))
			return
		}
	}
	s.writeJSON(w, r, http.StatusOK, batchResponse{Results: results})
}

func decodeBody(r *http.Request, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.New(apperr.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "read request body")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "request body is empty")
	}
	if err := strictJSON.Unmarshal(data, v); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = apperr.FromDomain(err)
	code := apperr.GetCode(err)
	status := apperr.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, r, status, errorResponse{
		Code:      code,
		Message:   apperr.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// writeJSON encodes v before touching the response, so an encoding failure
// still produces an error envelope instead of a bare status line.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response failed", "path", r.URL.Path, "err", err)
		data, err = json.Marshal(errorResponse{
			Code:      apperr.ErrCodeInternal,
			Message:   "response could not be encoded",
			RequestID: RequestIDFromContext(r.Context()),
		})
		if err != nil {
			http.Error(w, "response could not be encoded", http.StatusInternalServerError)
			return
		}
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
