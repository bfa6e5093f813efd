package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matzehuels/xmlmerge/pkg/buildinfo"
	errs "github.com/matzehuels/xmlmerge/pkg/errors"
	"github.com/matzehuels/xmlmerge/pkg/pipeline"
)

// TransformRequest is the body of POST /v1/transform. Script is a TOML edit
// script.
type TransformRequest struct {
	Document string `json:"document"`
	Script   string `json:"script"`
	Refresh  bool   `json:"refresh,omitempty"`
}

// TransformResponse is the data of a successful transform.
type TransformResponse struct {
	Document string `json:"document"`
	Cached   bool   `json:"cached"`
	Actions  int    `json:"actions"`
	Hash     string `json:"hash"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Build: buildinfo.Get()})
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	var req TransformRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.Error(w, http.StatusRequestEntityTooLarge, string(errs.ErrCodeInvalidInput), "request body too large")
			return
		}
		s.Error(w, http.StatusBadRequest, string(errs.ErrCodeInvalidInput), "invalid JSON body: "+err.Error())
		return
	}

	logger := s.requestLogger(r)
	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Document: []byte(req.Document),
		Script:   []byte(req.Script),
		Refresh:  req.Refresh,
		Logger:   logger,
	})
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error("transform failed", "error", err)
		} else {
			logger.Debug("transform rejected", "error", err)
		}
		s.Error(w, status, string(errs.GetCode(err)), errs.UserMessage(err))
		return
	}

	s.Success(w, http.StatusOK, TransformResponse{
		Document: string(res.Document),
		Cached:   res.CacheInfo.TransformHit,
		Actions:  res.Stats.Actions,
		Hash:     res.DocumentHash,
	})
}

// statusFor maps caller mistakes to 422 and everything else to 500.
func statusFor(err error) int {
	if errs.IsInputError(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
