package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/hanoitower/pkg/buildinfo"
	"github.com/matzehuels/hanoitower/pkg/errors"
	"github.com/matzehuels/hanoitower/pkg/pipeline"
	"github.com/matzehuels/hanoitower/pkg/solver"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
		"runs":   len(s.runs.list()),
	})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	if s.opts.Stats == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "stats are not enabled"))
		return
	}
	writeJSON(w, http.StatusOK, s.opts.Stats.Snapshot())
}

type movesResponse struct {
	Disks int             `json:"disks"`
	Count int             `json:"count"`
	Moves solver.MoveList `json:"moves"`
}

func (s *Server) moves(w http.ResponseWriter, r *http.Request) {
	disks, err := s.disksParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	moves, err := s.runner.Solve(r.Context(), s.pipelineOptions(disks))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if moves == nil {
		moves = solver.MoveList{}
	}
	writeJSON(w, http.StatusOK, movesResponse{Disks: disks, Count: len(moves), Moves: moves})
}

func (s *Server) timeline(w http.ResponseWriter, r *http.Request) {
	s.artifact(w, r, pipeline.FormatJSON, "application/json")
}

func (s *Server) animationSVG(w http.ResponseWriter, r *http.Request) {
	s.artifact(w, r, pipeline.FormatSVG, "image/svg+xml")
}

func (s *Server) recursionSVG(w http.ResponseWriter, r *http.Request) {
	s.artifact(w, r, pipeline.FormatTree, "image/svg+xml")
}

// artifact runs the full pipeline and writes one format.
func (s *Server) artifact(w http.ResponseWriter, r *http.Request, format, contentType string) {
	disks, err := s.disksParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.pipelineOptions(disks, format)
	opts.Loop = boolParam(r, "loop")
	opts.Detailed = boolParam(r, "detailed")

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(result.Artifacts[format])
}

// createRunRequest is the body of POST /api/runs. Zero fields take the
// server defaults.
type createRunRequest struct {
	Disks *int    `json:"disks"`
	Speed float64 `json:"speed"`
}

func (s *Server) createRun(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	disks := s.opts.DefaultDisks
	if req.Disks != nil {
		n, err := s.checkDisks(*req.Disks)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		disks = n
	}
	if req.Speed < 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "speed must be > 0, got %g", req.Speed))
		return
	}

	opts := s.pipelineOptions(disks)
	if err := opts.ValidateForSimulate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	speed := opts.Speed
	if req.Speed > 0 {
		speed = req.Speed
	}

	moves, err := s.runner.Solve(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	live, err := newRun(disks, moves, opts.Scene, opts.BaseDuration, speed, s.logger)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.runs.add(live); err != nil {
		live.stop()
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("started run", "id", live.ID, "disks", disks, "speed", speed)
	w.Header().Set("Location", "/api/runs/"+live.ID)
	writeJSON(w, http.StatusCreated, live.status())
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	runs := s.runs.list()
	out := make([]runStatus, len(runs))
	for i, run := range runs {
		out[i] = run.status()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	live, err := s.runs.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, live.status())
}

func (s *Server) deleteRun(w http.ResponseWriter, r *http.Request) {
	live, err := s.runs.remove(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	live.stop()
	s.logger.Info("cancelled run", "id", live.ID)
	w.WriteHeader(http.StatusNoContent)
}

// runEvents streams a run as server-sent events: a "state" snapshot first,
// then one event per player event until the run ends or the client leaves.
func (s *Server) runEvents(w http.ResponseWriter, r *http.Request) {
	live, err := s.runs.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := live.hub.Subscribe()
	defer live.hub.Unsubscribe(sub)

	snapshot, _ := json.Marshal(live.status())
	writeSSE(w, "state", string(snapshot))
	flusher.Flush()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-sub:
			if !ok {
				return
			}
			writeSSE(w, msg.Event, msg.Data)
			flusher.Flush()
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

func writeSSE(w io.Writer, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
