// Package api exposes the analysis core over HTTP: frame ingestion
// from the pose collaborator, session control, and read-only session
// and stats snapshots.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fitmotion/repcore/internal/exercise"
	"github.com/fitmotion/repcore/internal/pose"
	"github.com/fitmotion/repcore/internal/session"
	"github.com/fitmotion/repcore/internal/stats"
)

// Server wires the session manager and stats store into HTTP handlers.
type Server struct {
	session *session.Manager
	store   *stats.Store
}

// NewServer creates a Server.
func NewServer(sess *session.Manager, store *stats.Store) *Server {
	return &Server{session: sess, store: store}
}

// ServeMux returns the route table.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.homeHandler)
	mux.HandleFunc("/api/frame", s.frameHandler)
	mux.HandleFunc("/api/control", s.controlHandler)
	mux.HandleFunc("/api/session", s.sessionHandler)
	mux.HandleFunc("/api/stats", s.statsHandler)
	return mux
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("repcore analysis server"))
}

// framePayload is one pushed pose frame.
type framePayload struct {
	Landmarks []pose.Keypoint `json:"landmarks"`
}

func (s *Server) frameHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload framePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("Invalid frame payload: %v", err), http.StatusBadRequest)
		return
	}
	if len(payload.Landmarks) != pose.NumLandmarks {
		http.Error(w, fmt.Sprintf("Expected %d landmarks, got %d", pose.NumLandmarks, len(payload.Landmarks)),
			http.StatusBadRequest)
		return
	}

	var frame pose.Frame
	copy(frame[:], payload.Landmarks)
	s.session.ProcessFrame(frame)

	writeJSON(w, s.session.Snapshot())
}

// controlRequest is a session control signal.
type controlRequest struct {
	Action   string `json:"action"` // start, pause, resume, reset, stop, switch
	Exercise string `json:"exercise,omitempty"`
}

func (s *Server) controlHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid control payload: %v", err), http.StatusBadRequest)
		return
	}

	switch req.Action {
	case "start", "switch":
		ex, err := parseExercise(req.Exercise)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Action == "start" {
			s.session.Start(ex)
		} else {
			s.session.SwitchExercise(ex)
		}
	case "pause":
		s.session.Pause()
	case "resume":
		s.session.Resume()
	case "reset":
		s.session.Reset()
	case "stop":
		s.session.Stop()
	default:
		http.Error(w, fmt.Sprintf("Unknown action %q", req.Action), http.StatusBadRequest)
		return
	}

	writeJSON(w, s.session.Snapshot())
}

func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.session.Snapshot())
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	us, err := s.store.UserStats()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read stats: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, us)
}

func parseExercise(name string) (exercise.Exercise, error) {
	switch exercise.Exercise(name) {
	case exercise.Pushup, exercise.Squat, exercise.Plank:
		return exercise.Exercise(name), nil
	}
	return "", fmt.Errorf("unknown exercise %q", name)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
