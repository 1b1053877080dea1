package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/thurn/oldsdawn-sub001/game"
)

// StateDecoder reads a game state from a request body.
type StateDecoder[P comparable, A comparable] func(r io.Reader) (game.State[P, A], error)

// PickResponse is the body of a successful pick request.
type PickResponse[A any] struct {
	Agent  Name          `json:"agent"`
	Action A             `json:"action"`
	Took   time.Duration `json:"took"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the agents of a registry over HTTP:
//
//	GET  /agents              registered names
//	POST /agents/{name}/pick  body is the state; ?budget=250ms overrides the default budget
type Server[P comparable, A comparable] struct {
	registry *Registry[P, A]
	decode   StateDecoder[P, A]
	budget   time.Duration
}

func NewServer[P comparable, A comparable](registry *Registry[P, A], decode StateDecoder[P, A], budget time.Duration) *Server[P, A] {
	return &Server[P, A]{registry: registry, decode: decode, budget: budget}
}

func (s *Server[P, A]) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/agents", s.handleList).Methods(http.MethodGet)
	router.HandleFunc("/agents/{name}/pick", s.handlePick).Methods(http.MethodPost)
	return router
}

// ListenAndServe serves until the listener fails.
func (s *Server[P, A]) ListenAndServe(addr string) error {
	log.Info().Msgf("starting agent server on %s with %d agents", addr, s.registry.Len())
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server[P, A]) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Names())
}

func (s *Server[P, A]) handlePick(w http.ResponseWriter, r *http.Request) {
	a, err := s.registry.Lookup(Name(mux.Vars(r)["name"]))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	budget := s.budget
	if raw := r.URL.Query().Get("budget"); raw != "" {
		if budget, err = time.ParseDuration(raw); err != nil || budget <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("bad budget %q", raw)})
			return
		}
	}

	state, err := s.decode(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request: " + err.Error()})
		return
	}

	start := time.Now()
	action, err := a.PickAction(start.Add(budget), state)
	switch {
	case errors.Is(err, game.ErrNoLegalAction):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case err != nil:
		log.Error().Err(err).Msgf("agent %s failed", a.Name())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusOK, PickResponse[A]{Agent: a.Name(), Action: action, Took: time.Since(start)})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
