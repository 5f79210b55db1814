package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"golang.org/x/exp/slices"

	mg "chess-board/chessmg"
	"chess-board/store"
)

type gameView struct {
	ID        string   `json:"id"`
	Started   bool     `json:"started"`
	State     string   `json:"state"`
	Placement string   `json:"placement"`
	Side      string   `json:"side"`
	Hash      string   `json:"hash"`
	Moves     []string `json:"moves"`
}

type canMoveView struct {
	From    string   `json:"from"`
	To      string   `json:"to,omitempty"`
	Allowed bool     `json:"allowed"`
	Targets []string `json:"targets,omitempty"`
}

type errorView struct {
	Error string `json:"error"`
}

func viewOf(id string, g *mg.Game) gameView {
	moves := g.Moves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return gameView{
		ID:        id,
		Started:   g.Started(),
		State:     g.StateString(),
		Placement: g.Placement(),
		Side:      g.SideToMove().String(),
		Hash:      strconv.FormatUint(g.Hash(), 16),
		Moves:     out,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errUnknownGame), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, mg.ErrInvalidPlacement),
		errors.Is(err, mg.ErrInvalidState),
		errors.Is(err, mg.ErrSquareOutOfRange),
		errors.Is(err, mg.ErrEmptySquare):
		return http.StatusBadRequest
	case errors.Is(err, mg.ErrIllegalMove), errors.Is(err, mg.ErrNoGame):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorView{Error: err.Error()})
}

// decodeBody fills v from the request body. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %v", errBadRequest, err)
}

func parseSquareParam(name, val string) (mg.Square, error) {
	sq, err := mg.ParseSquare(val)
	if err != nil {
		return mg.NoSquare, fmt.Errorf("%w: %s: %v", errBadRequest, name, err)
	}
	return sq, nil
}

func (s *Service) save(ctx context.Context, id string, g *mg.Game) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, store.SnapshotOf(id, g)); err != nil {
		log.Printf("save %s: %v", id, err)
	}
}

func (s *Service) setUpHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Placement string `json:"placement"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Placement == "" {
		req.Placement = mg.StartingPlacement
	}
	if _, err := mg.ParsePlacement(req.Placement); err != nil {
		writeError(w, err)
		return
	}

	sess, _ := s.lookup(id, true)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.game.SetUp(req.Placement); err != nil {
		writeError(w, err)
		return
	}
	s.save(r.Context(), id, sess.game)
	v := viewOf(id, sess.game)
	sess.broadcast(v)
	writeJSON(w, http.StatusOK, v)
}

func (s *Service) getHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.lookup(id, false)
	if err != nil {
		writeError(w, err)
		return
	}
	sess.mu.Lock()
	v := viewOf(id, sess.game)
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, v)
}

func (s *Service) canMoveHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.lookup(id, false)
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	from, err := parseSquareParam("from", q.Get("from"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := canMoveView{From: from.String()}
	sess.mu.Lock()
	if toParam := q.Get("to"); toParam != "" {
		to, err := parseSquareParam("to", toParam)
		if err != nil {
			sess.mu.Unlock()
			writeError(w, err)
			return
		}
		resp.To = to.String()
		resp.Allowed = sess.game.CanMoveFrom(from) && sess.game.CanMoveFromTo(from, to)
	} else {
		resp.Allowed = sess.game.CanMoveFrom(from)
		targets := sess.game.MovesFrom(from)
		slices.Sort(targets)
		for _, t := range targets {
			resp.Targets = append(resp.Targets, t.String())
		}
	}
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) moveHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.lookup(id, false)
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	from, err := parseSquareParam("from", req.From)
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := parseSquareParam("to", req.To)
	if err != nil {
		writeError(w, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.game.TryMove(from, to); err != nil {
		writeError(w, err)
		return
	}
	s.save(r.Context(), id, sess.game)
	v := viewOf(id, sess.game)
	sess.broadcast(v)
	writeJSON(w, http.StatusOK, v)
}

func (s *Service) restoreHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		State string `json:"state"`
		Side  string `json:"side"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if _, err := mg.ParseStateString(req.State); err != nil {
		writeError(w, err)
		return
	}
	var side mg.Color
	if req.Side != "" {
		var ok bool
		if side, ok = mg.ParseColor(req.Side); !ok {
			writeError(w, fmt.Errorf("%w: unknown side %q", errBadRequest, req.Side))
			return
		}
	}

	sess, _ := s.lookup(id, true)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if req.Side != "" {
		err := sess.game.RestoreWithSide(req.State, side)
		if err != nil {
			writeError(w, err)
			return
		}
	} else if err := sess.game.RestoreFromStateString(req.State); err != nil {
		writeError(w, err)
		return
	}
	s.save(r.Context(), id, sess.game)
	v := viewOf(id, sess.game)
	sess.broadcast(v)
	writeJSON(w, http.StatusOK, v)
}

func (s *Service) loadHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if s.store == nil {
		writeError(w, store.ErrNotFound)
		return
	}
	snap, err := s.store.Load(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	// Restore into a scratch game first so a bad snapshot never creates a session.
	if err := snap.Restore(mg.NewGame(s.gen)); err != nil {
		writeError(w, err)
		return
	}

	sess, _ := s.lookup(id, true)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := snap.Restore(sess.game); err != nil {
		writeError(w, err)
		return
	}
	v := viewOf(id, sess.game)
	sess.broadcast(v)
	writeJSON(w, http.StatusOK, v)
}

func (s *Service) svgHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.lookup(id, false)
	if err != nil {
		writeError(w, err)
		return
	}
	selected := mg.NoSquare
	if p := r.URL.Query().Get("from"); p != "" {
		if selected, err = parseSquareParam("from", p); err != nil {
			writeError(w, err)
			return
		}
	}

	sess.mu.Lock()
	board := sess.game.Board()
	var targets []mg.Square
	if selected != mg.NoSquare {
		targets = sess.game.MovesFrom(selected)
	}
	sess.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	s.renderer.Render(w, &board, selected, targets)
}

func (s *Service) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, ok := s.drop(id)
	if !ok {
		writeError(w, errUnknownGame)
		return
	}
	sess.mu.Lock()
	sess.game.Stop()
	sess.closeAll()
	sess.mu.Unlock()

	if s.store != nil {
		if err := s.store.Delete(r.Context(), id); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Printf("delete %s: %v", id, err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
