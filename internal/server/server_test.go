package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	mg "chess-board/chessmg"
	"chess-board/internal/server"
	"chess-board/render"
	"chess-board/store"
)

const startState = "RNBQKBNRPPPPPPPP" + "00000000000000000000000000000000" + "pppppppprnbqkbnr"

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
	To      string   `json:"to"`
	Allowed bool     `json:"allowed"`
	Targets []string `json:"targets"`
}

func newTestServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	svc := server.NewService(st, mg.NewGenerator(), render.NewRenderer(0))
	ts := httptest.NewServer(svc)
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string, body interface{}) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, out
}

func decode(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
}

func TestSetUpAndGet(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())

	code, body := do(t, http.MethodPost, ts.URL+"/games/g1", nil)
	if code != http.StatusOK {
		t.Fatalf("setup status %d: %s", code, body)
	}
	var v gameView
	decode(t, body, &v)
	if !v.Started || v.State != startState || v.Side != "white" {
		t.Fatalf("unexpected view %+v", v)
	}
	if v.Placement != mg.StartingPlacement {
		t.Fatalf("placement = %s", v.Placement)
	}
	if len(v.Moves) != 27 {
		t.Fatalf("expected 27 moves with friendly capture, got %d", len(v.Moves))
	}

	code, body = do(t, http.MethodGet, ts.URL+"/games/g1", nil)
	if code != http.StatusOK {
		t.Fatalf("get status %d", code)
	}
	var again gameView
	decode(t, body, &again)
	if again.Hash != v.Hash {
		t.Fatalf("hash changed between setup and get")
	}

	if code, _ := do(t, http.MethodGet, ts.URL+"/games/nope", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown game, got %d", code)
	}
}

func TestSetUpRejectsBadPlacement(t *testing.T) {
	ts := newTestServer(t, store.NewMemoryStore())
	code, _ := do(t, http.MethodPost, ts.URL+"/games/g1", map[string]string{"placement": "8/8/8"})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if code, _ := do(t, http.MethodGet, ts.URL+"/games/g1", nil); code != http.StatusNotFound {
		t.Fatalf("failed setup must not create a game, got %d", code)
	}
}

func TestCanMove(t *testing.T) {
	ts := newTestServer(t, nil)
	do(t, http.MethodPost, ts.URL+"/games/g1", nil)

	cases := []struct {
		query   string
		code    int
		allowed bool
		targets []string
	}{
		{"from=e2", http.StatusOK, true, []string{"e3", "e4"}},
		{"from=g1", http.StatusOK, true, []string{"e2", "f3", "h3"}},
		{"from=e7", http.StatusOK, false, nil},
		{"from=e4", http.StatusOK, false, nil},
		{"from=e2&to=e4", http.StatusOK, true, nil},
		{"from=e2&to=e5", http.StatusOK, false, nil},
		{"from=e7&to=e5", http.StatusOK, false, nil},
		{"from=z9", http.StatusBadRequest, false, nil},
		{"from=e2&to=i1", http.StatusBadRequest, false, nil},
		{"", http.StatusBadRequest, false, nil},
	}
	for _, tc := range cases {
		code, body := do(t, http.MethodGet, ts.URL+"/games/g1/can-move?"+tc.query, nil)
		if code != tc.code {
			t.Fatalf("%s: status %d, want %d", tc.query, code, tc.code)
		}
		if code != http.StatusOK {
			continue
		}
		var v canMoveView
		decode(t, body, &v)
		if v.Allowed != tc.allowed {
			t.Fatalf("%s: allowed=%v, want %v", tc.query, v.Allowed, tc.allowed)
		}
		if strings.Join(v.Targets, ",") != strings.Join(tc.targets, ",") {
			t.Fatalf("%s: targets %v, want %v", tc.query, v.Targets, tc.targets)
		}
	}
}

func TestMoveSavesAndToggles(t *testing.T) {
	st := store.NewMemoryStore()
	ts := newTestServer(t, st)

	if code, _ := do(t, http.MethodPost, ts.URL+"/games/g1/moves", map[string]string{"from": "e2", "to": "e4"}); code != http.StatusNotFound {
		t.Fatalf("move on unknown game: %d", code)
	}
	do(t, http.MethodPost, ts.URL+"/games/g1", nil)

	code, body := do(t, http.MethodPost, ts.URL+"/games/g1/moves", map[string]string{"from": "e2", "to": "e4"})
	if code != http.StatusOK {
		t.Fatalf("move status %d: %s", code, body)
	}
	var v gameView
	decode(t, body, &v)
	if v.Side != "black" {
		t.Fatalf("side = %s after white move", v.Side)
	}

	snap, err := st.Load(context.Background(), "g1")
	if err != nil {
		t.Fatalf("snapshot not saved: %v", err)
	}
	if snap.State != v.State || snap.Side != "black" || snap.Hash != v.Hash {
		t.Fatalf("snapshot %+v does not match view %+v", snap, v)
	}

	// White may not move twice.
	if code, _ := do(t, http.MethodPost, ts.URL+"/games/g1/moves", map[string]string{"from": "d2", "to": "d4"}); code != http.StatusConflict {
		t.Fatalf("expected 409 for out-of-turn move, got %d", code)
	}
	if code, _ := do(t, http.MethodPost, ts.URL+"/games/g1/moves", map[string]string{"from": "e7", "to": "e4"}); code != http.StatusConflict {
		t.Fatalf("expected 409 for illegal move, got %d", code)
	}
	if code, _ := do(t, http.MethodPost, ts.URL+"/games/g1/moves", map[string]string{"from": "e7", "to": "x"}); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad square, got %d", code)
	}
}

func TestRestoreAndLoad(t *testing.T) {
	st := store.NewMemoryStore()
	ts := newTestServer(t, st)

	if code, _ := do(t, http.MethodPut, ts.URL+"/games/g1/state", map[string]string{"state": "short"}); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad state, got %d", code)
	}
	if code, _ := do(t, http.MethodPut, ts.URL+"/games/g1/state", map[string]string{"state": startState, "side": "green"}); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad side, got %d", code)
	}

	code, body := do(t, http.MethodPut, ts.URL+"/games/g1/state", map[string]string{"state": startState, "side": "b"})
	if code != http.StatusOK {
		t.Fatalf("restore status %d: %s", code, body)
	}
	var v gameView
	decode(t, body, &v)
	if v.Side != "black" || v.State != startState {
		t.Fatalf("unexpected restored view %+v", v)
	}

	// A fresh service over the same store picks the game up again.
	ts2 := newTestServer(t, st)
	if code, _ := do(t, http.MethodGet, ts2.URL+"/games/g1", nil); code != http.StatusNotFound {
		t.Fatalf("fresh service should not know g1 yet, got %d", code)
	}
	code, body = do(t, http.MethodPost, ts2.URL+"/games/g1/load", nil)
	if code != http.StatusOK {
		t.Fatalf("load status %d: %s", code, body)
	}
	var loaded gameView
	decode(t, body, &loaded)
	if loaded.State != v.State || loaded.Side != v.Side || loaded.Hash != v.Hash {
		t.Fatalf("loaded %+v, want %+v", loaded, v)
	}

	if code, _ := do(t, http.MethodPost, ts2.URL+"/games/other/load", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 loading missing snapshot, got %d", code)
	}
}

func TestLoadCorruptSnapshotCreatesNoGame(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	if err := st.Save(ctx, store.Snapshot{ID: "bad-state", State: "bad", Side: "white"}); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(ctx, store.Snapshot{ID: "bad-side", State: startState, Side: "purple"}); err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, st)

	for _, id := range []string{"bad-state", "bad-side"} {
		if code, body := do(t, http.MethodPost, ts.URL+"/games/"+id+"/load", nil); code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", id, code, body)
		}
		if code, _ := do(t, http.MethodGet, ts.URL+"/games/"+id, nil); code != http.StatusNotFound {
			t.Fatalf("%s: failed load must not create a game, got %d", id, code)
		}
	}
}

func TestBoardSVG(t *testing.T) {
	ts := newTestServer(t, nil)
	do(t, http.MethodPost, ts.URL+"/games/g1", nil)

	resp, err := http.Get(ts.URL + "/games/g1/board.svg?from=e2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("svg status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("content type %q", ct)
	}
	out, _ := io.ReadAll(resp.Body)
	r := render.NewRenderer(0)
	if n := strings.Count(string(out), "fill:"+r.Highlight); n != 2 {
		t.Fatalf("expected 2 highlighted squares, got %d", n)
	}

	if code, _ := do(t, http.MethodGet, ts.URL+"/games/g1/board.svg?from=k9", nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad square, got %d", code)
	}
}

func TestWebsocketReceivesMoves(t *testing.T) {
	ts := newTestServer(t, nil)
	do(t, http.MethodPost, ts.URL+"/games/g1", nil)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/games/g1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first gameView
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial state: %v", err)
	}
	if first.Side != "white" || first.State != startState {
		t.Fatalf("unexpected initial push %+v", first)
	}

	do(t, http.MethodPost, ts.URL+"/games/g1/moves", map[string]string{"from": "g1", "to": "f3"})

	var pushed gameView
	if err := conn.ReadJSON(&pushed); err != nil {
		t.Fatalf("read pushed state: %v", err)
	}
	if pushed.Side != "black" || pushed.State == startState {
		t.Fatalf("unexpected push after move %+v", pushed)
	}
}

func TestDelete(t *testing.T) {
	st := store.NewMemoryStore()
	ts := newTestServer(t, st)
	do(t, http.MethodPost, ts.URL+"/games/g1", nil)

	if code, _ := do(t, http.MethodDelete, ts.URL+"/games/g1", nil); code != http.StatusNoContent {
		t.Fatalf("delete status %d", code)
	}
	if code, _ := do(t, http.MethodGet, ts.URL+"/games/g1", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
	if _, err := st.Load(context.Background(), "g1"); err == nil {
		t.Fatalf("snapshot should be removed with the game")
	}
	if code, _ := do(t, http.MethodDelete, ts.URL+"/games/g1", nil); code != http.StatusNotFound {
		t.Fatalf("second delete status %d", code)
	}
}
