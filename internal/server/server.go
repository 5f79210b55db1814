// Package server exposes board sessions over HTTP and pushes state to
// websocket subscribers after every change.
package server

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	mg "chess-board/chessmg"
	"chess-board/render"
	"chess-board/store"
)

var (
	errUnknownGame = errors.New("unknown game")
	errBadRequest  = errors.New("bad request")
)

type session struct {
	mu   sync.Mutex
	game *mg.Game

	clientsLock sync.RWMutex
	clients     map[*websocket.Conn]struct{}
}

// Service routes board requests to per-id sessions.
type Service struct {
	router    *mux.Router
	store     store.Store
	gen       *mg.Generator
	renderer  *render.Renderer
	upgrader  websocket.Upgrader
	accessLog io.Writer

	sessionsLock sync.Mutex
	sessions     map[string]*session
}

type Option func(*Service)

// WithAccessLog writes one access-log line per request to w.
func WithAccessLog(w io.Writer) Option {
	return func(s *Service) { s.accessLog = w }
}

// NewService builds the router. A nil generator or renderer uses the defaults.
func NewService(st store.Store, gen *mg.Generator, renderer *render.Renderer, opts ...Option) *Service {
	if gen == nil {
		gen = mg.NewGenerator()
	}
	if renderer == nil {
		renderer = render.NewRenderer(0)
	}
	s := &Service{
		router:   mux.NewRouter(),
		store:    st,
		gen:      gen,
		renderer: renderer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.accessLog != nil {
		logger := func(next http.Handler) http.Handler {
			return handlers.LoggingHandler(s.accessLog, next)
		}
		s.router.NotFoundHandler = logger(http.HandlerFunc(notFoundHandler))
		s.router.Use(logger)
	}

	s.router.HandleFunc("/games/{id}", s.setUpHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}", s.getHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}", s.deleteHandler).Methods(http.MethodDelete)
	s.router.HandleFunc("/games/{id}/can-move", s.canMoveHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/moves", s.moveHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}/state", s.restoreHandler).Methods(http.MethodPut)
	s.router.HandleFunc("/games/{id}/load", s.loadHandler).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}/board.svg", s.svgHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/ws", s.wsHandler).Methods(http.MethodGet)
	return s
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// lookup returns the session for id, creating it when create is set.
func (s *Service) lookup(id string, create bool) (*session, error) {
	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		return sess, nil
	}
	if !create {
		return nil, errUnknownGame
	}
	sess = &session{
		game:    mg.NewGame(s.gen),
		clients: make(map[*websocket.Conn]struct{}),
	}
	s.sessions[id] = sess
	return sess, nil
}

func (s *Service) drop(id string) (*session, bool) {
	s.sessionsLock.Lock()
	defer s.sessionsLock.Unlock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	return sess, ok
}

// broadcast sends v to every subscriber. Callers hold sess.mu, which
// serialises writes to each connection.
func (sess *session) broadcast(v interface{}) {
	sess.clientsLock.RLock()
	defer sess.clientsLock.RUnlock()
	for conn := range sess.clients {
		_ = conn.WriteJSON(v)
	}
}

func (sess *session) subscribe(conn *websocket.Conn) {
	sess.clientsLock.Lock()
	sess.clients[conn] = struct{}{}
	sess.clientsLock.Unlock()
}

func (sess *session) unsubscribe(conn *websocket.Conn) {
	sess.clientsLock.Lock()
	delete(sess.clients, conn)
	sess.clientsLock.Unlock()
	conn.Close()
}

func (sess *session) closeAll() {
	sess.clientsLock.Lock()
	defer sess.clientsLock.Unlock()
	for conn := range sess.clients {
		conn.Close()
		delete(sess.clients, conn)
	}
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}
