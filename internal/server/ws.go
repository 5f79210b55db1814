package server

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// wsHandler subscribes the connection to the game's state pushes. The
// current state is sent immediately; inbound messages are discarded.
func (s *Service) wsHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess, err := s.lookup(id, false)
	if err != nil {
		writeError(w, err)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade %s: %v", id, err)
		return
	}

	sess.mu.Lock()
	sess.subscribe(conn)
	err = conn.WriteJSON(viewOf(id, sess.game))
	sess.mu.Unlock()
	if err != nil {
		sess.unsubscribe(conn)
		return
	}

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sess.unsubscribe(conn)
				return
			}
		}
	}()
}
