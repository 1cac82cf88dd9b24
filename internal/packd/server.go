package packd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/websocket"
)

// Server is packd's HTTP surface: bearer-token-authenticated pack fetch
// plus a websocket reload feed.
type Server struct {
	cfg     Config
	hub     *Hub
	mux     *http.ServeMux
	upgrade websocket.Upgrader
}

// NewServer wires the pack-fetch and reload-feed handlers into a fresh
// mux, ready to pass to http.ListenAndServe.
func NewServer(cfg Config, hub *Hub) *Server {
	s := &Server{
		cfg: cfg,
		hub: hub,
		mux: http.NewServeMux(),
		upgrade: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.mux.HandleFunc("/packs/", s.handleFetchPack)
	s.mux.HandleFunc("/ws/reload", s.handleReloadSocket)
	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Broadcast notifies every subscribed reload connection that
// characterID's pack changed to the given content hash.
func (s *Server) Broadcast(characterID, hash string) {
	s.hub.Broadcast(ReloadEvent{CharacterID: characterID, Hash: hash})
}

func (s *Server) authenticate(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", fmt.Errorf("missing bearer token")
	}
	return VerifyToken(s.cfg, strings.TrimPrefix(header, prefix))
}

func (s *Server) handleFetchPack(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authenticate(r); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	characterID := strings.TrimPrefix(r.URL.Path, "/packs/")
	if characterID == "" || strings.ContainsAny(characterID, "/\\") {
		http.Error(w, "invalid character id", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.cfg.PacksDir, characterID+".fspk")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		http.Error(w, "pack not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "read pack", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}

func (s *Server) handleReloadSocket(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authenticate(r); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrade.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.hub.Register(conn)

	go func() {
		defer s.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
