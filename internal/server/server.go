// Package server exposes the FOV engine over a websocket: clients drive a
// private map/calculator pair with JSON ops and get light grids and
// visibility diffs back. Meant for debugging and for non-terminal clients.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"gridlight/internal/config"
	"gridlight/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server is the websocket inspector front end.
type Server struct {
	cfg config.Server
}

// New creates a Server from config.
func New(cfg config.Server) *Server {
	return &Server{cfg: cfg}
}

// Run blocks serving HTTP on the configured inspector port.
func (s *Server) Run() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", handleHealth)

	addr := fmt.Sprintf(":%d", s.cfg.InspectorPort)
	logger.Log.WithField("addr", addr).Info("gridlight inspector listening")
	return http.ListenAndServe(addr, mux)
}

// handleWS upgrades the connection and serves requests until the client
// disconnects. Each connection owns an isolated session, so ops are
// processed synchronously in arrival order.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("websocket upgrade failed")
		return
	}
	log := logger.Log.WithFields(logrus.Fields{"remote": conn.RemoteAddr().String()})
	log.Info("inspector client connected")

	sess := newSession(s.cfg)
	defer func() {
		if err := conn.Close(); err != nil {
			log.WithError(err).Warn("close websocket")
		}
		log.Info("inspector client disconnected")
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read failed")
			}
			return
		}

		var req Request
		var resp Response
		if err := json.Unmarshal(data, &req); err != nil {
			resp = errResponse(fmt.Errorf("bad request: %w", err))
		} else {
			resp = sess.apply(req)
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.WithError(err).Warn("write failed")
			return
		}
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
