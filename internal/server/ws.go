package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hounds-game/hounds/internal/transport"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 本地对战工具，不做来源限制
	},
}

// wsGateway WebSocket 网关
// 升级后的连接走与 TCP 完全相同的入座握手和消息流
type wsGateway struct {
	srv  *Server
	http *http.Server
}

func newWSGateway(srv *Server, addr string) *wsGateway {
	g := &wsGateway{srv: srv}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	g.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return g
}

func (g *wsGateway) serve() {
	log.Info().Str("addr", g.http.Addr).Msg("websocket gateway listening")
	if err := g.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("websocket gateway failed")
	}
}

func (g *wsGateway) close() {
	_ = g.http.Close()
}

func (g *wsGateway) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}
	go g.srv.handleConn(transport.NewWSConn(conn))
}
