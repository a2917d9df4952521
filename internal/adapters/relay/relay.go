// Package relay is a development peer for the reactor: a gin server that
// upgrades /ws and echoes every text frame back to its sender.
package relay

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/portal/internal/config"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func SetupRouter(cfg *config.Config) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.GET("/ws", handleEcho)
	log.Info().Str("module", "adapters.relay").Msg("router setup")
	return r
}

func handleEcho(c *gin.Context) {
	id := uuid.NewString()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.relay").Msg("ws upgrade")
		return
	}
	defer func() { _ = conn.Close() }()
	log.Info().Str("module", "adapters.relay").Str("peer", id).Msg("peer connected")

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			log.Info().Err(err).Str("module", "adapters.relay").Str("peer", id).Msg("peer gone")
			return
		}
		if mt != websocket.TextMessage {
			log.Warn().Str("module", "adapters.relay").Str("peer", id).Int("type", mt).
				Msg("non-text frame dropped")
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Error().Err(err).Str("module", "adapters.relay").Str("peer", id).Msg("echo write")
			return
		}
	}
}
