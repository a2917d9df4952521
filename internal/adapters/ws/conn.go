package ws

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/portal/internal/core"
)

// Dialer owns the websocket side of the reactor: one dial per Open action,
// then a read pump and a write pump until the connection is gone. The pumps
// talk to the dispatcher only through the reporter and the outbound queue.
type Dialer struct {
	Exec         core.Executor
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewDialer(exec core.Executor, dialTimeout, writeTimeout time.Duration) *Dialer {
	return &Dialer{
		Exec:         exec,
		DialTimeout:  dialTimeout,
		WriteTimeout: writeTimeout,
	}
}

func (d *Dialer) Run(
	ctx context.Context,
	url string,
	h core.ConnHandle,
	outbound <-chan core.OutFrame,
	report core.ConnReporter,
) {
	dialer := websocket.Dialer{HandshakeTimeout: d.DialTimeout}
	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if resp != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Str("url", url).Msg("dial failed")
		report.Failed(h, err)
		return
	}
	report.Established(h)
	log.Info().Str("module", "adapters.ws").Uint64("conn", uint64(h)).Str("url", url).Msg("connected")

	ctx, cancel := context.WithCancel(ctx)
	d.Exec.Go(func() {
		d.writePump(ctx, h, conn, outbound)
	})
	defer cancel()
	d.readPump(h, conn, report)
}

func (d *Dialer) readPump(h core.ConnHandle, conn *websocket.Conn, report core.ConnReporter) {
	// Received pings are logged and deliberately left unanswered; gorilla's
	// default handler would auto-pong, which would hide the gap.
	conn.SetPingHandler(func(string) error {
		log.Warn().Str("module", "adapters.ws").Uint64("conn", uint64(h)).
			Msg("ping received, not responding")
		return nil
	})
	conn.SetPongHandler(func(string) error {
		log.Warn().Str("module", "adapters.ws").Uint64("conn", uint64(h)).
			Msg("pong without a ping")
		return nil
	})

	defer func() {
		_ = conn.Close()
		log.Info().Str("module", "adapters.ws").Uint64("conn", uint64(h)).Msg("readPump closing")
	}()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			// close frame or transport loss; either way the connection is gone
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Str("module", "adapters.ws").Uint64("conn", uint64(h)).
					Msg("readPump read error")
			}
			report.Lost(h)
			return
		}
		switch mt {
		case websocket.TextMessage:
			report.Text(h, string(data))
		case websocket.BinaryMessage:
			log.Error().Str("module", "adapters.ws").Uint64("conn", uint64(h)).
				Msg("binary frame is not part of the protocol")
		}
	}
}

func (d *Dialer) writePump(
	ctx context.Context,
	h core.ConnHandle,
	conn *websocket.Conn,
	outbound <-chan core.OutFrame,
) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "adapters.ws").Uint64("conn", uint64(h)).Msg("writePump ctx done")
			return
		case f, ok := <-outbound:
			if !ok {
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(d.WriteTimeout)); err != nil {
				log.Error().Err(err).Str("module", "adapters.ws").Uint64("conn", uint64(h)).
					Msg("writePump set deadline")
				return
			}
			if f.Close {
				if err := conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")); err != nil {
					log.Error().Err(err).Str("module", "adapters.ws").Uint64("conn", uint64(h)).
						Msg("writePump close frame")
				}
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f.Text)); err != nil {
				log.Error().Err(err).Str("module", "adapters.ws").Uint64("conn", uint64(h)).
					Msg("writePump write error")
				return
			}
		}
	}
}

var _ core.Connector = (*Dialer)(nil)
