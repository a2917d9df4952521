package relay_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dkeye/portal/internal/adapters/relay"
	"github.com/dkeye/portal/internal/config"
)

func dialRelay(t *testing.T) *websocket.Conn {
	t.Helper()
	cfg := &config.Config{Mode: "release"}
	srv := httptest.NewServer(relay.SetupRouter(cfg))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if resp != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("dial relay: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRelayEchoesText(t *testing.T) {
	conn := dialRelay(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping me back")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if mt != websocket.TextMessage || string(data) != "ping me back" {
		t.Fatalf("got type %d payload %q", mt, data)
	}
}

func TestRelayDropsBinaryButStaysOpen(t *testing.T) {
	conn := dialRelay(t)

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2, 3}); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte("still alive")); err != nil {
		t.Fatalf("write text: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "still alive" {
		t.Fatalf("binary frame was echoed or reordered: %q", data)
	}
}
