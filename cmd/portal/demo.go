package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dkeye/portal/internal/adapters/ws"
	"github.com/dkeye/portal/internal/app"
	"github.com/dkeye/portal/internal/core"
	"github.com/dkeye/portal/internal/wordlist"
)

// demoCmd drives the reactor end to end: open a connection to the relay,
// send a generated code phrase, wait for the echo, let a short timer fire.
func demoCmd() *cobra.Command {
	var relayURL string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Exercise the reactor against a running relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			if relayURL == "" {
				relayURL = "ws://localhost" + cfg.RelayAddr + "/ws"
				if !strings.HasPrefix(cfg.RelayAddr, ":") {
					relayURL = "ws://" + cfg.RelayAddr + "/ws"
				}
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			words, err := wordlist.Default(cfg.CodeWords, wordlist.ForName(cfg.Completion))
			if err != nil {
				return err
			}
			phrase, err := words.Choose()
			if err != nil {
				return err
			}

			exec := executorFor(cfg)
			reactor := app.New(ws.NewDialer(exec, cfg.DialTimeout, cfg.WriteTimeout), exec)
			go reactor.Run(ctx)

			const (
				conn  core.ConnHandle  = 1
				timer core.TimerHandle = 1
			)
			reactor.Process(core.Open{Handle: conn, URL: relayURL})
			reactor.Process(core.Send{Handle: conn, Text: phrase})
			reactor.Process(core.StartTimer{Handle: timer, Seconds: 2})

			for {
				select {
				case <-ctx.Done():
					return nil
				case ev := <-reactor.Events():
					switch e := ev.(type) {
					case core.ConnectionMade:
						fmt.Printf("connected (conn %d)\n", e.Handle)
					case core.MessageReceived:
						fmt.Printf("echo: %s\n", e.Text)
						reactor.Process(core.Close{Handle: e.Handle})
					case core.ConnectionLost:
						fmt.Printf("connection %d closed\n", e.Handle)
					case core.TimerExpired:
						log.Info().Uint64("timer", uint64(e.Handle)).Msg("demo timer fired")
						// give the close handshake a moment, then leave
						time.Sleep(100 * time.Millisecond)
						return nil
					}
				}
			}
		},
	}
	cmd.Flags().StringVar(&relayURL, "url", "", "relay websocket URL (default derives from relay_addr)")
	return cmd
}
