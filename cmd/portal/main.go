// main.go sets up the portal CLI: the root command, the relay and demo
// subcommands, and global logging/config wiring.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dkeye/portal/internal/app"
	"github.com/dkeye/portal/internal/config"
	"github.com/dkeye/portal/internal/core"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portal",
		Short: "portal is a websocket I/O reactor with a development relay",
		Long: `portal turns abstract I/O actions (timers, websocket open/send/close)
into real asynchronous work and reports outcomes back as correlated events.

The relay subcommand runs a local echo peer; demo drives the reactor
against it.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	cmd.AddCommand(relayCmd(), demoCmd())
	return cmd
}

// setup initializes the global logger and loads configuration; shared by
// every subcommand.
func setup() (*config.Config, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return cfg, nil
}

// executorFor picks the execution backend once for the whole process.
func executorFor(cfg *config.Config) core.Executor {
	if cfg.Backend == "pool" {
		return app.NewPoolExecutor(cfg.PoolSize)
	}
	return app.SpawnExecutor{}
}
