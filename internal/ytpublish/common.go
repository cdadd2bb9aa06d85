package ytpublish

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"mkuznets.com/go/ytpublish/internal/config"
	"mkuznets.com/go/ytpublish/internal/ledger"
)

const configName = "ytpublish.yaml"

// Options is a group of common options for all subcommands.
type Options struct {
	ConfigPath string `short:"c" long:"config" description:"custom config path" env:"YTPUBLISH_CONFIG"`
	Debug      bool   `long:"debug" description:"enable debug logging" env:"YTPUBLISH_DEBUG"`
}

// Command is a common part of all subcommands.
type Command struct {
	Config *Config
	Ctx    context.Context
	ledger *ledger.Ledger
}

func (cmd *Command) Init(opts interface{}) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	})

	// -------------

	options, ok := opts.(*Options)
	if !ok {
		panic("type mismatch")
	}

	lvl := zerolog.InfoLevel
	if options.Debug {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)

	// -------------

	cmd.Ctx = cmd.handleSignals()

	// -------------

	cfg, err := ReadConfig(options.ConfigPath)
	if err != nil {
		return err
	}
	cmd.Config = cfg

	return nil
}

// ReadConfig reads and validates the layered configuration.
func ReadConfig(explicitPath string) (*Config, error) {
	var cfg Config

	reader := config.New(
		configName,
		config.WithExplicitPath(explicitPath),
		config.WithDefaults(ConfigDefaults),
	)
	if err := reader.Read(&cfg); err != nil {
		return nil, errors.Wrap(err, "config error")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

func (cmd *Command) handleSignals() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		done := ctx.Done()
		cnt := 0
		for {
			select {
			case s := <-signalChan:
				switch cnt {
				case 0:
					log.Warn().Stringer("signal", s).Msgf("Graceful termination")
					cancel()
					done = nil
				case 1:
					log.Warn().Msgf("Send one more signal for hard termination")
				case 2:
					log.Warn().Msgf("Hard termination")
					os.Exit(1)
				}
				cnt++
			case <-done:
				return
			}
		}
	}()

	return ctx
}

// openLedger opens the publish ledger. Only commands that read or write
// history hold the database lock.
func (cmd *Command) openLedger() (*ledger.Ledger, error) {
	l := ledger.New(cmd.Config.Ledger.Path)
	if err := l.Init(); err != nil {
		return nil, errors.Wrap(err, "could not open ledger")
	}
	cmd.ledger = l
	return l, nil
}

func (cmd *Command) Close() {
	if cmd.ledger == nil {
		return
	}
	if err := cmd.ledger.Close(); err != nil {
		log.Err(err).Msg("Could not close ledger")
	}
}
