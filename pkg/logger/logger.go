// Package logx configures the process-global zerolog logger. Every package
// logs through zerolog/log; nothing constructs its own logger.
package logx

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is loaded from LOG_* environment variables by the autoload
// package. PrettyFormat switches to the console writer for local runs;
// structured JSON stays the default so log lines remain machine-parseable.
type Config struct {
	Debug        bool `split_words:"true" default:"false"`
	PrettyFormat bool `split_words:"true" default:"false"`
}

var DefaultConfig = &Config{}

// Init replaces the global logger. Calling it with no arguments applies
// DefaultConfig, which is what the autoload package does when the
// environment cannot be parsed.
func Init(opts ...Config) {
	conf := DefaultConfig
	if len(opts) > 0 {
		conf = &opts[0]
	}

	var out zerolog.Logger
	if conf.PrettyFormat {
		out = zerolog.New(zerolog.NewConsoleWriter())
	} else {
		out = zerolog.New(os.Stdout)
	}

	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	log.Logger = out.Level(level).With().Timestamp().Caller().Stack().Logger()
}
