// Package logging configures zerolog for console output.
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Setup configures global zerolog state. Verbose enables debug-level
// output, which includes per-endpoint resolution attempts.
func Setup(verbose bool) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	// overrides zerolog global logger
	log.Logger = New("syncbench")
}

// New returns a console logger tagged with a component name.
func New(name string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Str("component", name).Logger()
}
