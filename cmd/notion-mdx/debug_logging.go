package main

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/toothbrush/notion-mdx/internal/termfmt"
)

// logger is ready once the root command's pre-run hook has run.
var logger = zerolog.Nop()

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if Debug {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("component", "notion-mdx").
		Logger()
}

func setupLogging() {
	logger = newLogger()
}

// setupTerminal switches styling off when stdout isn't a terminal, so redirected output stays
// clean.
func setupTerminal() {
	termfmt.SetEnabled(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}
