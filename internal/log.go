package internal

import (
	"io"
	"os"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger used by runtimes and widgets.
// A nil *Logger is valid and discards everything.
type Logger = logiface.Logger[logiface.Event]

// NewLogger returns a logger writing one JSON object per line to w.
func NewLogger(w io.Writer, level logiface.Level, opts ...stumpy.Option) *Logger {
	opts = append([]stumpy.Option{stumpy.WithWriter(w)}, opts...)

	return stumpy.L.New(
		stumpy.L.WithStumpy(opts...),
		stumpy.L.WithLevel(level),
	).Logger()
}

func defaultLogger() *Logger {
	return NewLogger(os.Stderr, logiface.LevelWarning)
}
