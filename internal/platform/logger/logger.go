package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Handlers and services
// receive it by injection, never via a package-level global.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
