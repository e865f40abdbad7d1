// Package logging configures the process logger and carries it in a context.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/charmbracelet/log"
	slogmulti "github.com/samber/slog-multi"
)

// Name is the logger name printed on every line.
const Name = "oci-launch"

// Options selects verbosity and an optional JSON log file.
type Options struct {
	Debug bool
	File  string
}

// Setup builds the process logger writing human-readable lines to w and,
// when opts.File is set, JSON records to that file. The returned func closes
// the file.
func Setup(ctx context.Context, w io.Writer, opts Options) (context.Context, func() error, error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	console := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          Name,
		Level:           log.Level(level),
	})
	handlers := []slog.Handler{console}

	closer := func() error { return nil }
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return ctx, closer, fmt.Errorf("could not open log file: %w", err)
		}
		jsonHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
		handlers = append(handlers, jsonHandler.WithAttrs([]slog.Attr{slog.String("logger", Name)}))
		closer = f.Close
	}

	logger := clog.New(slogmulti.Fanout(handlers...))
	ctx = clog.WithLogger(ctx, logger)
	slog.SetDefault(&logger.Logger)
	return ctx, closer, nil
}

// With returns a context whose logger carries args on every record.
func With(ctx context.Context, args ...any) context.Context {
	return clog.WithLogger(ctx, clog.FromContext(ctx).With(args...))
}
