package pkg

import (
	"io"
	"log/slog"
)

func NewLogger(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, nil)
	return slog.New(handler)
}

// NewDiscardLogger используется в тестах, где вывод логов не нужен.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
