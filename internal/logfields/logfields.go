package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by the pipeline, its stages and the CLI.
const (
	KeyStage      = "stage"
	KeyKind       = "kind"
	KeySource     = "source"
	KeyPath       = "path"
	KeyCode       = "code"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyOutcome    = "outcome"
	KeyError      = "error"
)

func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func Kind(k string) slog.Attr       { return slog.String(KeyKind, k) }
func Source(s string) slog.Attr     { return slog.String(KeySource, s) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Code(c string) slog.Attr       { return slog.String(KeyCode, c) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Outcome(o string) slog.Attr    { return slog.String(KeyOutcome, o) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
