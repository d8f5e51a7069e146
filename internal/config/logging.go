package config

import (
	"log/slog"

	"git.home.luguber.info/inful/docmeta/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// SlogLevel maps the level onto slog.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// LastModifiedSource selects where entry timestamps come from.
type LastModifiedSource string

const (
	LastModifiedMtime LastModifiedSource = "mtime"
	LastModifiedGit   LastModifiedSource = "git"
)

var lastModifiedNormalizer = normalization.NewNormalizer(map[string]LastModifiedSource{
	"mtime": LastModifiedMtime,
	"file":  LastModifiedMtime,
	"git":   LastModifiedGit,
}, "")

// NormalizeLastModified returns "" for unknown values.
func NormalizeLastModified(raw string) LastModifiedSource {
	return lastModifiedNormalizer.Normalize(raw)
}
