// Package errors provides the classified error primitives used across docmeta.
//
// Pipeline-level failures (the ones that abort a build) are reported as
// ClassifiedError values. Per-source problems never reach this package; they are
// collected as warnings by the pipeline instead.
//
// Key features:
//   - ErrorCategory: broad classification (config, filesystem, docs, build, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit code mapping and user-facing formatting
//
// Example usage:
//
//	err := errors.FileSystemError("create output root").
//		WithContext("path", root).
//		WithCause(originalErr).
//		Build()
package errors
