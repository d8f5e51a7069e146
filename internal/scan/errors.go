package scan

import "errors"

// Sentinel errors for source scanning. They are attached to warnings, not
// returned from Scan, unless noted.
var (
	// ErrRootMissing indicates a configured source root does not exist.
	ErrRootMissing = errors.New("source root not found")

	// ErrRootUnreadable indicates a source root exists but cannot be listed.
	ErrRootUnreadable = errors.New("source root unreadable")

	// ErrSourceMissing indicates a fixed project/report file is absent.
	ErrSourceMissing = errors.New("source file not found")

	// ErrNotAFile indicates a fixed source path names a directory.
	ErrNotAFile = errors.New("source path is a directory")

	// ErrUnknownKind is returned by Scan for a kind it does not handle.
	ErrUnknownKind = errors.New("unknown source kind")
)
