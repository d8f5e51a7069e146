package version

// Version contains the application version information.
// Set via ldflags in release builds:
// go build -ldflags "-X git.home.luguber.info/inful/docmeta/internal/version.Version=v1.2.0".
var Version = "dev"

// Additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// SchemaVersion is the version written into every metadata artifact.
const SchemaVersion = "1.0.0"
