package version

// Set at build time through -ldflags.
var (
	Branch   = "unknown"
	Revision = "unknown"
)
