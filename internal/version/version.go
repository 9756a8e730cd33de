package version

// These variables are overridden at build time using -ldflags, e.g.
// -X github.com/ericogr/dungeon-party/internal/version.Version=v0.3.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
)

// Service is the name reported by the version endpoint and the logs.
const Service = "dungeon-party"
