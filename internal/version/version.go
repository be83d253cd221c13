// Package version provides build-time version information for the application.
package version

import "fmt"

var (
	// Version is the application version (e.g., git tag or "dev")
	Version = "dev"
	// Commit is the git commit hash
	Commit = "dev"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// Info is the version block reported by the server and the CLI
type Info struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
}

// Get returns the build information for service
func Get(service string) Info {
	return Info{Service: service, Version: Version, Commit: Commit, BuildTime: BuildTime}
}

func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", i.Service, i.Version, i.Commit, i.BuildTime)
}
