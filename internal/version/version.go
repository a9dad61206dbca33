// Package version carries build metadata stamped in by -ldflags.
package version

import "fmt"

var (
	// Version is the release version of the travel planner.
	Version = "dev"
	// GitSHA is the git commit SHA.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// String formats the build metadata on one line.
func String() string {
	return fmt.Sprintf("travelplan %s (%s, built %s)", Version, GitSHA, BuildTime)
}
