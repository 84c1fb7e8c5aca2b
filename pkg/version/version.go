// Package version holds build metadata set with -ldflags at release time.
package version

import (
	"fmt"
	"runtime"
)

// Name is the binary name.
const Name = "quizadmin"

// Set via -ldflags "-X github.com/quizgame/quizadmin/pkg/version.version=...".
var (
	version   = "0.1.0-dev" //nolint:gochecknoglobals // Set by the linker
	gitCommit = "unknown"   //nolint:gochecknoglobals // Set by the linker
	buildDate = "unknown"   //nolint:gochecknoglobals // Set by the linker
)

// GetVersion returns the semantic version.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// UserAgent returns the User-Agent sent to the quiz API.
func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s/%s)", Name, version, runtime.GOOS, runtime.GOARCH)
}
