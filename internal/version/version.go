// Package version provides version information for the okapi library.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables set by ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	GoVersion = runtime.Version()
)

// String returns a single-line version description.
func String() string {
	return fmt.Sprintf("okapi %s (%s, %s)", Version, GitCommit, GoVersion)
}
