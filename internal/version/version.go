// Package version resolves the revision of the running binary so each
// recorded draw names the exact code that produced it.
package version

import "runtime/debug"

// Unknown is recorded when no revision metadata is available (e.g. a
// binary built outside version control).
const Unknown = "unknown"

// Resolve returns the VCS revision embedded at build time, or Unknown.
func Resolve() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return Unknown
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value
		}
	}
	return Unknown
}
