// Copyright (c) 2026 Frank Corso
//
// version.go — build-time version, date, and environment metadata injected
// via -ldflags and exposed through the Version() function.

package lightcache

// Build-time variables injected via -ldflags.
// Defaults represent an unversioned local development build.
//
//	BuildDate format : YYYY.MM.DD-HHMM  (24-hour clock)
//	BuildEnv  values : dev | qa | prod
var (
	// BuildDate is the date and time the binary was built.
	// Set by: -ldflags "-X 'github.com/fpcorso/light-cache.BuildDate=2026.08.28-1030'"
	BuildDate = "0000.00.00-0000"

	// BuildEnv is the target environment for this build.
	// Set by: -ldflags "-X 'github.com/fpcorso/light-cache.BuildEnv=dev'"
	BuildEnv = "dev"
)

// Version returns the full version string in the form "YYYY.MM.DD-HHMM-env",
// e.g. "2026.08.28-1030-dev".
func Version() string {
	return BuildDate + "-" + BuildEnv
}
