package version

import "strings"

var buildVersion = "v1.0.0"

// String returns the semantic version of the SDK. Override via ldflags, e.g.:
// go build -ldflags "-X github.com/tommetge/stravakit/version.buildVersion=v1.1.0".
func String() string {
	return strings.TrimSpace(buildVersion)
}

// UserAgent identifies the SDK in outbound request headers.
func UserAgent() string {
	return "stravakit/" + strings.TrimPrefix(String(), "v")
}
