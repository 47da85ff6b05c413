// Package version holds the program version, set at build time with
// -ldflags "-X github.com/git-l10n/po2json/version.Version=...".
package version

// Version of po2json.
var Version = "0.1.0-dev"
