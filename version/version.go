// Package version reports build information for the bnls binary.
package version

import (
	"fmt"
	"runtime"
)

// Name is the binary and server name reported to users.
const Name = "bnls"

// Build information, set at build time via ldflags:
//
//	go build -ldflags "-X github.com/bnlang/bnls/version.Version=v0.3.0 -X github.com/bnlang/bnls/version.CommitHash=$(git rev-parse HEAD)"
var (
	Version    = "dev"
	CommitHash = "dev"
	BuildTime  = "unknown"
)

// LSPVersion is the protocol revision the server implements.
const LSPVersion = "3.16"

// Info contains version and build information
type Info struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	LSP        string `json:"lsp"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		Name:       Name,
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		LSP:        LSPVersion,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// IsDev reports whether the binary was built without a release version.
func (i Info) IsDev() bool {
	return i.Version == "" || i.Version == "dev"
}

// String returns a human-readable version string
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, LSP %s)", i.Name, i.ServerVersion(), i.Short(), i.BuildTime, i.LSP)
}

// ServerVersion is the version sent in the initialize response. Dev builds
// carry the short commit so editor logs identify the binary.
func (i Info) ServerVersion() string {
	if i.IsDev() {
		return "dev+" + i.Short()
	}
	return i.Version
}

// Short returns the commit hash cut to seven characters
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
