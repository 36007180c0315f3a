// Package version holds build metadata injected at link time via
// -ldflags "-X github.com/kubilitics/kubeplay/internal/version.Version=...".
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
