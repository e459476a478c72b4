package utils

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags "-X github.com/EasterCompany/dex-lipi-service/utils.version=..."
var (
	version   = "0.0.0"
	branch    = "unknown"
	commit    = "unknown"
	buildDate = "unknown"
)

// Version describes the running build.
type Version struct {
	Str       string `json:"str"`
	Branch    string `json:"branch"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	Arch      string `json:"arch"`
}

// SetVersion overrides the build information, mostly for tests and tools.
func SetVersion(versionStr, branchStr, commitStr, buildDateStr string) {
	version, branch, commit, buildDate = versionStr, branchStr, commitStr, buildDateStr
}

// GetVersion returns the version information for the service.
func GetVersion() Version {
	return Version{
		Str:       version,
		Branch:    branch,
		Commit:    commit,
		BuildDate: buildDate,
		Arch:      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
