// Package version exposes the build metadata stamped into skillref via
// -ldflags at release time.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

var (
	// Version is the released version, set at build time
	Version = "dev"

	// GitCommit is the commit the binary was built from
	GitCommit = "unknown"

	// BuildTime is when the binary was built
	BuildTime = "unknown"
)

// Info represents version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// Get returns the version information of the running binary
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("Version: %s, GitCommit: %s, BuildTime: %s, GoVersion: %s",
		i.Version, i.GitCommit, i.BuildTime, i.GoVersion)
}

// JSON returns the indented JSON form of the version information
func (i Info) JSON() (string, error) {
	out, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal version info")
	}
	return string(out), nil
}
