package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/onenotestats/internal/buildinfo"
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show onenotestats version and build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentVersionInfo()
			if isJSONOutput() {
				outputSuccess(info, nil)
				return nil
			}
			printLine(fmt.Sprintf("onenotestats %s", info.Version))
			if info.Commit != "" {
				printLine(fmt.Sprintf("commit: %s", info.Commit))
			}
			printLine(fmt.Sprintf("go: %s", info.GoVersion))
			printLine(fmt.Sprintf("platform: %s", info.Platform))
			return nil
		},
	}
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:   "devel",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				info.Commit = s.Value
			}
		}
	}

	// Release builds inject these via ldflags.
	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = buildinfo.Version
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	return info
}
