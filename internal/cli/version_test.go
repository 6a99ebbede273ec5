package cli

import (
	"runtime/debug"
	"testing"

	"github.com/aidanlsb/onenotestats/internal/buildinfo"
)

func TestCurrentVersionInfo(t *testing.T) {
	origRead := readBuildInfo
	origVersion, origCommit := buildinfo.Version, buildinfo.Commit
	t.Cleanup(func() {
		readBuildInfo = origRead
		buildinfo.Version, buildinfo.Commit = origVersion, origCommit
	})

	t.Run("module version wins", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Main:     debug.Module{Version: "v1.2.3"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			}, true
		}
		info := currentVersionInfo()
		if info.Version != "v1.2.3" || info.Commit != "abc123" {
			t.Errorf("unexpected info %+v", info)
		}
	})

	t.Run("ldflags fallback", func(t *testing.T) {
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
		}
		buildinfo.Version, buildinfo.Commit = "v0.9.0", "def456"
		info := currentVersionInfo()
		if info.Version != "v0.9.0" || info.Commit != "def456" {
			t.Errorf("unexpected info %+v", info)
		}
	})
}
