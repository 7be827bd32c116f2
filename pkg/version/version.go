// Package version holds build metadata, set through -ldflags -X at link time.
package version

import (
	"runtime/debug"
	"sync"
)

const unknown = "unknown"

// Build metadata. Overridden by the release build.
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

var initOnce sync.Once

// Init fills metadata the linker did not set from the embedded build info.
func Init() {
	initOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}

		if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}

		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if Commit == unknown {
					Commit = setting.Value
				}
			case "vcs.time":
				if Date == unknown {
					Date = setting.Value
				}
			}
		}
	})
}
