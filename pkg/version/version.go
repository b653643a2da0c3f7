package version

import (
	"fmt"
	"runtime"
	"strings"
)

// These variables are set via ldflags during build.
var (
	Version   = "dev"
	Commit    = "none"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Summary returns the short form shown in the greeting banner footer.
func Summary() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	if Commit != "" && Commit != "none" {
		short := Commit
		if len(short) > 7 {
			short = short[:7]
		}
		return fmt.Sprintf("%s (%s)", v, short)
	}
	return v
}

// Info returns the multi-line block printed by `chatshell version`.
func Info() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "chatshell version %s\n", Summary())
	fmt.Fprintf(&sb, "  commit: %s\n", Commit)
	fmt.Fprintf(&sb, "  built: %s\n", Date)
	fmt.Fprintf(&sb, "  go: %s\n", GoVersion)
	fmt.Fprintf(&sb, "  platform: %s\n", Platform())
	return sb.String()
}
