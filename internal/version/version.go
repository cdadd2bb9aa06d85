// Package version reports build metadata set with -ldflags or recorded by
// the Go toolchain.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

var (
	version   = ""
	revision  = ""
	buildTime = ""
)

// Version renders a human-readable summary, one fact per line.
func Version() string {
	v, rev, bt := version, revision, buildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		v, rev, bt = fromBuildInfo(info, v, rev, bt)
	}
	return render(v, rev, bt)
}

// fromBuildInfo fills in whatever -ldflags left empty.
func fromBuildInfo(info *debug.BuildInfo, v, rev, bt string) (string, string, string) {
	if v == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if rev == "" {
				rev = s.Value
			}
		case "vcs.time":
			if bt == "" {
				bt = s.Value
			}
		}
	}
	return v, rev, bt
}

func render(v, rev, bt string) string {
	var b strings.Builder

	b.WriteString("ytpublish")
	if v != "" {
		b.WriteByte(' ')
		b.WriteString(v)
	}
	b.WriteByte('\n')

	if bt != "" {
		localBuildTime := bt
		if t, err := time.Parse(time.RFC3339, bt); err == nil {
			localBuildTime = t.Local().Format("2006-01-02 15:04:05 MST")
		}
		b.WriteString(fmt.Sprintf("- Built with %s at %s\n", runtime.Version(), localBuildTime))
	} else {
		b.WriteString(fmt.Sprintf("- Built with %s\n", runtime.Version()))
	}

	if rev != "" {
		b.WriteString(fmt.Sprintf("- Revision: %s\n", rev))
	}

	return b.String()
}
