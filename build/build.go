// Package build reports the version of the running binary. Release builds
// inject a JSON document through -ldflags into Injected; otherwise the module
// information recorded by the Go toolchain is used.
package build

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"strings"
)

// Injected is set at link time:
//
//	go build -ldflags "-X github.com/phazelift/batch-validator/build.Injected=$(cat build.json)"
var Injected string //nolint:gochecknoglobals

// Info describes a build.
type Info struct {
	Version      string            `json:"version"`
	GitCommit    string            `json:"git_commit"` //nolint:tagliatelle
	BuildTime    string            `json:"build_time"` //nolint:tagliatelle
	GoVersion    string            `json:"go_version"` //nolint:tagliatelle
	Dependencies map[string]string `json:"dependencies"`
}

// Parse reads an injected build document.
// Returns (nil, false) if the input is empty, "{}", or fails to parse.
func Parse(js string) (*Info, bool) {
	if len(js) == 0 || js == "{}" {
		return nil, false
	}

	var info Info

	if err := json.Unmarshal([]byte(js), &info); err != nil {
		slog.Warn("Failed to parse build info from JSON",
			"data", js,
			"error", err)

		return nil, false
	}

	return &info, true
}

// Current returns the build information of the running binary. Fields of
// the injected document win over the toolchain's.
func Current() Info {
	info := fromRuntime(debug.ReadBuildInfo)

	if injected, ok := Parse(Injected); ok {
		info = merge(info, *injected)
	}

	return info
}

func fromRuntime(read func() (*debug.BuildInfo, bool)) Info {
	info := Info{Version: "(devel)"}

	bi, ok := read()
	if !ok {
		return info
	}

	info.GoVersion = bi.GoVersion

	if bi.Main.Version != "" {
		info.Version = bi.Main.Version
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.GitCommit = setting.Value
		case "vcs.time":
			info.BuildTime = setting.Value
		}
	}

	if len(bi.Deps) > 0 {
		info.Dependencies = make(map[string]string, len(bi.Deps))

		for _, dep := range bi.Deps {
			info.Dependencies[dep.Path] = dep.Version
		}
	}

	return info
}

func merge(base, over Info) Info {
	if over.Version != "" {
		base.Version = over.Version
	}

	if over.GitCommit != "" {
		base.GitCommit = over.GitCommit
	}

	if over.BuildTime != "" {
		base.BuildTime = over.BuildTime
	}

	if over.GoVersion != "" {
		base.GoVersion = over.GoVersion
	}

	if len(over.Dependencies) > 0 {
		base.Dependencies = over.Dependencies
	}

	return base
}

// String renders the version line printed by -version, followed by one line
// per dependency in sorted order.
func (i Info) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s", i.Version)

	if i.GitCommit != "" {
		fmt.Fprintf(&sb, " (%s", i.GitCommit)

		if i.BuildTime != "" {
			fmt.Fprintf(&sb, ", %s", i.BuildTime)
		}

		sb.WriteString(")")
	}

	if i.GoVersion != "" {
		fmt.Fprintf(&sb, " %s", i.GoVersion)
	}

	deps := make([]string, 0, len(i.Dependencies))
	for path := range i.Dependencies {
		deps = append(deps, path)
	}

	slices.Sort(deps)

	for _, path := range deps {
		fmt.Fprintf(&sb, "\n  %s %s", path, i.Dependencies[path])
	}

	return sb.String()
}
