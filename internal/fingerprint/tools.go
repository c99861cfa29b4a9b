package fingerprint

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/hostdeck/hostdeck/internal/config"
	"github.com/hostdeck/hostdeck/internal/probe"
)

// versionPattern extracts the first semantic-version-like substring from a
// tool's version banner, whatever the surrounding prose looks like.
var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// toolProbe describes one version lookup.
type toolProbe struct {
	name   string
	binary string
	args   []string
}

// fixedTools are the version probes independent of the tracked-service
// list: the operator tooling an admin expects on a managed web host.
var fixedTools = []toolProbe{
	{name: "wp-cli", binary: "wp", args: []string{"--version", "--allow-root"}},
	{name: "git", binary: "git", args: []string{"--version"}},
	{name: "node", binary: "node", args: []string{"--version"}},
	{name: "composer", binary: "composer", args: []string{"--version", "--no-ansi"}},
}

// phpPoolDir is where Debian-family systems keep per-version FPM pools.
const phpPoolDir = "/etc/php"

// detectTools probes every tracked tool and returns name -> version for the
// ones that answered. A tool that is installed but version-mute still gets
// an entry, with an empty version.
func detectTools(r *probe.Runner, services []config.ServiceConfig) map[string]string {
	tools := make(map[string]string)

	probes := make([]toolProbe, 0, len(fixedTools)+len(services))
	probes = append(probes, fixedTools...)
	for _, svc := range services {
		if len(svc.Binaries) == 0 || len(svc.VersionArgs) == 0 {
			continue
		}
		probes = append(probes, toolProbe{name: svc.Key, binary: svc.Binaries[0], args: svc.VersionArgs})
	}

	for _, p := range probes {
		if !r.Installed(p.binary) {
			continue
		}
		out, ok := r.RunCombined(p.binary, p.args...)
		if !ok {
			tools[p.name] = ""
			continue
		}
		tools[p.name] = versionPattern.FindString(out)
	}

	// PHP-FPM ships one daemon per PHP version; the pool-config directories
	// enumerate what actually coexists on disk, which a single binary's
	// version flag cannot.
	if versions := phpPoolVersions(phpPoolDir); len(versions) > 0 {
		tools["php-fpm"] = strings.Join(versions, ", ")
	}

	return tools
}

// phpPoolVersions lists installed PHP versions by their FPM pool directories.
func phpPoolVersions(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var versions []string
	for _, e := range entries {
		if !e.IsDir() || !versionPattern.MatchString(e.Name()) {
			continue
		}
		if _, err := os.Stat(dir + "/" + e.Name() + "/fpm"); err == nil {
			versions = append(versions, e.Name())
		}
	}
	sort.Strings(versions)
	return versions
}
