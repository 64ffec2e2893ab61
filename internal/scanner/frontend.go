package scanner

import (
	"fmt"
	"regexp"
)

// Frontend detection mirrors the backend waterfall but targets the
// dev-server port. It is fully independent of the backend port: a project
// may resolve both, either, or neither.
var frontendPortDetectors = []portDetector{
	{"vite-config", viteConfigPort},
	{"package-scripts", packageScriptsPort},
	{"framework-default", frameworkDefaultFrontendPort},
}

func resolveFrontend(snap *snapshot, b *resultBuilder) {
	for _, d := range frontendPortDetectors {
		if port := d.detect(snap, b); port > 0 {
			b.result.FrontendPort = port
			b.result.FrontendURL = fmt.Sprintf("http://localhost:%d", port)
			return
		}
	}
}

var viteConfigPortRe = regexp.MustCompile(`port:\s*(\d{4,5})`)

func viteConfigPort(snap *snapshot, b *resultBuilder) int {
	locations := [][]string{{}}
	for _, dir := range frontendSubdirs {
		locations = append(locations, []string{dir})
	}

	for _, dir := range locations {
		for _, cfg := range []string{"vite.config.ts", "vite.config.js"} {
			data := snap.read(append(dir, cfg)...)
			if data == nil {
				continue
			}
			if m := viteConfigPortRe.FindSubmatch(data); m != nil {
				return mustAtoi(string(m[1]))
			}
		}
	}
	return 0
}

var (
	scriptPortFlag = regexp.MustCompile(`(?:-p|--port)[=\s]+(\d{4,5})`)
	scriptPortEnv  = regexp.MustCompile(`PORT=(\d{4,5})`)
)

func packageScriptsPort(snap *snapshot, b *resultBuilder) int {
	locations := [][]string{{}, {"frontend"}, {"client"}}

	for _, dir := range locations {
		pkg, ok := readPackageJSON(snap, dir...)
		if !ok {
			continue
		}
		for _, script := range pkg.Scripts {
			if m := scriptPortFlag.FindStringSubmatch(script); m != nil {
				return mustAtoi(m[1])
			}
			if m := scriptPortEnv.FindStringSubmatch(script); m != nil {
				return mustAtoi(m[1])
			}
		}
	}
	return 0
}

// frameworkDefaultFrontendPort falls back to well-known dev-server defaults
// for detected frontend frameworks.
func frameworkDefaultFrontendPort(snap *snapshot, b *resultBuilder) int {
	if !b.hasTag("node") && !b.hasTag("javascript") {
		return 0
	}
	switch {
	case b.hasTag("next.js"), b.hasTag("react"):
		return 3000
	case b.hasTag("vue"):
		return 5173
	}
	return 0
}
