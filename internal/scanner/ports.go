package scanner

import (
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Backend port resolution is a waterfall: sources are ordered from
// authoritative (declared infrastructure) to inferential, and the first
// match wins so lower-priority detectors cannot contradict it.
var backendPortDetectors = []portDetector{
	{"compose", composeBackendPort},
	{"readme", readmeBackendPort},
	{"env", envBackendPort},
	{"framework-default", frameworkDefaultPort},
}

type portDetector struct {
	name   string
	detect func(snap *snapshot, b *resultBuilder) int
}

func resolveBackendPort(snap *snapshot, b *resultBuilder) {
	for _, d := range backendPortDetectors {
		if port := d.detect(snap, b); port > 0 {
			b.result.BackendPort = port
			return
		}
	}
}

// composeService is one entry of a compose services block.
type composeService struct {
	Ports []composePort `yaml:"ports"`
}

type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

// composePort accepts both the short "8080:80" string syntax and the long
// mapping syntax with a published field.
type composePort struct {
	Published int
}

func (p *composePort) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		p.Published = hostPortFromMapping(value.Value)
		return nil
	case yaml.MappingNode:
		var long struct {
			Published int `yaml:"published"`
		}
		if err := value.Decode(&long); err != nil {
			return err
		}
		p.Published = long.Published
		return nil
	}
	return nil
}

// hostPortFromMapping extracts the host port from a short-syntax mapping:
// "8080", "8080:80" or "127.0.0.1:8080:80".
func hostPortFromMapping(mapping string) int {
	parts := strings.Split(mapping, ":")
	var host string
	switch len(parts) {
	case 1:
		host = parts[0]
	case 2:
		host = parts[0]
	case 3:
		host = parts[1]
	default:
		return 0
	}

	port, err := strconv.Atoi(strings.TrimSpace(host))
	if err != nil {
		return 0
	}
	return port
}

// composeServicePriority orders which service's ports count as the backend.
var composeServicePriority = []string{"backend", "api", "server", "app", "web"}

func composeBackendPort(snap *snapshot, b *resultBuilder) int {
	for _, name := range composeFiles {
		data := snap.read(name)
		if data == nil {
			continue
		}

		var compose composeFile
		if err := yaml.Unmarshal(data, &compose); err != nil {
			snap.log.Debug("scan: malformed compose file", "file", snap.path(name), "err", err)
			continue
		}

		for _, service := range composeServicePriority {
			svc, ok := compose.Services[service]
			if !ok {
				continue
			}
			for _, port := range svc.Ports {
				if port.Published > 0 {
					return port.Published
				}
			}
			// The priority service exists but declares no usable port;
			// do not fall through to a lower-priority service.
			break
		}
	}
	return 0
}

var (
	readmePortLine = regexp.MustCompile(`(?i)\b(?:backend|api)\b.*localhost:(\d{4,5})`)
	readmeDocsLink = regexp.MustCompile(`(?i)localhost:(\d{4,5})/docs`)
	envAPIPortLine = regexp.MustCompile(`(?i)^[A-Z0-9_]*API[A-Z0-9_]*\s*=.*localhost:(\d{4,5})`)
)

func readmeBackendPort(snap *snapshot, b *resultBuilder) int {
	for _, name := range []string{"README.md", "readme.md", "Readme.md"} {
		data := snap.read(name)
		if data == nil {
			continue
		}

		for _, line := range strings.Split(string(data), "\n") {
			if m := readmePortLine.FindStringSubmatch(line); m != nil {
				return mustAtoi(m[1])
			}
			if m := readmeDocsLink.FindStringSubmatch(line); m != nil {
				return mustAtoi(m[1])
			}
		}
	}
	return 0
}

// envFiles are frontend configuration/environment files that may declare an
// API base URL.
var envFiles = [][]string{
	{".env"},
	{".env.local"},
	{".env.development"},
	{"frontend", ".env"},
	{"client", ".env"},
}

func envBackendPort(snap *snapshot, b *resultBuilder) int {
	for _, elem := range envFiles {
		data := snap.read(elem...)
		if data == nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			if m := envAPIPortLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				return mustAtoi(m[1])
			}
		}
	}
	return 0
}

// frameworkDefaultPort emits the conventional default only when a backend
// framework tag was independently detected. Known heuristic: polyglot repos
// with several backend candidates can still get this wrong.
func frameworkDefaultPort(snap *snapshot, b *resultBuilder) int {
	if hasBackendFramework(b) {
		return defaultBackendPort
	}
	return 0
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
