package scanner

import (
	"encoding/json"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
)

// tagRule is a pure detection rule: directory snapshot in, tags out.
// Rules share no state and their order only determines tag insertion order.
type tagRule struct {
	name  string
	apply func(snap *snapshot, b *resultBuilder)
}

var tagRules = []tagRule{
	{"node", detectNode},
	{"python", detectPython},
	{"rust", detectRust},
	{"docker", detectDocker},
	{"java", detectJava},
	{"go", detectGo},
	{"ruby", detectRuby},
	{"git", detectGit},
}

// backendFrameworks are tags that identify a server-side framework. They
// gate the fallback backend port and the synthetic API doc links.
var backendFrameworks = []string{
	"fastapi", "django", "flask",
	"express", "nestjs",
	"actix", "axum",
	"gin", "echo", "fiber",
	"spring", "rails",
}

// apiDocFrameworks are frameworks that serve interactive API docs under
// conventional /docs style routes.
var apiDocFrameworks = []string{"fastapi", "django", "flask", "express", "nestjs"}

// packageJSON is the subset of a Node manifest the scanner cares about.
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

func readPackageJSON(snap *snapshot, elem ...string) (packageJSON, bool) {
	data := snap.read(append(elem, "package.json")...)
	if data == nil {
		return packageJSON{}, false
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		snap.log.Debug("scan: malformed package.json", "dir", snap.path(elem...), "err", err)
		return packageJSON{}, false
	}
	return pkg, true
}

func (p packageJSON) hasDep(name string) bool {
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.DevDependencies[name]
	return ok
}

// nodeDepTags maps Node dependencies to emitted tags, in emission order.
var nodeDepTags = []struct {
	dep string
	tag string
}{
	{"typescript", "typescript"},
	{"react", "react"},
	{"next", "next.js"},
	{"vue", "vue"},
	{"express", "express"},
	{"@nestjs/core", "nestjs"},
	{"tailwindcss", "tailwind"},
}

func detectNode(snap *snapshot, b *resultBuilder) {
	tagFromPackage := func(pkg packageJSON) {
		b.addTag("node")
		b.addTag("javascript")
		for _, m := range nodeDepTags {
			if pkg.hasDep(m.dep) {
				b.addTag(m.tag)
			}
		}
	}

	if pkg, ok := readPackageJSON(snap); ok {
		tagFromPackage(pkg)
		if snap.exists("tsconfig.json") {
			b.addTag("typescript")
		}
	}

	for _, dir := range frontendSubdirs {
		if pkg, ok := readPackageJSON(snap, dir); ok {
			tagFromPackage(pkg)
		}
	}
}

// pyProject is the subset of pyproject.toml holding dependency lists, both
// PEP 621 and poetry style.
type pyProject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]interface{} `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

var pythonFrameworkTags = []struct {
	needle string
	tag    string
}{
	{"fastapi", "fastapi"},
	{"django", "django"},
	{"flask", "flask"},
}

func detectPython(snap *snapshot, b *resultBuilder) {
	indicators := []string{"requirements.txt", "pyproject.toml", "Pipfile", "setup.py"}

	for _, manifest := range indicators {
		if !snap.exists(manifest) {
			continue
		}
		b.addTag("python")
		tagPythonFrameworks(snap, b, manifest)
		break
	}

	// Backend subdir variant common in fullstack repos.
	if data := snap.read("backend", "requirements.txt"); data != nil {
		b.addTag("python")
		tagFromPythonText(b, string(data))
	}
}

func tagPythonFrameworks(snap *snapshot, b *resultBuilder, manifest string) {
	data := snap.read(manifest)
	if data == nil {
		return
	}

	if manifest == "pyproject.toml" {
		var project pyProject
		if err := toml.Unmarshal(data, &project); err == nil {
			deps := append([]string(nil), project.Project.Dependencies...)
			for name := range project.Tool.Poetry.Dependencies {
				deps = append(deps, name)
			}
			tagFromPythonText(b, strings.Join(deps, "\n"))
			return
		}
		snap.log.Debug("scan: malformed pyproject.toml, falling back to text match", "dir", snap.root)
	}

	tagFromPythonText(b, string(data))
}

func tagFromPythonText(b *resultBuilder, content string) {
	lowered := strings.ToLower(content)
	for _, m := range pythonFrameworkTags {
		if strings.Contains(lowered, m.needle) {
			b.addTag(m.tag)
		}
	}
}

// cargoManifest is the dependency table of a Cargo.toml.
type cargoManifest struct {
	Dependencies map[string]interface{} `toml:"dependencies"`
}

func detectRust(snap *snapshot, b *resultBuilder) {
	data := snap.read("Cargo.toml")
	if data == nil {
		return
	}
	b.addTag("rust")

	var manifest cargoManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		snap.log.Debug("scan: malformed Cargo.toml", "dir", snap.root, "err", err)
		return
	}

	for name := range manifest.Dependencies {
		switch {
		case strings.HasPrefix(name, "actix"):
			b.addTag("actix")
		case name == "tokio":
			b.addTag("tokio")
		case name == "axum":
			b.addTag("axum")
		}
	}
}

// composeFiles are the container descriptor names checked, in order.
var composeFiles = []string{"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"}

func detectDocker(snap *snapshot, b *resultBuilder) {
	for _, name := range composeFiles {
		if snap.exists(name) {
			b.addTag("docker")
			return
		}
	}
	if snap.exists("Dockerfile") {
		b.addTag("docker")
	}
}

func detectJava(snap *snapshot, b *resultBuilder) {
	hasPom := snap.exists("pom.xml")
	hasGradle := snap.exists("build.gradle") || snap.exists("build.gradle.kts")
	if !hasPom && !hasGradle {
		return
	}
	b.addTag("java")

	var build []byte
	if hasPom {
		build = snap.read("pom.xml")
	} else if snap.exists("build.gradle") {
		build = snap.read("build.gradle")
	} else {
		build = snap.read("build.gradle.kts")
	}
	if strings.Contains(string(build), "spring-boot") {
		b.addTag("spring")
	}
}

// goFrameworkModules maps Go module paths to tags.
var goFrameworkModules = map[string]string{
	"github.com/gin-gonic/gin": "gin",
	"github.com/labstack/echo": "echo",
	"github.com/gofiber/fiber": "fiber",
}

func detectGo(snap *snapshot, b *resultBuilder) {
	data := snap.read("go.mod")
	if data == nil {
		return
	}
	b.addTag("go")

	mod, err := modfile.Parse(snap.path("go.mod"), data, nil)
	if err != nil {
		snap.log.Debug("scan: malformed go.mod", "dir", snap.root, "err", err)
		return
	}

	for _, req := range mod.Require {
		for module, tag := range goFrameworkModules {
			if req.Mod.Path == module || strings.HasPrefix(req.Mod.Path, module+"/") {
				b.addTag(tag)
			}
		}
	}
}

func detectRuby(snap *snapshot, b *resultBuilder) {
	data := snap.read("Gemfile")
	if data == nil {
		if !snap.exists("Gemfile") {
			return
		}
		b.addTag("ruby")
		return
	}
	b.addTag("ruby")
	if strings.Contains(string(data), "rails") {
		b.addTag("rails")
	}
}

func detectGit(snap *snapshot, b *resultBuilder) {
	if snap.exists(".git") {
		b.addTag("git")
	}
}

// hasBackendFramework reports whether any backend framework tag was emitted.
func hasBackendFramework(b *resultBuilder) bool {
	for _, tag := range backendFrameworks {
		if b.hasTag(tag) {
			return true
		}
	}
	return false
}

// hasAPIDocFramework reports whether a framework with conventional API doc
// routes was detected.
func hasAPIDocFramework(b *resultBuilder) bool {
	for _, tag := range apiDocFrameworks {
		if b.hasTag(tag) {
			return true
		}
	}
	return false
}
