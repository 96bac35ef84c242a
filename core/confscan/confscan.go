// Package confscan locates known manifest and documentation files under
// the repository root and extracts structured data per ecosystem.
package confscan

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/huangsam/repolens/internal/contract"
	"github.com/huangsam/repolens/schema"
)

// configPattern pairs a manifest filename pattern with its ecosystem tag.
type configPattern struct {
	Pattern   string
	Ecosystem schema.Ecosystem
}

// configPatterns is the fixed manifest catalog. Matching is by exact
// filename or filename-prefix against the pattern.
var configPatterns = []configPattern{
	{"package.json", schema.NPMEcosystem},
	{"Cargo.toml", schema.CargoEcosystem},
	{"requirements.txt", schema.PipEcosystem},
	{"Pipfile", "pipenv"},
	{"pyproject.toml", schema.PythonEcosystem},
	{"pom.xml", "maven"},
	{"build.gradle", "gradle"},
	{"composer.json", "composer"},
	{"Gemfile", "bundler"},
	{"go.mod", "go"},
	{"pubspec.yaml", "dart"},
	{"project.clj", "leiningen"},
	{"mix.exs", "mix"},
	{"rebar.config", "rebar"},
	{"stack.yaml", "stack"},
	{"cabal.project", "cabal"},
	{"dune-project", "dune"},
	{".travis.yml", "travis"},
	{"Dockerfile", "docker"},
	{"docker-compose.yml", "docker-compose"},
	{"kubernetes.yaml", "kubernetes"},
	{"terraform.tf", "terraform"},
	{"ansible.yml", "ansible"},
	{".eslintrc", "eslint"},
	{".prettierrc", "prettier"},
	{"tsconfig.json", "typescript"},
	{"webpack.config.js", "webpack"},
	{"vite.config.js", "vite"},
	{"rollup.config.js", "rollup"},
	{"jest.config.js", "jest"},
	{"cypress.json", "cypress"},
	{".env", "environment"},
	{".gitignore", "git"},
	{".gitattributes", "git"},
}

// ScanConfigFiles searches up to ConfigScanDepth directory levels for
// manifest files and extracts dependencies and scripts where the
// ecosystem supports it. A file that fails to read or parse yields no
// structured data for that file only; the scan never aborts on one item.
func ScanConfigFiles(root string) []schema.ConfigFile {
	candidates := listFilesBounded(root, schema.ConfigScanDepth)

	var configs []schema.ConfigFile
	for _, cp := range configPatterns {
		for _, rel := range candidates {
			name := filepath.Base(rel)
			if name != cp.Pattern && !strings.HasPrefix(name, cp.Pattern) {
				continue
			}

			content, err := os.ReadFile(filepath.Join(root, rel))
			if err != nil {
				contract.LogWarn(fmt.Sprintf("Failed to read config file %s", rel), err)
				continue
			}

			deps, scripts := parseConfigContent(string(content), cp.Ecosystem)
			configs = append(configs, schema.ConfigFile{
				Path:         filepath.ToSlash(rel),
				Ecosystem:    cp.Ecosystem,
				Content:      string(content),
				Dependencies: deps,
				Scripts:      scripts,
			})
		}
	}
	return configs
}

// listFilesBounded returns relative paths of regular files at most
// maxDepth directory levels below root. Unreadable subtrees are skipped.
func listFilesBounded(root string, maxDepth int) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		depth := strings.Count(filepath.ToSlash(rel), "/")
		if d.IsDir() {
			if depth >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, rel)
		return nil
	})
	return files
}

// parseConfigContent dispatches on the ecosystem tag. The set of
// structured extractors is closed; every other tag retains raw content
// only. A parse failure yields nil maps, never an error.
func parseConfigContent(content string, eco schema.Ecosystem) (map[string]string, map[string]string) {
	switch eco {
	case schema.NPMEcosystem:
		return parsePackageJSON(content)
	case schema.CargoEcosystem:
		return parseCargoTOML(content), nil
	case schema.PipEcosystem:
		return parseRequirementsTxt(content), nil
	case schema.PythonEcosystem:
		return parsePyprojectTOML(content), nil
	default:
		return nil, nil
	}
}

// parsePackageJSON extracts dependencies, devDependencies (suffixed with
// " (dev)") and named scripts from an npm manifest.
func parsePackageJSON(content string) (map[string]string, map[string]string) {
	var manifest struct {
		Dependencies    map[string]any `json:"dependencies"`
		DevDependencies map[string]any `json:"devDependencies"`
		Scripts         map[string]any `json:"scripts"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, nil
	}

	deps := make(map[string]string)
	for name, version := range manifest.Dependencies {
		if v, ok := version.(string); ok {
			deps[name] = v
		}
	}
	for name, version := range manifest.DevDependencies {
		if v, ok := version.(string); ok {
			deps[name+" (dev)"] = v
		}
	}

	scripts := make(map[string]string)
	for name, cmd := range manifest.Scripts {
		if v, ok := cmd.(string); ok {
			scripts[name] = v
		}
	}

	return emptyToNil(deps), emptyToNil(scripts)
}

// parseCargoTOML extracts the [dependencies] table. A dependency may be
// a bare version string or a table with a "version" key; a table without
// one defaults to the wildcard "*".
func parseCargoTOML(content string) map[string]string {
	var manifest struct {
		Dependencies map[string]any `toml:"dependencies"`
	}
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil
	}

	deps := make(map[string]string)
	for name, dep := range manifest.Dependencies {
		switch v := dep.(type) {
		case string:
			deps[name] = v
		case map[string]any:
			if version, ok := v["version"].(string); ok {
				deps[name] = version
			} else {
				deps[name] = "*"
			}
		default:
			deps[name] = "*"
		}
	}
	return emptyToNil(deps)
}

// parseRequirementsTxt extracts pinned requirements line by line.
// Unpinned entries get the wildcard "*".
func parseRequirementsTxt(content string) map[string]string {
	deps := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, version := splitRequirement(line)
		deps[name] = version
	}
	return emptyToNil(deps)
}

// parsePyprojectTOML extracts the project.dependencies array of strings,
// using the same ==/>= splitting rule as requirements.txt.
func parsePyprojectTOML(content string) map[string]string {
	var manifest struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal([]byte(content), &manifest); err != nil {
		return nil
	}

	deps := make(map[string]string)
	for _, dep := range manifest.Project.Dependencies {
		name, version := splitRequirement(dep)
		deps[name] = version
	}
	return emptyToNil(deps)
}

// splitRequirement splits a requirement spec on "==" or ">=". Specs with
// neither operator are treated as unpinned.
func splitRequirement(spec string) (string, string) {
	if name, version, found := strings.Cut(spec, "=="); found {
		return strings.TrimSpace(name), strings.TrimSpace(version)
	}
	if name, version, found := strings.Cut(spec, ">="); found {
		return strings.TrimSpace(name), ">=" + strings.TrimSpace(version)
	}
	return strings.TrimSpace(spec), "*"
}

func emptyToNil(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return m
}
