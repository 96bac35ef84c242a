// Package core orchestrates the repository analysis pipeline and hosts
// the project-type detector, security heuristics and summary generator.
package core

import (
	"sort"
	"strings"

	"github.com/huangsam/repolens/schema"
)

// jsFrameworks maps package.json substrings to framework display names.
// A substring match is sufficient; there is no semantic dependency-name
// validation. This is an accepted heuristic.
var jsFrameworks = []struct{ Needle, Name string }{
	{"react", "React"},
	{"vue", "Vue.js"},
	{"angular", "Angular"},
	{"svelte", "Svelte"},
	{"express", "Express.js"},
	{"nestjs", "NestJS"},
	{"next", "Next.js"},
	{"nuxt", "Nuxt.js"},
	{"gatsby", "Gatsby"},
	{"electron", "Electron"},
}

var jsBuildTools = []struct{ Needle, Name string }{
	{"webpack", "Webpack"},
	{"vite", "Vite"},
	{"rollup", "Rollup"},
	{"parcel", "Parcel"},
	{"esbuild", "ESBuild"},
	{"snowpack", "Snowpack"},
}

var jsTestingTools = []struct{ Needle, Name string }{
	{"jest", "Jest"},
	{"mocha", "Mocha"},
	{"chai", "Chai"},
	{"cypress", "Cypress"},
	{"playwright", "Playwright"},
	{"puppeteer", "Puppeteer"},
	{"jasmine", "Jasmine"},
}

// DetectProjectInfo combines manifest signals and structural markers
// into project-type and technology tags. Tags are additive and deduped;
// nothing here is mutually exclusive.
func DetectProjectInfo(configs []schema.ConfigFile, tree *schema.DirectoryRecord) schema.ProjectInfo {
	info := schema.ProjectInfo{}

	for _, config := range configs {
		switch config.Ecosystem {
		case schema.NPMEcosystem:
			appendUnique(&info.PackageManagers, "npm")
			detectBySubstring(config.Content, jsFrameworks, &info.Frameworks)
			detectBySubstring(config.Content, jsBuildTools, &info.BuildTools)
			detectBySubstring(config.Content, jsTestingTools, &info.TestingFrameworks)
		case schema.CargoEcosystem:
			appendUnique(&info.PackageManagers, "cargo")
			appendUnique(&info.BuildTools, "cargo")
			appendUnique(&info.ProjectTypes, "rust")
		case schema.PipEcosystem:
			appendUnique(&info.PackageManagers, "pip")
			appendUnique(&info.ProjectTypes, "python")
		case "maven":
			appendUnique(&info.PackageManagers, "maven")
			appendUnique(&info.BuildTools, "maven")
			appendUnique(&info.ProjectTypes, "java")
		case "gradle":
			appendUnique(&info.PackageManagers, "gradle")
			appendUnique(&info.BuildTools, "gradle")
			appendUnique(&info.ProjectTypes, "java")
		case "docker":
			appendUnique(&info.DeploymentConfigs, "docker")
		case "docker-compose":
			appendUnique(&info.DeploymentConfigs, "docker-compose")
		case "kubernetes":
			appendUnique(&info.DeploymentConfigs, "kubernetes")
		case "terraform":
			appendUnique(&info.DeploymentConfigs, "terraform")
		case "github-actions":
			appendUnique(&info.CICDTools, "github-actions")
		case "travis":
			appendUnique(&info.CICDTools, "travis-ci")
		}
	}

	info.PrimaryLanguage = detectPrimaryLanguage(tree)
	detectStructuralTags(tree, &info.ProjectTypes)

	return info
}

// detectBySubstring appends the display name for every needle found in
// the raw manifest content.
func detectBySubstring(content string, catalog []struct{ Needle, Name string }, out *[]string) {
	for _, entry := range catalog {
		if strings.Contains(content, entry.Needle) {
			appendUnique(out, entry.Name)
		}
	}
}

// detectPrimaryLanguage returns the language with the highest file count
// across the whole tree. Ties break alphabetically so results stay
// deterministic across runs.
func detectPrimaryLanguage(tree *schema.DirectoryRecord) string {
	counts := make(map[string]int)
	countLanguages(tree, counts)

	names := make([]string, 0, len(counts))
	for lang := range counts {
		names = append(names, lang)
	}
	sort.Strings(names)

	best := ""
	bestCount := 0
	for _, lang := range names {
		if counts[lang] > bestCount {
			best = lang
			bestCount = counts[lang]
		}
	}
	return best
}

func countLanguages(dir *schema.DirectoryRecord, counts map[string]int) {
	for i := range dir.Files {
		if lang := dir.Files[i].Language; lang != "" {
			counts[lang]++
		}
	}
	for i := range dir.Subdirectories {
		countLanguages(&dir.Subdirectories[i], counts)
	}
}

// detectStructuralTags derives project-type tags from marker directories
// at the root level and marker filenames anywhere in the tree.
func detectStructuralTags(tree *schema.DirectoryRecord, types *[]string) {
	hasMainRS := false
	hasLibRS := false
	hasIndexHTML := false
	hasServerFile := false
	walkFileNames(tree, func(name string) {
		switch name {
		case "main.rs":
			hasMainRS = true
		case "lib.rs":
			hasLibRS = true
		case "index.html":
			hasIndexHTML = true
		}
		if strings.Contains(name, "server") || strings.Contains(name, "app") {
			hasServerFile = true
		}
	})

	if hasMainRS {
		appendUnique(types, "cli-application")
	}
	if hasLibRS {
		appendUnique(types, "library")
	}
	if hasIndexHTML {
		appendUnique(types, "web-application")
	}
	if hasServerFile {
		appendUnique(types, "backend-service")
	}
	if hasSubdirectory(tree, "tests") || hasSubdirectory(tree, "test") {
		appendUnique(types, "tested-project")
	}
	if hasSubdirectory(tree, "docs") || hasSubdirectory(tree, "documentation") {
		appendUnique(types, "documented-project")
	}
	if hasSubdirectory(tree, "examples") {
		appendUnique(types, "example-driven")
	}
}

func walkFileNames(dir *schema.DirectoryRecord, visit func(name string)) {
	for i := range dir.Files {
		visit(dir.Files[i].Name)
	}
	for i := range dir.Subdirectories {
		walkFileNames(&dir.Subdirectories[i], visit)
	}
}

func hasSubdirectory(dir *schema.DirectoryRecord, name string) bool {
	for i := range dir.Subdirectories {
		if dir.Subdirectories[i].Name == name {
			return true
		}
	}
	return false
}

func appendUnique(slice *[]string, value string) {
	for _, existing := range *slice {
		if existing == value {
			return
		}
	}
	*slice = append(*slice, value)
}
