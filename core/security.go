package core

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/huangsam/repolens/schema"
)

// securityPolicyNames are matched case-insensitively against file names
// anywhere in the tree.
var securityPolicyNames = map[string]struct{}{
	"security.md":  {},
	"security.txt": {},
	".security":    {},
}

// ScanSecurity runs the lexical security heuristics: policy file
// presence, Dependabot and CodeQL mentions in workflow files, and
// unpinned dependency versions from the parsed manifests.
func ScanSecurity(root string, tree *schema.DirectoryRecord, configs []schema.ConfigFile) schema.SecurityInfo {
	info := schema.SecurityInfo{
		OutdatedDependencies: []string{},
	}

	walkFileNames(tree, func(name string) {
		if _, ok := securityPolicyNames[strings.ToLower(name)]; ok {
			info.HasSecurityPolicy = true
		}
	})

	scanWorkflows(root, &info)

	for _, config := range configs {
		for name, version := range config.Dependencies {
			if strings.Contains(version, "*") || strings.Contains(version, "latest") {
				info.OutdatedDependencies = append(info.OutdatedDependencies, name+": "+version)
			}
		}
	}
	sort.Strings(info.OutdatedDependencies)

	return info
}

// scanWorkflows inspects .github/workflows file names for automation
// tooling. A missing directory simply means no workflows, not an error.
func scanWorkflows(root string, info *schema.SecurityInfo) {
	workflowDir := filepath.Join(root, ".github", "workflows")
	entries, err := os.ReadDir(workflowDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.Contains(name, "dependabot") {
			info.HasDependabot = true
		}
		if strings.Contains(name, "codeql") {
			info.HasCodeQL = true
		}
	}
}
