// Package project detects a default project id from the workspace.
package project

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// EnvVar overrides workspace detection when set.
const EnvVar = "CONTEXTMEM_PROJECT"

// Detect returns the project id for a workspace directory: the env
// override if set, else a name read from workspace marker files
// (go.mod module path, package.json name), else the directory name.
// The result is always sanitized.
func Detect(dir string) string {
	if env := os.Getenv(EnvVar); env != "" {
		return Sanitize(env)
	}
	if dir == "" {
		dir, _ = os.Getwd()
	}

	if name := goModuleName(filepath.Join(dir, "go.mod")); name != "" {
		return Sanitize(name)
	}
	if name := packageJSONName(filepath.Join(dir, "package.json")); name != "" {
		return Sanitize(name)
	}
	return Sanitize(filepath.Base(dir))
}

func goModuleName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "module "); ok {
			// Last path element is the project name.
			return filepath.Base(strings.TrimSpace(rest))
		}
	}
	return ""
}

func packageJSONName(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &pkg); err != nil {
		return ""
	}
	return pkg.Name
}

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Sanitize normalizes a raw name into a project id: lowercase,
// hyphen-separated, never empty.
func Sanitize(name string) string {
	s := invalidChars.ReplaceAllString(strings.ToLower(name), "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "default-project"
	}
	return s
}
