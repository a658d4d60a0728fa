package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"My Project":        "my-project",
		"weird__name!!":     "weird-name",
		"--already-clean--": "already-clean",
		"":                  "default-project",
		"___":               "default-project",
		"CamelCase123":      "camelcase123",
	}
	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in), "input %q", in)
	}
}

func TestDetectFromEnv(t *testing.T) {
	t.Setenv(EnvVar, "Forced Name")
	assert.Equal(t, "forced-name", Detect(t.TempDir()))
}

func TestDetectFromGoMod(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "go.mod"),
		[]byte("module github.com/acme/WidgetFactory\n\ngo 1.22\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "widgetfactory", Detect(dir))
}

func TestDetectFromPackageJSON(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "package.json"),
		[]byte(`{"name": "my-frontend", "version": "1.0.0"}`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "my-frontend", Detect(dir))
}

func TestDetectFallsBackToDirName(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := filepath.Join(t.TempDir(), "Some Workspace")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "some-workspace", Detect(dir))
}
