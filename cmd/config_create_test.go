package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goremu/config"
)

func TestResolveConfigEditPath(t *testing.T) {
	t.Parallel()

	if got, err := resolveConfigEditPath("./custom.yaml", "/tmp/used.yaml"); err != nil || got != "./custom.yaml" {
		t.Fatalf("flag must win: %q, %v", got, err)
	}
	if got, err := resolveConfigEditPath("", "/tmp/used.yaml"); err != nil || got != "/tmp/used.yaml" {
		t.Fatalf("used file second: %q, %v", got, err)
	}

	got, err := resolveConfigEditPath("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(got, ".goremu.yaml") {
		t.Fatalf("default path = %q", got)
	}
}

func TestEnsureConfigFileWithTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", ".goremu.yaml")

	created, err := ensureConfigFileWithTemplate(path)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !created {
		t.Fatal("expected file to be created")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != config.ExampleYAML() {
		t.Fatal("created file must contain the example template")
	}
	if _, err := config.ValidateYAMLContent(content); err != nil {
		t.Fatalf("template must validate: %v", err)
	}

	created, err = ensureConfigFileWithTemplate(path)
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if created {
		t.Fatal("existing file must not be rewritten")
	}
}

func TestResolveEditorValue(t *testing.T) {
	t.Parallel()

	if got := resolveEditorValue("code --wait", "nano"); got != "code --wait" {
		t.Fatalf("visual must win: %q", got)
	}
	if got := resolveEditorValue("", "nano"); got != "nano" {
		t.Fatalf("editor second: %q", got)
	}
	if got := resolveEditorValue(" ", ""); got != "vi" {
		t.Fatalf("vi fallback: %q", got)
	}
}
