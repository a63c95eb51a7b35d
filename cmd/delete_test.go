package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfirmDeletePrompt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "confirmed", input: "Y\n", want: true},
		{name: "lowercase rejected", input: "y\n", want: false},
		{name: "empty rejected", input: "\n", want: false},
		{name: "confirmed without newline", input: "Y", want: true},
		{name: "other text rejected", input: "yes\n", want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var prompt bytes.Buffer
			got, err := confirmDeletePrompt(strings.NewReader(tc.input), &prompt, "database file ./goremu.db")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("confirmed = %v, want %v", got, tc.want)
			}
			if !strings.Contains(prompt.String(), "./goremu.db") {
				t.Fatalf("prompt should name the target: %q", prompt.String())
			}
		})
	}
}

func TestDescribeDeleteTarget(t *testing.T) {
	t.Parallel()

	if got := describeDeleteTarget("./goremu.db", 12, false); got != "record 12 in ./goremu.db" {
		t.Fatalf("got %q", got)
	}
	if got := describeDeleteTarget("./goremu.db", 0, true); got != "all records in ./goremu.db" {
		t.Fatalf("got %q", got)
	}
	if got := describeDeleteTarget("./goremu.db", 0, false); got != "database file ./goremu.db" {
		t.Fatalf("got %q", got)
	}
}

func TestRemoveDatabaseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "goremu.db")
	if err := os.WriteFile(path, []byte("db"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := removeDatabaseFile(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("file should be gone")
	}

	if err := removeDatabaseFile(path); err == nil {
		t.Fatal("expected missing file error")
	}
	if err := removeDatabaseFile(dir); err == nil {
		t.Fatal("expected directory error")
	}
}
