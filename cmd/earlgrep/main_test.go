package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"v.io/x/lib/cmdline"
)

// run executes the command with fresh flag values and returns its output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	flagCount, flagNoPrefilter, flagExplain = false, false, false
	var stdout, stderr bytes.Buffer
	env := &cmdline.Env{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}
	err := cmdline.ParseAndRun(cmdRoot, env, args)
	return stdout.String(), err
}

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(name, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestMatchFile(t *testing.T) {
	name := writeFile(t, "Hello I am Bobby Daigle.\nnobody\nBobby Tables")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"matches", []string{`Bobby\w\s+`, name}, "1:Bobby Daigle\n3:Bobby Tables\n"},
		{"no prefilter", []string{"-no-prefilter", `Bobby\w\s+`, name}, "1:Bobby Daigle\n3:Bobby Tables\n"},
		{"count", []string{"-c", `Bobby\w\s+`, name}, "2\n"},
		{"no match", []string{`\d`, name}, ""},
		{"explain", []string{"-explain", "-c", "Bobby", name}, "# strategy UsePrefix, prefix \"Bobby\"\n2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, "", tt.args...)
			if err != nil {
				t.Fatalf("run(%v) error = %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("run(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestMatchStdin(t *testing.T) {
	got, err := run(t, "abababwhatabab\n", "(ab)+", "-")
	if err != nil {
		t.Fatal(err)
	}
	if want := "1:ababab\n1:abab\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmptyFile(t *testing.T) {
	got, err := run(t, "", "a*", writeFile(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q, want no output", got)
	}
}

func TestErrors(t *testing.T) {
	name := writeFile(t, "text")
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"one argument", []string{"a"}},
		{"three arguments", []string{"a", name, name}},
		{"invalid pattern", []string{"(a", name}},
		{"missing file", []string{"a", filepath.Join(t.TempDir(), "missing")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, "", tt.args...); err == nil {
				t.Errorf("run(%v) succeeded, want an error", tt.args)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"empty", ""},
		{"small", "abc\n"},
		{"large", strings.Repeat("0123456789abcdef\n", 4096)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, release, err := readFile(writeFile(t, tt.contents))
			if err != nil {
				t.Fatal(err)
			}
			if got := string(text); got != tt.contents {
				t.Errorf("readFile returned %d bytes, want %d", len(got), len(tt.contents))
			}
			if err := release(); err != nil {
				t.Errorf("release() error = %v", err)
			}
		})
	}
}

// TestMatchMappedFile searches a file large enough to be mapped and checks
// the matches printed from the mapping.
func TestMatchMappedFile(t *testing.T) {
	contents := strings.Repeat("filler line\n", 1000) + "Bobby Tables\n"
	got, err := run(t, "", `Bobby\w\s+`, writeFile(t, contents))
	if err != nil {
		t.Fatal(err)
	}
	if want := "1001:Bobby Tables\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
