package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/githubnext/spawncheck/pkg/cli"
)

func TestInitFunction(t *testing.T) {
	t.Run("commands are registered", func(t *testing.T) {
		want := map[string]bool{"zones": false, "tiers": false, "check": false, "schema": false, "version": false}
		for _, cmd := range rootCmd.Commands() {
			if _, ok := want[cmd.Name()]; ok {
				want[cmd.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("%s command should be available", name)
			}
		}
	})

	t.Run("global flags are registered", func(t *testing.T) {
		for _, name := range []string{"verbose", "config", "output-dir", "strict", "apply"} {
			if rootCmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("global flag --%s should be registered", name)
			}
		}
		if flag := rootCmd.PersistentFlags().Lookup("output-dir"); flag != nil && flag.DefValue != "fixed_configs" {
			t.Errorf("--output-dir default = %s, want fixed_configs", flag.DefValue)
		}
	})

	t.Run("validate commands take a watch flag", func(t *testing.T) {
		for _, name := range []string{"zones", "tiers"} {
			cmd, _, err := rootCmd.Find([]string{name})
			if err != nil {
				t.Fatalf("Find(%s) error = %v", name, err)
			}
			if cmd.Flags().Lookup("watch") == nil {
				t.Errorf("%s command should have a --watch flag", name)
			}
		}
	})
}

func TestMainFunction(t *testing.T) {
	t.Run("root command is configured", func(t *testing.T) {
		if rootCmd.Use == "" || rootCmd.Short == "" || rootCmd.Long == "" {
			t.Error("rootCmd should have Use, Short and Long set")
		}
	})

	t.Run("root command help", func(t *testing.T) {
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetArgs([]string{"--help"})
		err := rootCmd.Execute()

		rootCmd.SetOut(nil)
		rootCmd.SetArgs([]string{})

		if err != nil {
			t.Errorf("root command help failed: %v", err)
		}
		if !strings.Contains(buf.String(), "spawncheck zones zones.json") {
			t.Errorf("help output should contain examples, got:\n%s", buf.String())
		}
	})

	t.Run("version is passed to the cli package", func(t *testing.T) {
		cli.SetVersionInfo(version)
		if cli.GetVersion() != version {
			t.Errorf("GetVersion() = %s, want %s", cli.GetVersion(), version)
		}
	})
}

// runMain builds the command and runs it in dir and returns its exit code and output
func runMain(t *testing.T, dir string, args ...string) (int, string, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping end-to-end test in short mode")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go binary not available - skipping end-to-end test")
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	bin := filepath.Join(t.TempDir(), "spawncheck")
	build := exec.Command("go", "build", "-o", bin, ".")
	build.Dir = wd
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("failed to build main: %v\n%s", err, out)
	}

	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), stdout.String(), stderr.String()
	}
	if err != nil {
		t.Fatalf("failed to run main: %v", err)
	}
	return 0, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestEndToEnd(t *testing.T) {
	const validZones = `{
    "globalSettings": {
        "systemEnabled": 1,
        "checkInterval": 30,
        "maxEntitiesPerZone": 10,
        "entityLifetime": 600,
        "minSpawnDistanceFromPlayer": 50
    },
    "zones": []
}`

	tests := []struct {
		name       string
		args       []string
		files      map[string]string
		wantCode   int
		wantStdout string
		wantStderr string
		wantFiles  []string
		noFiles    bool
	}{
		{
			name:       "valid zones",
			args:       []string{"zones", "zones.json"},
			files:      map[string]string{"zones.json": validZones},
			wantCode:   0,
			wantStdout: "Found 0 zones with 0 total spawn points",
			noFiles:    true,
		},
		{
			name:       "type given as argument",
			args:       []string{"Tiers", "tiers.json"},
			files:      map[string]string{"tiers.json": `{"tiers": {"abc": {"name": "X", "classnames": []}}}`},
			wantCode:   1,
			wantStderr: "Tier key 'abc' should be numeric string",
			wantFiles:  []string{"fixed_configs/tiers_FIXED.json", "fixed_configs/tiers_FIX_REPORT.txt"},
		},
		{
			name:       "trailing comma",
			args:       []string{"zones", "broken.json"},
			files:      map[string]string{"broken.json": "{\n    \"zones\": [],\n}"},
			wantCode:   1,
			wantStderr: "Error near character offset",
			noFiles:    true,
		},
		{
			name:       "unknown type",
			args:       []string{"items", "zones.json"},
			files:      map[string]string{"zones.json": validZones},
			wantCode:   1,
			wantStderr: "unknown type 'items'",
			noFiles:    true,
		},
		{
			name:     "missing arguments",
			args:     []string{"zones"},
			wantCode: 1,
			noFiles:  true,
		},
		{
			name:       "file not found",
			args:       []string{"zones", "missing.json"},
			wantCode:   1,
			wantStderr: "file 'missing.json' not found",
			noFiles:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}

			code, stdout, stderr := runMain(t, dir, tt.args...)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, tt.wantCode, stdout, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout, tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, stdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr)
			}
			for _, name := range tt.wantFiles {
				if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
					t.Errorf("expected %s to be written: %v", name, err)
				}
			}
			if tt.noFiles {
				if _, err := os.Stat(filepath.Join(dir, "fixed_configs")); err == nil {
					t.Error("no fix files should be written")
				}
			}
		})
	}
}
