package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/githubnext/spawncheck/pkg/document"
	"github.com/githubnext/spawncheck/pkg/schema"
)

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

const zoneMissingRadius = `{
    "globalSettings": {
        "systemEnabled": 1,
        "checkInterval": 30,
        "maxEntitiesPerZone": 10,
        "entityLifetime": 600,
        "minSpawnDistanceFromPlayer": 50
    },
    "zones": [
        {
            "name": "Alpha",
            "enabled": 1,
            "position": "1234.5 10.0 5678.9",
            "spawnChance": 0.5,
            "despawnOnExit": 1,
            "despawnDistance": 500,
            "respawnCooldown": 120,
            "spawnPoints": []
        }
    ]
}`

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testOptions(dir string) (Options, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return Options{
		OutputDir: filepath.Join(dir, "fixed_configs"),
		Out:       &out,
		Err:       &errOut,
		Now:       func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}, &out, &errOut
}

func TestRunValidateSuccess(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "zones.json", validZones)
	opts, out, errOut := testOptions(dir)

	if err := RunValidate(path, schema.KindZones, opts); err != nil {
		t.Fatalf("RunValidate() error = %v", err)
	}

	if !strings.Contains(out.String(), "[SUCCESS]") || !strings.Contains(out.String(), "Found 0 zones with 0 total spawn points") {
		t.Errorf("unexpected stdout:\n%s", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("stderr should be empty, got:\n%s", errOut.String())
	}
	if _, err := os.Stat(opts.OutputDir); !os.IsNotExist(err) {
		t.Error("no output directory should be created for a valid file")
	}
}

func TestRunValidateErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "zones.json", zoneMissingRadius)
	opts, out, errOut := testOptions(dir)

	err := RunValidate(path, schema.KindZones, opts)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("RunValidate() error = %v, want ErrValidationFailed", err)
	}

	stderr := errOut.String()
	for _, want := range []string{
		"Found 1 error(s)",
		"Missing required field 'triggerRadius' in zone 'Alpha'",
		`= fix: Add: "triggerRadius": 300`,
		"--> Alpha",
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}

	stdout := out.String()
	if !strings.Contains(stdout, "dry run") || !strings.Contains(stdout, "added 'triggerRadius' at /zones/0: 300") {
		t.Errorf("stdout should log the planned fix:\n%s", stdout)
	}

	fixed, err := os.ReadFile(filepath.Join(opts.OutputDir, "zones_FIXED.json"))
	if err != nil {
		t.Fatalf("fixed file not written: %v", err)
	}
	if string(fixed) != zoneMissingRadius+"\n" {
		t.Errorf("dry run should write an untouched copy, got:\n%s", fixed)
	}

	reportText, err := os.ReadFile(filepath.Join(opts.OutputDir, "zones_FIX_REPORT.txt"))
	if err != nil {
		t.Fatalf("fix report not written: %v", err)
	}
	if !strings.Contains(string(reportText), "Generated: 2026-01-02T03:04:05Z") {
		t.Errorf("unexpected report:\n%s", reportText)
	}
}

func TestRunValidateApply(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "zones.json", zoneMissingRadius)
	opts, _, _ := testOptions(dir)
	opts.Apply = true

	if err := RunValidate(path, schema.KindZones, opts); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("RunValidate() error = %v, want ErrValidationFailed", err)
	}

	data, err := os.ReadFile(filepath.Join(opts.OutputDir, "zones_FIXED.json"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		t.Fatalf("fixed file is not valid JSON: %v", err)
	}

	outcome, err := ValidateFile(filepath.Join(opts.OutputDir, "zones_FIXED.json"), schema.KindZones, Options{OutputDir: filepath.Join(dir, "second")})
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.Result.Valid() {
		t.Errorf("applied fixes should make the file valid, got %v", outcome.Result.Errors())
	}
	if radius, ok := document.At(doc, "zones", "0", "triggerRadius"); !ok || document.TypeName(radius) != "number" {
		t.Errorf("triggerRadius = %v", radius)
	}
}

func TestRunValidateParseError(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "zones.json", "{\n    \"zones\": [],\n}")
	opts, _, errOut := testOptions(dir)

	err := RunValidate(path, schema.KindZones, opts)
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("RunValidate() error = %v, want ErrParseFailed", err)
	}
	var parseErr *document.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error should wrap *document.ParseError, got %T", err)
	}

	stderr := errOut.String()
	if !strings.Contains(stderr, "[ERROR] Invalid JSON: ") {
		t.Errorf("stderr missing parse message:\n%s", stderr)
	}
	if !strings.Contains(stderr, "Error near character offset") || !strings.Contains(stderr, "line 3") {
		t.Errorf("stderr missing offset hint:\n%s", stderr)
	}
	if _, err := os.Stat(opts.OutputDir); !os.IsNotExist(err) {
		t.Error("no fix files should be written for malformed JSON")
	}
}

func TestValidateFileNotFound(t *testing.T) {
	dir := t.TempDir()
	opts, _, _ := testOptions(dir)

	_, err := ValidateFile(filepath.Join(dir, "missing.json"), schema.KindZones, opts)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("ValidateFile() error = %v, want not found", err)
	}
	if IsReported(err) {
		t.Error("a missing file is not reported by RunValidate and must be printed by the caller")
	}
}

func TestValidateFileStrict(t *testing.T) {
	dir := t.TempDir()
	source := strings.Replace(validZones, `"zones": []`, `"zones": [], "comment": "x"`, 1)
	path := writeTestFile(t, dir, "zones.json", source)
	opts, _, _ := testOptions(dir)

	outcome, err := ValidateFile(path, schema.KindZones, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.Result.Valid() {
		t.Fatalf("unknown fields should be ignored without --strict, got %v", outcome.Result.Errors())
	}

	opts.Strict = true
	outcome, err = ValidateFile(path, schema.KindZones, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := outcome.Result.Errors(); len(got) != 1 || got[0] != "Unknown field 'comment' in root" {
		t.Errorf("Errors() = %v", got)
	}
	if got := outcome.Result.Fixes[0].Suggestions; len(got) != 1 || got[0] != "Remove field 'comment'" {
		t.Errorf("Suggestions = %v", got)
	}
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		source string
		want   schema.Kind
	}{
		{source: `{"tiers": {}}`, want: schema.KindTiers},
		{source: `{"zones": []}`, want: schema.KindZones},
		{source: `{"zones": [], "tiers": {}}`, want: schema.KindZones},
		{source: `{}`, want: schema.KindZones},
		{source: `[]`, want: schema.KindZones},
	}

	for _, tt := range tests {
		doc, err := document.Parse([]byte(tt.source))
		if err != nil {
			t.Fatal(err)
		}
		if got := InferKind(doc); got != tt.want {
			t.Errorf("InferKind(%s) = %s, want %s", tt.source, got, tt.want)
		}
	}
}
