package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/githubnext/spawncheck/pkg/schema"
)

func TestPrintSchema(t *testing.T) {
	tests := []struct {
		name     string
		kind     schema.Kind
		format   string
		contains []string
		wantErr  bool
	}{
		{
			name:     "zones yaml",
			kind:     schema.KindZones,
			format:   "yaml",
			contains: []string{"triggerRadius", "spawnPoints", "tierIds"},
		},
		{
			name:     "tiers json",
			kind:     schema.KindTiers,
			format:   "json",
			contains: []string{`"classnames"`},
		},
		{
			name:     "zones jsonschema",
			kind:     schema.KindZones,
			format:   "jsonschema",
			contains: []string{`"additionalProperties": false`},
		},
		{
			name:    "unknown format",
			kind:    schema.KindZones,
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := PrintSchema(&buf, tt.kind, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("PrintSchema() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
			if !strings.HasSuffix(output, "\n") {
				t.Error("output should end with a newline")
			}
			if strings.HasPrefix(tt.format, "json") && !json.Valid([]byte(output)) {
				t.Errorf("output is not valid JSON:\n%s", output)
			}
		})
	}
}

func TestNewSchemaCommand(t *testing.T) {
	cmd := NewSchemaCommand()
	if cmd.Flags().Lookup("format") == nil {
		t.Error("schema command should have a --format flag")
	}
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("schema command should require a type argument")
	}
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()
	if flag := cmd.Flags().Lookup("concurrency"); flag == nil || flag.DefValue != "8" {
		t.Error("check command should have a --concurrency flag defaulting to 8")
	}
}
