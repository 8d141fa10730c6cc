package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		check   func(t *testing.T, c *Config)
		wantErr string
	}{
		{
			name:  "empty uses defaults",
			input: "",
			check: func(t *testing.T, c *Config) {
				if c.Output.Color != "auto" || c.Log.Level != "warn" {
					t.Errorf("defaults = %+v", c)
				}
				if !c.ShowIR() {
					t.Error("IR should be shown by default")
				}
			},
		},
		{
			name: "all sections",
			input: `
[lift]
strict_float = true

[output]
color = "never"
ir = false
branches = true

[log]
level = "debug"
`,
			check: func(t *testing.T, c *Config) {
				if !c.Lift.StrictFloat {
					t.Error("strict_float not read")
				}
				if c.Output.Color != "never" || c.ShowIR() || !c.Output.Branches {
					t.Errorf("output = %+v", c.Output)
				}
				if c.Log.Level != "debug" {
					t.Errorf("level = %q", c.Log.Level)
				}
			},
		},
		{
			name:    "bad color",
			input:   "[output]\ncolor = \"sometimes\"\n",
			wantErr: "output.color",
		},
		{
			name:    "bad level",
			input:   "[log]\nlevel = \"loud\"\n",
			wantErr: "log.level",
		},
		{
			name:    "unknown key",
			input:   "[lift]\nfast = true\n",
			wantErr: "lift.fast",
		},
		{
			name:    "syntax error",
			input:   "[lift\n",
			wantErr: "parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := parseConfig([]byte(tt.input), "test.toml")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseConfig: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	c, err := loadConfig("", dir)
	if err != nil {
		t.Fatalf("missing default file: %v", err)
	}
	if c.Path != "" {
		t.Errorf("Path = %q for defaults", c.Path)
	}

	if _, err := loadConfig(filepath.Join(dir, "absent.toml"), dir); err == nil {
		t.Error("explicit missing file should fail")
	}

	path := filepath.Join(dir, configName)
	if err := os.WriteFile(path, []byte("[output]\nbranches = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = loadConfig("", dir)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !c.Output.Branches || c.Path != path {
		t.Errorf("config = %+v", c)
	}
}
