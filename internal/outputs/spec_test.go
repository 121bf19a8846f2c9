package outputs_test

import (
	"strings"
	"testing"

	"meetscribe/internal/outputs"
)

func boolPtr(v bool) *bool { return &v }

func TestNewSpecDefaults(t *testing.T) {
	got, err := outputs.NewSpec(outputs.SpecConfig{Format: "markdown"})
	if err != nil {
		t.Fatalf("NewSpec: %v", err)
	}
	if !got.Enabled {
		t.Fatal("enabled must default to true")
	}
	if got.OnError != outputs.PolicyContinue {
		t.Fatalf("on_error default = %q", got.OnError)
	}
	if got.Group != 0 || got.WaitForGroup {
		t.Fatalf("grouping defaults wrong: %+v", got)
	}
}

func TestNewSpecValidation(t *testing.T) {
	tests := []struct {
		name    string
		raw     outputs.SpecConfig
		wantErr string
	}{
		{"missing format", outputs.SpecConfig{}, "format is required"},
		{"negative group", outputs.SpecConfig{Format: "x", Group: -1}, "execution_group"},
		{"bad policy", outputs.SpecConfig{Format: "x", OnError: "retry"}, "on_error"},
		{"self dependency", outputs.SpecConfig{Format: "x", DependsOn: []string{"x"}}, "depend on itself"},
		{"blank dependency", outputs.SpecConfig{Format: "x", DependsOn: []string{" "}}, "non-empty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := outputs.NewSpec(tc.raw)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want contains %q", err, tc.wantErr)
			}
		})
	}
}

func TestBuildSpecsDropsDisabled(t *testing.T) {
	specs, err := outputs.BuildSpecs([]outputs.SpecConfig{
		{Format: "markdown"},
		{Format: "json", Enabled: boolPtr(false)},
	})
	if err != nil {
		t.Fatalf("BuildSpecs: %v", err)
	}
	if len(specs) != 1 || specs[0].Format != "markdown" {
		t.Fatalf("unexpected specs: %+v", specs)
	}
}

// Two enabled specs sharing a format would make dependency resolution and the
// artifact cache ambiguous; the plan is rejected outright.
func TestBuildSpecsRejectsDuplicateFormats(t *testing.T) {
	_, err := outputs.BuildSpecs([]outputs.SpecConfig{
		{Format: "markdown"},
		{Format: "markdown"},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate format") {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildSpecsAllowsDuplicateWhenDisabled(t *testing.T) {
	specs, err := outputs.BuildSpecs([]outputs.SpecConfig{
		{Format: "markdown", Enabled: boolPtr(false)},
		{Format: "markdown"},
	})
	if err != nil {
		t.Fatalf("BuildSpecs: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("unexpected specs: %+v", specs)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    outputs.Mode
		wantErr bool
	}{
		{"", outputs.ModeAuto, false},
		{"auto", outputs.ModeAuto, false},
		{"PARALLEL", outputs.ModeParallel, false},
		{" serial ", outputs.ModeSerial, false},
		{"sideways", "", true},
	}
	for _, tc := range tests {
		got, err := outputs.ParseMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseMode(%q) = %q, %v", tc.in, got, err)
		}
	}
}
