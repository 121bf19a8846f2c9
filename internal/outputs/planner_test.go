package outputs_test

import (
	"errors"
	"reflect"
	"testing"

	"meetscribe/internal/outputs"
)

func spec(format string, group int, wait bool) outputs.Spec {
	return outputs.Spec{Format: format, Enabled: true, OnError: outputs.PolicyContinue, Group: group, WaitForGroup: wait}
}

func phaseFormats(phase outputs.Phase) []string {
	formats := make([]string, 0, len(phase.Specs))
	for _, s := range phase.Specs {
		formats = append(formats, s.Format)
	}
	return formats
}

func TestPlanEmptyIsFatal(t *testing.T) {
	if _, err := outputs.Plan(nil, outputs.ModeAuto); !errors.Is(err, outputs.ErrNoOutputs) {
		t.Fatalf("expected ErrNoOutputs, got %v", err)
	}
}

func TestPlanAutoGroupsAscending(t *testing.T) {
	specs := []outputs.Spec{
		spec("webhook", 2, false),
		spec("markdown", 0, false),
		spec("pdf", 1, false),
		spec("json", 0, false),
	}
	phases, err := outputs.Plan(specs, outputs.ModeAuto)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(phases) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(phases))
	}
	wantGroups := []int{0, 1, 2}
	for i, phase := range phases {
		if phase.Group != wantGroups[i] {
			t.Fatalf("phase %d group = %d, want %d", i, phase.Group, wantGroups[i])
		}
		if phase.Serial {
			t.Fatalf("phase %d unexpectedly serial", i)
		}
	}
	// Declaration order preserved inside a group.
	if got := phaseFormats(phases[0]); !reflect.DeepEqual(got, []string{"markdown", "json"}) {
		t.Fatalf("group 0 order = %v", got)
	}
}

func TestPlanAutoSerialWhenAnyMemberWaits(t *testing.T) {
	specs := []outputs.Spec{
		spec("markdown", 1, false),
		spec("json", 1, true),
		spec("pdf", 2, false),
	}
	phases, err := outputs.Plan(specs, outputs.ModeAuto)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !phases[0].Serial {
		t.Fatal("expected group 1 to run serially")
	}
	if phases[1].Serial {
		t.Fatal("group 2 should stay parallel")
	}
}

func TestPlanParallelFlattensGroups(t *testing.T) {
	specs := []outputs.Spec{
		spec("markdown", 3, true),
		spec("json", 1, false),
		spec("pdf", 2, true),
	}
	phases, err := outputs.Plan(specs, outputs.ModeParallel)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(phases) != 1 {
		t.Fatalf("expected a single phase, got %d", len(phases))
	}
	if phases[0].Serial {
		t.Fatal("forced parallel phase must not be serial")
	}
	if got := phaseFormats(phases[0]); !reflect.DeepEqual(got, []string{"markdown", "json", "pdf"}) {
		t.Fatalf("unexpected member order: %v", got)
	}
}

func TestPlanSerialPreservesDeclaredOrder(t *testing.T) {
	specs := []outputs.Spec{
		spec("webhook", 5, false),
		spec("markdown", 0, false),
		spec("pdf", 3, false),
	}
	phases, err := outputs.Plan(specs, outputs.ModeSerial)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(phases) != 1 || !phases[0].Serial {
		t.Fatalf("expected a single serial phase, got %+v", phases)
	}
	if got := phaseFormats(phases[0]); !reflect.DeepEqual(got, []string{"webhook", "markdown", "pdf"}) {
		t.Fatalf("unexpected member order: %v", got)
	}
}

func TestPlanIsDeterministic(t *testing.T) {
	specs := []outputs.Spec{
		spec("a", 2, false),
		spec("b", 0, true),
		spec("c", 2, false),
		spec("d", 1, false),
	}
	first, err := outputs.Plan(specs, outputs.ModeAuto)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	second, err := outputs.Plan(specs, outputs.ModeAuto)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("planning is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
