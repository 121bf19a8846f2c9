package outputs_test

import (
	"reflect"
	"testing"

	"meetscribe/internal/outputs"
)

func TestFilterNoDependenciesAlwaysRunnable(t *testing.T) {
	phase := outputs.Phase{Specs: []outputs.Spec{spec("markdown", 0, false)}}
	runnable, skipped := outputs.Filter(phase, nil)
	if len(runnable) != 1 || len(skipped) != 0 {
		t.Fatalf("runnable=%d skipped=%d", len(runnable), len(skipped))
	}
}

func TestFilterRequiresEveryDependency(t *testing.T) {
	withDeps := spec("webhook", 2, false)
	withDeps.DependsOn = []string{"pdf", "markdown"}
	phase := outputs.Phase{Specs: []outputs.Spec{withDeps}}

	succeeded := map[string]struct{}{"pdf": {}}
	runnable, skipped := outputs.Filter(phase, succeeded)
	if len(runnable) != 0 {
		t.Fatal("spec with one unmet dependency must not run")
	}
	if len(skipped) != 1 {
		t.Fatalf("expected one skip, got %d", len(skipped))
	}
	skip := skipped[0]
	if skip.Reason != outputs.ReasonDependencyNotMet {
		t.Fatalf("reason = %q", skip.Reason)
	}
	if !reflect.DeepEqual(skip.MissingDependencies, []string{"markdown"}) {
		t.Fatalf("missing = %v", skip.MissingDependencies)
	}

	succeeded["markdown"] = struct{}{}
	runnable, skipped = outputs.Filter(phase, succeeded)
	if len(runnable) != 1 || len(skipped) != 0 {
		t.Fatal("spec with all dependencies met must run")
	}
}

func TestFilterCumulativeAcrossPhases(t *testing.T) {
	// A dependency satisfied two phases earlier still counts.
	dependent := spec("webhook", 5, false)
	dependent.DependsOn = []string{"markdown"}
	phase := outputs.Phase{Group: 5, Specs: []outputs.Spec{dependent}}

	runnable, _ := outputs.Filter(phase, map[string]struct{}{"markdown": {}, "json": {}})
	if len(runnable) != 1 {
		t.Fatal("dependency from an earlier phase should satisfy")
	}
}

func TestFilterUnknownDependencyAlwaysSkips(t *testing.T) {
	dependent := spec("x", 0, false)
	dependent.DependsOn = []string{"nonexistent"}
	phase := outputs.Phase{Specs: []outputs.Spec{dependent}}

	runnable, skipped := outputs.Filter(phase, map[string]struct{}{})
	if len(runnable) != 0 || len(skipped) != 1 {
		t.Fatalf("runnable=%d skipped=%d", len(runnable), len(skipped))
	}
	if !reflect.DeepEqual(skipped[0].MissingDependencies, []string{"nonexistent"}) {
		t.Fatalf("missing = %v", skipped[0].MissingDependencies)
	}
}
