package outputs

import (
	"fmt"
	"strings"
)

// ErrorPolicy controls how a failing output affects the rest of the run.
type ErrorPolicy string

const (
	// PolicyContinue records the failure and keeps going.
	PolicyContinue ErrorPolicy = "continue"
	// PolicyStop aborts the remaining outputs when the failing spec ran in a
	// serial phase.
	PolicyStop ErrorPolicy = "stop"
)

// Mode selects how the planner treats execution groups.
type Mode string

const (
	// ModeAuto groups specs by execution group, ascending.
	ModeAuto Mode = "auto"
	// ModeParallel flattens every enabled spec into one concurrent batch.
	ModeParallel Mode = "parallel"
	// ModeSerial runs every enabled spec one at a time in declared order.
	ModeSerial Mode = "serial"
)

// ParseMode validates a run-level execution mode string. Empty means auto.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeAuto, "":
		return ModeAuto, nil
	case ModeParallel:
		return ModeParallel, nil
	case ModeSerial:
		return ModeSerial, nil
	default:
		return "", fmt.Errorf("output execution mode: unsupported value %q", value)
	}
}

// Spec describes one validated output target. Specs are created once from
// configuration and are immutable afterwards.
type Spec struct {
	Format       string
	Params       map[string]any
	Enabled      bool
	OnError      ErrorPolicy
	Group        int
	DependsOn    []string
	WaitForGroup bool
}

// SpecConfig is the raw shape of one output entry before defaults and
// validation are applied.
type SpecConfig struct {
	Format       string
	Params       map[string]any
	Enabled      *bool
	OnError      string
	Group        int
	DependsOn    []string
	WaitForGroup bool
}

// NewSpec applies defaults to a raw entry and validates it.
func NewSpec(raw SpecConfig) (Spec, error) {
	format := strings.TrimSpace(raw.Format)
	if format == "" {
		return Spec{}, fmt.Errorf("output spec: format is required")
	}
	if raw.Group < 0 {
		return Spec{}, fmt.Errorf("output %s: execution_group must be >= 0", format)
	}

	policy := PolicyContinue
	switch ErrorPolicy(strings.ToLower(strings.TrimSpace(raw.OnError))) {
	case PolicyContinue, "":
	case PolicyStop:
		policy = PolicyStop
	default:
		return Spec{}, fmt.Errorf("output %s: on_error must be %q or %q", format, PolicyContinue, PolicyStop)
	}

	enabled := true
	if raw.Enabled != nil {
		enabled = *raw.Enabled
	}

	deps := make([]string, 0, len(raw.DependsOn))
	for _, dep := range raw.DependsOn {
		dep = strings.TrimSpace(dep)
		if dep == "" {
			return Spec{}, fmt.Errorf("output %s: depends_on entries must be non-empty", format)
		}
		if dep == format {
			return Spec{}, fmt.Errorf("output %s: cannot depend on itself", format)
		}
		deps = append(deps, dep)
	}

	return Spec{
		Format:       format,
		Params:       raw.Params,
		Enabled:      enabled,
		OnError:      policy,
		Group:        raw.Group,
		DependsOn:    deps,
		WaitForGroup: raw.WaitForGroup,
	}, nil
}

// BuildSpecs converts raw config entries into validated specs, dropping
// disabled entries. The format string is the join key for dependency
// resolution and the artifact cache, so two enabled specs sharing a format
// would make the plan ambiguous; that is rejected here.
func BuildSpecs(raw []SpecConfig) ([]Spec, error) {
	specs := make([]Spec, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, entry := range raw {
		spec, err := NewSpec(entry)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i+1, err)
		}
		if !spec.Enabled {
			continue
		}
		if _, dup := seen[spec.Format]; dup {
			return nil, fmt.Errorf("output plan: duplicate format %q", spec.Format)
		}
		seen[spec.Format] = struct{}{}
		specs = append(specs, spec)
	}
	return specs, nil
}
