package outputs

import (
	"errors"
	"sort"
)

// ErrNoOutputs is the fatal configuration error for a plan without a single
// enabled output.
var ErrNoOutputs = errors.New("output plan: no enabled outputs configured")

// Phase is one execution group's worth of specs, run together under one
// strategy. Phases are produced once per run and never mutated.
type Phase struct {
	Group  int
	Serial bool
	Specs  []Spec
}

// Plan partitions enabled specs into ordered phases.
//
// Under ModeAuto specs are grouped by execution group and groups run in
// ascending numeric order; a phase runs serially when any member sets
// wait_for_group. ModeParallel and ModeSerial flatten everything into a
// single phase, ignoring grouping fields entirely. Specs sharing a group keep
// their declared order (stable partition).
func Plan(specs []Spec, mode Mode) ([]Phase, error) {
	if len(specs) == 0 {
		return nil, ErrNoOutputs
	}

	switch mode {
	case ModeParallel:
		return []Phase{{Group: 0, Serial: false, Specs: append([]Spec(nil), specs...)}}, nil
	case ModeSerial:
		return []Phase{{Group: 0, Serial: true, Specs: append([]Spec(nil), specs...)}}, nil
	}

	byGroup := make(map[int][]Spec)
	groups := make([]int, 0)
	for _, spec := range specs {
		if _, ok := byGroup[spec.Group]; !ok {
			groups = append(groups, spec.Group)
		}
		byGroup[spec.Group] = append(byGroup[spec.Group], spec)
	}
	sort.Ints(groups)

	phases := make([]Phase, 0, len(groups))
	for _, group := range groups {
		members := byGroup[group]
		serial := false
		for _, spec := range members {
			if spec.WaitForGroup {
				serial = true
				break
			}
		}
		phases = append(phases, Phase{Group: group, Serial: serial, Specs: members})
	}
	return phases, nil
}
