package outputs

// Filter splits a phase's specs into those runnable now and those skipped
// because a declared dependency has not succeeded.
//
// succeeded is the cumulative set of formats completed across all prior
// phases. A dependency naming a format absent from the whole plan is
// permanently unsatisfiable, so its dependent is skipped the same way;
// skipped specs never execute, never retry, and never count as succeeded.
func Filter(phase Phase, succeeded map[string]struct{}) (runnable []Spec, skipped []Skip) {
	runnable = make([]Spec, 0, len(phase.Specs))
	for _, spec := range phase.Specs {
		if len(spec.DependsOn) == 0 {
			runnable = append(runnable, spec)
			continue
		}
		var missing []string
		for _, dep := range spec.DependsOn {
			if _, ok := succeeded[dep]; !ok {
				missing = append(missing, dep)
			}
		}
		if len(missing) == 0 {
			runnable = append(runnable, spec)
			continue
		}
		skipped = append(skipped, Skip{
			Format:              spec.Format,
			Reason:              ReasonDependencyNotMet,
			MissingDependencies: missing,
		})
	}
	return runnable, skipped
}
