package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks failures caused by unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrStageFailure marks failures inside a pipeline stage.
	ErrStageFailure = errors.New("stage failure")
	// ErrExternalTool marks failures of external binaries or services.
	ErrExternalTool = errors.New("external tool error")
	// ErrLocked is returned when another run holds the working-dir lock.
	ErrLocked = errors.New("another run is in progress")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification.
func Wrap(marker error, stage, operation string, err error) error {
	detail := buildDetail(stage, operation)
	if marker == nil {
		marker = ErrStageFailure
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation string) string {
	parts := make([]string, 0, 2)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
