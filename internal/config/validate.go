package config

import (
	"fmt"

	"github.com/flarebyte/irshim/internal/browser"
)

// Validate rejects configurations that would fail later in a build step.
func (f File) Validate() error {
	if !IsSupportedConfigVersion(f.ConfigVersion) {
		return fmt.Errorf("unsupported configVersion: %q (supported: %s)", f.ConfigVersion, SupportedConfigVersionsCSV())
	}
	if browser.IsBrowserKind(f.Engine.Emit) {
		if _, err := browser.Extension(f.Engine.Emit); err != nil {
			return fmt.Errorf("invalid engine.emit: %w", err)
		}
	}
	if f.Classify.HasTimeout && f.Classify.TimeoutMs < 0 {
		return fmt.Errorf("invalid classify.timeoutMs: %d (expected >= 0)", f.Classify.TimeoutMs)
	}
	return nil
}
