package config

import "slices"

// MergeLocal merges a local config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	merged := *global

	// Lists replace rather than append: a local name list is the whole wheel.
	if local.Presets != nil {
		merged.Presets = slices.Clone(local.Presets)
	}
	if local.Palette != nil {
		merged.Palette = slices.Clone(local.Palette)
	}

	if local.Animation.Duration != "" {
		merged.Animation.Duration = local.Animation.Duration
	}
	if local.Animation.Spins != nil {
		merged.Animation.Spins = *local.Animation.Spins
	}
	if local.Animation.Easing != "" {
		merged.Animation.Easing = local.Animation.Easing
	}

	if local.Pins.Number != nil {
		merged.Pins.Number = *local.Pins.Number
	}
	if local.Pins.Sound != nil {
		merged.Pins.Sound = *local.Pins.Sound
	}

	return &merged
}
