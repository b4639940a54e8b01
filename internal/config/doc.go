// Package config handles loading and validation of spinelli configuration.
//
// Configuration is read from ~/.config/spinelli/config.toml (or the file
// named by SPINELLI_CONFIG). Keys missing from the file keep their default
// values, so a config may be as small as a single preset list.
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags (--name)
//   - .spinelli.toml in the working directory
//   - Global config file
//   - Default values
//
// # Key Settings
//
//   - presets: names on the wheel at startup
//   - palette: colors cycled as names are added
//   - [wheel]: radius, outline and label styling
//   - [animation]: duration, number of spins and easing profile
//   - [pins]: decorative rim pins and the optional tick sound
//   - [theme]: UI colors, shared preset families with light/dark variants
//
// Invalid files are reported as errors and the defaults are used instead.
package config
