// Package config provides the configuration for the rich-text editor.
//
// A Config starts from Default and is layered, lowest priority first:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← RICHEDIT_* (ApplyEnv)
//	├─────────────────────────────┤
//	│  2. Config File             │  ← richedit.toml / richedit.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Default()
//	└─────────────────────────────┘
//
// Files are TOML or YAML, chosen by extension. Keys a file omits keep their
// defaults. Durations are written as Go duration strings ("500ms", "10m").
//
// # Basic Usage
//
//	cfg, err := config.Load("richedit.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.ApplyEnv(config.EnvPrefix); err != nil {
//	    log.Fatal(err)
//	}
//
// # Sections
//
//   - history: snapshot debounce and stack capacity
//   - media: minimum resize size and default widths
//   - table: drag-finish window and new-cell style
//   - toolbar: ordered list of visible feature groups
//   - editor: surface height, resizability, link/image URL probing
//   - log: level, JSON output, rotated log file
//
// Validate checks every section with struct tags and reports each failing
// field as a *ValidationError.
package config
