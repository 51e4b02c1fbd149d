// Package config provides user preferences for dcmview.
//
// This package manages a YAML configuration file holding viewer
// preferences, the color theme and the list of recently opened files. The
// configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/dcmview/config.yaml or $HOME/.config/dcmview/config.yaml
//   - macOS: $HOME/.config/dcmview/config.yaml
//   - Windows: %LOCALAPPDATA%\dcmview\config.yaml
//
// Logs, when enabled, live next to it under the state directory
// ($XDG_STATE_HOME/dcmview or $HOME/.local/state/dcmview).
//
// # Defaults
//
// Keys missing from the file keep their default values, so a file holding
// only
//
//	version: 1
//	viewer:
//	  scroll_step: 5
//
// changes the wheel step and nothing else. Navigation state (cursor,
// expanded nodes, search) is never stored.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    return err
//	}
//	registry.AddRecentFile("/data/scan.dcm")
//	if err := registry.Save(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
