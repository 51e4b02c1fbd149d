package config

import "path/filepath"

// MaxRecentFiles is how many opened files are remembered.
const MaxRecentFiles = 10

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int          `yaml:"version"`
	Viewer      *ViewerPrefs `yaml:"viewer,omitempty"`
	Theme       *Theme       `yaml:"theme,omitempty"`
	RecentFiles []string     `yaml:"recent_files,omitempty"` // Most recent first
}

// ViewerPrefs controls browser behaviour.
type ViewerPrefs struct {
	ScrollStep     int  `yaml:"scroll_step"`      // Rows per mouse wheel notch
	PreviewLength  int  `yaml:"preview_length"`   // Characters kept in value previews
	Mouse          bool `yaml:"mouse"`            // Capture mouse clicks and wheel
	DimPrivateTags bool `yaml:"dim_private_tags"` // Render odd-group tags in the muted color
	Watch          bool `yaml:"watch"`            // Reload the file when it changes on disk
}

// Theme holds the browser colors as lipgloss color strings ("#RRGGBB" or an
// ANSI index).
type Theme struct {
	Accent    string `yaml:"accent"`    // Borders, header, expand indicators
	Muted     string `yaml:"muted"`     // Help text, private tags, VR column
	Match     string `yaml:"match"`     // Search match highlight
	Selection string `yaml:"selection"` // Selected row background
	Added     string `yaml:"added"`     // Diff: added roots
	Deleted   string `yaml:"deleted"`   // Diff: deleted roots
	Changed   string `yaml:"changed"`   // Diff: changed roots
}

// DefaultViewerPrefs returns the built-in viewer settings.
func DefaultViewerPrefs() *ViewerPrefs {
	return &ViewerPrefs{
		ScrollStep:     3,
		PreviewLength:  256,
		Mouse:          true,
		DimPrivateTags: true,
		Watch:          false,
	}
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    "#7D56F4",
		Muted:     "#626262",
		Match:     "#FFA500",
		Selection: "#3C3C5A",
		Added:     "#43BF6D",
		Deleted:   "#FF5555",
		Changed:   "#F1C40F",
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Viewer:  DefaultViewerPrefs(),
		Theme:   DefaultTheme(),
	}
}

// applyDefaults fills sections and fields missing from a loaded file.
func (r *Registry) applyDefaults() {
	if r.Viewer == nil {
		r.Viewer = DefaultViewerPrefs()
	}
	if r.Viewer.ScrollStep <= 0 {
		r.Viewer.ScrollStep = DefaultViewerPrefs().ScrollStep
	}
	if r.Viewer.PreviewLength <= 0 {
		r.Viewer.PreviewLength = DefaultViewerPrefs().PreviewLength
	}

	def := DefaultTheme()
	if r.Theme == nil {
		r.Theme = def
		return
	}
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&r.Theme.Accent, def.Accent)
	fill(&r.Theme.Muted, def.Muted)
	fill(&r.Theme.Match, def.Match)
	fill(&r.Theme.Selection, def.Selection)
	fill(&r.Theme.Added, def.Added)
	fill(&r.Theme.Deleted, def.Deleted)
	fill(&r.Theme.Changed, def.Changed)
}

// AddRecentFile moves path to the front of the recent list, keeping at most
// MaxRecentFiles entries.
func (r *Registry) AddRecentFile(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	recent := []string{path}
	for _, p := range r.RecentFiles {
		if p != path && len(recent) < MaxRecentFiles {
			recent = append(recent, p)
		}
	}
	r.RecentFiles = recent
}
