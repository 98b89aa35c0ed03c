package config

import "sort"

// Preset is a named window geometry.
type Preset struct {
	Width    int
	Height   int
	FPS      int
	FontSize int
}

var Presets = map[string]*Preset{
	"720p":   {Width: 1280, Height: 720, FontSize: 14},
	"1080p":  {Width: 1920, Height: 1080, FontSize: 16},
	"1440p":  {Width: 2560, Height: 1440, FontSize: 22},
	"square": {Width: 1080, Height: 1080, FontSize: 16},
	"puzzle": {Width: 1000, Height: 1000, FPS: 30, FontSize: 12},
}

func GetPreset(name string) *Preset {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
