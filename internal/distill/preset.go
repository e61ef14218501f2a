package distill

import "strings"

// Preset is a named importance/kind combination offered by the report's
// change filter control.
type Preset struct {
	Value        string
	Label        string
	Level        int
	BreakingOnly bool
}

// RequestedPreset is the control value used when the command line asked for
// a combination no built-in preset covers.
const RequestedPreset = "requested"

// Presets lists the built-in choices in display order.
var Presets = []Preset{
	{Value: "highlights", Label: "Highlighted", Level: 3},
	{Value: "breakingonly", Label: "Potentially-Breaking", Level: 1, BreakingOnly: true},
	{Value: "medium", Label: "Non-Esoteric", Level: 2},
	{Value: "", Label: "", Level: 1},
}

// PresetsFor returns the presets to offer for o and the value that reproduces
// o. When no built-in preset matches, a RequestedPreset entry is appended.
func PresetsFor(o Options) ([]Preset, string) {
	presets := make([]Preset, len(Presets), len(Presets)+1)
	copy(presets, Presets)
	for _, p := range presets {
		if p.Level == o.Level && p.BreakingOnly == o.BreakingOnly {
			return presets, p.Value
		}
	}

	label := strings.Join(o.Adjectives(), " ")
	if label == "" {
		label = "Requested"
	}
	presets = append(presets, Preset{Value: RequestedPreset, Label: label, Level: o.Level, BreakingOnly: o.BreakingOnly})
	return presets, RequestedPreset
}

// Apply returns o with the preset's importance and kind restriction.
func (p Preset) Apply(o Options) Options {
	o.Level = p.Level
	o.BreakingOnly = p.BreakingOnly
	return o
}
