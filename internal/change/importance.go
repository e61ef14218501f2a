package change

import "strings"

var importanceLevels = map[string]int{
	"important": LevelHigh,
	"high":      LevelHigh,
	"highlight": LevelHigh,
	"medium":    LevelMedium,
	"low":       LevelLow,
}

// ParseImportance maps an importance token to a level. Tokens are
// case-sensitive.
func ParseImportance(s string) (int, bool) {
	level, ok := importanceLevels[strings.TrimSpace(s)]
	return level, ok
}

var flagValues = map[string]bool{
	"yes": true, "true": true, "y": true,
	"no": false, "false": false, "n": false,
}

func parseFlag(s string) (bool, bool) {
	v, ok := flagValues[strings.ToLower(strings.TrimSpace(s))]
	return v, ok
}
