package scoring

import "strings"

// Level identifies the difficulty band a learner writes at.
type Level string

// Supported writing levels, labelled the way exercises are catalogued.
const (
	LevelBeginner          Level = "Beginner (A1-A2)"
	LevelIntermediate      Level = "Intermediate (B1)"
	LevelUpperIntermediate Level = "Upper-Intermediate (B2)"
	LevelAdvanced          Level = "Advanced (C1-C2)"
)

var levelMultipliers = map[Level]float64{
	LevelBeginner:          0.8,
	LevelIntermediate:      0.9,
	LevelUpperIntermediate: 1.0,
	LevelAdvanced:          1.1,
}

const defaultMultiplier = 0.9

// Levels returns every supported level in ascending order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelUpperIntermediate, LevelAdvanced}
}

// ParseLevel resolves a label ("Intermediate (B1)"), a bare name
// ("Intermediate") or a slug ("upper-intermediate") to a known level.
func ParseLevel(raw string) (Level, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", false
	}
	normalized = strings.ReplaceAll(normalized, "_", "-")

	for _, level := range Levels() {
		label := strings.ToLower(string(level))
		if normalized == label || normalized == strings.ToLower(level.Name()) {
			return level, true
		}
	}

	switch normalized {
	case "upper intermediate", "upperintermediate":
		return LevelUpperIntermediate, true
	}

	return "", false
}

// Name returns the level without its CEFR suffix, e.g. "Beginner".
func (l Level) Name() string {
	label := string(l)
	if idx := strings.Index(label, " ("); idx > 0 {
		return label[:idx]
	}
	return label
}

// Valid reports whether l is one of the supported levels.
func (l Level) Valid() bool {
	_, ok := levelMultipliers[l]
	return ok
}

func (l Level) multiplier() float64 {
	if m, ok := levelMultipliers[l]; ok {
		return m
	}
	if parsed, ok := ParseLevel(string(l)); ok {
		return levelMultipliers[parsed]
	}
	return defaultMultiplier
}
