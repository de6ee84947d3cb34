// Package journey — levels.go maps the lifetime reading count to a level
// label. The mapping is policy, not engineering: the service takes it as
// an injected LevelFunc so product can swap thresholds without touching
// the engine. DefaultLevel is the policy the bot ships with.
package journey

// LevelFunc derives a level label from the lifetime reading count.
// Must be pure and monotonic: more readings never demote.
type LevelFunc func(totalReadings int) string

// BaseLevel is the label a freshly created profile starts with.
const BaseLevel = "Seeker"

// levelSteps — thresholds in ascending order; the last step whose
// minimum is <= totalReadings wins.
var levelSteps = []struct {
	min   int
	label string
}{
	{0, BaseLevel},
	{5, "Novice"},
	{15, "Apprentice"},
	{40, "Adept"},
	{90, "Mystic"},
	{200, "Oracle"},
}

// DefaultLevel is the built-in level policy.
//
//	0-4    Seeker
//	5-14   Novice
//	15-39  Apprentice
//	40-89  Adept
//	90-199 Mystic
//	200+   Oracle
func DefaultLevel(totalReadings int) string {
	label := BaseLevel
	for _, step := range levelSteps {
		if totalReadings < step.min {
			break
		}
		label = step.label
	}
	return label
}
