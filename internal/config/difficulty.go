package config

import "strings"

// DifficultyTier orders the difficulty labels of the level table.
type DifficultyTier int

const (
	TierUnknown DifficultyTier = iota
	TierTutorial
	TierEasy
	TierMedium
	TierHard
	TierVeryHard
	TierExpert
	TierMaster
)

var tierNames = map[DifficultyTier]string{
	TierTutorial: "Tutorial",
	TierEasy:     "Easy",
	TierMedium:   "Medium",
	TierHard:     "Hard",
	TierVeryHard: "Very Hard",
	TierExpert:   "Expert",
	TierMaster:   "Master",
}

// ParseDifficulty maps a label such as "Very Hard" to its tier.
// Matching ignores case and surrounding spaces.
func ParseDifficulty(label string) DifficultyTier {
	label = strings.TrimSpace(label)
	for tier, name := range tierNames {
		if strings.EqualFold(name, label) {
			return tier
		}
	}
	return TierUnknown
}

// String returns the canonical label.
func (t DifficultyTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Progress returns the tier position in [0, 1], used for color ramps.
func (t DifficultyTier) Progress() float64 {
	if t <= TierTutorial {
		return 0
	}
	return float64(t-TierTutorial) / float64(TierMaster-TierTutorial)
}
