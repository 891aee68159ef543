package config

import (
	_ "embed"
)

//go:embed defaults/barista.yaml
var defaultBaristaYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultBaristaYAML
}

// DefaultBaristaConfig returns the hardcoded default configuration.
// It mirrors defaults/barista.yaml and is used if the embed cannot be parsed.
func DefaultBaristaConfig() BaristaConfig {
	return BaristaConfig{
		World: WorldConfig{
			Width:         1280,
			Height:        720,
			FloorOffset:   50,
			TimeWarningAt: 10,
		},
		Sugar: SugarConfig{
			Size:           16,
			Gravity:        180,
			InitialVY:      5,
			DriftRange:     20,
			Damping:        0.995,
			SpinRange:      8,
			SplashDuration: 0.3,
			BounceDuration: 0.5,
			BounceHeight:   30,
			MaxLifetime:    5,
		},
		Cups: CupConfig{
			Y:              520,
			SlotGap:        50,
			OffscreenLead:  200,
			OverfillFlash:  0.3,
			PixelsPerSpeed: 60,
			Sizes: []CupSize{
				{Name: "small", Width: 70, Height: 60},
				{Name: "medium", Width: 90, Height: 75},
				{Name: "large", Width: 110, Height: 90},
			},
			Distribution: []float64{0.3, 0.5, 0.2},
			Names: []string{
				"John", "Caitlyn", "Paul", "Sarah", "Mike", "Emma", "Alex", "Lisa",
				"David", "Anna", "Tom", "Maria", "Chris", "Kate", "Sam", "Nina",
				"Josh", "Amy", "Ben", "Zoe", "Max", "Lily", "Luke", "Eva",
				"Ryan", "Maya", "Jake", "Mia", "Leo", "Ava", "Owen", "Sophie",
			},
		},
		Hand: HandConfig{
			X:              640,
			Y:              10,
			Height:         110,
			DropOffset:     10,
			DropDuration:   0.2,
			ReturnDuration: 0.3,
		},
		Conveyor: ConveyorConfig{
			TextureWidth: 256,
			Height:       40,
		},
		Levels: []LevelConfig{
			{Level: 1, Time: 60, Speed: 1.3, Cups: 3, TotalSugar: [2]int{5, 6}, Difficulty: "Tutorial"},
			{Level: 2, Time: 60, Speed: 1.4, Cups: 4, TotalSugar: [2]int{7, 8}, Difficulty: "Easy"},
			{Level: 3, Time: 60, Speed: 1.5, Cups: 5, TotalSugar: [2]int{9, 10}, Difficulty: "Easy"},
			{Level: 4, Time: 60, Speed: 1.6, Cups: 6, TotalSugar: [2]int{11, 12}, Difficulty: "Medium"},
			{Level: 5, Time: 60, Speed: 1.7, Cups: 7, TotalSugar: [2]int{13, 14}, Difficulty: "Medium"},
			{Level: 6, Time: 55, Speed: 1.8, Cups: 8, TotalSugar: [2]int{15, 16}, Difficulty: "Medium"},
			{Level: 7, Time: 55, Speed: 1.9, Cups: 9, TotalSugar: [2]int{17, 18}, Difficulty: "Hard"},
			{Level: 8, Time: 50, Speed: 2.0, Cups: 10, TotalSugar: [2]int{19, 20}, Difficulty: "Hard"},
			{Level: 9, Time: 50, Speed: 2.1, Cups: 11, TotalSugar: [2]int{21, 23}, Difficulty: "Hard"},
			{Level: 10, Time: 45, Speed: 2.2, Cups: 12, TotalSugar: [2]int{24, 26}, Difficulty: "Very Hard"},
			{Level: 11, Time: 45, Speed: 2.3, Cups: 13, TotalSugar: [2]int{27, 29}, Difficulty: "Very Hard"},
			{Level: 12, Time: 40, Speed: 2.4, Cups: 14, TotalSugar: [2]int{30, 32}, Difficulty: "Expert"},
			{Level: 13, Time: 40, Speed: 2.5, Cups: 15, TotalSugar: [2]int{33, 35}, Difficulty: "Expert"},
			{Level: 14, Time: 35, Speed: 2.6, Cups: 16, TotalSugar: [2]int{36, 38}, Difficulty: "Expert"},
			{Level: 15, Time: 35, Speed: 2.8, Cups: 17, TotalSugar: [2]int{39, 42}, Difficulty: "Master"},
		},
	}
}
