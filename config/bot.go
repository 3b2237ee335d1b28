package config

// BotDifficulty affects reaction time and decision quality
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds tuning values for bot behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay int     // Frames between decisions
	ShotRange     float64 // Distance to the goal mouth at which the bot shoots
	ShotSpeed     float64 // Puck speed of a shot
	JoltRange     float64 // Distance to the puck holder at which the bot jolts
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay: 20, // 1/3 second at 60 fps
				ShotRange:     120,
				ShotSpeed:     6,
				JoltRange:     0, // never jolts
			},
			BotDifficultyNormal: {
				ReactionDelay: 8,
				ShotRange:     180,
				ShotSpeed:     7, // same as the browser client
				JoltRange:     90,
			},
			BotDifficultyHard: {
				ReactionDelay: 2,
				ShotRange:     260,
				ShotSpeed:     9,
				JoltRange:     140,
			},
		},
	}
}

// ParseBotDifficulty maps a flag value to a difficulty, defaulting to normal.
func ParseBotDifficulty(s string) BotDifficulty {
	switch s {
	case "easy":
		return BotDifficultyEasy
	case "hard":
		return BotDifficultyHard
	}
	return BotDifficultyNormal
}
