package domain

// Difficulty is the skill tier of a milestone or candidate.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Level maps a difficulty to an ordinal for distance comparisons.
// Unknown difficulties land on intermediate.
func (d Difficulty) Level() int {
	switch d {
	case DifficultyBeginner:
		return 0
	case DifficultyAdvanced:
		return 2
	default:
		return 1
	}
}

// Valid reports whether d is one of the three known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Milestone is one ordered step of a roadmap. Ordering is significant:
// earlier milestones get first pick of the highest-relevance content.
type Milestone struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	Order       int        `json:"order"`
}
