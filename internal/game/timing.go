package game

import "time"

// Timing holds every scheduled delay the orchestrator uses. Tests shrink
// these to keep the scheduled-callback paths fast.
type Timing struct {
	Transition   time.Duration
	Reveal       time.Duration
	Grace        time.Duration
	TimeoutDrop  time.Duration
	JokerRisk    time.Duration
	Tick         time.Duration
	FetchTimeout time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		Transition:   4 * time.Second,
		Reveal:       1500 * time.Millisecond,
		Grace:        2 * time.Second,
		TimeoutDrop:  2500 * time.Millisecond,
		JokerRisk:    time.Second,
		Tick:         time.Second,
		FetchTimeout: 30 * time.Second,
	}
}

const (
	punishmentSeconds = 20
	jokerRiskSeconds  = 30
	wrongWordSeconds  = 60
	querySeconds      = 45
	riddleSeconds     = 90
)

func taskBaseSeconds(difficulty Difficulty) int {
	switch difficulty {
	case DifficultyEasy:
		return 60
	case DifficultyHard:
		return 30
	case DifficultyExpert:
		return 20
	default:
		return 45
	}
}
