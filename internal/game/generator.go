package game

import "context"

// Generator produces the show's spoken content. Implementations are expected
// to fail with an opaque error; the orchestrator surfaces failures as the
// literal connection-error string and never retries.
type Generator interface {
	RoundTask(ctx context.Context, language string, difficulty Difficulty) (string, error)
	ColorTask(ctx context.Context, color, language string, difficulty Difficulty) (string, error)
	Penalty(ctx context.Context, language string) (string, error)
	LuckFlavor(ctx context.Context, kind LuckKind) (string, error)
	WrongWordPuzzle(ctx context.Context, language string, difficulty Difficulty) (string, error)
	InterviewQuestion(ctx context.Context, language string, difficulty Difficulty) (string, error)
	Riddle(ctx context.Context, language string) (string, error)
}
