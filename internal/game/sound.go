package game

type Cue string

const (
	CueTick        Cue = "tick"
	CueFail        Cue = "fail"
	CueSuccess     Cue = "success"
	CueVictory     Cue = "victory"
	CueAlarm       Cue = "alarm"
	CueTension     Cue = "tension"
	CueTensionStop Cue = "tension-stop"
	CueGameStart   Cue = "game-start"
	CueOrbClick    Cue = "orb-click"
)

// Sink receives sound cues fire-and-forget. Implementations must not call
// back into the orchestrator.
type Sink interface {
	Play(cue Cue)
}

type NopSink struct{}

func (NopSink) Play(Cue) {}
