package models

// State is a stage of the campaign pipeline.
type State string

const (
	NotStarted          State = "not_started"
	Researching         State = "researching"
	CreatingContent     State = "creating_content"
	ReviewingCompliance State = "reviewing_compliance"
	Assembling          State = "assembling"
	Completed           State = "completed" // terminal
	Failed              State = "failed"    // terminal
)

var transitions = map[State][]State{
	NotStarted:          {Researching, Failed},
	Researching:         {CreatingContent, Failed},
	CreatingContent:     {ReviewingCompliance, Failed},
	ReviewingCompliance: {Assembling, Failed},
	Assembling:          {Completed, Failed},
}

// CanTransition reports whether the pipeline may move from s to next.
// Failure out of ReviewingCompliance is only reachable through an unexpected
// panic; a failed compliance run is tolerated and moves on to Assembling.
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s State) Terminal() bool {
	return s == Completed || s == Failed
}
