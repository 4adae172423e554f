package comm

import "github.com/itchio/wharf/state"

// NewStateConsumer returns an implementor of `state.Consumer` that prints
// directly to the console via stagehand's logging functions.
func NewStateConsumer() *state.Consumer {
	return &state.Consumer{
		OnProgress:       Progress,
		OnProgressLabel:  ProgressLabel,
		OnPauseProgress:  PauseProgress,
		OnResumeProgress: ResumeProgress,
		OnMessage:        Logl,
	}
}
