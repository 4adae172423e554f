package comm

import (
	"fmt"
	"log"
	"time"
)

// Launches block on a child process for their whole lifetime, so progress
// here is plain throttled percentage lines rather than a live bar: the only
// long-running operation is a download, and its output has to survive being
// piped into a build log.

var progressActive = false
var lastProgressAlpha = 0.0

var lastPrintTime time.Time
var maxPrintDuration = 500 * time.Millisecond

// StartProgress begins a period in which progress is regularly printed
func StartProgress() {
	progressActive = true
	lastProgressAlpha = 0.0
	lastPrintTime = time.Time{}
}

// Progress sets the completion of a task whose progress is being printed.
// It only has an effect if StartProgress was already called.
func Progress(alpha float64) {
	lastProgressAlpha = alpha

	if !progressActive {
		return
	}

	if lastPrintTime.IsZero() {
		lastPrintTime = time.Now()
	}
	if time.Since(lastPrintTime) < maxPrintDuration {
		return
	}
	lastPrintTime = time.Now()

	if settings.json {
		send("progress", jsonMessage{
			"progress":   alpha,
			"percentage": alpha * 100.0,
		})
	} else if !settings.quiet && !settings.noProgress {
		log.Println(fmt.Sprintf("%.1f%%", alpha*100.0))
	}
}

// ProgressLabel gives extra info about which task is currently being executed
func ProgressLabel(label string) {
	if progressActive {
		Debugf("%s", label)
	}
}

// PauseProgress temporarily stops printing progress
func PauseProgress() {
	progressActive = false
}

// ResumeProgress resumes printing progress after PauseProgress was called
func ResumeProgress() {
	progressActive = true
}

// EndProgress stops printing progress
func EndProgress() {
	progressActive = false
}
