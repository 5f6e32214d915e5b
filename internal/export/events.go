package export

import (
	"log"
	"time"
)

// Stage names a step of the export sequence.
type Stage string

const (
	StageMount     Stage = "mount"
	StageFonts     Stage = "fonts"
	StageImages    Stage = "images"
	StageRasterize Stage = "rasterize"
	StageComplete  Stage = "complete"
	StageFailed    Stage = "failed"
	StageRejected  Stage = "rejected"
)

// Terminal reports whether no further events follow this stage.
func (s Stage) Terminal() bool {
	return s == StageComplete || s == StageFailed || s == StageRejected
}

// Event is one progress notification.
type Event struct {
	ExportID string    `json:"exportId"`
	Stage    Stage     `json:"stage"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// Notifier receives export events. It is called synchronously from the export goroutine.
type Notifier func(Event)

func (p *Pipeline) emitter(id string, job Notifier) func(Stage, string) {
	return func(stage Stage, msg string) {
		ev := Event{ExportID: id, Stage: stage, Message: msg, Time: time.Now()}
		if p.verbose {
			log.Printf("[EXPORT] %s %s: %s", id, stage, msg)
		}
		if p.notify != nil {
			p.notify(ev)
		}
		if job != nil {
			job(ev)
		}
	}
}
