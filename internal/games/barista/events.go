package barista

// Event is an advisory signal emitted by the session. Nothing in the
// simulation depends on an event being handled.
type Event int

const (
	EventSugarDropped Event = iota
	EventSugarHit
	EventCupCompleted
	EventSugarMissed
	EventOverfill
	EventTimeWarning
	EventLevelComplete
	EventLevelFailed
	EventGameComplete
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventSugarDropped:
		return "sugar_dropped"
	case EventSugarHit:
		return "sugar_hit"
	case EventCupCompleted:
		return "cup_completed"
	case EventSugarMissed:
		return "sugar_missed"
	case EventOverfill:
		return "overfill"
	case EventTimeWarning:
		return "time_warning"
	case EventLevelComplete:
		return "level_complete"
	case EventLevelFailed:
		return "level_failed"
	case EventGameComplete:
		return "game_complete"
	default:
		return "unknown"
	}
}

// Sound names understood by SoundPlayer implementations.
const (
	SoundSugarDrop     = "sugar_drop"
	SoundSuccessHit    = "success_hit"
	SoundSugarSplash   = "sugar_splash"
	SoundOverfill      = "overfill"
	SoundTimeWarning   = "time_warning"
	SoundLevelComplete = "level_complete"
	SoundLevelFail     = "level_fail"
)

// SoundName maps an event to its sound effect, or "" for silent events.
func (e Event) SoundName() string {
	switch e {
	case EventSugarDropped:
		return SoundSugarDrop
	case EventSugarHit:
		return SoundSuccessHit
	case EventSugarMissed:
		return SoundSugarSplash
	case EventOverfill:
		return SoundOverfill
	case EventTimeWarning:
		return SoundTimeWarning
	case EventLevelComplete, EventGameComplete:
		return SoundLevelComplete
	case EventLevelFailed:
		return SoundLevelFail
	default:
		return ""
	}
}

// EventSink receives session events.
type EventSink interface {
	Emit(e Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// Emit calls f(e).
func (f EventSinkFunc) Emit(e Event) { f(e) }

// NopSink discards every event.
type NopSink struct{}

// Emit does nothing.
func (NopSink) Emit(Event) {}

// EventRecorder buffers events until they are drained.
type EventRecorder struct {
	events []Event
}

// Emit appends e to the buffer.
func (r *EventRecorder) Emit(e Event) {
	r.events = append(r.events, e)
}

// Drain returns buffered events and empties the buffer.
func (r *EventRecorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}

// Count returns how many buffered events equal e.
func (r *EventRecorder) Count(e Event) int {
	n := 0
	for _, got := range r.events {
		if got == e {
			n++
		}
	}
	return n
}
