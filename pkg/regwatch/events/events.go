// Package events carries structured log records from the extraction core
// to whatever logger the host process configures.
package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// Level is the severity of an event.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a single structured log record.
type Event struct {
	Level   Level
	Message string
	Fields  map[string]any
	Err     error
}

func newEvent(level Level, msg string) Event {
	return Event{Level: level, Message: msg}
}

// Debug starts a debug event.
func Debug(msg string) Event { return newEvent(LevelDebug, msg) }

// Info starts an info event.
func Info(msg string) Event { return newEvent(LevelInfo, msg) }

// Warn starts a warning event.
func Warn(msg string) Event { return newEvent(LevelWarn, msg) }

// Error starts an error event.
func Error(msg string) Event { return newEvent(LevelError, msg) }

// With returns a copy of e with key set to value.
func (e Event) With(key string, value any) Event {
	fields := make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[key] = value
	e.Fields = fields
	return e
}

// WithErr returns a copy of e carrying err.
func (e Event) WithErr(err error) Event {
	e.Err = err
	return e
}

// Sink receives events.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// WithFields returns a sink that adds fields to every event before
// forwarding it to s.
func WithFields(s Sink, fields map[string]any) Sink {
	return SinkFunc(func(e Event) {
		for k, v := range fields {
			if _, ok := e.Fields[k]; !ok {
				e = e.With(k, v)
			}
		}
		s.Emit(e)
	})
}

type zerologSink struct {
	logger zerolog.Logger
}

// Zerolog returns a sink writing to logger.
func Zerolog(logger zerolog.Logger) Sink {
	return zerologSink{logger: logger}
}

func (s zerologSink) Emit(e Event) {
	ev := s.logger.WithLevel(zerologLevel(e.Level))
	if len(e.Fields) > 0 {
		ev = ev.Fields(e.Fields)
	}
	if e.Err != nil {
		ev = ev.Err(e.Err)
	}
	ev.Msg(e.Message)
}

func zerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Recorder keeps every event in memory. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit records e.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	events := r.Events()
	msgs := make([]string, len(events))
	for i, e := range events {
		msgs[i] = e.Message
	}
	return msgs
}

// Find returns the first event with the given message.
func (r *Recorder) Find(msg string) (Event, bool) {
	for _, e := range r.Events() {
		if e.Message == msg {
			return e, true
		}
	}
	return Event{}, false
}
