// Package event defines the fire-and-forget events sent to the analytics
// and notification side channels.
package event

import "time"

type LogType int

const (
	Info LogType = iota
	Analytic
	Warning
	Severe
)

func (t LogType) String() string {
	switch t {
	case Info:
		return "info"
	case Analytic:
		return "analytic"
	case Warning:
		return "warning"
	case Severe:
		return "severe"
	default:
		return "unknown"
	}
}

// LoggableEvent is a named lifecycle event with optional parameters.
type LoggableEvent struct {
	Name       string
	Parameters map[string]any
	Type       LogType
	At         time.Time
}

func New(name string, logType LogType) LoggableEvent {
	return LoggableEvent{Name: name, Type: logType, At: time.Now().UTC()}
}

// With returns a copy carrying an extra parameter.
func (e LoggableEvent) With(key string, value any) LoggableEvent {
	params := make(map[string]any, len(e.Parameters)+1)
	for k, v := range e.Parameters {
		params[k] = v
	}
	params[key] = value
	e.Parameters = params
	return e
}

// Fail builds the severe counterpart of an event carrying the error description.
func Fail(name string, err error) LoggableEvent {
	return New(name, Severe).With("error_description", err.Error())
}

// Notification is a local push to schedule for a user.
type Notification struct {
	UserID string
	Title  string
	Body   string
	At     time.Time
}
