package testutil

import (
	"strings"
)

// SSEEvent is one parsed server-sent event.
type SSEEvent struct {
	Event string
	Data  string
}

// ParseSSEEvents parses a raw SSE response body into events.
//
// Handles the subset of the SSE format the server emits: "event:" and
// "data:" lines separated by blank lines. Multi-line data fields are
// joined with newlines per the SSE specification.
func ParseSSEEvents(body string) []SSEEvent {
	events := []SSEEvent{}
	var current SSEEvent
	var dataLines []string

	flush := func() {
		if current.Event == "" && len(dataLines) == 0 {
			return
		}
		current.Data = strings.Join(dataLines, "\n")
		events = append(events, current)
		current = SSEEvent{}
		dataLines = nil
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "event:"):
			current.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	flush()
	return events
}

// FindEvent returns the first event with the given name, or nil.
func FindEvent(events []SSEEvent, name string) *SSEEvent {
	for i := range events {
		if events[i].Event == name {
			return &events[i]
		}
	}
	return nil
}

// FindAllEvents returns all events with the given name.
func FindAllEvents(events []SSEEvent, name string) []SSEEvent {
	out := []SSEEvent{}
	for _, ev := range events {
		if ev.Event == name {
			out = append(out, ev)
		}
	}
	return out
}
