package interaction

import (
	"fmt"
	"strconv"
	"strings"
)

// EventKind is a pointer action.
type EventKind string

const (
	Down EventKind = "down"
	Move EventKind = "move"
	Up   EventKind = "up"
)

// Event is one recorded pointer action. Up carries no coordinates.
type Event struct {
	Kind EventKind
	X, Y float64
}

// ParseEvents reads a script of pointer actions separated by semicolons,
// e.g. "down 100,50; move 300,60; up".
func ParseEvents(script string) ([]Event, error) {
	var events []Event
	for i, step := range strings.Split(script, ";") {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		kind, args, _ := strings.Cut(step, " ")
		ev := Event{Kind: EventKind(strings.ToLower(kind))}

		switch ev.Kind {
		case Up:
			if strings.TrimSpace(args) != "" {
				return nil, fmt.Errorf("event %d: up takes no coordinates", i+1)
			}
		case Down, Move:
			x, y, err := parsePoint(args)
			if err != nil {
				return nil, fmt.Errorf("event %d: %w", i+1, err)
			}
			ev.X, ev.Y = x, y
		default:
			return nil, fmt.Errorf("event %d: unknown action %q (valid: down, move, up)", i+1, kind)
		}
		events = append(events, ev)
	}
	return events, nil
}

func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("want x,y, got %q", strings.TrimSpace(s))
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing y: %w", err)
	}
	return x, y, nil
}

// Replay feeds events to the controller in order.
func (c *Controller) Replay(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case Down:
			c.PointerDown(ev.X, ev.Y)
		case Move:
			c.PointerMove(ev.X, ev.Y)
		case Up:
			c.PointerUp()
		}
	}
}
