package app

import (
	"fmt"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/ui"
)

// Action is a calculator input, independent of where it came from.
type Action int

const (
	ActionDigit Action = iota
	ActionDecimal
	ActionOperator
	ActionEvaluate
	ActionBackspace
	ActionClear
	ActionPercent
	ActionToggleSign
)

// Event is one calculator input. Digit is set for ActionDigit and Operator
// for ActionOperator.
type Event struct {
	Action   Action
	Digit    rune
	Operator calc.Operator
}

// Label returns the keypad button the event corresponds to.
func (ev Event) Label() string {
	switch ev.Action {
	case ActionDigit:
		return string(ev.Digit)
	case ActionDecimal:
		return ui.LabelDecimal
	case ActionOperator:
		return ev.Operator.Symbol()
	case ActionEvaluate:
		return ui.LabelEquals
	case ActionBackspace:
		return ui.LabelBackspace
	case ActionClear:
		return ui.LabelClear
	case ActionPercent:
		return ui.LabelPercent
	case ActionToggleSign:
		return ui.LabelToggleSign
	}
	return ""
}

// Apply feeds ev to the engine. The outcome is OutcomeNoop for everything
// but evaluation.
func Apply(e *calc.Engine, ev Event) calc.Outcome {
	switch ev.Action {
	case ActionDigit:
		e.InputDigit(ev.Digit)
	case ActionDecimal:
		e.InputDecimal()
	case ActionOperator:
		e.InputOperator(ev.Operator)
	case ActionEvaluate:
		return e.Evaluate()
	case ActionBackspace:
		e.Backspace()
	case ActionClear:
		e.Clear()
	case ActionPercent:
		e.Percent()
	case ActionToggleSign:
		e.ToggleSign()
	}
	return calc.OutcomeNoop
}

// EventForKey maps a key press in calculator mode to an input event.
func EventForKey(keys KeyMap, msg tea.KeyMsg) (Event, bool) {
	switch {
	case key.Matches(msg, keys.Digit):
		return Event{Action: ActionDigit, Digit: []rune(msg.String())[0]}, true
	case key.Matches(msg, keys.Decimal):
		return Event{Action: ActionDecimal}, true
	case key.Matches(msg, keys.Add):
		return Event{Action: ActionOperator, Operator: calc.Add}, true
	case key.Matches(msg, keys.Subtract):
		return Event{Action: ActionOperator, Operator: calc.Subtract}, true
	case key.Matches(msg, keys.Multiply):
		return Event{Action: ActionOperator, Operator: calc.Multiply}, true
	case key.Matches(msg, keys.Divide):
		return Event{Action: ActionOperator, Operator: calc.Divide}, true
	case key.Matches(msg, keys.Evaluate):
		return Event{Action: ActionEvaluate}, true
	case key.Matches(msg, keys.Backspace):
		return Event{Action: ActionBackspace}, true
	case key.Matches(msg, keys.Clear):
		return Event{Action: ActionClear}, true
	case key.Matches(msg, keys.Percent):
		return Event{Action: ActionPercent}, true
	case key.Matches(msg, keys.ToggleSign):
		return Event{Action: ActionToggleSign}, true
	}

	// Display symbols pasted or typed on keyboards that have them.
	if op, ok := calc.ParseOperator(msg.String()); ok {
		return Event{Action: ActionOperator, Operator: op}, true
	}
	return Event{}, false
}

// ParseKeys turns a typed key sequence such as "12+3*4=" into events, using
// the same bindings as the interactive calculator. Whitespace and thousands
// separators are ignored, so displayed values can be pasted back in.
func ParseKeys(keys KeyMap, s string) ([]Event, error) {
	var events []Event
	for i, r := range []rune(s) {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		ev, ok := EventForKey(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		if !ok {
			return nil, fmt.Errorf("unexpected %q at position %d", r, i+1)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Run applies events in order and returns the outcome of the last evaluation.
// A sequence that does not end in an evaluation is evaluated once more.
func Run(e *calc.Engine, events []Event) calc.Outcome {
	outcome := calc.OutcomeNoop
	evaluated := false
	for _, ev := range events {
		out := Apply(e, ev)
		evaluated = ev.Action == ActionEvaluate
		if evaluated {
			outcome = out
		}
	}
	if !evaluated {
		outcome = e.Evaluate()
	}
	return outcome
}
