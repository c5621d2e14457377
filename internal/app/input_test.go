package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/tcalc/internal/calc"
	"github.com/vidyasagar/tcalc/internal/ui"
)

func TestEventForKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want Event
	}{
		{runeKey('7'), Event{Action: ActionDigit, Digit: '7'}},
		{runeKey('.'), Event{Action: ActionDecimal}},
		{runeKey('+'), Event{Action: ActionOperator, Operator: calc.Add}},
		{runeKey('-'), Event{Action: ActionOperator, Operator: calc.Subtract}},
		{runeKey('*'), Event{Action: ActionOperator, Operator: calc.Multiply}},
		{runeKey('x'), Event{Action: ActionOperator, Operator: calc.Multiply}},
		{runeKey('÷'), Event{Action: ActionOperator, Operator: calc.Divide}},
		{runeKey('='), Event{Action: ActionEvaluate}},
		{tea.KeyMsg{Type: tea.KeyEnter}, Event{Action: ActionEvaluate}},
		{tea.KeyMsg{Type: tea.KeyBackspace}, Event{Action: ActionBackspace}},
		{tea.KeyMsg{Type: tea.KeyEsc}, Event{Action: ActionClear}},
		{runeKey('%'), Event{Action: ActionPercent}},
		{runeKey('n'), Event{Action: ActionToggleSign}},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			got, ok := EventForKey(keys, tt.msg)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, r := range []rune{'z', ','} {
		_, ok := EventForKey(keys, runeKey(r))
		assert.False(t, ok, string(r))
	}
}

func TestEventLabelsMatchKeypad(t *testing.T) {
	labels := map[string]bool{}
	keypad := ui.NewKeypad()
	for _, row := range keypad.Rows() {
		for _, b := range row {
			labels[b.Label] = true
		}
	}
	events := []Event{
		{Action: ActionDigit, Digit: '0'},
		{Action: ActionDecimal},
		{Action: ActionOperator, Operator: calc.Subtract},
		{Action: ActionOperator, Operator: calc.Divide},
		{Action: ActionEvaluate},
		{Action: ActionBackspace},
		{Action: ActionClear},
		{Action: ActionPercent},
		{Action: ActionToggleSign},
	}
	for _, ev := range events {
		assert.True(t, labels[ev.Label()], "no keypad button for %q", ev.Label())
	}
}

func TestParseKeysAndRun(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		input   string
		want    string
		outcome calc.Outcome
	}{
		{"2+3*4=", "14", calc.OutcomeSuccess},
		{"2 + 3 * 4", "14", calc.OutcomeSuccess},
		{"10/4", "2.5", calc.OutcomeSuccess},
		{"0.1+0.2", "0.30000000000000004", calc.OutcomeSuccess},
		{"5/0", calc.ErrorText, calc.OutcomeError},
		{"42", "42", calc.OutcomeNoop},
		{"50%", "0.5", calc.OutcomeNoop},
		{"9n+1", "-8", calc.OutcomeSuccess},
		{"1,234+1=", "1235", calc.OutcomeSuccess},
		{"1,000.5*2", "2001", calc.OutcomeSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			events, err := ParseKeys(keys, tt.input)
			require.NoError(t, err)

			e := calc.NewEngine(nil)
			assert.Equal(t, tt.outcome, Run(e, events))
			assert.Equal(t, tt.want, e.Buffer())
		})
	}
}

func TestParseKeysRejectsUnknown(t *testing.T) {
	_, err := ParseKeys(DefaultKeyMap(), "2+y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position 3")
}
