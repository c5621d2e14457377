package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCalc struct {
	equation string
	result   float64
}

type fakeRecorder struct {
	records []recordedCalc
}

func (f *fakeRecorder) Record(equation string, result float64) {
	f.records = append(f.records, recordedCalc{equation: equation, result: result})
}

func typeDigits(e *Engine, digits string) {
	for _, d := range digits {
		e.InputDigit(d)
	}
}

func TestInputDigitSequence(t *testing.T) {
	cases := []struct {
		name   string
		digits string
		want   string
	}{
		{"single", "7", "7"},
		{"several", "12345", "12345"},
		{"leading zero collapses", "05", "5"},
		{"repeated zeros", "000", "0"},
		{"zero inside", "1050", "1050"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(nil)
			typeDigits(e, tc.digits)
			assert.Equal(t, tc.want, e.Buffer())
		})
	}
}

func TestInputDigitIgnoresNonDigits(t *testing.T) {
	e := NewEngine(nil)
	e.InputDigit('a')
	e.InputDigit('.')
	assert.Equal(t, ZeroBuffer, e.Buffer())
}

func TestInputDecimal(t *testing.T) {
	e := NewEngine(nil)
	e.InputDecimal()
	assert.Equal(t, "0.", e.Buffer())

	typeDigits(e, "5")
	e.InputDecimal()
	typeDigits(e, "2")
	assert.Equal(t, "0.52", e.Buffer(), "second decimal point is ignored")

	e.InputOperator(Add)
	e.InputDecimal()
	assert.Equal(t, "0.", e.Buffer())
	assert.False(t, e.AwaitingOperand())
}

func TestOperatorReplacement(t *testing.T) {
	e := NewEngine(nil)
	typeDigits(e, "3")
	e.InputOperator(Add)
	e.InputOperator(Multiply)

	require.Equal(t, []Operator{Multiply}, e.Operators())
	assert.Equal(t, []float64{3}, e.Operands())
	assert.True(t, e.AwaitingOperand())
	assert.Equal(t, "3×", e.Expression())
}

func evaluateSequence(t *testing.T, rec Recorder, operands []string, ops []Operator) *Engine {
	t.Helper()
	e := NewEngine(rec)
	for i, v := range operands {
		typeDigits(e, v)
		if i < len(ops) {
			e.InputOperator(ops[i])
		}
	}
	e.Evaluate()
	return e
}

func TestEvaluatePrecedence(t *testing.T) {
	cases := []struct {
		name     string
		operands []string
		ops      []Operator
		want     string
	}{
		{"multiply before add", []string{"2", "3", "4"}, []Operator{Add, Multiply}, "14"},
		{"left to right within tier", []string{"20", "5", "2"}, []Operator{Divide, Multiply}, "8"},
		{"subtract chain", []string{"10", "3", "2"}, []Operator{Subtract, Subtract}, "5"},
		{"mixed tiers", []string{"1", "6", "3", "4"}, []Operator{Add, Divide, Subtract}, "-1"},
		{"division result", []string{"7", "2"}, []Operator{Divide}, "3.5"},
		{"zero sum", []string{"0", "0"}, []Operator{Add}, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := evaluateSequence(t, nil, tc.operands, tc.ops)
			assert.Equal(t, tc.want, e.Buffer())
			assert.True(t, e.ResultShown())
			assert.Empty(t, e.Operands())
			assert.Empty(t, e.Operators())
		})
	}
}

func TestEvaluateFloatArtifact(t *testing.T) {
	e := NewEngine(nil)
	e.InputDecimal()
	typeDigits(e, "1")
	e.InputOperator(Add)
	e.InputDecimal()
	typeDigits(e, "2")
	e.Evaluate()
	assert.Equal(t, "0.30000000000000004", e.Buffer())
}

func TestEvaluateRecordsHistory(t *testing.T) {
	rec := &fakeRecorder{}
	e := evaluateSequence(t, rec, []string{"1200", "34"}, []Operator{Add})

	require.Len(t, rec.records, 1)
	assert.Equal(t, "1,200+34=", rec.records[0].equation)
	assert.Equal(t, 1234.0, rec.records[0].result)
	assert.Equal(t, "1234", e.Buffer())
	assert.Equal(t, "1,234", e.Display())
	assert.Equal(t, "1,200+34=", e.Expression())
}

func TestEvaluateDivideByZero(t *testing.T) {
	rec := &fakeRecorder{}
	e := evaluateSequence(t, rec, []string{"5", "0"}, []Operator{Divide})

	assert.Equal(t, ErrorText, e.Buffer())
	assert.Equal(t, ErrorText, e.Display())
	assert.Equal(t, ErrorText, e.Expression())
	assert.True(t, e.IsError())
	assert.True(t, e.ResultShown())
	assert.Empty(t, e.Operands())
	assert.Empty(t, rec.records, "failed evaluations are not recorded")
}

func TestEvaluateDivideByZeroLaterInChain(t *testing.T) {
	e := evaluateSequence(t, nil, []string{"1", "8", "0"}, []Operator{Add, Divide})
	assert.Equal(t, ErrorText, e.Buffer())
}

func TestEvaluateNoop(t *testing.T) {
	rec := &fakeRecorder{}
	e := NewEngine(rec)
	assert.Equal(t, OutcomeNoop, e.Evaluate())
	assert.Equal(t, ZeroBuffer, e.Buffer())
	assert.False(t, e.ResultShown())

	typeDigits(e, "42")
	assert.Equal(t, OutcomeNoop, e.Evaluate())
	assert.Equal(t, "42", e.Buffer())
	assert.False(t, e.ResultShown())
	assert.Empty(t, rec.records)
}

func TestEvaluateDropsTrailingOperator(t *testing.T) {
	rec := &fakeRecorder{}
	e := NewEngine(rec)
	typeDigits(e, "9")
	e.InputOperator(Multiply)
	assert.Equal(t, OutcomeSuccess, e.Evaluate())
	assert.Equal(t, "9", e.Buffer())
	assert.False(t, e.AwaitingOperand())
	require.Len(t, rec.records, 1)
	assert.Equal(t, "9=", rec.records[0].equation)
}

func TestResultFeedsNextExpression(t *testing.T) {
	e := evaluateSequence(t, nil, []string{"2", "3"}, []Operator{Multiply})
	require.Equal(t, "6", e.Buffer())

	e.InputOperator(Add)
	assert.Equal(t, []float64{6}, e.Operands())
	assert.Equal(t, []Operator{Add}, e.Operators())
	assert.True(t, e.AwaitingOperand())
	assert.False(t, e.ResultShown())

	typeDigits(e, "4")
	e.Evaluate()
	assert.Equal(t, "10", e.Buffer())
}

func TestDigitAfterResultStartsFresh(t *testing.T) {
	e := evaluateSequence(t, nil, []string{"2", "3"}, []Operator{Add})
	typeDigits(e, "7")
	assert.Equal(t, "7", e.Buffer())
	assert.False(t, e.ResultShown())
	assert.Empty(t, e.Expression())

	e = evaluateSequence(t, nil, []string{"5", "0"}, []Operator{Divide})
	typeDigits(e, "1")
	assert.Equal(t, "1", e.Buffer())
	assert.False(t, e.IsError())
}

func TestOperatorAfterErrorUsesZero(t *testing.T) {
	e := evaluateSequence(t, nil, []string{"5", "0"}, []Operator{Divide})
	e.InputOperator(Add)
	assert.Equal(t, []float64{0}, e.Operands())
}

func TestToggleSign(t *testing.T) {
	e := NewEngine(nil)
	e.ToggleSign()
	assert.Equal(t, ZeroBuffer, e.Buffer())

	typeDigits(e, "12")
	e.ToggleSign()
	assert.Equal(t, "-12", e.Buffer())
	e.ToggleSign()
	assert.Equal(t, "12", e.Buffer())

	e.Clear()
	e.InputDecimal()
	e.ToggleSign()
	assert.Equal(t, "0", e.Buffer(), "negative zero prints as 0")
}

func TestPercent(t *testing.T) {
	e := NewEngine(nil)
	e.Percent()
	assert.Equal(t, ZeroBuffer, e.Buffer())

	typeDigits(e, "50")
	e.Percent()
	assert.Equal(t, "0.5", e.Buffer())

	e.Clear()
	typeDigits(e, "3")
	e.Percent()
	assert.Equal(t, "0.03", e.Buffer())
	e.ToggleSign()
	e.Percent()
	assert.Equal(t, "-0.0003", e.Buffer())
}

func TestPercentKeepsPlainDigits(t *testing.T) {
	rec := &fakeRecorder{}
	e := NewEngine(rec)
	typeDigits(e, "1")
	for i := 0; i < 4; i++ {
		e.Percent()
	}
	assert.Equal(t, "0.00000001", e.Buffer())
	assert.Regexp(t, `^-?\d*\.?\d*$`, e.Buffer())

	e.InputDecimal()
	assert.Equal(t, "0.00000001", e.Buffer())
	e.InputOperator(Add)
	typeDigits(e, "1")
	require.Equal(t, OutcomeSuccess, e.Evaluate())
	assert.Equal(t, "1.00000001", e.Buffer())
}

func TestToggleSignKeepsPlainDigits(t *testing.T) {
	e := NewEngine(nil)
	typeDigits(e, "1")
	for i := 0; i < 4; i++ {
		e.Percent()
	}
	e.ToggleSign()
	assert.Equal(t, "-0.00000001", e.Buffer())
	typeDigits(e, "5")
	assert.Equal(t, "-0.000000015", e.Buffer())
}

func TestBackspace(t *testing.T) {
	cases := []struct {
		name  string
		setup func(e *Engine)
		want  string
	}{
		{"single digit", func(e *Engine) { typeDigits(e, "5") }, "0"},
		{"negative single digit", func(e *Engine) { typeDigits(e, "5"); e.ToggleSign() }, "0"},
		{"multi digit", func(e *Engine) { typeDigits(e, "123") }, "12"},
		{"decimal", func(e *Engine) { typeDigits(e, "1"); e.InputDecimal() }, "1"},
		{"zero", func(e *Engine) {}, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(nil)
			tc.setup(e)
			e.Backspace()
			assert.Equal(t, tc.want, e.Buffer())
		})
	}
}

func TestBackspaceNoops(t *testing.T) {
	e := evaluateSequence(t, nil, []string{"5", "0"}, []Operator{Divide})
	e.Backspace()
	assert.Equal(t, ErrorText, e.Buffer())

	e = evaluateSequence(t, nil, []string{"12", "3"}, []Operator{Add})
	e.Backspace()
	assert.Equal(t, "15", e.Buffer(), "results are not editable")

	e = NewEngine(nil)
	typeDigits(e, "12")
	e.InputOperator(Add)
	e.Backspace()
	assert.Equal(t, "12", e.Buffer(), "no editing while awaiting an operand")
}

func TestClearIsIdempotent(t *testing.T) {
	e := NewEngine(nil)
	typeDigits(e, "12")
	e.InputOperator(Subtract)
	typeDigits(e, "4")

	e.Clear()
	once := *e
	e.Clear()

	assert.Equal(t, once, *e)
	assert.Equal(t, ZeroBuffer, e.Buffer())
	assert.Empty(t, e.Operands())
	assert.Empty(t, e.Operators())
	assert.False(t, e.AwaitingOperand())
	assert.False(t, e.ResultShown())
	assert.Empty(t, e.Expression())
}

func TestExpressionTracksLiveEntry(t *testing.T) {
	e := NewEngine(nil)
	typeDigits(e, "1000")
	assert.Empty(t, e.Expression(), "a lone entry has no expression")

	e.InputOperator(Subtract)
	assert.Equal(t, "1,000−", e.Expression())

	typeDigits(e, "25")
	assert.Equal(t, "1,000−25", e.Expression())

	tokens := e.ExpressionTokens()
	require.Len(t, tokens, 3)
	assert.True(t, tokens[1].Operator)
	assert.False(t, tokens[2].Operator)
}

func TestRestore(t *testing.T) {
	e := NewEngine(nil)
	typeDigits(e, "9")
	e.InputOperator(Add)

	e.Restore("1,000+234=", "1,234")
	assert.Equal(t, "1234", e.Buffer())
	assert.Equal(t, "1,234", e.Display())
	assert.Equal(t, "1,000+234=", e.Expression())
	assert.True(t, e.ResultShown())
	assert.False(t, e.AwaitingOperand())
	assert.Empty(t, e.Operands())

	e.InputOperator(Multiply)
	typeDigits(e, "2")
	e.Evaluate()
	assert.Equal(t, "2468", e.Buffer())
}

func TestReduce(t *testing.T) {
	got, err := Reduce([]float64{2, 3, 4, 5}, []Operator{Multiply, Subtract, Divide})
	require.NoError(t, err)
	assert.InDelta(t, 5.2, got, 1e-9)

	_, err = Reduce([]float64{1, 0}, []Operator{Divide})
	assert.ErrorIs(t, err, ErrDivideByZero)

	_, err = Reduce([]float64{1}, []Operator{Add})
	assert.Error(t, err)

	got, err = Reduce(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestTokenizeEquation(t *testing.T) {
	tokens := TokenizeEquation("-2×1e+21÷4=")
	texts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"-2", "×", "1e+21", "÷", "4", "="}, texts)
}
