// Package calc implements the calculator's expression engine: a state machine
// that accumulates digit and operator input into a flat expression and
// evaluates it with multiply/divide taking precedence over add/subtract.
package calc

import (
	"errors"
	"strings"
)

const (
	// ZeroBuffer is the canonical empty entry.
	ZeroBuffer = "0"
	// ErrorText is shown after a failed evaluation.
	ErrorText = "Error"
	// EqualsMarker terminates the equation text of a finished calculation.
	EqualsMarker = "="
)

// ErrDivideByZero is the only failure the evaluator recognizes.
var ErrDivideByZero = errors.New("division by zero")

// Recorder receives every successful evaluation.
type Recorder interface {
	Record(equation string, result float64)
}

// Outcome describes what Evaluate did.
type Outcome int

const (
	OutcomeNoop Outcome = iota
	OutcomeSuccess
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	default:
		return "noop"
	}
}

// Token is one piece of the pending expression line.
type Token struct {
	Text     string
	Operator bool
}

// Engine holds the calculator state. The zero value is not ready; use NewEngine.
type Engine struct {
	buffer          string
	operands        []float64
	operators       []Operator
	awaitingOperand bool
	resultShown     bool

	// expression is what the expression line shows; it is recomputed after
	// every input except Evaluate and Restore, which set it explicitly.
	expression []Token

	recorder Recorder
}

// NewEngine returns an engine in the initial state. rec may be nil.
func NewEngine(rec Recorder) *Engine {
	e := &Engine{recorder: rec}
	e.Clear()
	return e
}

// SetRecorder replaces the history recorder.
func (e *Engine) SetRecorder(rec Recorder) {
	e.recorder = rec
}

// InputDigit types one digit. Characters outside 0-9 are ignored.
func (e *Engine) InputDigit(d rune) {
	if d < '0' || d > '9' {
		return
	}
	digit := string(d)

	switch {
	case e.resultShown:
		e.buffer = digit
		e.resultShown = false
	case e.awaitingOperand:
		e.buffer = digit
		e.awaitingOperand = false
	case e.buffer == ZeroBuffer:
		e.buffer = digit
	default:
		e.buffer += digit
	}
	e.refreshExpression()
}

// InputDecimal types a decimal point, starting a fresh "0." entry when the
// buffer is being replaced.
func (e *Engine) InputDecimal() {
	switch {
	case e.resultShown:
		e.buffer = "0."
		e.resultShown = false
	case e.awaitingOperand:
		e.buffer = "0."
		e.awaitingOperand = false
	case !strings.Contains(e.buffer, "."):
		e.buffer += "."
	}
	e.refreshExpression()
}

// InputOperator commits the buffer as an operand followed by op. Entering an
// operator right after another one replaces it.
func (e *Engine) InputOperator(op Operator) {
	switch {
	case e.resultShown:
		e.operands = []float64{ParseNumber(e.buffer)}
		e.operators = []Operator{op}
		e.awaitingOperand = true
		e.resultShown = false
	case e.awaitingOperand && len(e.operators) > 0:
		e.operators[len(e.operators)-1] = op
	default:
		e.operands = append(e.operands, ParseNumber(e.buffer))
		e.operators = append(e.operators, op)
		e.awaitingOperand = true
	}
	e.refreshExpression()
}

// ToggleSign negates the entry.
func (e *Engine) ToggleSign() {
	if e.buffer == ZeroBuffer || e.buffer == ErrorText {
		return
	}
	e.buffer = FormatEntry(-ParseNumber(e.buffer))
	e.refreshExpression()
}

// Percent divides the entry by 100.
func (e *Engine) Percent() {
	if e.buffer == ZeroBuffer || e.buffer == ErrorText {
		return
	}
	e.buffer = FormatEntry(ParseNumber(e.buffer) / 100)
	e.refreshExpression()
}

// Backspace removes the last typed character. It does nothing on a fresh
// result, an error, or while waiting for the next operand.
func (e *Engine) Backspace() {
	if e.buffer == ZeroBuffer || e.buffer == ErrorText || e.awaitingOperand || e.resultShown {
		return
	}
	trimmed := e.buffer[:len(e.buffer)-1]
	if trimmed == "" || trimmed == "-" {
		trimmed = ZeroBuffer
	}
	e.buffer = trimmed
	e.refreshExpression()
}

// Clear resets everything to the initial state.
func (e *Engine) Clear() {
	e.buffer = ZeroBuffer
	e.operands = nil
	e.operators = nil
	e.awaitingOperand = false
	e.resultShown = false
	e.expression = nil
}

// Evaluate closes the pending expression and computes it. A bare number with
// no pending operator is left alone.
func (e *Engine) Evaluate() Outcome {
	if len(e.operands) == 0 {
		return OutcomeNoop
	}

	if !e.awaitingOperand && !e.resultShown {
		e.operands = append(e.operands, ParseNumber(e.buffer))
	}
	// A trailing operator with no operand after it is dropped.
	if len(e.operators) >= len(e.operands) {
		e.operators = e.operators[:len(e.operands)-1]
	}

	equation := append(e.committedTokens(), Token{Text: EqualsMarker, Operator: true})

	result, err := Reduce(e.operands, e.operators)

	e.operands = nil
	e.operators = nil
	e.awaitingOperand = false
	e.resultShown = true

	if err != nil {
		e.buffer = ErrorText
		e.expression = []Token{{Text: ErrorText}}
		return OutcomeError
	}

	e.buffer = FormatNumber(result)
	e.expression = equation
	if e.recorder != nil {
		e.recorder.Record(JoinTokens(equation), result)
	}
	return OutcomeSuccess
}

// Restore shows a previously computed result as if it had just been
// evaluated, without recomputing anything.
func (e *Engine) Restore(equation, result string) {
	e.buffer = StripGrouping(result)
	e.operands = nil
	e.operators = nil
	e.awaitingOperand = false
	e.resultShown = true
	e.expression = TokenizeEquation(equation)
}

// Reduce computes operands joined by operators: multiply and divide fold
// left to right into running terms first, then add and subtract fold the
// terms left to right.
func Reduce(operands []float64, operators []Operator) (float64, error) {
	if len(operands) == 0 {
		return 0, nil
	}
	if len(operators) != len(operands)-1 {
		return 0, errors.New("operand/operator count mismatch")
	}

	terms := []float64{operands[0]}
	var joins []Operator
	for i, op := range operators {
		next := operands[i+1]
		last := len(terms) - 1
		switch op {
		case Multiply:
			terms[last] *= next
		case Divide:
			if next == 0 {
				return 0, ErrDivideByZero
			}
			terms[last] /= next
		default:
			terms = append(terms, next)
			joins = append(joins, op)
		}
	}

	result := terms[0]
	for i, op := range joins {
		if op == Subtract {
			result -= terms[i+1]
		} else {
			result += terms[i+1]
		}
	}
	return result, nil
}

// Buffer returns the raw entry text.
func (e *Engine) Buffer() string { return e.buffer }

// Display returns the entry text with thousands separators.
func (e *Engine) Display() string { return FormatDisplay(e.buffer) }

// Operands returns a copy of the committed operands.
func (e *Engine) Operands() []float64 {
	return append([]float64(nil), e.operands...)
}

// Operators returns a copy of the pending operators.
func (e *Engine) Operators() []Operator {
	return append([]Operator(nil), e.operators...)
}

// AwaitingOperand reports whether an operator was just entered.
func (e *Engine) AwaitingOperand() bool { return e.awaitingOperand }

// ResultShown reports whether the display holds a finished result or error.
func (e *Engine) ResultShown() bool { return e.resultShown }

// IsError reports whether the last evaluation failed.
func (e *Engine) IsError() bool { return e.buffer == ErrorText }

// ExpressionTokens returns the tokens of the expression line.
func (e *Engine) ExpressionTokens() []Token {
	return append([]Token(nil), e.expression...)
}

// Expression returns the expression line as plain text.
func (e *Engine) Expression() string {
	return JoinTokens(e.expression)
}

// JoinTokens concatenates token text.
func JoinTokens(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// TokenizeEquation splits stored equation text back into operand and
// operator tokens.
func TokenizeEquation(s string) []Token {
	var tokens []Token
	var cur strings.Builder
	var prev rune
	for _, r := range s {
		if IsOperatorSymbol(r) && !(r == '+' && prev == 'e') {
			if cur.Len() > 0 {
				tokens = append(tokens, Token{Text: cur.String()})
				cur.Reset()
			}
			tokens = append(tokens, Token{Text: string(r), Operator: true})
		} else {
			cur.WriteRune(r)
		}
		prev = r
	}
	if cur.Len() > 0 {
		tokens = append(tokens, Token{Text: cur.String()})
	}
	return tokens
}

func (e *Engine) committedTokens() []Token {
	tokens := make([]Token, 0, len(e.operands)+len(e.operators))
	for i, v := range e.operands {
		tokens = append(tokens, Token{Text: FormatDisplay(FormatNumber(v))})
		if i < len(e.operators) {
			tokens = append(tokens, Token{Text: e.operators[i].Symbol(), Operator: true})
		}
	}
	return tokens
}

func (e *Engine) refreshExpression() {
	tokens := e.committedTokens()
	if !e.awaitingOperand && !e.resultShown && len(e.operands) > 0 {
		tokens = append(tokens, Token{Text: FormatDisplay(e.buffer)})
	}
	e.expression = tokens
}
