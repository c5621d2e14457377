package calc

// Operator is one of the four binary operators the calculator understands.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
)

var operatorNames = map[Operator]string{
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
}

var operatorSymbols = map[Operator]string{
	Add:      "+",
	Subtract: "−",
	Multiply: "×",
	Divide:   "÷",
}

// String returns the operator name (add, subtract, multiply, divide).
func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "unknown"
}

// Symbol returns the display glyph for the operator.
func (o Operator) Symbol() string {
	if sym, ok := operatorSymbols[o]; ok {
		return sym
	}
	return "?"
}

// HighPrecedence reports whether o reduces in the first pass (multiply/divide).
func (o Operator) HighPrecedence() bool {
	return o == Multiply || o == Divide
}

// ParseOperator maps a name or a keyboard character to an Operator.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "add", "+":
		return Add, true
	case "subtract", "-", "−":
		return Subtract, true
	case "multiply", "*", "×", "x":
		return Multiply, true
	case "divide", "/", "÷":
		return Divide, true
	}
	return 0, false
}

// IsOperatorSymbol reports whether r is one of the display glyphs.
func IsOperatorSymbol(r rune) bool {
	switch r {
	case '+', '−', '×', '÷', '=':
		return true
	}
	return false
}
