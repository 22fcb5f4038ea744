package main

import (
	"math"
	"strings"
)

// ErrKind classifies why a formula failed to evaluate. The edit
// transaction and scheduler collapse these into cell status and
// user-facing status messages differently depending on which of the two
// is evaluating.
type ErrKind int

const (
	ErrNone ErrKind = iota
	ErrParse
	ErrBadRange
	ErrDivZero
	ErrPropagated
	ErrOutOfBounds
)

// evalError carries the error kind alongside the coordinate that caused a
// PROPAGATED_ERROR or OUT_OF_BOUNDS failure, used only for diagnostics.
type evalError struct {
	kind ErrKind
}

func (e *evalError) Error() string {
	switch e.kind {
	case ErrParse:
		return "parse error"
	case ErrBadRange:
		return "bad range"
	case ErrDivZero:
		return "division by zero"
	case ErrPropagated:
		return "propagated error"
	case ErrOutOfBounds:
		return "out of bounds"
	default:
		return "no error"
	}
}

// poisons reports whether the error should spread to dependents instead
// of merely failing the one cell that raised it.
func (e *evalError) poisons() bool {
	return e.kind == ErrDivZero || e.kind == ErrPropagated
}

// cellReader is the narrow view of the grid the evaluator needs; *Grid
// satisfies it.
type cellReader interface {
	InBounds(coord Coord) bool
	CellValue(coord Coord) (int32, Status, bool)
}

// Evaluator is a recursive-descent formula parser/evaluator. It produces
// a value directly while parsing; no AST is built or kept.
type Evaluator struct {
	grid cellReader
}

func NewEvaluator(grid cellReader) *Evaluator {
	return &Evaluator{grid: grid}
}

// scanner walks a formula's bytes left to right without allocating a
// token stream, the same style original_source's parser.c uses.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) eof() bool { return sc.pos >= len(sc.s) }

func (sc *scanner) peek() byte {
	if sc.eof() {
		return 0
	}
	return sc.s[sc.pos]
}

func (sc *scanner) skipSpaces() {
	for !sc.eof() && isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// Evaluate parses and evaluates formula in full, returning the error kind
// on failure (via a typed error) instead of a value.
func (e *Evaluator) Evaluate(formula string) (int32, error) {
	trimmed := strings.TrimSpace(formula)
	sc := &scanner{s: trimmed}
	val, err := e.parseExpr(sc)
	if err != nil {
		return 0, err
	}
	sc.skipSpaces()
	if !sc.eof() && sc.peek() != ')' {
		return 0, &evalError{kind: ErrParse}
	}
	return val, nil
}

func (e *Evaluator) parseExpr(sc *scanner) (int32, error) {
	result, err := e.parseTerm(sc)
	if err != nil {
		return 0, err
	}
	sc.skipSpaces()
	for sc.peek() == '+' || sc.peek() == '-' {
		op := sc.peek()
		sc.pos++
		sc.skipSpaces()
		term, err := e.parseTerm(sc)
		if err != nil {
			return 0, err
		}
		if op == '+' {
			result += term
		} else {
			result -= term
		}
		sc.skipSpaces()
	}
	return result, nil
}

func (e *Evaluator) parseTerm(sc *scanner) (int32, error) {
	value, err := e.parseFactor(sc)
	if err != nil {
		return 0, err
	}
	sc.skipSpaces()
	for sc.peek() == '*' || sc.peek() == '/' {
		op := sc.peek()
		sc.pos++
		sc.skipSpaces()
		factor, err := e.parseFactor(sc)
		if err != nil {
			return 0, err
		}
		if op == '/' {
			if factor == 0 {
				return 0, &evalError{kind: ErrDivZero}
			}
			value /= factor
		} else {
			value *= factor
		}
		sc.skipSpaces()
	}
	return value, nil
}

func (e *Evaluator) parseFactor(sc *scanner) (int32, error) {
	sc.skipSpaces()

	if isAlpha(sc.peek()) {
		start := sc.pos
		for !sc.eof() && isAlpha(sc.peek()) {
			sc.pos++
		}
		token := sc.s[start:sc.pos]

		sc.skipSpaces()
		if sc.peek() == '(' {
			sc.pos++
			sc.skipSpaces()
			return e.parseCall(sc, strings.ToUpper(token))
		}

		// Not a call: re-read from start as a cell reference (letters
		// already consumed, followed by the digit run).
		sc.pos = start
		for !sc.eof() && isAlnum(sc.peek()) {
			sc.pos++
		}
		ref := sc.s[start:sc.pos]
		coord, ok := NameToCoord(ref)
		if !ok {
			return 0, &evalError{kind: ErrParse}
		}
		if !e.grid.InBounds(coord) {
			return 0, &evalError{kind: ErrOutOfBounds}
		}
		value, status, _ := e.grid.CellValue(coord)
		if status == StatusError {
			return 0, &evalError{kind: ErrPropagated}
		}
		return value, nil
	}

	if isDigit(sc.peek()) || (sc.peek() == '-' && sc.pos+1 < len(sc.s) && isDigit(sc.s[sc.pos+1])) {
		sign := int32(1)
		if sc.peek() == '-' {
			sign = -1
			sc.pos++
		}
		var number int32
		for !sc.eof() && isDigit(sc.peek()) {
			number = number*10 + int32(sc.peek()-'0')
			sc.pos++
		}
		return sign * number, nil
	}

	if sc.peek() == '(' {
		sc.pos++
		val, err := e.parseExpr(sc)
		if err != nil {
			return 0, err
		}
		if sc.peek() == ')' {
			sc.pos++
		}
		return val, nil
	}

	return 0, &evalError{kind: ErrParse}
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

var rangeFuncs = map[string]bool{
	"MIN": true, "MAX": true, "SUM": true, "AVG": true, "STDEV": true,
}

// parseCall handles the part of `factor` after IDENT '(' has been
// consumed; sc.pos sits right after '(' with spaces already skipped.
func (e *Evaluator) parseCall(sc *scanner, name string) (int32, error) {
	switch {
	case name == "SLEEP":
		n, err := e.parseExpr(sc)
		if err != nil {
			return 0, err
		}
		sc.skipSpaces()
		if sc.peek() == ')' {
			sc.pos++
		}
		if n >= 0 {
			sleep(n)
		}
		return n, nil

	case rangeFuncs[name]:
		closeIdx := strings.IndexByte(sc.s[sc.pos:], ')')
		if closeIdx < 0 {
			return 0, &evalError{kind: ErrParse}
		}
		rangeStr := sc.s[sc.pos : sc.pos+closeIdx]
		sc.pos += closeIdx + 1
		return e.evaluateRange(name, rangeStr)

	default:
		// Unknown function: consume to the next ')' and yield 0 without
		// error, so a stricter validator can be layered on later without
		// breaking formulas already accepted.
		closeIdx := strings.IndexByte(sc.s[sc.pos:], ')')
		if closeIdx < 0 {
			sc.pos = len(sc.s)
		} else {
			sc.pos += closeIdx + 1
		}
		return 0, nil
	}
}

func (e *Evaluator) evaluateRange(name, rangeStr string) (int32, error) {
	colon := strings.IndexByte(rangeStr, ':')
	if colon < 0 {
		return 0, &evalError{kind: ErrBadRange}
	}
	left := strings.TrimSpace(rangeStr[:colon])
	right := strings.TrimSpace(rangeStr[colon+1:])
	start, ok1 := NameToCoord(left)
	end, ok2 := NameToCoord(right)
	if !ok1 || !ok2 {
		return 0, &evalError{kind: ErrBadRange}
	}
	if start.Row > end.Row || start.Col > end.Col {
		return 0, &evalError{kind: ErrBadRange}
	}

	var sum int64
	minVal := int32(math.MaxInt32)
	maxVal := int32(math.MinInt32)
	count := 0
	var values []int32
	for r := start.Row; r <= end.Row; r++ {
		for c := start.Col; c <= end.Col; c++ {
			coord := Coord{Row: r, Col: c}
			if !e.grid.InBounds(coord) {
				return 0, &evalError{kind: ErrOutOfBounds}
			}
			value, status, _ := e.grid.CellValue(coord)
			if status == StatusError {
				return 0, &evalError{kind: ErrPropagated}
			}
			sum += int64(value)
			if value < minVal {
				minVal = value
			}
			if value > maxVal {
				maxVal = value
			}
			values = append(values, value)
			count++
		}
	}
	if count == 0 {
		return 0, &evalError{kind: ErrBadRange}
	}

	switch name {
	case "MIN":
		return minVal, nil
	case "MAX":
		return maxVal, nil
	case "SUM":
		return int32(sum), nil
	case "AVG":
		return int32(sum / int64(count)), nil
	case "STDEV":
		mean := float64(sum) / float64(count)
		var variance float64
		for _, v := range values {
			diff := float64(v) - mean
			variance += diff * diff
		}
		variance /= float64(count)
		return int32(math.Round(math.Sqrt(variance))), nil
	}
	return 0, &evalError{kind: ErrParse}
}
