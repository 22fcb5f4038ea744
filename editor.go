package main

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	intLiteralRe = regexp.MustCompile(`^-?[0-9]+$`)
	rangeArgsRe  = regexp.MustCompile(`^\s*[A-Za-z]+[0-9]+\s*:\s*[A-Za-z]+[0-9]+\s*$`)
	callRe       = regexp.MustCompile(`^([A-Za-z]+)\((.*)\)$`)
	binaryRe     = regexp.MustCompile(`^\s*(-?[A-Za-z0-9]+)\s*([+\-*/])\s*(-?[A-Za-z0-9]+)\s*$`)
)

// UpdateCell is the edit transaction: a single command is atomic, either
// committing a new formula/value/deps or leaving the sheet exactly as it
// was (the cycle and syntax-validation cases). Caller holds the grid
// lock for the duration.
// UpdateCell returns the status message and the set of cells whose
// value or status changed as a result (the edited cell itself plus any
// cascade), so callers — the REPL and the webhook dispatcher — can react
// to exactly what moved without re-diffing the whole grid.
func (g *Grid) UpdateCell(ev *Evaluator, coord Coord, formula string) (string, []Coord) {
	if !validateFormula(g, formula) {
		return "Unrecognized", nil
	}

	cell := g.At(coord)
	oldFormula, oldHasForm := cell.Formula, cell.HasForm
	oldDeps := make([]Coord, 0, len(cell.Deps))
	for d := range cell.Deps {
		oldDeps = append(oldDeps, d)
	}

	g.ClearDeps(coord)

	if !isConstantLiteral(formula) {
		for _, dep := range ExtractDependencies(formula) {
			if g.InBounds(dep) {
				g.AddEdge(coord, dep)
			}
		}
	}

	if g.HasCycle(coord) {
		g.ClearDeps(coord)
		cell.Formula, cell.HasForm = oldFormula, oldHasForm
		for _, dep := range oldDeps {
			g.AddEdge(coord, dep)
		}
		return fmt.Sprintf("Circular dependency detected in cell %s", CoordToName(coord)), nil
	}

	cell.Formula = formula
	cell.HasForm = true

	value, err := ev.Evaluate(formula)
	if err != nil {
		ee := err.(*evalError)
		if ee.poisons() {
			touched := markErrorCascade(g, coord)
			return "ok", touched
		}
		// PARSE, BAD_RANGE, OUT_OF_BOUNDS: surface the status, leave the
		// cell's prior value untouched, and skip the cascade — the edit's
		// formula/deps still persist even though evaluation failed.
		return statusForErrKind(ee.kind), nil
	}

	cell.Value = value
	cell.Status = StatusOK
	status, cascaded := g.Recalc(ev, coord)
	return status, append([]Coord{coord}, cascaded...)
}

// markErrorCascade poisons coord and, transitively via rdeps, every
// descendant not already poisoned, returning every coordinate it
// touched.
func markErrorCascade(g *Grid, coord Coord) []Coord {
	root := g.At(coord)
	root.Status = StatusError
	root.Value = 0
	touched := []Coord{coord}

	var visit func(Coord)
	visit = func(c Coord) {
		for d := range g.At(c).RDeps {
			dep := g.At(d)
			if dep.Status == StatusError {
				continue
			}
			dep.Status = StatusError
			dep.Value = 0
			touched = append(touched, d)
			visit(d)
		}
	}
	visit(coord)
	return touched
}

func isConstantLiteral(formula string) bool {
	return intLiteralRe.MatchString(strings.TrimSpace(formula))
}

// validateFormula is the fast-path syntax check run before any mutation:
// the formula must be a single cell reference, a single integer
// literal, a supported function call with a well-formed argument, or a
// binary expression whose sides are each a literal or cell reference.
// Anything else — including an out-of-bounds single reference — fails
// with "Unrecognized" and mutates nothing.
func validateFormula(g *Grid, formula string) bool {
	trimmed := strings.TrimSpace(formula)
	if trimmed == "" {
		return false
	}

	if coord, ok := NameToCoord(trimmed); ok {
		return g.InBounds(coord)
	}

	if intLiteralRe.MatchString(trimmed) {
		return true
	}

	if m := callRe.FindStringSubmatch(trimmed); m != nil {
		name := strings.ToUpper(m[1])
		inner := m[2]
		switch {
		case rangeFuncs[name]:
			return rangeArgsRe.MatchString(inner)
		case name == "SLEEP":
			return strings.TrimSpace(inner) != ""
		default:
			return true // unknown function: any argument text is well-formed
		}
	}

	if m := binaryRe.FindStringSubmatch(trimmed); m != nil {
		return isLiteralOrRef(m[1]) && isLiteralOrRef(m[3])
	}

	return false
}

// isLiteralOrRef only checks syntactic shape, not grid bounds: an
// out-of-bounds reference on one side of a binary expression is left for
// evaluation to reject with "Range out of bounds". Only a formula that
// is nothing but a single cell reference is bounds-checked at this gate.
func isLiteralOrRef(token string) bool {
	if intLiteralRe.MatchString(token) {
		return true
	}
	_, ok := NameToCoord(token)
	return ok
}
