package main

// Recalc re-evaluates every cell downstream of a successfully edited
// cell `start`: it collects the transitive closure of start's rdeps,
// builds a local indegree count restricted to that set, and processes
// cells in topological order, breaking ties row-major so two cells at
// the same layer (e.g. two SLEEP-containing siblings) always run in the
// same order given the same edit history, regardless of Go's randomized
// map iteration.
//
// It returns a non-"ok" status and stops early only when a dependent's
// formula itself fails to parse or names a malformed/out-of-bounds range
// — a PROPAGATED_ERROR or DIV_ZERO instead poisons that cell and lets the
// cascade continue, since descendants simply observe an ERROR parent.
func (g *Grid) Recalc(ev *Evaluator, start Coord) (string, []Coord) {
	affected := g.RDepsClosure(start)
	if len(affected) == 0 {
		return "ok", nil
	}
	sortCoords(affected)

	inSet := make(map[Coord]struct{}, len(affected))
	for _, a := range affected {
		inSet[a] = struct{}{}
	}

	indegree := make(map[Coord]int, len(affected))
	for _, a := range affected {
		count := 0
		for dep := range g.At(a).Deps {
			if _, ok := inSet[dep]; ok {
				count++
			}
		}
		indegree[a] = count
	}

	var queue []Coord
	for _, a := range affected {
		if indegree[a] == 0 {
			queue = append(queue, a)
		}
	}

	var touched []Coord
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		cell := g.At(cur)
		value, err := ev.Evaluate(cell.Formula)
		if err != nil {
			ee := err.(*evalError)
			if ee.poisons() {
				cell.Status = StatusError
				cell.Value = 0
				touched = append(touched, cur)
			} else {
				return statusForErrKind(ee.kind), touched
			}
		} else {
			cell.Value = value
			cell.Status = StatusOK
			touched = append(touched, cur)
		}

		for _, dep := range sortedCoords(cell.RDeps) {
			if _, ok := inSet[dep]; !ok {
				continue
			}
			indegree[dep]--
			if indegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	return "ok", touched
}

func statusForErrKind(kind ErrKind) string {
	switch kind {
	case ErrParse:
		return "Invalid formula"
	case ErrBadRange:
		return "Invalid range"
	case ErrOutOfBounds:
		return "Range out of bounds"
	default:
		return "ok"
	}
}
