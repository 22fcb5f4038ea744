package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddEdgeIsSymmetric(t *testing.T) {
	g := NewGrid(5, 5)
	a := Coord{0, 0}
	b := Coord{1, 1}
	g.AddEdge(b, a) // b reads a

	_, hasDep := g.At(b).Deps[a]
	_, hasRDep := g.At(a).RDeps[b]
	assert.True(t, hasDep)
	assert.True(t, hasRDep)
}

func TestClearDepsRemovesBothSides(t *testing.T) {
	g := NewGrid(5, 5)
	a := Coord{0, 0}
	b := Coord{1, 1}
	g.AddEdge(b, a)

	g.ClearDeps(b)

	assert.Empty(t, g.At(b).Deps)
	assert.Empty(t, g.At(a).RDeps)
}

func TestRDepsClosureTransitive(t *testing.T) {
	g := NewGrid(5, 5)
	a := Coord{0, 0}
	b := Coord{0, 1}
	c := Coord{0, 2}
	// b reads a, c reads b: editing a affects {b, c}
	g.AddEdge(b, a)
	g.AddEdge(c, b)

	affected := g.RDepsClosure(a)
	assert.Equal(t, []Coord{b, c}, affected)
}

func TestRDepsClosureExcludesSelf(t *testing.T) {
	g := NewGrid(5, 5)
	a := Coord{0, 0}
	affected := g.RDepsClosure(a)
	assert.Empty(t, affected)
}
