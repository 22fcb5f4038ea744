package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalOn(t *testing.T, grid *Grid, formula string) (int32, error) {
	t.Helper()
	return NewEvaluator(grid).Evaluate(formula)
}

func TestEvaluateLiterals(t *testing.T) {
	grid := NewGrid(10, 10)
	val, err := evalOn(t, grid, "42")
	require.NoError(t, err)
	assert.Equal(t, int32(42), val)

	val, err = evalOn(t, grid, "-7")
	require.NoError(t, err)
	assert.Equal(t, int32(-7), val)
}

func TestEvaluateArithmeticPrecedence(t *testing.T) {
	grid := NewGrid(10, 10)
	val, err := evalOn(t, grid, "2+3*4")
	require.NoError(t, err)
	assert.Equal(t, int32(14), val)

	val, err = evalOn(t, grid, "(2+3)*4")
	require.NoError(t, err)
	assert.Equal(t, int32(20), val)

	val, err = evalOn(t, grid, "10/3")
	require.NoError(t, err)
	assert.Equal(t, int32(3), val)

	val, err = evalOn(t, grid, "-10/3")
	require.NoError(t, err)
	assert.Equal(t, int32(-3), val)
}

func TestEvaluateDivisionByZero(t *testing.T) {
	grid := NewGrid(10, 10)
	_, err := evalOn(t, grid, "5/0")
	require.Error(t, err)
	assert.Equal(t, ErrDivZero, err.(*evalError).kind)
}

func TestEvaluateCellReference(t *testing.T) {
	grid := NewGrid(10, 10)
	grid.At(Coord{0, 0}).Value = 100
	val, err := evalOn(t, grid, "A1+50")
	require.NoError(t, err)
	assert.Equal(t, int32(150), val)
}

func TestEvaluateOutOfBounds(t *testing.T) {
	grid := NewGrid(10, 10)
	_, err := evalOn(t, grid, "Z1000+1")
	require.Error(t, err)
	assert.Equal(t, ErrOutOfBounds, err.(*evalError).kind)
}

func TestEvaluatePropagatedError(t *testing.T) {
	grid := NewGrid(10, 10)
	grid.At(Coord{0, 2}).Status = StatusError
	_, err := evalOn(t, grid, "C1+1")
	require.Error(t, err)
	assert.Equal(t, ErrPropagated, err.(*evalError).kind)
}

func TestEvaluateRangeAggregates(t *testing.T) {
	grid := NewGrid(10, 10)
	grid.At(Coord{0, 0}).Value = 1
	grid.At(Coord{0, 1}).Value = 2
	grid.At(Coord{0, 2}).Value = 3

	val, err := evalOn(t, grid, "SUM(A1:C1)")
	require.NoError(t, err)
	assert.Equal(t, int32(6), val)

	val, err = evalOn(t, grid, "AVG(A1:C1)")
	require.NoError(t, err)
	assert.Equal(t, int32(2), val)

	val, err = evalOn(t, grid, "MIN(A1:C1)")
	require.NoError(t, err)
	assert.Equal(t, int32(1), val)

	val, err = evalOn(t, grid, "MAX(A1:C1)")
	require.NoError(t, err)
	assert.Equal(t, int32(3), val)

	val, err = evalOn(t, grid, "STDEV(A1:C1)")
	require.NoError(t, err)
	assert.Equal(t, int32(1), val)
}

func TestEvaluateRangeReversedIsBadRange(t *testing.T) {
	grid := NewGrid(10, 10)
	_, err := evalOn(t, grid, "SUM(C1:A1)")
	require.Error(t, err)
	assert.Equal(t, ErrBadRange, err.(*evalError).kind)
}

func TestEvaluateUnknownFunctionYieldsZero(t *testing.T) {
	grid := NewGrid(10, 10)
	val, err := evalOn(t, grid, "FOO(A1,B1)")
	require.NoError(t, err)
	assert.Equal(t, int32(0), val)
}

func TestEvaluateSleepPositiveSleepsAndReturnsValue(t *testing.T) {
	var slept time.Duration
	orig := sleepFunc
	sleepFunc = func(d time.Duration) { slept = d }
	defer func() { sleepFunc = orig }()

	grid := NewGrid(10, 10)
	val, err := evalOn(t, grid, "SLEEP(2)")
	require.NoError(t, err)
	assert.Equal(t, int32(2), val)
	assert.Equal(t, 2*time.Second, slept)
}

func TestEvaluateSleepNegativeDoesNotSleep(t *testing.T) {
	orig := sleepFunc
	called := false
	sleepFunc = func(d time.Duration) { called = true }
	defer func() { sleepFunc = orig }()

	grid := NewGrid(10, 10)
	val, err := evalOn(t, grid, "SLEEP(-3)")
	require.NoError(t, err)
	assert.Equal(t, int32(-3), val)
	assert.False(t, called)
}

func TestEvaluateTrailingJunkIsParseError(t *testing.T) {
	grid := NewGrid(10, 10)
	_, err := evalOn(t, grid, "1 1")
	require.Error(t, err)
	assert.Equal(t, ErrParse, err.(*evalError).kind)
}
