package ants

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

// stepClock advances by step on every reading.
func stepClock(step time.Duration) func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * step)
	}
}

func squareCities() []tour.City {
	return tour.FromPoints([]tour.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}})
}

func TestSolveStopsOnTimeBudgetBeforeFirstIteration(t *testing.T) {
	config := DefaultConfig()
	config.Seed = 1
	colony, err := NewColony(squareCities(), config, nil)
	require.NoError(t, err)
	colony.now = stepClock(time.Hour)

	solution, err := colony.Solve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StoppedByTimeLimit, solution.StopReason)
	assert.Zero(t, solution.Iterations)
	assert.Equal(t, squareCities(), solution.Tour.Cities())
	assert.Equal(t, 400.0, solution.Tour.TotalDistance())
}

func TestSolveChecksTimeBudgetAtIterationBoundaries(t *testing.T) {
	config := DefaultConfig()
	config.Seed = 1
	config.MaxTime = 3 * time.Minute
	colony, err := NewColony(squareCities(), config, nil)
	require.NoError(t, err)
	colony.now = stepClock(time.Minute)

	solution, err := colony.Solve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StoppedByTimeLimit, solution.StopReason)
	assert.Equal(t, 3, solution.Iterations)
}

func TestHandleStagnationCounters(t *testing.T) {
	config := DefaultConfig()
	config.StagnationLimit = 3
	colony, err := NewColony(squareCities(), config, nil)
	require.NoError(t, err)

	s := colonyState{weights: colony.defaultWeights()}
	assert.False(t, colony.handleStagnation(&s, false))
	assert.False(t, colony.handleStagnation(&s, false))
	assert.Equal(t, 2, s.stagnation)

	assert.False(t, colony.handleStagnation(&s, true))
	assert.Zero(t, s.withoutImprovement)
	assert.Zero(t, s.stagnation)

	s.stagnation = 5
	assert.False(t, colony.handleStagnation(&s, true))
	assert.Equal(t, 3, s.stagnation)

	assert.False(t, colony.handleStagnation(&s, false))
	assert.False(t, colony.handleStagnation(&s, false))
	assert.True(t, colony.handleStagnation(&s, false))
}

func TestAdaptWeights(t *testing.T) {
	colony, err := NewColony(squareCities(), DefaultConfig(), nil)
	require.NoError(t, err)
	defaults := colony.defaultWeights()

	assert.Equal(t, defaults, colony.adaptWeights(defaults, 10), "no adaptation up to the threshold")

	w := colony.adaptWeights(defaults, 11)
	assert.InDelta(t, 0.8, w.Pheromone, 1e-12)
	assert.InDelta(t, 5.5, w.Visibility, 1e-12)

	for i := 0; i < 100; i++ {
		w = colony.adaptWeights(w, 11)
	}
	assert.Equal(t, Weights{Pheromone: 0.5, Visibility: 10}, w)

	w = colony.relaxWeights(w)
	assert.InDelta(t, 0.6, w.Pheromone, 1e-12)
	assert.InDelta(t, 9.9, w.Visibility, 1e-12)

	for i := 0; i < 100; i++ {
		w = colony.relaxWeights(w)
	}
	assert.Equal(t, defaults, w)
}

func TestAdaptWeightsDisabled(t *testing.T) {
	config := DefaultConfig()
	config.Adaptive.Enabled = false
	colony, err := NewColony(squareCities(), config, nil)
	require.NoError(t, err)

	w := Weights{Pheromone: 0.7, Visibility: 6}
	assert.Equal(t, w, colony.adaptWeights(w, 100))
	assert.Equal(t, w, colony.relaxWeights(w))
}

func TestUpdatePheromonesOrder(t *testing.T) {
	config := DefaultConfig()
	colony, err := NewColony(squareCities(), config, nil)
	require.NoError(t, err)

	pheromones := NewPheromonesMatrix(4, 1)
	square := IdentityPath(4)
	results := []Result{NewResult(square, 400)}
	best := NewResult(square, 400)

	colony.updatePheromones(pheromones, results, best)

	// 1*(1-0.5) + 100/400 from the ant + 100/400 from the best tour
	assert.InDelta(t, 1.0, pheromones.At(0, 1), 1e-12)
	assert.InDelta(t, 1.0, pheromones.At(1, 0), 1e-12)
	assert.InDelta(t, 0.5, pheromones.At(0, 2), 1e-12)
}

func TestUpdatePheromonesClampsZeroLengthDeposits(t *testing.T) {
	colony, err := NewColony(tour.FromPoints([]tour.Point{{X: 1, Y: 1}, {X: 1, Y: 1}}), DefaultConfig(), nil)
	require.NoError(t, err)

	pheromones := NewPheromonesMatrix(2, 0.01)
	results := []Result{NewResult(IdentityPath(2), 0)}
	colony.updatePheromones(pheromones, results, results[0])

	assert.Equal(t, 10.0, pheromones.At(0, 1))
	assert.Equal(t, 0.01, pheromones.At(0, 0))
}

func TestDeriveSeedGivesDistinctStreams(t *testing.T) {
	seen := map[int64]bool{}
	for i := uint64(0); i < 100; i++ {
		s := deriveSeed(7, i)
		assert.False(t, seen[s])
		seen[s] = true
	}
	assert.Equal(t, deriveSeed(7, 3), deriveSeed(7, 3))
	assert.NotEqual(t, deriveSeed(7, 3), deriveSeed(8, 3))
}
