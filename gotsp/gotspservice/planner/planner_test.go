package planner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/planner"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/planner/ants"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

var square = tour.FromPoints([]tour.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}})

func TestNewPlanner(t *testing.T) {
	p, err := planner.NewPlanner("", ants.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, planner.AntColony, p.Algorithm())

	p, err = planner.NewPlanner(planner.Greedy, ants.Config{}, nil)
	require.NoError(t, err, "greedy ignores the colony config")
	assert.Equal(t, planner.Greedy, p.Algorithm())

	_, err = planner.NewPlanner("simulated-annealing", ants.DefaultConfig(), nil)
	assert.ErrorIs(t, err, planner.ErrBadAlgorithm)

	_, err = planner.NewPlanner(planner.AntColony, ants.Config{}, nil)
	assert.ErrorIs(t, err, ants.ErrInvalidConfig)
}

func TestEvaluateGreedy(t *testing.T) {
	p, err := planner.NewPlanner(planner.Greedy, ants.DefaultConfig(), nil)
	require.NoError(t, err)

	plan, err := p.Evaluate(context.Background(), square)
	require.NoError(t, err)

	assert.Equal(t, planner.Greedy, plan.Algorithm)
	assert.Equal(t, 400.0, plan.Tour.TotalDistance())
	assert.Empty(t, plan.StopReason)
	assert.False(t, plan.CreatedAt.IsZero())
}

func TestEvaluateAntColony(t *testing.T) {
	config := ants.DefaultConfig()
	config.Seed = 11
	p, err := planner.NewPlanner(planner.AntColony, config, nil)
	require.NoError(t, err)

	plan, err := p.Evaluate(context.Background(), square)
	require.NoError(t, err)

	assert.Equal(t, planner.AntColony, plan.Algorithm)
	assert.LessOrEqual(t, plan.Tour.TotalDistance(), 450.0)
	assert.Equal(t, string(ants.StoppedByStagnation), plan.StopReason)
	assert.Equal(t, int64(11), plan.Seed)
	assert.Positive(t, plan.Iterations)
	assert.ElementsMatch(t, square, plan.Tour.Cities())
}

func TestEvaluateWithoutCities(t *testing.T) {
	for _, algorithm := range planner.AlgorithmOptions {
		p, err := planner.NewPlanner(algorithm, ants.DefaultConfig(), nil)
		require.NoError(t, err)

		_, err = p.Evaluate(context.Background(), nil)
		assert.ErrorIs(t, err, planner.ErrNoCities, algorithm)
	}
}
