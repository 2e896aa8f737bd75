package ants_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/planner/ants"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := ants.DefaultConfig()
	require.NoError(t, c.Validate())

	assert.Equal(t, 0.5, c.Evaporation)
	assert.Equal(t, 50, c.StagnationLimit)
	assert.Equal(t, 180*time.Second, c.MaxTime)
	assert.True(t, c.LocalSearch)
	assert.True(t, c.Adaptive.Enabled)
}

func TestConfigSizing(t *testing.T) {
	c := ants.DefaultConfig()
	cases := []struct {
		cities     int
		iterations int
		ants       int
	}{
		{1, 500, 20},
		{20, 500, 20},
		{21, 300, 21},
		{50, 300, 50},
		{51, 200, 51},
		{100, 200, 100},
		{101, 100, 101},
		{1000, 100, 1000},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.iterations, c.IterationsFor(tc.cities), "iterations for %d cities", tc.cities)
		assert.Equal(t, tc.ants, c.AntsFor(tc.cities), "ants for %d cities", tc.cities)
	}
}

func TestDecodeConfig(t *testing.T) {
	base := ants.DefaultConfig()
	c, err := ants.DecodeConfig(map[string]interface{}{
		"alpha":   2.0,
		"seed":    float64(99),
		"maxTime": "5s",
		"adaptive": map[string]interface{}{
			"threshold": 3,
		},
		"iterations": []interface{}{
			map[string]interface{}{"maxCities": 10, "iterations": 7},
		},
	}, base)
	require.NoError(t, err)

	assert.Equal(t, 2.0, c.PheromoneWeight)
	assert.Equal(t, int64(99), c.Seed)
	assert.Equal(t, 5*time.Second, c.MaxTime)
	assert.Equal(t, 3, c.Adaptive.Threshold)
	assert.Equal(t, base.Adaptive.VisibilityStep, c.Adaptive.VisibilityStep)
	assert.Equal(t, []ants.IterationStep{{MaxCities: 10, Iterations: 7}}, c.Iterations)
	assert.Equal(t, 7, c.IterationsFor(4))
	assert.Equal(t, base.MaxIterations, c.IterationsFor(11))

	// base is left untouched
	assert.Len(t, base.Iterations, 3)
	assert.Equal(t, 1.0, base.PheromoneWeight)
}

func TestDecodeConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ants.DecodeConfig(map[string]interface{}{"gamma": 1}, ants.DefaultConfig())
	assert.Error(t, err)
}

func TestDecodeConfigWithoutParams(t *testing.T) {
	c, err := ants.DecodeConfig(nil, ants.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, ants.DefaultConfig().Deposit, c.Deposit)
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*ants.Config)
	}{
		{"no ants", func(c *ants.Config) { c.MinAnts = 0 }},
		{"evaporation above one", func(c *ants.Config) { c.Evaporation = 1.5 }},
		{"zero evaporation", func(c *ants.Config) { c.Evaporation = 0 }},
		{"zero deposit", func(c *ants.Config) { c.Deposit = 0 }},
		{"inverted clamp", func(c *ants.Config) { c.MaxPheromone = 0.001 }},
		{"zero time budget", func(c *ants.Config) { c.MaxTime = 0 }},
		{"zero stagnation limit", func(c *ants.Config) { c.StagnationLimit = 0 }},
		{"no workers", func(c *ants.Config) { c.Workers = 0 }},
		{"negative threshold", func(c *ants.Config) { c.ImprovementThreshold = -1 }},
		{"empty iteration step", func(c *ants.Config) { c.Iterations[0].Iterations = 0 }},
		{"unsorted steps", func(c *ants.Config) { c.Iterations[1].MaxCities = 5 }},
		{"visibility above cap", func(c *ants.Config) { c.VisibilityWeight = 11 }},
		{"pheromone below floor", func(c *ants.Config) { c.PheromoneWeight = 0.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := ants.DefaultConfig()
			tc.modify(&c)
			assert.ErrorIs(t, c.Validate(), ants.ErrInvalidConfig)
		})
	}
}

func TestConfigValidateSkipsAdaptiveBoundsWhenDisabled(t *testing.T) {
	c := ants.DefaultConfig()
	c.Adaptive.Enabled = false
	c.PheromoneWeight = 0.1
	assert.NoError(t, c.Validate())
}
