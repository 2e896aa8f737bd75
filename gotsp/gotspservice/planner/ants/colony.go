package ants

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/sourcegraph/conc/pool"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

type StopReason string

const (
	StoppedByIterationLimit StopReason = "iteration-limit"
	StoppedByTimeLimit      StopReason = "time-limit"
	StoppedByStagnation     StopReason = "stagnation"
	StoppedByCancel         StopReason = "canceled"
)

type Solution struct {
	Tour       tour.Tour
	Iterations int
	StopReason StopReason
	Seed       int64
	Elapsed    time.Duration
	// Weights are the adaptive weights in effect when the colony stopped.
	Weights Weights
}

// Colony holds everything derived from one city list. It can be solved any
// number of times, every Solve starts from fresh pheromones.
type Colony struct {
	cities     []tour.City
	distances  *DistanceMatrix
	config     Config
	ants       int
	iterations int
	logger     log.Logger
	now        func() time.Time
}

func NewColony(cities []tour.City, config Config, logger log.Logger) (*Colony, error) {
	if len(cities) == 0 {
		return nil, ErrNoCities
	}
	if _, err := tour.NewTour(cities); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	distances, err := NewDistanceMatrix(tour.Points(cities))
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Colony{
		cities:     append([]tour.City(nil), cities...),
		distances:  distances,
		config:     config,
		ants:       config.AntsFor(len(cities)),
		iterations: config.IterationsFor(len(cities)),
		logger:     logger,
		now:        time.Now,
	}, nil
}

func (c *Colony) Ants() int {
	return c.ants
}

func (c *Colony) Iterations() int {
	return c.iterations
}

type colonyState struct {
	pheromones         *PheromonesMatrix
	weights            Weights
	best               Result
	stagnation         int
	withoutImprovement int
}

func (c *Colony) Solve(ctx context.Context) (Solution, error) {
	start := c.now()
	seed := c.config.Seed
	if seed == 0 {
		seed = timeSeed()
	}

	var (
		s = colonyState{
			pheromones: NewPheromonesMatrix(len(c.cities), c.config.InitialPheromone),
			weights:    c.defaultWeights(),
			best:       NewEmptyResult(),
		}
		randoms    = newStreams(seed, c.ants)
		results    = make([]Result, c.ants)
		iterations int
		reason     = StoppedByIterationLimit
	)

	for i := 0; i < c.iterations; i++ {
		if c.now().Sub(start) > c.config.MaxTime {
			reason = StoppedByTimeLimit
			break
		}
		if ctx.Err() != nil {
			reason = StoppedByCancel
			break
		}

		c.runIteration(s.pheromones, s.weights, randoms, results)

		improved := false
		for k := range results {
			if results[k].BetterThan(s.best) {
				s.best = results[k]
				improved = true
			}
		}
		if improved {
			level.Debug(c.logger).Log(
				"msg", "better tour",
				"iteration", i,
				"length", s.best.Length(),
			)
		}

		c.updatePheromones(s.pheromones, results, s.best)
		iterations = i + 1

		if c.handleStagnation(&s, improved) {
			reason = StoppedByStagnation
			break
		}
	}

	t, err := c.tourOf(s.best)
	if err != nil {
		return Solution{}, err
	}
	solution := Solution{
		Tour:       t,
		Iterations: iterations,
		StopReason: reason,
		Seed:       seed,
		Elapsed:    c.now().Sub(start),
		Weights:    s.weights,
	}
	level.Info(c.logger).Log(
		"msg", "colony finished",
		"cities", len(c.cities),
		"ants", c.ants,
		"iterations", solution.Iterations,
		"stop", solution.StopReason,
		"length", t.TotalDistance(),
		"took", solution.Elapsed,
	)
	return solution, nil
}

// runIteration constructs one tour per ant slot. Slot k always uses
// randoms[k] and writes only results[k].
func (c *Colony) runIteration(pheromones *PheromonesMatrix, weights Weights, randoms []*rand.Rand, results []Result) {
	p := pool.New().WithMaxGoroutines(c.config.Workers)
	for k := range results {
		p.Go(func() {
			ant := NewAnt(c.distances, pheromones, weights, randoms[k])
			found := ant.FindFood()
			path := found.Path()
			if c.config.LocalSearch {
				TwoOpt(&path, c.distances, c.config.ImprovementThreshold)
			}
			results[k] = NewResult(path, path.Length(c.distances))
		})
	}
	p.Wait()
}

// updatePheromones evaporates, deposits for every ant, reinforces the best
// tour and clamps, in that order.
func (c *Colony) updatePheromones(pheromones *PheromonesMatrix, results []Result, best Result) {
	pheromones.Evaporate(c.config.Evaporation)
	for _, r := range results {
		pheromones.IntensifyAlong(r.Path(), c.config.Deposit/r.Length())
	}
	if !best.Empty() {
		pheromones.IntensifyAlong(best.Path(), c.config.Deposit/best.Length())
	}
	pheromones.Clamp(c.config.MinPheromone, c.config.MaxPheromone)
}

// handleStagnation updates the counters and weights after an iteration and
// reports whether the colony should stop.
func (c *Colony) handleStagnation(s *colonyState, improved bool) bool {
	if improved {
		s.withoutImprovement = 0
		s.stagnation = max(0, s.stagnation-2)
		s.weights = c.relaxWeights(s.weights)
		return false
	}
	s.withoutImprovement++
	s.stagnation++
	s.weights = c.adaptWeights(s.weights, s.stagnation)
	return s.withoutImprovement >= c.config.StagnationLimit
}

func (c *Colony) defaultWeights() Weights {
	return Weights{
		Pheromone:  c.config.PheromoneWeight,
		Visibility: c.config.VisibilityWeight,
	}
}

func (c *Colony) adaptWeights(w Weights, stagnation int) Weights {
	a := c.config.Adaptive
	if !a.Enabled || stagnation <= a.Threshold {
		return w
	}
	return Weights{
		Pheromone:  math.Max(w.Pheromone-a.PheromoneStep, a.PheromoneMin),
		Visibility: math.Min(w.Visibility+a.VisibilityStep, a.VisibilityMax),
	}
}

func (c *Colony) relaxWeights(w Weights) Weights {
	a := c.config.Adaptive
	if !a.Enabled {
		return w
	}
	return Weights{
		Pheromone:  towards(w.Pheromone, c.config.PheromoneWeight, a.PheromoneRelax),
		Visibility: towards(w.Visibility, c.config.VisibilityWeight, a.VisibilityRelax),
	}
}

// towards moves v by step in the direction of target without overshooting.
func towards(v, target, step float64) float64 {
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}

// tourOf maps a result back to the caller's cities, falling back to the
// input order when no iteration completed.
func (c *Colony) tourOf(r Result) (tour.Tour, error) {
	path := r.Path()
	if r.Empty() {
		path = IdentityPath(len(c.cities))
	}
	cities := make([]tour.City, path.Size())
	for i := range cities {
		cities[i] = c.cities[path.At(i)]
	}
	return tour.NewTour(cities)
}
