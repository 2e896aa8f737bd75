package ants

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Weights are the exponents applied to pheromone and visibility when an ant
// scores its next city.
type Weights struct {
	Pheromone  float64 `json:"alpha"`
	Visibility float64 `json:"beta"`
}

// Ant builds one tour. It only reads the shared matrices, everything it
// writes is its own.
type Ant struct {
	n          int
	at         int
	path       Path
	used       []bool
	length     float64
	distances  *DistanceMatrix
	pheromones *PheromonesMatrix
	weights    Weights
	random     *rand.Rand

	candidates []int
	scores     []float64
}

func NewAnt(
	distances *DistanceMatrix,
	pheromones *PheromonesMatrix,
	weights Weights,
	random *rand.Rand,
) *Ant {
	n := distances.Size()
	return &Ant{
		n:          n,
		path:       NewPath(n),
		used:       make([]bool, n),
		distances:  distances,
		pheromones: pheromones,
		weights:    weights,
		random:     random,
		candidates: make([]int, 0, n),
		scores:     make([]float64, 0, n),
	}
}

// FindFood constructs a full permutation of the cities and returns it with
// its cyclic length.
func (a *Ant) FindFood() Result {
	a.visit(a.random.Intn(a.n))
	for i := 1; i < a.n; i++ {
		next := a.pickNextCity()
		a.length += a.distances.At(a.at, next)
		a.visit(next)
	}
	a.length += a.distances.At(a.at, a.path.At(0))
	return NewResult(a.path, a.length)
}

func (a *Ant) visit(city int) {
	a.path.Append(city)
	a.used[city] = true
	a.at = city
}

func (a *Ant) pickNextCity() int {
	a.candidates = a.candidates[:0]
	a.scores = a.scores[:0]
	for j := 0; j < a.n; j++ {
		if a.used[j] {
			continue
		}
		pheromone := math.Pow(a.pheromones.At(a.at, j), a.weights.Pheromone)
		visibility := math.Pow(1/a.distances.At(a.at, j), a.weights.Visibility)
		a.candidates = append(a.candidates, j)
		a.scores = append(a.scores, pheromone*visibility)
	}

	total := floats.Sum(a.scores)
	switch {
	case math.IsInf(total, 1):
		// a coincident city, or overflow: take the most desirable one
		return a.candidates[floats.MaxIdx(a.scores)]
	case !(total > 0):
		return a.candidates[0]
	}

	draw := a.random.Float64() * total
	floats.CumSum(a.scores, a.scores)
	for k, cumulative := range a.scores {
		if draw <= cumulative {
			return a.candidates[k]
		}
	}
	return a.candidates[0]
}
