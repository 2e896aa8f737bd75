package tour

import (
	"errors"
	"math/rand"
)

const (
	DefaultMaxCoordinate = 3000
	maxRandomCount       = 50
)

var (
	ErrBadMaxCoordinate = errors.New("max coordinate must be positive")
	ErrBadPointCount    = errors.New("number of points must not be negative")
	ErrTooManyPoints    = errors.New("more points requested than distinct coordinates available")
)

// Generator produces unique random points with coordinates in [0, max).
type Generator struct {
	random *rand.Rand
	max    int
}

func NewGenerator(random *rand.Rand, maxCoordinate int) (*Generator, error) {
	if random == nil {
		return nil, errors.New("generator needs a random source")
	}
	if maxCoordinate <= 0 {
		return nil, ErrBadMaxCoordinate
	}
	return &Generator{random: random, max: maxCoordinate}, nil
}

// Generate returns count unique points, a zero count draws between 1 and 50.
func (g *Generator) Generate(count int) ([]Point, error) {
	if count < 0 {
		return nil, ErrBadPointCount
	}
	if count == 0 {
		count = g.random.Intn(maxRandomCount) + 1
	}
	if int64(count) > int64(g.max)*int64(g.max) {
		return nil, ErrTooManyPoints
	}

	points := make([]Point, 0, count)
	used := make(map[Point]bool, count)
	for len(points) < count {
		p := Point{X: g.random.Intn(g.max), Y: g.random.Intn(g.max)}
		if used[p] {
			continue
		}
		used[p] = true
		points = append(points, p)
	}
	return points, nil
}
