package ants

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

var ErrNoCities = errors.New("at least one city is required")

type DistanceMatrix struct {
	matrix *mat.SymDense
	n      int
}

func NewDistanceMatrix(points []tour.Point) (*DistanceMatrix, error) {
	n := len(points)
	if n == 0 {
		return nil, ErrNoCities
	}
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, points[i].DistanceTo(points[j]))
		}
	}
	return &DistanceMatrix{matrix: m, n: n}, nil
}

func (d *DistanceMatrix) At(i, j int) float64 {
	return d.matrix.At(i, j)
}

func (d *DistanceMatrix) Size() int {
	return d.n
}

// PheromonesMatrix is written only between iterations, ants read it
// concurrently while the colony is constructing tours.
type PheromonesMatrix struct {
	matrix *mat.Dense
}

func NewPheromonesMatrix(n int, initial float64) *PheromonesMatrix {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = initial
	}
	return &PheromonesMatrix{mat.NewDense(n, n, data)}
}

func (p *PheromonesMatrix) At(i, j int) float64 {
	return p.matrix.At(i, j)
}

func (p *PheromonesMatrix) AddAt(i, j int, value float64) {
	p.matrix.Set(i, j, p.matrix.At(i, j)+value)
}

func (p *PheromonesMatrix) Evaporate(rho float64) {
	p.matrix.Scale(1-rho, p.matrix)
}

// IntensifyAlong deposits amount on both directions of every edge of the
// closed path.
func (p *PheromonesMatrix) IntensifyAlong(path Path, amount float64) {
	n := path.Size()
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		from, to := path.At(i), path.At((i+1)%n)
		p.AddAt(from, to, amount)
		p.AddAt(to, from, amount)
	}
}

func (p *PheromonesMatrix) Clamp(lo, hi float64) {
	p.matrix.Apply(func(_, _ int, v float64) float64 {
		return math.Min(math.Max(v, lo), hi)
	}, p.matrix)
}
