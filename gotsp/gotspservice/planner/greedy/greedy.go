package greedy

import (
	"errors"
	"math"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

var ErrNoCities = errors.New("greedy solver needs at least one city")

// Solve builds a nearest neighbour tour starting at the first city. Ties go
// to the city that comes first in the input.
func Solve(cities []tour.City) (tour.Tour, error) {
	if len(cities) == 0 {
		return tour.Tour{}, ErrNoCities
	}

	visited := make([]bool, len(cities))
	path := make([]tour.City, 0, len(cities))

	current := 0
	visited[current] = true
	path = append(path, cities[current])

	for len(path) < len(cities) {
		next, nearest := -1, math.Inf(1)
		for i, c := range cities {
			if visited[i] {
				continue
			}
			if d := cities[current].DistanceTo(c.Point); d < nearest {
				next, nearest = i, d
			}
		}
		visited[next] = true
		path = append(path, cities[next])
		current = next
	}

	return tour.NewTour(path)
}
