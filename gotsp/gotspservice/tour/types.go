package tour

import (
	"fmt"
	"math"
	"time"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) DistanceTo(o Point) float64 {
	return math.Hypot(float64(p.X-o.X), float64(p.Y-o.Y))
}

func (p Point) String() string {
	return fmt.Sprintf("%d %d", p.X, p.Y)
}

type City struct {
	Name string `json:"name"`
	Point
}

func NewCity(name string, x, y int) City {
	return City{Name: name, Point: Point{X: x, Y: y}}
}

// FromPoints names points City1..CityN in input order.
func FromPoints(points []Point) []City {
	cities := make([]City, len(points))
	for i, p := range points {
		cities[i] = City{Name: fmt.Sprintf("City%d", i+1), Point: p}
	}
	return cities
}

func Points(cities []City) []Point {
	points := make([]Point, len(cities))
	for i, c := range cities {
		points[i] = c.Point
	}
	return points
}

type Configuration struct {
	Algorithm string                 `json:"algorithm,omitempty"`
	Cities    []City                 `json:"cities,omitempty"`
	Points    []Point                `json:"points,omitempty"`
	Params    map[string]interface{} `json:"params,omitempty"`
}

// TourCities returns the configured cities, naming bare points when no
// cities were given.
func (c *Configuration) TourCities() []City {
	if len(c.Cities) > 0 {
		return c.Cities
	}
	return FromPoints(c.Points)
}

type Plan struct {
	ID         string        `json:"id,omitempty"`
	Algorithm  string        `json:"algorithm"`
	Tour       Tour          `json:"tour"`
	Iterations int           `json:"iterations"`
	StopReason string        `json:"stopReason,omitempty"`
	Seed       int64         `json:"seed,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
	CreatedAt  time.Time     `json:"createdAt"`
}

func (c City) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Point)
}
