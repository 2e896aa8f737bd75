package tour

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyTour = errors.New("tour must contain at least one city")

type ErrDuplicateCity struct {
	City City
}

func (err ErrDuplicateCity) Error() string {
	return fmt.Sprintf("city %s (%s) appears more than once", err.City.Name, err.City.Point)
}

// Tour is a closed cycle over cities, the last city connects back to the
// first one.
type Tour struct {
	cities        []City
	totalDistance float64
}

func NewTour(cities []City) (Tour, error) {
	if len(cities) == 0 {
		return Tour{}, ErrEmptyTour
	}
	seen := make(map[City]bool, len(cities))
	for _, c := range cities {
		if seen[c] {
			return Tour{}, ErrDuplicateCity{c}
		}
		seen[c] = true
	}
	t := Tour{cities: append([]City(nil), cities...)}
	t.totalDistance = cycleDistance(t.cities)
	return t, nil
}

func cycleDistance(cities []City) (total float64) {
	for i := 0; i < len(cities)-1; i++ {
		total += cities[i].DistanceTo(cities[i+1].Point)
	}
	total += cities[len(cities)-1].DistanceTo(cities[0].Point)
	return
}

func (t Tour) Cities() []City {
	return append([]City(nil), t.cities...)
}

func (t Tour) Size() int {
	return len(t.cities)
}

func (t Tour) TotalDistance() float64 {
	return t.totalDistance
}

func (t Tour) String() string {
	if len(t.cities) == 0 {
		return "(empty tour)"
	}
	names := make([]string, 0, len(t.cities)+1)
	for _, c := range t.cities {
		names = append(names, c.Name)
	}
	names = append(names, t.cities[0].Name)
	return fmt.Sprintf("%s (Distance: %.2f)", strings.Join(names, " -> "), t.totalDistance)
}

type tourJSON struct {
	Cities        []City  `json:"cities"`
	TotalDistance float64 `json:"totalDistance"`
}

func (t Tour) MarshalJSON() ([]byte, error) {
	cities := t.cities
	if cities == nil {
		cities = []City{}
	}
	return json.Marshal(tourJSON{Cities: cities, TotalDistance: t.totalDistance})
}

// UnmarshalJSON rebuilds the tour from its cities, the encoded distance is
// ignored.
func (t *Tour) UnmarshalJSON(data []byte) error {
	var raw tourJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Cities) == 0 {
		*t = Tour{}
		return nil
	}
	decoded, err := NewTour(raw.Cities)
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}
