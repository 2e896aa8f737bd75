package points

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

var (
	ErrInvalidFormat = errors.New("invalid points format")

	ErrNoPoints = errors.New("no points to save")
)

// DataError points at the entry of a points file that could not be read.
type DataError struct {
	Point int
	Field string
}

func (err DataError) Error() string {
	return fmt.Sprintf("%s: point %d has a missing or malformed %s", ErrInvalidFormat, err.Point, err.Field)
}

func (err DataError) Unwrap() error {
	return ErrInvalidFormat
}

// Read parses the points format: the point count followed by "index x y"
// entries, all separated by whitespace. A list that ends before the declared
// count is accepted, an entry cut short is not.
func Read(r io.Reader) ([]tour.Point, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var eof bool
	next := func() (int, bool) {
		if !scanner.Scan() {
			eof = true
			return 0, false
		}
		v, err := strconv.Atoi(scanner.Text())
		return v, err == nil
	}

	count, ok := next()
	if !ok || count < 0 {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: first entry must be the point count", ErrInvalidFormat)
	}

	points := make([]tour.Point, 0, count)
	for i := 1; i <= count; i++ {
		if _, ok := next(); !ok {
			if eof {
				break
			}
			return nil, DataError{Point: i, Field: "index"}
		}
		x, ok := next()
		if !ok {
			return nil, DataError{Point: i, Field: "x"}
		}
		y, ok := next()
		if !ok {
			return nil, DataError{Point: i, Field: "y"}
		}
		points = append(points, tour.Point{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return points, nil
}

// Write emits points with 1-based indexes.
func Write(w io.Writer, points []tour.Point) error {
	if len(points) == 0 {
		return ErrNoPoints
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(points))
	for i, p := range points {
		fmt.Fprintf(bw, "%d %d %d\n", i+1, p.X, p.Y)
	}
	return bw.Flush()
}

func Load(path string) ([]tour.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open points file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func Save(path string, points []tour.Point) (err error) {
	if len(points) == 0 {
		return ErrNoPoints
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create points file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, points)
}
