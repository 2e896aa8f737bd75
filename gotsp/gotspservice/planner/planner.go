package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/kit/log"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/planner/ants"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/planner/greedy"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
	"github.com/radekwlsk/go-tsp/utils/str"
)

type Algorithm = string

const (
	Greedy    Algorithm = "greedy"
	AntColony Algorithm = "ant-colony"
	Default             = AntColony
)

var AlgorithmOptions = []string{Greedy, AntColony}

var ErrBadAlgorithm = fmt.Errorf("algorithm is not valid, available algorithms are: %s",
	strings.Join(AlgorithmOptions, ", "))

var ErrNoCities = errors.New("at least one city is required")

type Planner struct {
	algorithm Algorithm
	config    ants.Config
	logger    log.Logger
}

// NewPlanner validates the algorithm and, for the ant colony, its config.
// An empty algorithm selects the ant colony.
func NewPlanner(algorithm string, config ants.Config, logger log.Logger) (*Planner, error) {
	algorithm = str.EmptyDefault(algorithm, Default)
	if !str.In(algorithm, AlgorithmOptions) {
		return nil, ErrBadAlgorithm
	}
	if algorithm == AntColony {
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Planner{
		algorithm: algorithm,
		config:    config,
		logger:    log.With(logger, "algorithm", algorithm),
	}, nil
}

func (p *Planner) Algorithm() Algorithm {
	return p.algorithm
}

func (p *Planner) Evaluate(ctx context.Context, cities []tour.City) (tour.Plan, error) {
	if len(cities) == 0 {
		return tour.Plan{}, ErrNoCities
	}

	begin := time.Now()
	plan := tour.Plan{
		Algorithm: p.algorithm,
		CreatedAt: begin.UTC(),
	}

	switch p.algorithm {
	case Greedy:
		t, err := greedy.Solve(cities)
		if err != nil {
			return tour.Plan{}, err
		}
		plan.Tour = t
	case AntColony:
		colony, err := ants.NewColony(cities, p.config, p.logger)
		if err != nil {
			return tour.Plan{}, err
		}
		solution, err := colony.Solve(ctx)
		if err != nil {
			return tour.Plan{}, err
		}
		plan.Tour = solution.Tour
		plan.Iterations = solution.Iterations
		plan.StopReason = string(solution.StopReason)
		plan.Seed = solution.Seed
	default:
		return tour.Plan{}, ErrBadAlgorithm
	}

	plan.Elapsed = time.Since(begin)
	return plan, nil
}
