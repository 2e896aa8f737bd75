package gotspservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/log"
	"github.com/google/uuid"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/planner"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/planner/ants"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
	"github.com/radekwlsk/go-tsp/utils/str"
)

// Service plans closed tours over cities and serves archived plans.
type Service interface {
	TourPlan(context.Context, tour.Configuration) (tour.Plan, error)
	Run(ctx context.Context, id string) (tour.Plan, error)
}

// Archive keeps solved plans, see archive.Store.
type Archive interface {
	Save(context.Context, tour.Plan) error
	Get(ctx context.Context, id string) (tour.Plan, error)
}

type Option func(*service)

// WithConfig sets the colony config that request params are overlaid on.
func WithConfig(config ants.Config) Option {
	return func(s *service) {
		s.config = config
	}
}

// WithArchive archives every plan and enables Run.
func WithArchive(a Archive) Option {
	return func(s *service) {
		s.archive = a
	}
}

func New(logger log.Logger, options ...Option) Service {
	var s Service
	{
		s = NewService(log.With(logger, "layer", "planner"), options...)
		s = NewLoggingMiddleware(log.With(logger, "layer", "service"))(s)
	}
	return s
}

var (
	ErrNoCities = errors.New("request must contain at least one city as 'cities' or 'points'")

	ErrBadAlgorithm = planner.ErrBadAlgorithm

	ErrBadRunID = errors.New("run id must be a UUID")

	ErrArchiveDisabled = errors.New("run archive is not enabled")
)

type ErrBadParams struct {
	Err error
}

func (err ErrBadParams) Error() string {
	return fmt.Sprintf("could not apply params: %s", err.Err)
}

func (err ErrBadParams) Unwrap() error {
	return err.Err
}

type service struct {
	config  ants.Config
	archive Archive
	logger  log.Logger
}

func NewService(logger log.Logger, options ...Option) Service {
	s := &service{
		config: ants.DefaultConfig(),
		logger: logger,
	}
	for _, o := range options {
		o(s)
	}
	return s
}

func (s *service) TourPlan(ctx context.Context, tc tour.Configuration) (tour.Plan, error) {
	cities := tc.TourCities()
	if len(cities) == 0 {
		return tour.Plan{}, ErrNoCities
	}
	if _, err := tour.NewTour(cities); err != nil {
		return tour.Plan{}, err
	}

	algorithm := str.EmptyDefault(tc.Algorithm, planner.Default)
	if !str.In(algorithm, planner.AlgorithmOptions) {
		return tour.Plan{}, ErrBadAlgorithm
	}

	config := s.config
	switch {
	case algorithm == planner.AntColony:
		var err error
		if config, err = ants.DecodeConfig(tc.Params, s.config); err != nil {
			return tour.Plan{}, ErrBadParams{err}
		}
		if err = config.Validate(); err != nil {
			return tour.Plan{}, ErrBadParams{err}
		}
	case len(tc.Params) > 0:
		return tour.Plan{}, ErrBadParams{fmt.Errorf("%s algorithm takes no params", algorithm)}
	}

	p, err := planner.NewPlanner(algorithm, config, s.logger)
	if err != nil {
		return tour.Plan{}, err
	}
	plan, err := p.Evaluate(ctx, cities)
	if err != nil {
		return tour.Plan{}, err
	}
	plan.ID = uuid.New().String()

	if s.archive != nil {
		if err := s.archive.Save(ctx, plan); err != nil {
			return plan, err
		}
	}
	return plan, nil
}

func (s *service) Run(ctx context.Context, id string) (tour.Plan, error) {
	if s.archive == nil {
		return tour.Plan{}, ErrArchiveDisabled
	}
	if _, err := uuid.Parse(id); err != nil {
		return tour.Plan{}, ErrBadRunID
	}
	return s.archive.Get(ctx, id)
}
