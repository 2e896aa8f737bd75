package gotspendpoint

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

type Endpoints struct {
	TourPlanEndpoint endpoint.Endpoint
	RunEndpoint      endpoint.Endpoint
}

func New(s gotspservice.Service, logger log.Logger) Endpoints {
	var tourPlanEndpoint endpoint.Endpoint
	{
		tourPlanEndpoint = NewTourPlanEndpoint(s)
		tourPlanEndpoint = NewLoggingMiddleware(log.With(logger, "layer", "endpoint", "method", "TourPlan"))(tourPlanEndpoint)
	}
	var runEndpoint endpoint.Endpoint
	{
		runEndpoint = NewRunEndpoint(s)
		runEndpoint = NewLoggingMiddleware(log.With(logger, "layer", "endpoint", "method", "Run"))(runEndpoint)
	}
	return Endpoints{
		TourPlanEndpoint: tourPlanEndpoint,
		RunEndpoint:      runEndpoint,
	}
}

func (e Endpoints) TourPlan(ctx context.Context, tc tour.Configuration) (tour.Plan, error) {
	response, err := e.TourPlanEndpoint(ctx, TourPlanRequest{TourConfiguration: tc})
	if err != nil {
		return tour.Plan{}, err
	}
	resp := response.(TourPlanResponse)
	return resp.Plan, resp.Err
}

func (e Endpoints) Run(ctx context.Context, id string) (tour.Plan, error) {
	response, err := e.RunEndpoint(ctx, RunRequest{ID: id})
	if err != nil {
		return tour.Plan{}, err
	}
	resp := response.(RunResponse)
	return resp.Plan, resp.Err
}

func NewTourPlanEndpoint(s gotspservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(TourPlanRequest)
		plan, e := s.TourPlan(ctx, req.TourConfiguration)
		return TourPlanResponse{Plan: plan, Err: e}, nil
	}
}

func NewRunEndpoint(s gotspservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(RunRequest)
		plan, e := s.Run(ctx, req.ID)
		return RunResponse{Plan: plan, Err: e}, nil
	}
}

type TourPlanRequest struct {
	TourConfiguration tour.Configuration
}

type TourPlanResponse struct {
	tour.Plan
	Err error `json:"-"`
}

func (r TourPlanResponse) Error() error { return r.Err }

type RunRequest struct {
	ID string
}

type RunResponse struct {
	tour.Plan
	Err error `json:"-"`
}

func (r RunResponse) Error() error { return r.Err }
