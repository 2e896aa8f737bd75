package gotspservice

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/kr/pretty"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

// Middleware is a service middleware, similar to endpoint middleware
type Middleware func(Service) Service

// NewLoggingMiddleware given a logger returns a service middleware
// that logs service methods calls
func NewLoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return loggingMiddleware{logger, next}
	}
}

type loggingMiddleware struct {
	logger log.Logger
	next   Service
}

func (mw loggingMiddleware) TourPlan(ctx context.Context, tc tour.Configuration) (p tour.Plan, err error) {
	defer func(begin time.Time) {
		mw.logger.Log(
			"method", "TourPlan",
			"algorithm", tc.Algorithm,
			"cities", len(tc.TourCities()),
			"params", pretty.Sprint(tc.Params),
			"id", p.ID,
			"distance", p.Tour.TotalDistance(),
			"err", err,
			"took", time.Since(begin),
		)
	}(time.Now())
	return mw.next.TourPlan(ctx, tc)
}

func (mw loggingMiddleware) Run(ctx context.Context, id string) (p tour.Plan, err error) {
	defer func(begin time.Time) {
		mw.logger.Log(
			"method", "Run",
			"id", id,
			"err", err,
			"took", time.Since(begin),
		)
	}(time.Now())
	return mw.next.Run(ctx, id)
}
