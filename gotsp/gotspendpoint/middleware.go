package gotspendpoint

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
)

// NewLoggingMiddleware returns endpoint middleware that logs
// information about duration of each call and error if any occurred
func NewLoggingMiddleware(logger log.Logger) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				logged := err
				if r, ok := response.(failer); ok && logged == nil {
					logged = r.Error()
				}
				logger.Log(
					"err", logged,
					"took", time.Since(begin),
				)
			}(time.Now())

			return next(ctx, request)
		}
	}
}

// failer is implemented by responses that carry a service error.
type failer interface {
	Error() error
}
