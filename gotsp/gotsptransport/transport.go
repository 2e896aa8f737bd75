package gotsptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"

	"github.com/radekwlsk/go-tsp/gotsp/gotspendpoint"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/archive"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

const (
	tourPath = "/api/tour/"
	runsPath = "/api/runs/"
)

func MakeHTTPHandler(endpoints gotspendpoint.Endpoints, logger log.Logger) http.Handler {
	r := mux.NewRouter()
	options := []httptransport.ServerOption{
		httptransport.ServerErrorLogger(logger),
		httptransport.ServerErrorEncoder(errorEncoder),
	}

	r.Methods("POST").Path(tourPath).Handler(httptransport.NewServer(
		endpoints.TourPlanEndpoint,
		decodeTourPlanRequest,
		encodeResponse,
		options...,
	))
	r.Methods("GET").Path(runsPath + "{id}").Handler(httptransport.NewServer(
		endpoints.RunEndpoint,
		decodeRunRequest,
		encodeResponse,
		options...,
	))

	return r
}

// MakeHTTPClient returns a Service backed by a remote gotsp server. A nil
// client uses http.DefaultClient.
func MakeHTTPClient(instance string, client *http.Client) (gotspservice.Service, error) {
	if !strings.HasPrefix(instance, "http") {
		instance = "http://" + instance
	}
	u, err := url.Parse(instance)
	if err != nil {
		return nil, err
	}

	var options []httptransport.ClientOption
	if client != nil {
		options = append(options, httptransport.SetClient(client))
	}

	var tourPlanEndpoint endpoint.Endpoint
	{
		tourPlanEndpoint = httptransport.NewClient(
			"POST",
			copyURL(u, tourPath),
			encodeTourPlanRequest,
			decodeTourPlanResponse,
			options...,
		).Endpoint()
	}
	var runEndpoint endpoint.Endpoint
	{
		runEndpoint = httptransport.NewClient(
			"GET",
			copyURL(u, runsPath),
			encodeRunRequest,
			decodeRunResponse,
			options...,
		).Endpoint()
	}

	return gotspendpoint.Endpoints{
		TourPlanEndpoint: tourPlanEndpoint,
		RunEndpoint:      runEndpoint,
	}, nil
}

func copyURL(base *url.URL, path string) *url.URL {
	next := *base
	next.Path = path
	return &next
}

// ErrBadRequest wraps request bodies and paths that could not be decoded.
type ErrBadRequest struct {
	Err error
}

func (err ErrBadRequest) Error() string {
	return fmt.Sprintf("malformed request: %s", err.Err)
}

func (err ErrBadRequest) Unwrap() error {
	return err.Err
}

func decodeTourPlanRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var request gotspendpoint.TourPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&request.TourConfiguration); err != nil {
		return nil, ErrBadRequest{err}
	}
	return request, nil
}

func decodeRunRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, ok := mux.Vars(r)["id"]
	if !ok {
		return nil, ErrBadRequest{errors.New("missing run id")}
	}
	return gotspendpoint.RunRequest{ID: id}, nil
}

func decodeTourPlanResponse(_ context.Context, resp *http.Response) (interface{}, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, errorDecoder(resp)
	}
	var response gotspendpoint.TourPlanResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	return response, err
}

func decodeRunResponse(_ context.Context, resp *http.Response) (interface{}, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, errorDecoder(resp)
	}
	var response gotspendpoint.RunResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	return response, err
}

func encodeTourPlanRequest(ctx context.Context, req *http.Request, request interface{}) error {
	// r.Methods("POST").Path("/api/tour/")
	req.Method, req.URL.Path = "POST", tourPath
	return encodeRequest(ctx, req, request.(gotspendpoint.TourPlanRequest).TourConfiguration)
}

func encodeRunRequest(_ context.Context, req *http.Request, request interface{}) error {
	// r.Methods("GET").Path("/api/runs/{id}")
	req.Method, req.URL.Path = "GET", runsPath+url.PathEscape(request.(gotspendpoint.RunRequest).ID)
	return nil
}

type erroneousResponse interface {
	Error() error
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if e, ok := response.(erroneousResponse); ok && e.Error() != nil {
		errorEncoder(ctx, e.Error(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

func encodeRequest(_ context.Context, req *http.Request, request interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Body = io.NopCloser(&buf)
	return nil
}

// knownErrors decode back to their sentinels on the client side.
var knownErrors = []error{
	gotspservice.ErrNoCities,
	gotspservice.ErrBadAlgorithm,
	gotspservice.ErrBadRunID,
	gotspservice.ErrArchiveDisabled,
	archive.ErrNotFound,
}

func errorDecoder(r *http.Response) error {
	var w errorWrapper
	if err := json.NewDecoder(r.Body).Decode(&w); err != nil {
		return fmt.Errorf("unexpected response status %d: %w", r.StatusCode, err)
	}
	for _, known := range knownErrors {
		if w.Error == known.Error() {
			return known
		}
	}
	return errors.New(w.Error)
}

func errorEncoder(_ context.Context, err error, w http.ResponseWriter) {
	if err == nil {
		panic("encodeError with nil Error")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(errToStatus(err))
	json.NewEncoder(w).Encode(map[string]interface{}{
		"err": err.Error(),
	})
}

func errToStatus(err error) int {
	switch {
	case
		errors.Is(err, gotspservice.ErrNoCities),
		errors.Is(err, gotspservice.ErrBadAlgorithm),
		errors.Is(err, gotspservice.ErrBadRunID):
		return http.StatusBadRequest
	case
		errors.Is(err, gotspservice.ErrArchiveDisabled),
		errors.Is(err, archive.ErrNotFound):
		return http.StatusNotFound
	case
		errors.As(err, &gotspservice.ErrBadParams{}),
		errors.As(err, &tour.ErrDuplicateCity{}),
		errors.As(err, &ErrBadRequest{}):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type errorWrapper struct {
	Error string `json:"err"`
}
