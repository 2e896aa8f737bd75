package gotsptransport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radekwlsk/go-tsp/gotsp/gotspendpoint"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/archive"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/planner/ants"
	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
	"github.com/radekwlsk/go-tsp/gotsp/gotsptransport"
)

var square = []tour.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}

func newServer(t *testing.T, options ...gotspservice.Option) *httptest.Server {
	t.Helper()
	logger := log.NewNopLogger()
	config := ants.DefaultConfig()
	config.Seed = 1
	options = append([]gotspservice.Option{gotspservice.WithConfig(config)}, options...)
	s := gotspservice.New(logger, options...)
	h := gotsptransport.MakeHTTPHandler(gotspendpoint.New(s, logger), logger)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func withArchive(t *testing.T) gotspservice.Option {
	t.Helper()
	store, err := archive.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return gotspservice.WithArchive(store)
}

func post(t *testing.T, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url+"/api/tour/", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestTourPlanOverHTTP(t *testing.T) {
	srv := newServer(t)

	resp, body := post(t, srv.URL, `{"algorithm":"greedy","points":[{"x":0,"y":0},{"x":3,"y":0},{"x":3,"y":4}]}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "greedy", body["algorithm"])
	tr := body["tour"].(map[string]interface{})
	assert.InDelta(t, 12.0, tr["totalDistance"], 1e-9)
	assert.Len(t, tr["cities"], 3)
	assert.NotEmpty(t, body["id"])
}

func TestErrorStatuses(t *testing.T) {
	srv := newServer(t)

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"points": [`, http.StatusBadRequest},
		{"no cities", `{}`, http.StatusBadRequest},
		{"bad algorithm", `{"algorithm":"genetic","points":[{"x":1,"y":1}]}`, http.StatusBadRequest},
		{"bad params", `{"points":[{"x":1,"y":1}],"params":{"gamma":1}}`, http.StatusBadRequest},
		{"duplicate city", `{"cities":[{"name":"A","x":1,"y":1},{"name":"A","x":1,"y":1}]}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := post(t, srv.URL, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.NotEmpty(t, body["err"])
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/api/tour/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}

func TestClient(t *testing.T) {
	srv := newServer(t, withArchive(t))
	client, err := gotsptransport.MakeHTTPClient(srv.URL, nil)
	require.NoError(t, err)
	ctx := context.Background()

	plan, err := client.TourPlan(ctx, tour.Configuration{Points: square})
	require.NoError(t, err)
	assert.Equal(t, "ant-colony", plan.Algorithm)
	assert.LessOrEqual(t, plan.Tour.TotalDistance(), 450.0)
	assert.Equal(t, int64(1), plan.Seed)

	got, err := client.Run(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, got.ID)
	assert.Equal(t, plan.Tour.Cities(), got.Tour.Cities())

	_, err = client.Run(ctx, uuid.New().String())
	assert.ErrorIs(t, err, archive.ErrNotFound)

	_, err = client.Run(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, gotspservice.ErrBadRunID)

	_, err = client.TourPlan(ctx, tour.Configuration{})
	assert.ErrorIs(t, err, gotspservice.ErrNoCities)

	_, err = client.TourPlan(ctx, tour.Configuration{Algorithm: "genetic", Points: square})
	assert.ErrorIs(t, err, gotspservice.ErrBadAlgorithm)
}

func TestClientWithoutArchive(t *testing.T) {
	srv := newServer(t)
	client, err := gotsptransport.MakeHTTPClient(strings.TrimPrefix(srv.URL, "http://"), http.DefaultClient)
	require.NoError(t, err)

	_, err = client.Run(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, gotspservice.ErrArchiveDisabled)
}
