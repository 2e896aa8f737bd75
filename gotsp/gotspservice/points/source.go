package points

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/tour"
)

// Source provides the points to plan a tour over.
type Source interface {
	Points(ctx context.Context) ([]tour.Point, error)
}

// File reads points from a local points file.
type File string

func (f File) Points(_ context.Context) ([]tour.Point, error) {
	return Load(string(f))
}

type ErrUnexpectedStatus struct {
	URL    string
	Status int
}

func (err ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("fetching points from %s: unexpected status %d %s",
		err.URL, err.Status, http.StatusText(err.Status))
}

// Remote fetches points files over HTTP.
type Remote struct {
	client *http.Client
	url    string
}

func NewRemote(client *http.Client, url string) *Remote {
	if client == nil {
		client = http.DefaultClient
	}
	return &Remote{client: client, url: url}
}

func (r *Remote) Points(ctx context.Context) ([]tour.Point, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch points: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnexpectedStatus{URL: r.url, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}
	return Read(bytes.NewReader(body))
}

// NewSource picks a Remote source for http(s) locations and a File otherwise.
func NewSource(location string, client *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewRemote(client, location)
	}
	return File(location)
}
