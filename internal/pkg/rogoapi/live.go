package rogoapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/RogoSolutions/iotcore-demo/internal/pkg/logging"
)

// Live talks to the Rogo cloud backend over REST.
type Live struct {
	baseURL     string
	accessToken string
	timeout     time.Duration
}

func NewLiveClient(baseURL string) *Live {
	return &Live{
		baseURL: baseURL,
	}
}

func (c *Live) WithAccessToken(token string) Backend {
	nc := *c
	nc.accessToken = token
	return &nc
}

func (c *Live) WithTimeout(d time.Duration) Backend {
	nc := *c
	nc.timeout = d
	return &nc
}

func (c *Live) makeContext() (context.Context, context.CancelFunc) {
	var ctx = context.Background()
	var cancel context.CancelFunc = func() {}
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), c.timeout)
	}

	return ctx, cancel
}

func (c *Live) httpClient(ctx context.Context) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.accessToken})
	return oauth2.NewClient(ctx, ts)
}

func (c *Live) fetch(path string) ([]byte, error) {
	ctx, cancel := c.makeContext()
	defer cancel()

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", url)
	}

	resp, err := c.httpClient(ctx).Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetching %s: HTTP status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading response from %s", url)
	}

	logging.Logger(nil).Debugf("backend response from %s: %d bytes", path, len(body))
	return body, nil
}

func (c *Live) Locations() ([]Location, error) {
	body, err := c.fetch("/v1/locations")
	if err != nil {
		return nil, errors.Wrap(err, "listing locations")
	}

	return DecodeLocations(body), nil
}

func (c *Live) Groups() ([]Group, error) {
	body, err := c.fetch("/v1/groups")
	if err != nil {
		return nil, errors.Wrap(err, "listing groups")
	}

	return DecodeGroups(body), nil
}
