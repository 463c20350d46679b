package weatherlink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMalformedBody    = errors.New("malformed response body")
)

type Client interface {
	Fetch(ctx context.Context) (*RawReadingSet, error)
}

type Option func(*client)

// WithHTTPClient replaces the instrumented default http client.
func WithHTTPClient(c *http.Client) Option {
	return func(wl *client) {
		wl.httpClient = c
	}
}

func WithTimeout(d time.Duration) Option {
	return func(wl *client) {
		wl.timeout = d
	}
}

type client struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
}

func NewClient(url string, opts ...Option) Client {
	c := &client{
		url: url,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}

	return c
}

func (c *client) Fetch(ctx context.Context) (*RawReadingSet, error) {
	log := logging.GetFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("failed to send request")
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: expected 2xx but got %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Msg("failed to read response body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	data, err := decode(bodyBytes)
	if err != nil {
		log.Error().Err(err).Msg("failed to unmarshal response body into json")
		return nil, err
	}

	log.Debug().Msgf("received %d readings from %s", len(data.CurrConditionValues), data.OwnerName)

	return data, nil
}
