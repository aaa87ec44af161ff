package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-sync/internal/port"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout = 10 * time.Second

	HeaderCorrelationID = "X-Correlation-Id"

	maxResponseBytes = 4 << 20
)

// Client talks to the storefront REST API. Every failure it returns is a *domain.APIError.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	credentials port.CredentialSource
	log         logrus.FieldLogger

	Cart      *CartResource
	Favorites *FavoritesResource
	Products  *ProductsResource
	Orders    *OrdersResource
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Its Timeout is left as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func WithCredentials(src port.CredentialSource) Option {
	return func(c *Client) {
		c.credentials = src
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("url.Parse[%s]: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		credentials: noCredentials{},
		log:         logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "api-client")

	c.Cart = &CartResource{c: c}
	c.Favorites = &FavoritesResource{c: c}
	c.Products = &ProductsResource{c: c}
	c.Orders = &OrdersResource{c: c}

	return c, nil
}

// do sends one request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method string, path []string, query url.Values, in, out any) error {
	req, err := c.newRequest(ctx, method, path, query, in)
	if err != nil {
		return setupError(err)
	}

	log := c.log.WithFields(logrus.Fields{
		"method": method,
		"path":   req.URL.Path,
	})

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed without response")
		return noResponseError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.WithError(err).Warn("reading response body failed")
		return noResponseError(err)
	}

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := responseError(resp.StatusCode, body)
		log.WithError(apiErr).Warn("request rejected")
		return apiErr
	}
	log.Debug("request completed")

	if out == nil {
		return nil
	}

	if err := decodeStrict(body, out); err != nil {
		log.WithError(err).Warn("malformed response payload")
		return malformedError(resp.StatusCode, err)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, path []string, query url.Values, in any) (*http.Request, error) {
	escaped := make([]string, 0, len(path))
	for _, seg := range path {
		escaped = append(escaped, url.PathEscape(seg))
	}
	u := c.baseURL.JoinPath(escaped...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderCorrelationID, uuid.NewString())

	token, err := c.credentials.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("credentials.Token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func decodeStrict(body []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}

type noCredentials struct{}

func (noCredentials) Token(context.Context) (string, error) {
	return "", nil
}

// StaticToken is a CredentialSource holding a fixed token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}
