package clients

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
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/config"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/session"
)

const (
	loginPath   = "/token/"
	refreshPath = "/token/refresh/"

	// maxResponseBytes caps how much of a backend response is buffered.
	maxResponseBytes = 8 << 20
)

// ErrSessionExpired is returned when a 401 could not be recovered by refreshing
// the access token. The session has been cleared and the login redirect fired.
var ErrSessionExpired = errors.New("session expired")

var errNoRefreshToken = errors.New("no refresh token held")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: backend returned status %d", e.Method, e.Path, e.StatusCode)
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsAbort reports whether err comes from the caller abandoning the request.
// Aborts are not failures and should not be surfaced to the operator.
func IsAbort(err error) bool {
	return errors.Is(err, context.Canceled)
}

type requestIDKey struct{}

// WithRequestID attaches a request ID that is propagated to the backend.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request ID set by WithRequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}

// APIClient performs authenticated calls against the store backend. It keeps
// the session's access token valid: a 401 triggers one refresh and one replay.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	redirector LoginRedirector
	refreshes  singleflight.Group
	metrics    *metrics.Metrics
	logger     *logging.LoggerV2
}

// NewAPIClient creates a backend client bound to sess. A nil redirector only logs.
func NewAPIClient(
	cfg config.APIConfig,
	sess *session.Session,
	redirector LoginRedirector,
	m *metrics.Metrics,
	logger *logging.LoggerV2,
) *APIClient {
	if redirector == nil {
		redirector = RedirectFunc(func(context.Context, error) {})
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &APIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		session:    sess,
		redirector: redirector,
		metrics:    m,
		logger:     logger,
	}
}

// Session returns the session the client stamps requests from.
func (c *APIClient) Session() *session.Session {
	return c.session
}

// Do sends method path with an optional JSON body and query, decoding a
// successful response into out when out is non-nil.
//
// Non-401 failures are returned unchanged. A 401 is answered by refreshing the
// access token and replaying the request once; a second 401 is returned as is.
func (c *APIClient) Do(ctx context.Context, method, path string, body interface{}, query url.Values, out interface{}) error {
	payload, err := encodeBody(body)
	if err != nil {
		return err
	}

	authenticated := !isTokenEndpoint(path)
	retried := false

	for {
		var stamped string
		if authenticated {
			stamped = c.session.AccessToken()
		}

		data, status, err := c.send(ctx, method, path, query, payload, stamped)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized && authenticated && !retried {
			retried = true
			if err := c.renew(ctx, stamped); err != nil {
				return err
			}
			c.metrics.Retries.Inc()
			c.logger.Debug("Replaying request with refreshed token", logging.Fields{
				"method": method,
				"path":   path,
			})
			continue
		}

		if status < 200 || status >= 300 {
			return &APIError{Method: method, Path: path, StatusCode: status, Body: data}
		}

		return decodeBody(data, out)
	}
}

// renew makes sure the session holds an access token newer than stale.
// Concurrent callers share one in-flight refresh.
func (c *APIClient) renew(ctx context.Context, stale string) error {
	current := c.session.AccessToken()
	if current != "" && current != stale {
		return nil
	}
	if current == "" && stale != "" {
		// Torn down since this request was stamped; the redirect already fired.
		return fmt.Errorf("%w: session cleared", ErrSessionExpired)
	}

	ch := c.refreshes.DoChan(refreshPath, func() (interface{}, error) {
		// A flight that finished between the check above and here already did the work.
		if current := c.session.AccessToken(); current != stale {
			if current == "" {
				return nil, fmt.Errorf("%w: session cleared", ErrSessionExpired)
			}
			return nil, nil
		}
		// The refresh outlives any one waiter; it is bounded by the client timeout.
		return nil, c.refresh(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (c *APIClient) refresh(ctx context.Context) error {
	c.session.BeginRefresh()
	defer c.session.EndRefresh()

	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		c.metrics.Refreshes.WithLabelValues("missing").Inc()
		return c.expire(ctx, errNoRefreshToken)
	}

	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return err
	}

	data, status, err := c.send(ctx, http.MethodPost, refreshPath, nil, payload, "")
	if err == nil && status != http.StatusOK {
		err = &APIError{Method: http.MethodPost, Path: refreshPath, StatusCode: status, Body: data}
	}

	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err == nil {
		if err = json.Unmarshal(data, &resp); err == nil && resp.Access == "" {
			err = errors.New("refresh response has no access token")
		}
	}
	if err != nil {
		c.metrics.Refreshes.WithLabelValues("failed").Inc()
		return c.expire(ctx, err)
	}

	if err := c.session.SetAccessToken(ctx, resp.Access, resp.Refresh); err != nil {
		c.metrics.Refreshes.WithLabelValues("failed").Inc()
		return c.expire(ctx, err)
	}

	c.metrics.Refreshes.WithLabelValues("succeeded").Inc()
	c.logger.Info("Access token refreshed")
	return nil
}

// expire tears the session down and sends the operator back to login.
func (c *APIClient) expire(ctx context.Context, cause error) error {
	c.logger.Warn("Session expired, redirecting to login", logging.Fields{"reason": cause.Error()})

	if err := c.session.ClearTokens(ctx); err != nil {
		c.logger.Error("Failed to clear stored tokens", logging.Fields{"error": err.Error()})
	}
	c.metrics.Redirects.Inc()
	c.redirector.RedirectToLogin(ctx, cause)

	return fmt.Errorf("%w: %w", ErrSessionExpired, cause)
}

func (c *APIClient) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) ([]byte, int, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, err
	}
	c.setHeaders(ctx, req, token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.APIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.APIRequests.WithLabelValues(method, metrics.StatusClass(0)).Inc()
		if !IsAbort(err) {
			c.logger.Error("Backend request failed", logging.Fields{
				"method": method,
				"path":   path,
				"error":  err.Error(),
			})
		}
		return nil, 0, err
	}
	defer resp.Body.Close()

	c.metrics.APIRequests.WithLabelValues(method, metrics.StatusClass(resp.StatusCode)).Inc()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, err
	}

	c.logger.Debug("Backend request", logging.Fields{
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
	})
	return data, resp.StatusCode, nil
}

func (c *APIClient) setHeaders(ctx context.Context, req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
}

func isTokenEndpoint(path string) bool {
	return path == loginPath || path == refreshPath
}

func encodeBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	if raw, ok := body.(json.RawMessage); ok {
		return raw, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return payload, nil
}

func decodeBody(data []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
