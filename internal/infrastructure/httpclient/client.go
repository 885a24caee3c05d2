// Package httpclient implements the outbound client for the upstream
// commerce API. Every request carries the console's fixed header set, and
// failed responses are mapped to fixed user-facing messages surfaced through
// the notification channel before the error is passed back to the caller.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoporbit/console-gateway/internal/api/metrics"
	"github.com/shoporbit/console-gateway/internal/core/domain"
	"github.com/shoporbit/console-gateway/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for outbound requests, or "" when
// the token slot is empty.
type TokenSource func(ctx context.Context) string

// StatusError carries an upstream HTTP failure back to the caller. The
// response itself is still returned alongside it.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Code, e.Message)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Token   TokenSource
}

// Client issues credentialed requests to the commerce API. The cookie jar
// keeps the XSRF cookie obtained from the CSRF endpoint across requests.
type Client struct {
	baseURL  string
	http     *http.Client
	token    TokenSource
	notifier ports.Notifier
	log      zerolog.Logger
}

func New(cfg Config, notifier ports.Notifier, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		token:    cfg.Token,
		notifier: notifier,
		log:      log.With().Str("component", "httpclient").Logger(),
	}
}

// Request describes a single upstream call. Path is the fully qualified API
// path, normally produced by the endpoint resolver.
type Request struct {
	Method      string
	Path        string
	Body        io.Reader
	ContentType string
	UserAgent   string
}

// Do sends the request with the console header set applied. Non-2xx
// responses are returned together with a StatusError after the fixed
// per-status message has been pushed as a toast; context cancellation is
// suppressed from user-visible messaging and passed through unchanged.
func (c *Client) Do(ctx context.Context, req Request) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, req.Body)
	if err != nil {
		return nil, err
	}

	// Default content headers are cleared; only an explicitly provided
	// content type is sent.
	httpReq.Header.Del("Content-Type")
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	httpReq.Header.Set("X-Requested-With", "XMLHttpRequest")
	httpReq.Header.Set("source", "web")
	httpReq.Header.Set("platform", platformFromUserAgent(req.UserAgent))
	if c.token != nil {
		if tok := c.token(ctx); tok != "" {
			httpReq.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		metrics.UpstreamResponsesTotal.WithLabelValues("0").Inc()
		msg := domain.StatusMessage(0)
		c.notifier.Push(msg, domain.SeverityError, "")
		c.log.Error().Err(err).Str("path", req.Path).Msg("upstream request failed")
		return nil, err
	}

	metrics.UpstreamResponsesTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= http.StatusBadRequest {
		msg := domain.StatusMessage(resp.StatusCode)
		c.notifier.Push(msg, domain.SeverityError, "")
		return resp, &StatusError{Code: resp.StatusCode, Message: msg}
	}
	return resp, nil
}

// platformFromUserAgent derives the platform marker sent with every request.
func platformFromUserAgent(ua string) string {
	switch {
	case strings.Contains(ua, "Android"):
		return "android"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"):
		return "ios"
	case strings.Contains(ua, "Windows"):
		return "windows"
	case strings.Contains(ua, "Macintosh"):
		return "macos"
	case strings.Contains(ua, "Linux"):
		return "linux"
	default:
		return "web"
	}
}
