package preflight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// ErrPageServerUnreachable means the page under test is not being served
var ErrPageServerUnreachable = errors.New("page server unreachable")

const defaultTimeout = 5 * time.Second

// HTTPCheck probes the page server with a single GET
type HTTPCheck struct {
	client *resty.Client
	logger *logrus.Logger
}

// NewHTTPCheck - creates new preflight check; zero timeout uses the default
func NewHTTPCheck(logger *logrus.Logger, timeout time.Duration) *HTTPCheck {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &HTTPCheck{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", "menu-verify/preflight"),
		logger: logger,
	}
}

// Check - fails when the server cannot be reached or answers with a 5xx
func (c *HTTPCheck) Check(ctx context.Context, url string) error {
	start := time.Now()
	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPageServerUnreachable, url, err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s answered %s", ErrPageServerUnreachable, url, resp.Status())
	}

	c.logger.WithFields(logrus.Fields{
		"url":     url,
		"status":  resp.StatusCode(),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Debug("Page server reachable")
	return nil
}
