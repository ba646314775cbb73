package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/TheCacophonyProject/battery-gauge/internal/api"
)

// ErrNoData is returned while the service has not taken its first reading.
var ErrNoData = errors.New("battery service has no data yet")

// Client fetches the battery status from a running service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// Logger is the subset of a leveled logger the client needs.
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

func New(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *Client) Status(ctx context.Context) (*api.Status, error) {
	url := c.baseURL + api.BatteryPath
	c.log.Debugf("Requesting %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Errorf("failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var status api.Status
		if err := json.Unmarshal(body, &status); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		return &status, nil
	case http.StatusServiceUnavailable:
		return nil, ErrNoData
	default:
		return nil, fmt.Errorf("got %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
