package seeding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/podium/pkg/logger"
)

// HTTPClient wraps http.Client with a timeout and a session token.
type HTTPClient struct {
	client *http.Client
	token  string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// login exchanges the passcode for a session token and stores it on the client.
func (c *HTTPClient) login(ctx context.Context, baseURL, passcode string) error {
	resp, err := c.Post(ctx, baseURL+"/login", map[string]string{"passcode": passcode})
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read login response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("login rejected with status %d", resp.StatusCode)
	}

	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}
	c.token = parsed.Token
	return nil
}

// submitScores submits score records concurrently using a worker pool
func submitScores(ctx context.Context, config *Config, client *HTTPClient, subs []Submission, stats *Stats) error {
	logger.Get().Info(ctx, "submitting scores",
		logger.Int("submissions", len(subs)),
		logger.Int("workers", config.Workers))

	url := config.BaseURL + "/scores"

	// Counters for statistics
	var (
		successful int64
		failed     int64
		submitted  int64
	)

	// Create worker pool
	subChan := make(chan Submission, config.Workers*2)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for sub := range subChan {
				select {
				case <-ctx.Done():
					return
				default:
					atomic.AddInt64(&submitted, 1)
					if submitSingleScore(ctx, client, url, sub) {
						atomic.AddInt64(&successful, 1)
					} else {
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						logger.Get().Debug(ctx, "submitted scores",
							logger.String("team", sub.Team),
							logger.String("judge", sub.Judge),
							logger.String("category", sub.Category))
					}
				}
			}
		}()
	}

	// Send submissions to workers
	go func() {
		defer close(subChan)
		for _, sub := range subs {
			select {
			case <-ctx.Done():
				return
			case subChan <- sub:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Update stats
	stats.SubmissionsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SubmissionsOK = int(atomic.LoadInt64(&successful))
	stats.SubmissionsFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "score submission completed",
		logger.Int("successful", stats.SubmissionsOK),
		logger.Int("failed", stats.SubmissionsFailed))

	return nil
}

// submitSingleScore submits a single score record and reports success.
func submitSingleScore(ctx context.Context, client *HTTPClient, url string, sub Submission) bool {
	resp, err := client.Post(ctx, url, sub)
	if err != nil {
		return false
	}
	_, err = readResponseBody(resp)
	if err != nil {
		return false
	}
	return resp.StatusCode == StatusOK
}
