package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"trialmatch/internal/profile"
)

// APIError covers both registry failure modes: a non-success HTTP status
// (StatusCode set) and a failed network call (StatusCode zero, Err set).
// Neither is retried; both mean the upstream registry is unavailable.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("registry request failed: status %d %s", e.StatusCode, e.Message)
	}
	return "registry unreachable: " + e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg}
}

type searchResponse struct {
	Studies    []studyRecord `json:"studies"`
	TotalCount int           `json:"totalCount"`
}

// Search issues one GET against the registry search endpoint and maps each
// returned study into a trial, dropping records that do not map or do not
// validate. Zero matching studies is an empty slice, not an error.
func (c *Client) Search(ctx context.Context, p profile.PatientProfile) ([]profile.Trial, error) {
	params := BuildQuery(p)
	u := strings.TrimRight(c.cfg.BaseURL, "/") + studiesPath + "?" + params.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &APIError{Message: "building request: " + err.Error(), Err: err}
	}
	started := time.Now()
	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error(), Err: err}
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(res.Body, 8<<20))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
	}
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &APIError{Message: "decoding response: " + err.Error(), Err: err}
	}

	trials := make([]profile.Trial, 0, len(parsed.Studies))
	dropped := 0
	for _, rec := range parsed.Studies {
		t, ok := mapStudy(rec)
		if !ok {
			dropped++
			continue
		}
		trials = append(trials, t)
	}
	log.Printf("registry search_done status=%d total_count=%d returned=%d mapped=%d dropped=%d elapsed_ms=%d",
		res.StatusCode, parsed.TotalCount, len(parsed.Studies), len(trials), dropped, time.Since(started).Milliseconds())
	return trials, nil
}
