package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrAuthRequired is returned for any 401 reply. Callers treat it as a
// terminal redirect to the login flow, never as a retryable failure.
var ErrAuthRequired = errors.New("authentication required")

// StatusError is a non-2xx, non-401 service reply.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service returned %d: %s", e.StatusCode, e.Body)
}

const (
	todayPath    = "/api/tasks/today"
	completePath = "/api/tasks/complete"
	bonusPath    = "/api/tasks/claim_all_done_bonus"
	walletPath   = "/api/wallet"
)

// Client talks JSON over HTTP to the task/reward service. There are no
// retries and no default timeout: a failed call is reported once and
// the caller decides what to revert. Inject an *http.Client to set a
// timeout.
type Client struct {
	BaseURL    string
	SessionID  string // page-session id stamped on every request
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// Today fetches the day's task snapshot.
func (c *Client) Today(ctx context.Context) (TodayResponse, error) {
	var r TodayResponse
	if err := c.request(ctx, http.MethodGet, todayPath, nil, &r); err != nil {
		return TodayResponse{}, err
	}
	r.normalize()
	return r, nil
}

// Complete reports a task as done and returns the confirmed wallet
// plus the beans actually awarded, which the daily cap may reduce to
// zero.
func (c *Client) Complete(ctx context.Context, taskID string) (CompleteResponse, error) {
	body := struct {
		TaskID string `json:"task_id"`
	}{TaskID: taskID}

	var r CompleteResponse
	if err := c.request(ctx, http.MethodPost, completePath, body, &r); err != nil {
		return CompleteResponse{}, err
	}
	r.normalize()
	return r, nil
}

// ClaimBonus claims the one-time all-tasks-done bonus.
func (c *Client) ClaimBonus(ctx context.Context) (BonusResponse, error) {
	var r BonusResponse
	if err := c.request(ctx, http.MethodPost, bonusPath, nil, &r); err != nil {
		return BonusResponse{}, err
	}
	r.normalize()
	return r, nil
}

// Wallet fetches the header balances.
func (c *Client) Wallet(ctx context.Context) (WalletResponse, error) {
	var r WalletResponse
	if err := c.request(ctx, http.MethodGet, walletPath, nil, &r); err != nil {
		return WalletResponse{}, err
	}
	r.normalize()
	return r, nil
}

func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.SessionID != "" {
		req.Header.Set("X-Session-ID", c.SessionID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAuthRequired
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out != nil {
		if err := json.Unmarshal(b, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
