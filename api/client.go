// Package api is a client for the TIG benchmarking API.
//
// Every operation issues a single request to {base_url}/{path} carrying the
// x-api-key header. Requests with a payload are sent as POST with a JSON body,
// all others as GET. A 200 response is decoded into the operation's response
// type, any other status yields an *Error holding the raw response body.
// There are no retries.
package api

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

	"go.uber.org/zap"

	"github.com/the-innovation-game/benchmarker/shared"
)

const apiKeyHeader = "x-api-key"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, opts ...OptionFunc) (*Client, error) {
	options := &option{
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, errors.New("`baseURL` is required")
	}
	if apiKey == "" {
		return nil, errors.New("`apiKey` is required")
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: options.httpClient,
		logger:     options.logger,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) GetEarnings(ctx context.Context) (*EarningsResponse, error) {
	var resp EarningsResponse
	if err := c.call(ctx, "player/getEarnings", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetRecentBenchmarks(ctx context.Context) (*RecentBenchmarksResponse, error) {
	var resp RecentBenchmarksResponse
	if err := c.call(ctx, "player/getRecentBenchmarks", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetLatestBlock(ctx context.Context) (*Block, error) {
	var resp Block
	if err := c.call(ctx, "tig/getLatestBlock", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetAlgorithms(ctx context.Context, challengeID string) (*AlgorithmsResponse, error) {
	var resp AlgorithmsResponse
	if err := c.call(ctx, "tig/getAlgorithms/"+url.PathEscape(challengeID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetFrontiers(ctx context.Context, challengeID string) (*FrontiersResponse, error) {
	var resp FrontiersResponse
	if err := c.call(ctx, "tig/getFrontiers/"+url.PathEscape(challengeID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SubmitBenchmark(ctx context.Context, req SubmitBenchmarkRequest) (*SubmitBenchmarkResponse, error) {
	if req.Nonces == nil {
		req.Nonces = []uint64{}
	}
	var resp SubmitBenchmarkResponse
	if err := c.call(ctx, "player/submitBenchmark", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SubmitProofs(ctx context.Context, benchmarkID string, proofs []shared.Proof) (*SubmitProofsResponse, error) {
	if proofs == nil {
		proofs = []shared.Proof{}
	}
	var resp SubmitProofsResponse
	if err := c.call(ctx, "player/submitProofs/"+url.PathEscape(benchmarkID), SubmitProofsRequest{Proofs: proofs}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// call performs one request. A nil payload means GET.
func (c *Client) call(ctx context.Context, query string, payload, out any) error {
	method := http.MethodGet
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", query, err)
		}
		method = http.MethodPost
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+query, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", query, err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("api: calling", zap.String("method", method), zap.String("query", query))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", query, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", query, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("api: call failed",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return &Error{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", query, err)
	}
	return nil
}
