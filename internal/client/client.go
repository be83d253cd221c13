// Package client is a small Go client for the speakroots HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"speakroots/internal/config"
	"speakroots/internal/models"
	"speakroots/internal/quizgen"
	"speakroots/internal/services"
	contextutils "speakroots/internal/utils"
	"speakroots/internal/version"
)

// Client calls a speakroots server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   config.ClientRequestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DailyQuiz is the server's view of a daily quiz, without answers
type DailyQuiz struct {
	LevelKey  string                  `json:"level_key"`
	Date      string                  `json:"date"`
	PoolSize  int                     `json:"pool_size"`
	Indexes   []int                   `json:"indexes"`
	Questions []models.PublicQuestion `json:"questions"`
}

// Version returns the server build information
func (c *Client) Version(ctx context.Context) (version.Info, error) {
	var resp struct {
		Server version.Info `json:"server"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/version", nil, &resp)
	return resp.Server, err
}

// Levels returns the level catalogue
func (c *Client) Levels(ctx context.Context) ([]quizgen.LevelInfo, error) {
	var resp struct {
		Levels []quizgen.LevelInfo `json:"levels"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/levels", nil, &resp)
	return resp.Levels, err
}

// DailyIndexes asks the server for the daily selection of identifier
func (c *Client) DailyIndexes(ctx context.Context, poolSize, count int, identifier string) ([]int, error) {
	q := url.Values{}
	q.Set("pool_size", strconv.Itoa(poolSize))
	q.Set("count", strconv.Itoa(count))
	q.Set("identifier", identifier)

	var resp struct {
		Indexes []int `json:"indexes"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/daily/indexes?"+q.Encode(), nil, &resp)
	return resp.Indexes, err
}

// DailyQuiz fetches the daily quiz for levelKey. Empty date means the server's today;
// a non-positive count uses the server default.
func (c *Client) DailyQuiz(ctx context.Context, levelKey, date string, count int) (*DailyQuiz, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}
	path := "/v1/daily/quiz/" + url.PathEscape(levelKey)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var quiz DailyQuiz
	if err := c.do(ctx, http.MethodGet, path, nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Score submits answers for the daily quiz of levelKey
func (c *Client) Score(ctx context.Context, levelKey, date string, answers []models.Answer) (*models.ScoreResult, error) {
	body := map[string]interface{}{"date": date, "answers": answers}
	var score models.ScoreResult
	if err := c.do(ctx, http.MethodPost, "/v1/daily/quiz/"+url.PathEscape(levelKey)+"/score", body, &score); err != nil {
		return nil, err
	}
	return &score, nil
}

// Dispatch posts an event
func (c *Client) Dispatch(ctx context.Context, ev services.Event) (*services.EventResult, error) {
	var res services.EventResult
	if err := c.do(ctx, http.MethodPost, "/v1/events", ev, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return contextutils.WrapError(err, "failed to encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return contextutils.WrapError(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return contextutils.NewAppErrorWithCause(contextutils.ErrTimeout.Code, contextutils.ErrTimeout.Severity,
				"request timed out", method+" "+path, err)
		}
		return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeServiceUnavailable, contextutils.SeverityError,
			"request failed", method+" "+path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return contextutils.WrapError(err, "failed to decode response")
	}
	return nil
}

// decodeError rebuilds the server's AppError from an error response
func decodeError(resp *http.Response) error {
	var body struct {
		Code     string `json:"code"`
		Severity string `json:"severity"`
		Message  string `json:"message"`
		Details  string `json:"details"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &body); err != nil || body.Code == "" {
		return contextutils.NewAppError(contextutils.ErrorCodeInternalError, contextutils.SeverityError,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), strings.TrimSpace(string(data)))
	}
	severity := contextutils.SeverityLevel(body.Severity)
	if severity == "" {
		severity = contextutils.SeverityError
	}
	return contextutils.NewAppError(contextutils.ErrorCode(body.Code), severity, body.Message, body.Details)
}
