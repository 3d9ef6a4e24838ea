package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmitrijs2005/qaforum/internal/common"
)

const maxErrorBody = 64 << 10

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse server url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse server url: missing host")
	}

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Register(ctx context.Context, r Registration) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, r, &u, false); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &res, false); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

func (c *Client) Check(ctx context.Context) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodGet, "/auth/check", nil, nil, &s, true); err != nil {
		return nil, err
	}
	return &s, nil
}

// Logout revokes the current token on the server. The local token is
// dropped even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, true)
}

func (c *Client) ListQuestions(ctx context.Context, f QuestionFilter) ([]Question, error) {
	q := url.Values{}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.UserID > 0 {
		q.Set("userid", strconv.FormatInt(f.UserID, 10))
	}

	var out []Question
	if err := c.do(ctx, http.MethodGet, "/questions", q, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetQuestion(ctx context.Context, id string) (*Question, error) {
	var q Question
	if err := c.do(ctx, http.MethodGet, "/questions/"+url.PathEscape(id), nil, nil, &q, false); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) CreateQuestion(ctx context.Context, in QuestionInput) (*Question, error) {
	var q Question
	if err := c.do(ctx, http.MethodPost, "/questions", nil, in, &q, true); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, id string, in QuestionInput) (*Question, error) {
	in.QuestionID = ""
	var q Question
	if err := c.do(ctx, http.MethodPut, "/questions/"+url.PathEscape(id), nil, in, &q, true); err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteQuestion removes a question and reports how many answers went with it.
func (c *Client) DeleteQuestion(ctx context.Context, id string) (int64, error) {
	var res deleteQuestionResponse
	if err := c.do(ctx, http.MethodDelete, "/questions/"+url.PathEscape(id), nil, nil, &res, true); err != nil {
		return 0, err
	}
	return res.AnswersDeleted, nil
}

func (c *Client) ListAnswers(ctx context.Context, questionID string) ([]Answer, error) {
	var out []Answer
	if err := c.do(ctx, http.MethodGet, "/answers/"+url.PathEscape(questionID), nil, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAnswer(ctx context.Context, questionID, body string) (*Answer, error) {
	var a Answer
	if err := c.do(ctx, http.MethodPost, "/answers", nil, answerRequest{QuestionID: questionID, Answer: body}, &a, true); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) UpdateAnswer(ctx context.Context, answerID int64, body string) (*Answer, error) {
	var a Answer
	if err := c.do(ctx, http.MethodPut, answerPath(answerID), nil, answerRequest{Answer: body}, &a, true); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) DeleteAnswer(ctx context.Context, answerID int64) error {
	return c.do(ctx, http.MethodDelete, answerPath(answerID), nil, nil, nil, true)
}

func answerPath(id int64) string {
	return "/answers/" + strconv.FormatInt(id, 10)
}

// do sends one request and decodes a 2xx JSON reply into out (when not nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any, protected bool) error {
	token := c.Token()
	if protected && token == "" {
		return ErrNotLoggedIn
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if protected {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	var er errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&er); err == nil {
		apiErr.Message = er.Error
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
