// Package submission sends a validated onboarding payload to the user-creation endpoint and tracks
// the outcome for the UI.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"onboarding_backend/internal/onboarding"

	"go.uber.org/zap"
)

const (
	createUserPath = "/api/user"
	mePath         = "/api/user/me"

	maxPlainMessage = 200

	// FallbackMessage is shown when a failed response carries no usable message.
	FallbackMessage = "Failed to create user"
	// SuccessNotice is shown after the profile has been created.
	SuccessNotice = "Profile created successfully"
)

// State is the observable state of the client.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrSubmissionPending is returned when Submit is called while an earlier request is outstanding.
var ErrSubmissionPending = errors.New("a submission is already in progress")

// Error is a failed submission as shown to the user.
type Error struct {
	Status  int
	Code    string
	Message string
	Details []onboarding.FieldError
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Profile is the stored record as returned by the endpoint.
type Profile struct {
	ID          string            `json:"id"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Email       string            `json:"email"`
	Gender      onboarding.Gender `json:"gender"`
	PhoneNumber *string           `json:"phoneNumber"`
	DateOfBirth *string           `json:"dateOfBirth"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Identity is what the identity provider knows about the caller.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Me is the response of the current-user lookup.
type Me struct {
	Identity  Identity `json:"identity"`
	Onboarded bool     `json:"onboarded"`
	Profile   *Profile `json:"profile"`
}

// Result is a successful submission.
type Result struct {
	Profile    Profile
	Notice     string
	RedirectTo string
}

type errorBody struct {
	Error   string                  `json:"error"`
	Code    string                  `json:"code"`
	Details []onboarding.FieldError `json:"details"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRedirect sets the route reported after a successful submission.
func WithRedirect(route string) Option {
	return func(c *Client) { c.redirectTo = route }
}

// WithStateChange registers a callback invoked on every state transition.
func WithStateChange(fn func(State)) Option {
	return func(c *Client) { c.onStateChange = fn }
}

// Client issues the create request for one wizard interaction.
type Client struct {
	baseURL       string
	token         string
	redirectTo    string
	httpClient    *http.Client
	logger        *zap.Logger
	onStateChange func(State)

	mu      sync.Mutex
	state   State
	lastErr *Error
}

// NewClient creates a client for the API at baseURL authenticating with the bearer token.
func NewClient(baseURL, token string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		token:      token,
		redirectTo: "/dashboard",
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending reports whether the submit control should be disabled.
func (c *Client) Pending() bool {
	return c.State() == StatePending
}

// LastError returns the failure of the most recent submission, if it failed.
func (c *Client) LastError() *Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Submit sends exactly one create request for payload. A second call while the first is pending is
// rejected with ErrSubmissionPending and sends nothing.
func (c *Client) Submit(ctx context.Context, payload onboarding.Input) (*Result, error) {
	if !c.begin() {
		return nil, ErrSubmissionPending
	}

	profile, err := c.create(ctx, payload)
	if err != nil {
		var subErr *Error
		if !errors.As(err, &subErr) {
			c.logger.Warn("Create user request failed", zap.Error(err))
			subErr = &Error{Message: FallbackMessage}
		}
		c.finish(StateFailed, subErr)
		return nil, subErr
	}

	c.logger.Info("Profile created", zap.String("id", profile.ID))
	c.finish(StateSucceeded, nil)
	return &Result{Profile: *profile, Notice: SuccessNotice, RedirectTo: c.redirectTo}, nil
}

// Me fetches the caller's identity and, when onboarded, the existing profile.
func (c *Client) Me(ctx context.Context) (*Me, error) {
	req, err := c.newRequest(ctx, http.MethodGet, mePath, nil)
	if err != nil {
		return nil, err
	}
	var me Me
	if err := c.do(req, &me); err != nil {
		return nil, err
	}
	return &me, nil
}

func (c *Client) begin() bool {
	c.mu.Lock()
	if c.state == StatePending {
		c.mu.Unlock()
		return false
	}
	c.state = StatePending
	c.lastErr = nil
	fn := c.onStateChange
	c.mu.Unlock()

	if fn != nil {
		fn(StatePending)
	}
	return true
}

func (c *Client) finish(state State, err *Error) {
	c.mu.Lock()
	c.state = state
	c.lastErr = err
	fn := c.onStateChange
	c.mu.Unlock()

	if fn != nil {
		fn(state)
	}
}

func (c *Client) create(ctx context.Context, payload onboarding.Input) (*Profile, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, createUserPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := c.do(req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, resp.Header.Get("Content-Type"), raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError prefers the server's "error" message, then a short plain-text body, and falls back
// to FallbackMessage.
func decodeError(status int, contentType string, raw []byte) *Error {
	e := &Error{Status: status, Message: FallbackMessage}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		text := strings.TrimSpace(string(raw))
		if strings.HasPrefix(contentType, "text/plain") && text != "" && len(text) <= maxPlainMessage {
			e.Message = text
		}
		return e
	}
	if body.Error != "" {
		e.Message = body.Error
	}
	e.Code = body.Code
	e.Details = body.Details
	return e
}
