package gotrue

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/realbreda/clubsite/internal/domain/user"
	idgen "github.com/realbreda/clubsite/internal/platform/id"
	"github.com/realbreda/clubsite/internal/platform/logging"
	"github.com/realbreda/clubsite/internal/platform/resilience"
	"github.com/realbreda/clubsite/internal/usecase"
)

const (
	signupPath   = "/auth/v1/signup"
	tokenPath    = "/auth/v1/token?grant_type=password"
	logoutPath   = "/auth/v1/logout"
	userPath     = "/auth/v1/user"
	maxBodyBytes = 1 << 20
)

var errAuthTransient = crerr.New("auth service transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	AnonKey        string
	Timeout        time.Duration
	Logger         *logging.Logger
	IDGenerator    idgen.Generator
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to a GoTrue-compatible hosted auth service. Backend error
// messages are passed through verbatim so the session flows can map them by
// substring.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	anonKey        string
	logger         *logging.Logger
	ids            idgen.Generator
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	ids := cfg.IDGenerator
	if ids == nil {
		ids = idgen.NewRandomGenerator()
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		anonKey:        strings.TrimSpace(cfg.AnonKey),
		logger:         logger,
		ids:            ids,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) SignUp(ctx context.Context, email, password, username string) (user.Session, error) {
	payload := signUpRequest{
		Email:    email,
		Password: password,
		Data:     map[string]string{"username": username},
	}

	var decoded sessionResponse
	if err := c.do(ctx, http.MethodPost, signupPath, payload, "", &decoded); err != nil {
		return user.Session{}, err
	}
	return decoded.toSession(), nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (user.Session, error) {
	payload := signInRequest{Email: email, Password: password}

	var decoded sessionResponse
	if err := c.do(ctx, http.MethodPost, tokenPath, payload, "", &decoded); err != nil {
		return user.Session{}, err
	}

	session := decoded.toSession()
	if session.AccessToken == "" {
		return user.Session{}, fmt.Errorf("invalid token response: access_token is empty")
	}
	return session, nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	return c.do(ctx, http.MethodPost, logoutPath, nil, accessToken, nil)
}

func (c *Client) Lookup(ctx context.Context, accessToken string) (user.Session, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return user.Session{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	var decoded userResponse
	if err := c.do(ctx, http.MethodGet, userPath, nil, accessToken, &decoded); err != nil {
		return user.Session{}, err
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.Session{}, fmt.Errorf("invalid user response: id is empty")
	}

	return user.Session{
		AccessToken: accessToken,
		UserID:      decoded.ID,
		Email:       decoded.Email,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, bearer string, out any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "auth circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: auth service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	err := c.execute(ctx, method, path, payload, bearer, out)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errAuthTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil && crerr.Is(err, errAuthTransient) {
		return fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, err.Error())
	}
	return err
}

func (c *Client) execute(ctx context.Context, method, path string, payload any, bearer string, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := sonic.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal auth request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")
	requestID := ""
	if generated, idErr := c.ids.NewID(); idErr == nil {
		requestID = generated
		req.Header.Set("X-Request-ID", requestID)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: send request: %v", errAuthTransient, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read response body: %v", errAuthTransient, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := sonic.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode auth response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", usecase.ErrUnauthorized, backendMessage(raw, "session is not valid"))
	case resp.StatusCode >= 500:
		c.logger.WarnContext(ctx, "auth service returned server error",
			"status_code", resp.StatusCode,
			"request_id", requestID,
		)
		return fmt.Errorf("%w: status=%d", errAuthTransient, resp.StatusCode)
	default:
		// 4xx carries the backend's own message; keep it verbatim so the
		// signup and login flows can map it for the user.
		return fmt.Errorf("%s", backendMessage(raw, fmt.Sprintf("auth request failed with status %d", resp.StatusCode)))
	}
}

type signUpRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data,omitempty"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

func (r sessionResponse) toSession() user.Session {
	return user.Session{
		AccessToken: r.AccessToken,
		UserID:      r.User.ID,
		Email:       r.User.Email,
	}
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type errorResponse struct {
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorCode        string `json:"error"`
}

func backendMessage(raw []byte, fallback string) string {
	var decoded errorResponse
	if err := sonic.Unmarshal(raw, &decoded); err == nil {
		for _, candidate := range []string{decoded.ErrorDescription, decoded.Msg, decoded.Message, decoded.ErrorCode} {
			if strings.TrimSpace(candidate) != "" {
				return strings.TrimSpace(candidate)
			}
		}
	}
	if trimmed := strings.TrimSpace(string(raw)); trimmed != "" {
		return trimmed
	}
	return fallback
}
