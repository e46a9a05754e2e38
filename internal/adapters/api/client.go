// Package api talks to the remote signing authority over HTTP.
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
	"strconv"
	"strings"
	"time"

	"github.com/bnema/keystamp/internal/domain"
	"github.com/bnema/keystamp/internal/ports"
)

const (
	DefaultStampLoginPath = "/public/v1/submit/stamp_login"
	DefaultSignUpPath     = "/public/v1/submit/signup"

	activityStampLogin = "ACTIVITY_TYPE_STAMP_LOGIN"
	maxResponseBytes   = 1 << 20
)

type API struct {
	BaseURL        string
	StampLoginPath string
	SignUpPath     string
}

type Client struct {
	API            API
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Clock          ports.Clock
}

var _ ports.AuthAPI = Client{}

// RemoteError is the error body returned by the remote API.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return e.Code + ": " + e.Message
	case e.Message != "":
		return e.Message
	case e.Code != "":
		return e.Code
	default:
		return fmt.Sprintf("status %d", e.Status)
	}
}

type loginParameters struct {
	PublicKey          string `json:"publicKey"`
	ExpirationSeconds  string `json:"expirationSeconds,omitempty"`
	InvalidateExisting bool   `json:"invalidateExisting,omitempty"`
}

type stampLoginBody struct {
	Type           string          `json:"type"`
	TimestampMs    string          `json:"timestampMs"`
	OrganizationID string          `json:"organizationId,omitempty"`
	Parameters     loginParameters `json:"parameters"`
}

type errorBody struct {
	Code    json.RawMessage `json:"code"`
	Message string          `json:"message"`
}

type sessionResponse struct {
	Session string     `json:"session"`
	Error   *errorBody `json:"error"`
}

type signUpResponse struct {
	domain.SignUpResult
	Error *errorBody `json:"error"`
}

// StampLogin stamps the login activity with stamper and returns the issued
// session token.
func (c Client) StampLogin(ctx context.Context, req domain.LoginRequest, stamper ports.Stamper) (string, error) {
	if stamper == nil {
		return "", domain.Wrap(domain.ErrCredentialNotInitialized, "stamp login", errors.New("no stamper"))
	}
	if strings.TrimSpace(req.PublicKey) == "" {
		return "", errors.New("stamp login: public key is required")
	}

	body, err := json.Marshal(stampLoginBody{
		Type:           activityStampLogin,
		TimestampMs:    strconv.FormatInt(c.now().UnixMilli(), 10),
		OrganizationID: req.OrganizationID,
		Parameters: loginParameters{
			PublicKey:          req.PublicKey,
			ExpirationSeconds:  req.ExpirationSeconds,
			InvalidateExisting: req.InvalidateExisting,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode stamp login: %w", err)
	}

	stamp, err := stamper.Stamp(ctx, body)
	if err != nil {
		return "", fmt.Errorf("stamp login: %w", err)
	}

	var payload sessionResponse
	if err := c.post(ctx, "stamp login", c.path(c.API.StampLoginPath, DefaultStampLoginPath), body, &stamp, &payload); err != nil {
		return "", err
	}
	if payload.Error != nil {
		return "", remoteRejected("stamp login", http.StatusOK, *payload.Error)
	}
	if payload.Session == "" {
		return "", errors.New("stamp login: response missing session")
	}

	return payload.Session, nil
}

// SignUp creates a sub-organization. The request is not stamped: the remote
// side proxies it with its own credentials.
func (c Client) SignUp(ctx context.Context, req domain.SignUpRequest) (domain.SignUpResult, error) {
	if len(req.Authenticators) == 0 && len(req.APIKeys) == 0 {
		return domain.SignUpResult{}, errors.New("sign up: at least one credential is required")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return domain.SignUpResult{}, fmt.Errorf("encode sign up: %w", err)
	}

	var payload signUpResponse
	if err := c.post(ctx, "sign up", c.path(c.API.SignUpPath, DefaultSignUpPath), body, nil, &payload); err != nil {
		return domain.SignUpResult{}, err
	}
	if payload.Error != nil {
		return domain.SignUpResult{}, remoteRejected("sign up", http.StatusOK, *payload.Error)
	}
	if payload.OrganizationID == "" {
		return domain.SignUpResult{}, errors.New("sign up: response missing organization id")
	}

	return payload.SignUpResult, nil
}

func (c Client) post(ctx context.Context, op string, path string, body []byte, stamp *domain.Stamp, out any) error {
	endpoint, err := buildAPIURL(c.API.BaseURL, path)
	if err != nil {
		return domain.Wrap(domain.ErrCredentialNotInitialized, op, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if stamp != nil {
		req.Header.Set(stamp.HeaderName, stamp.HeaderValue)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var failure struct {
			Error *errorBody `json:"error"`
		}
		if err := json.Unmarshal(raw, &failure); err == nil && failure.Error != nil {
			return remoteRejected(op, resp.StatusCode, *failure.Error)
		}
		return fmt.Errorf("%s: status %d", op, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func (c Client) path(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}

func (c Client) now() time.Time {
	if c.Clock != nil {
		return c.Clock.Now()
	}
	return time.Now()
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func remoteRejected(op string, status int, body errorBody) error {
	code := strings.Trim(string(body.Code), `"`)
	if code == "null" {
		code = ""
	}
	return domain.Wrap(domain.ErrRemoteRejected, op, &RemoteError{Status: status, Code: code, Message: body.Message})
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
