// Package auth hands WebAuthn ceremonies to the user's browser. A localhost
// callback server serves the ceremony page, hands it the options and waits for
// the browser to post the credential back.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	pagePath         = "/passkey"
	optionsPath      = "/passkey/options"
	callbackPath     = "/passkey/callback"
	maxCallbackBytes = 1 << 20
)

var (
	ErrStateMismatch   = errors.New("passkey callback state mismatch")
	ErrCallbackTimeout = errors.New("timed out waiting for the browser")
	ErrMissingState    = errors.New("expected state is required")
)

type ceremonyKind string

const (
	kindGet    ceremonyKind = "get"
	kindCreate ceremonyKind = "create"
)

// ceremonyRequest is what the page fetches from optionsPath.
type ceremonyRequest struct {
	Kind    ceremonyKind `json:"kind"`
	Options any          `json:"options"`
}

// callbackPayload is what the page posts to callbackPath. Error carries the
// DOMException name and message when the browser refused.
type callbackPayload struct {
	Error    string          `json:"error,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
}

func NewState() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

type CallbackServer struct {
	expectedState string
	request       ceremonyRequest
	listener      net.Listener
	server        *http.Server
	resultCh      chan callbackResult
	resultOnce    sync.Once
	closeOnce     sync.Once
}

type callbackResult struct {
	response json.RawMessage
	err      error
}

func StartCallbackServer(listenAddr string, expectedState string, request ceremonyRequest) (*CallbackServer, error) {
	if expectedState == "" {
		return nil, ErrMissingState
	}
	if listenAddr == "" {
		listenAddr = "127.0.0.1:0"
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen callback server: %w", err)
	}

	cb := &CallbackServer{
		expectedState: expectedState,
		request:       request,
		listener:      listener,
		resultCh:      make(chan callbackResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(pagePath, cb.handlePage)
	mux.HandleFunc(optionsPath, cb.handleOptions)
	mux.HandleFunc(callbackPath, cb.handleCallback)

	cb.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if serveErr := cb.server.Serve(cb.listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			cb.trySendResult(callbackResult{err: serveErr})
		}
	}()

	return cb, nil
}

// URL is the page the user opens. It uses localhost so the page origin
// matches the default relying party ID.
func (c *CallbackServer) URL() string {
	return c.endpoint(pagePath)
}

func (c *CallbackServer) endpoint(path string) string {
	host := "localhost"
	if tcpAddr, ok := c.listener.Addr().(*net.TCPAddr); ok {
		host = fmt.Sprintf("localhost:%d", tcpAddr.Port)
	}
	u := url.URL{Scheme: "http", Host: host, Path: path, RawQuery: url.Values{"state": {c.expectedState}}.Encode()}
	return u.String()
}

// WaitForResponse blocks until the browser posts a result, ctx ends or timeout
// elapses. The server is closed on return.
func (c *CallbackServer) WaitForResponse(ctx context.Context, timeout time.Duration) (json.RawMessage, error) {
	defer c.Close()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-c.resultCh:
		return result.response, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrCallbackTimeout
	}
}

func (c *CallbackServer) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		closeErr = c.server.Close()
	})
	return closeErr
}

func (c *CallbackServer) checkState(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("state") != c.expectedState {
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return false
	}
	return true
}

func (c *CallbackServer) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !c.checkState(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, ceremonyPage)
}

func (c *CallbackServer) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !c.checkState(w, r) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(c.request)
}

func (c *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Query().Get("state") != c.expectedState {
		c.trySendResult(callbackResult{err: ErrStateMismatch})
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}

	var payload callbackPayload
	if err := json.NewDecoder(io.LimitReader(r.Body, maxCallbackBytes)).Decode(&payload); err != nil {
		c.trySendResult(callbackResult{err: fmt.Errorf("decode browser callback: %w", err)})
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if payload.Error != "" {
		c.trySendResult(callbackResult{err: errors.New(payload.Error)})
		w.WriteHeader(http.StatusOK)
		return
	}
	if len(payload.Response) == 0 {
		c.trySendResult(callbackResult{err: errors.New("browser callback carried no credential")})
		http.Error(w, "missing response", http.StatusBadRequest)
		return
	}

	c.trySendResult(callbackResult{response: payload.Response})
	w.WriteHeader(http.StatusOK)
}

func (c *CallbackServer) trySendResult(result callbackResult) {
	c.resultOnce.Do(func() {
		c.resultCh <- result
	})
}
