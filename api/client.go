package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"getpetback/config"

	"github.com/google/uuid"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// TokenSource supplies the bearer token for authenticated calls and is
// told to invalidate itself when the server rejects the session.
type TokenSource interface {
	Token() string
	Invalidate()
}

// Client encodes the conventions every caller must follow when talking
// to the remote pets API: one base origin, bearer auth when a session
// exists, JSON bodies except for photo uploads, tolerant response
// decoding and a fixed status decision table. No call is ever retried.
type Client struct {
	origin      string
	placeholder string
	http        *http.Client
	tokens      TokenSource
}

// New creates a client for the pets API. tokens may be nil for a
// purely anonymous client (tests, previews).
func New(cfg config.APIConfig, tokens TokenSource) *Client {
	return &Client{
		origin:      strings.TrimRight(cfg.BaseURL, "/"),
		placeholder: cfg.PlaceholderImage,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		tokens: tokens,
	}
}

// Origin returns the API origin the client is bound to.
func (c *Client) Origin() string {
	return c.origin
}

// do performs one request. contentType is "" for requests without a
// body of our making (GET, DELETE); callers pass the multipart
// boundary type for uploads and application/json otherwise.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	u := c.origin + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	requestID := uuid.New().String()
	logger.Debug("API request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("API request failed",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Error(err))
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if err := c.checkStatus(resp.StatusCode, data); err != nil {
		logger.Info("API error response",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, err
	}
	return data, nil
}

// checkStatus implements the fixed decision table. 2xx passes through
// (an empty body is still success); 401 purges the session before the
// caller even sees the error.
func (c *Client) checkStatus(status int, body []byte) error {
	switch {
	case status == http.StatusOK, status == http.StatusCreated, status == http.StatusNoContent:
		return nil
	case status == http.StatusUnauthorized:
		if c.tokens != nil {
			c.tokens.Invalidate()
		}
		return ErrSessionExpired
	case status == http.StatusForbidden:
		return ErrPermissionDenied
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusUnprocessableEntity:
		return parseValidationError(body)
	default:
		return &StatusError{Code: status}
	}
}

// parseValidationError decodes the server's 422 envelope. Two forms
// appear in the wild: {"error":{"message":..,"errors":{field:[msgs]}}}
// and a flat {"message":..}.
func parseValidationError(body []byte) error {
	var envelope struct {
		Message string `json:"message"`
		Error   struct {
			Message string              `json:"message"`
			Errors  map[string][]string `json:"errors"`
		} `json:"error"`
	}

	verr := &ValidationError{Fields: map[string]string{}}
	if err := json.Unmarshal(body, &envelope); err == nil {
		verr.Message = envelope.Error.Message
		if verr.Message == "" {
			verr.Message = envelope.Message
		}
		for field, msgs := range envelope.Error.Errors {
			if len(msgs) > 0 {
				verr.Fields[field] = msgs[0]
			}
		}
		if verr.Message == "" {
			for _, msg := range verr.Fields {
				verr.Message = msg
				break
			}
		}
	}
	if verr.Message == "" && len(verr.Fields) == 0 {
		verr.Message = "validation failed"
	}
	return verr
}
