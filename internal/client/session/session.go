package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paydesk/paydesk/internal/client/storage"
	"github.com/paydesk/paydesk/internal/logging"
)

const (
	HeaderRequestID = "X-Request-Id"
	contentTypeJSON = "application/json"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session is the single gateway between the client and the backend API.
// It owns the bearer token kept in the store and turns every transport and
// server outcome into either a parsed JSON body or a *RequestError.
type Session struct {
	baseURL string
	store   storage.Store
	doer    Doer
	timeout time.Duration
	logger  logging.Logger
	newID   func() string
}

type Option func(*Session)

func WithDoer(d Doer) Option {
	return func(s *Session) { s.doer = d }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithTimeout bounds each request when the default transport is used.
// It has no effect together with WithDoer.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

func New(baseURL string, store storage.Store, opts ...Option) *Session {
	s := &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		logger:  logging.Nop(),
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.doer == nil {
		s.doer = &http.Client{Timeout: s.timeout}
	}
	return s
}

// AuthResult is a successful login or registration. Fields holds the whole
// response object, token included.
type AuthResult struct {
	Token  string
	Fields map[string]json.RawMessage
}

// GetToken returns the stored token. An empty stored value counts as absent.
func (s *Session) GetToken(ctx context.Context) (string, bool, error) {
	token, ok, err := s.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return "", false, fmt.Errorf("failed to read session token: %w", err)
	}
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *Session) IsAuthenticated(ctx context.Context) (bool, error) {
	_, ok, err := s.GetToken(ctx)
	return ok, err
}

// AuthorizedRequest sends body as JSON with the stored bearer token. With no
// token stored it fails with ErrUnauthenticated before any network activity.
// A nil body sends no payload.
func (s *Session) AuthorizedRequest(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	token, ok, err := s.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		rerr := &RequestError{Kind: ErrUnauthenticated}
		s.logger.Warn(ctx, "request refused", "method", method, "path", path, "error", rerr)
		return nil, rerr
	}

	_, raw, err := s.send(ctx, method, path, body, token)
	return raw, err
}

// Request is AuthorizedRequest without the token, for endpoints that are
// open to anonymous callers.
func (s *Session) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	_, raw, err := s.send(ctx, method, path, body, "")
	return raw, err
}

func (s *Session) Persist(ctx context.Context, key storage.Key, value string) error {
	return s.store.Set(ctx, key, value)
}

// PersistMany writes values in one batch when the store supports it.
func (s *Session) PersistMany(ctx context.Context, values map[storage.Key]string) error {
	type batcher interface {
		SetMany(ctx context.Context, values map[storage.Key]string) error
	}
	if b, ok := s.store.(batcher); ok {
		return b.SetMany(ctx, values)
	}
	for k, v := range values {
		if err := s.store.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

// Lookup reads a stored value other than the token.
func (s *Session) Lookup(ctx context.Context, key storage.Key) (string, bool, error) {
	return s.store.Get(ctx, key)
}

func (s *Session) Clear(ctx context.Context, key storage.Key) error {
	return s.store.Remove(ctx, key)
}

// LoginOrRegister posts credentials to path and stores the returned token.
// The token is persisted before LoginOrRegister returns, so a request made
// right after it sees the new session. Nothing is stored on failure.
func (s *Session) LoginOrRegister(ctx context.Context, path string, credentials any) (*AuthResult, error) {
	status, raw, err := s.send(ctx, http.MethodPost, path, credentials, "")
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, s.malformed(ctx, path, status, raw, err)
	}

	var token string
	if t, ok := fields["token"]; ok {
		_ = json.Unmarshal(t, &token)
	}
	if token == "" {
		return nil, s.malformed(ctx, path, status, raw, errors.New("response carries no token"))
	}

	if err := s.store.Set(ctx, storage.KeyToken, token); err != nil {
		return nil, fmt.Errorf("failed to persist session token: %w", err)
	}

	return &AuthResult{Token: token, Fields: fields}, nil
}

// Logout forgets the stored token. No server call is made.
func (s *Session) Logout(ctx context.Context) error {
	return s.Clear(ctx, storage.KeyToken)
}

func (s *Session) malformed(ctx context.Context, path string, status int, raw []byte, cause error) error {
	rerr := &RequestError{Kind: ErrMalformedResponse, Status: status, RawText: string(raw), Cause: cause}
	s.logger.Warn(ctx, "request failed", "path", path, "status", status, "kind", rerr.Kind)
	return rerr
}

func (s *Session) url(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (s *Session) send(ctx context.Context, method, path string, body any, token string) (int, json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.url(path), reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := s.newID()
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := s.logger.With("method", method, "path", path, "request_id", requestID)
	log.Debug(ctx, "sending request")
	started := time.Now()

	resp, err := s.doer.Do(req)
	if err != nil {
		rerr := &RequestError{Kind: ErrNetworkFailure, Cause: err}
		log.Warn(ctx, "request failed", "kind", rerr.Kind, "error", err)
		return 0, nil, rerr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		rerr := &RequestError{Kind: ErrNetworkFailure, Status: resp.StatusCode, Cause: err}
		log.Warn(ctx, "request failed", "kind", rerr.Kind, "status", resp.StatusCode, "error", err)
		return resp.StatusCode, nil, rerr
	}

	log.Debug(ctx, "response received", "status", resp.StatusCode, "duration", time.Since(started))

	raw, err := classify(resp.StatusCode, data)
	if err != nil {
		var rerr *RequestError
		if errors.As(err, &rerr) {
			log.Warn(ctx, "request failed", "kind", rerr.Kind, "status", rerr.Status)
		}
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, raw, nil
}

// classify maps a received response onto the failure taxonomy.
//
// 2xx with an empty body is a success with a nil result. 2xx with a non-JSON
// body is malformed. Non-2xx with a JSON body is a server rejection carrying
// its "error" field, or "message" when "error" is absent. Any other non-2xx
// is malformed and keeps the raw text.
func classify(status int, data []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)

	if status >= 200 && status < 300 {
		if len(trimmed) == 0 {
			return nil, nil
		}
		if !json.Valid(trimmed) {
			return nil, &RequestError{Kind: ErrMalformedResponse, Status: status, RawText: string(data)}
		}
		return json.RawMessage(trimmed), nil
	}

	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, &RequestError{Kind: ErrMalformedResponse, Status: status, RawText: string(data)}
	}

	return nil, &RequestError{Kind: ErrServerRejected, Status: status, ServerMessage: serverMessage(trimmed)}
}

func serverMessage(body []byte) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	for _, field := range []json.RawMessage{envelope.Error, envelope.Message} {
		var text string
		if len(field) > 0 && json.Unmarshal(field, &text) == nil && text != "" {
			return text
		}
	}
	return ""
}

// Decode unmarshals a response body into T. A nil body yields the zero value.
func Decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, &RequestError{Kind: ErrMalformedResponse, RawText: string(raw), Cause: err}
	}
	return v, nil
}
