package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paydesk/paydesk/internal/client/models"
	"github.com/paydesk/paydesk/internal/client/session"
	"github.com/paydesk/paydesk/internal/client/storage"
)

// ErrMissingContext is returned when an operation needs an identifier that
// an earlier step should have stored, e.g. a branch without a merchant.
var ErrMissingContext = errors.New("missing context")

// Facade is the part of *session.Session the services use.
type Facade interface {
	GetToken(ctx context.Context) (string, bool, error)
	AuthorizedRequest(ctx context.Context, method, path string, body any) (json.RawMessage, error)
	Request(ctx context.Context, method, path string, body any) (json.RawMessage, error)
	LoginOrRegister(ctx context.Context, path string, credentials any) (*session.AuthResult, error)
	Logout(ctx context.Context) error
	Persist(ctx context.Context, key storage.Key, value string) error
	PersistMany(ctx context.Context, values map[storage.Key]string) error
	Lookup(ctx context.Context, key storage.Key) (string, bool, error)
	Clear(ctx context.Context, key storage.Key) error
}

var _ Facade = (*session.Session)(nil)

// stored returns the value under key, or ErrMissingContext when it is absent.
func stored(ctx context.Context, f Facade, key storage.Key) (string, error) {
	v, ok, err := f.Lookup(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s not set", ErrMissingContext, key)
	}
	return v, nil
}

// orStored returns explicit when it is set, the stored value otherwise.
func orStored(ctx context.Context, f Facade, explicit string, key storage.Key) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return stored(ctx, f, key)
}

// message extracts the "message" field of an acknowledgement.
func message(raw json.RawMessage) (string, error) {
	m, err := session.Decode[models.Message](raw)
	return m.Message, err
}

// unwrapData returns the "data" member of an object when present. Several
// endpoints pass the acquirer's envelope through unchanged.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(raw, &env) == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return env.Data
	}
	return raw
}

// decodeList reads a listing whose "data" member, or the body itself, is
// either an array or a single object. A single object for which blank
// reports true counts as an empty listing.
func decodeList[T any](raw json.RawMessage, blank func(T) bool) ([]T, error) {
	data := bytes.TrimSpace(unwrapData(raw))
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '{' {
		one, err := session.Decode[T](json.RawMessage(data))
		if err != nil {
			return nil, err
		}
		if blank(one) {
			return nil, nil
		}
		return []T{one}, nil
	}
	return session.Decode[[]T](json.RawMessage(data))
}

func missingField(raw json.RawMessage, field string) error {
	return &session.RequestError{
		Kind:    session.ErrMalformedResponse,
		RawText: string(raw),
		Cause:   fmt.Errorf("response has no %s", field),
	}
}
