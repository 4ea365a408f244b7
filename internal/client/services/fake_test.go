package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/paydesk/paydesk/internal/client/session"
	"github.com/paydesk/paydesk/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*************
 * Fake facade
 *************/

type call struct {
	method     string
	path       string
	body       any
	authorized bool
}

type reply struct {
	raw string
	err error
}

// fakeFacade records calls and answers them from a queue. Stored values go
// to a real MemoryStore so key validation still applies.
type fakeFacade struct {
	store   *storage.MemoryStore
	calls   []call
	replies []reply
}

var _ Facade = (*fakeFacade)(nil)

func newFakeFacade(replies ...reply) *fakeFacade {
	return &fakeFacade{store: storage.NewMemoryStore(), replies: replies}
}

func (f *fakeFacade) next(c call) (json.RawMessage, error) {
	f.calls = append(f.calls, c)
	if len(f.replies) == 0 {
		return nil, nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	if r.err != nil {
		return nil, r.err
	}
	if r.raw == "" {
		return nil, nil
	}
	return json.RawMessage(r.raw), nil
}

func (f *fakeFacade) GetToken(ctx context.Context) (string, bool, error) {
	return f.store.Get(ctx, storage.KeyToken)
}

func (f *fakeFacade) AuthorizedRequest(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if _, ok, _ := f.store.Get(ctx, storage.KeyToken); !ok {
		return nil, &session.RequestError{Kind: session.ErrUnauthenticated}
	}
	return f.next(call{method: method, path: path, body: body, authorized: true})
}

func (f *fakeFacade) Request(_ context.Context, method, path string, body any) (json.RawMessage, error) {
	return f.next(call{method: method, path: path, body: body})
}

func (f *fakeFacade) LoginOrRegister(ctx context.Context, path string, credentials any) (*session.AuthResult, error) {
	raw, err := f.next(call{method: "POST", path: path, body: credentials})
	if err != nil {
		return nil, err
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &res); err != nil || res.Token == "" {
		return nil, &session.RequestError{Kind: session.ErrMalformedResponse, RawText: string(raw)}
	}
	if err := f.store.Set(ctx, storage.KeyToken, res.Token); err != nil {
		return nil, err
	}
	return &session.AuthResult{Token: res.Token}, nil
}

func (f *fakeFacade) Logout(ctx context.Context) error {
	return f.store.Remove(ctx, storage.KeyToken)
}

func (f *fakeFacade) Persist(ctx context.Context, key storage.Key, value string) error {
	return f.store.Set(ctx, key, value)
}

func (f *fakeFacade) PersistMany(ctx context.Context, values map[storage.Key]string) error {
	return f.store.SetMany(ctx, values)
}

func (f *fakeFacade) Lookup(ctx context.Context, key storage.Key) (string, bool, error) {
	return f.store.Get(ctx, key)
}

func (f *fakeFacade) Clear(ctx context.Context, key storage.Key) error {
	return f.store.Remove(ctx, key)
}

/*************
 * helpers
 *************/

func (f *fakeFacade) seed(t *testing.T, values map[storage.Key]string) {
	t.Helper()
	require.NoError(t, f.store.SetMany(context.Background(), values))
}

func (f *fakeFacade) value(t *testing.T, key storage.Key) (string, bool) {
	t.Helper()
	v, ok, err := f.store.Get(context.Background(), key)
	require.NoError(t, err)
	return v, ok
}

func loggedIn(t *testing.T, f *fakeFacade) *fakeFacade {
	t.Helper()
	f.seed(t, map[storage.Key]string{storage.KeyToken: "tok"})
	return f
}

func assertCall(t *testing.T, got call, method, path, body string) {
	t.Helper()
	assert.Equal(t, method, got.method)
	assert.Equal(t, path, got.path)
	if body == "" {
		assert.Nil(t, got.body)
		return
	}
	b, err := json.Marshal(got.body)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(b))
}

func rejected(status int, msg string) reply {
	return reply{err: &session.RequestError{Kind: session.ErrServerRejected, Status: status, ServerMessage: msg}}
}
