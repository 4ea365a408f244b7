// Package session is the request facade of the paydesk client.
//
// Every backend call goes through a *Session. It reads the bearer token from
// the local store, sends JSON over HTTP and classifies the outcome into one of
// four failure kinds: ErrUnauthenticated, ErrServerRejected,
// ErrMalformedResponse and ErrNetworkFailure.
package session
