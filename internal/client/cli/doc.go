// Package cli provides the interactive paydesk command-line client.
//
// It wires configuration, the local key-value store, the session facade and
// the merchant services behind a small REPL. The session survives restarts:
// a token stored by an earlier run is picked up on start.
//
// Failed commands never stop the loop. When the server rejects the token, or
// no token is stored, the client clears the session and asks for a new
// login.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
