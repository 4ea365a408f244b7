// Package models defines the request and response shapes exchanged with the
// paydesk backend.
package models
