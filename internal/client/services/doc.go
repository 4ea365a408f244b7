// Package services holds the paydesk use cases: account, merchant, branch,
// payment and deferred-settlement (DMS) operations. Every service talks to the
// backend through a Facade and keeps the identifiers it learns in the local
// store so later calls can default to them.
package services
