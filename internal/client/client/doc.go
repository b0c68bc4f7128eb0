// Package client is the transport boundary of the anagrafe client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the JSON
//     calls the person layer needs: Get with query parameters, Post, Put and
//     Delete against paths relative to a configured base URL.
//  2. A concrete net/http implementation (see HTTPClient) that encodes and
//     decodes JSON, tags every request with an X-Request-ID, and maps
//     failures onto the error taxonomy below.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors matched with errors.Is:
// ErrValidation, ErrNotFound, ErrEndpointUnavailable, ErrTransport and
// ErrCancelled. Structured details are available through errors.As on
// *ValidationError and *TransportError. ErrCancelled also matches
// context.Canceled.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context; cancelling it aborts the in-flight request.
package client
