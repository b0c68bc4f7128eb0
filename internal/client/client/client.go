package client

import (
	"context"
	"net/url"
)

// Client issues JSON calls against the backend. Paths are relative to the
// configured base URL and must already be escaped. Decoded bodies are
// returned as produced by encoding/json (maps, slices, json.Number, ...);
// an empty body decodes to nil.
type Client interface {
	Get(ctx context.Context, path string, query url.Values) (any, error)
	Post(ctx context.Context, path string, body any) (any, error)
	Put(ctx context.Context, path string, body any) (any, error)
	Delete(ctx context.Context, path string) error
}
