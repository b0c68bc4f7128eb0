package services

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/anagrafe/internal/client/client"
)

type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

type response struct {
	body any
	err  error
}

// fakeClient answers from canned responses keyed by "METHOD path" and records
// every call it receives.
type fakeClient struct {
	client.Client

	mu        sync.Mutex
	responses map[string]response
	calls     []call
}

func newFakeClient() *fakeClient {
	return &fakeClient{responses: map[string]response{}}
}

func (f *fakeClient) on(method, path string, body any, err error) *fakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+path] = response{body: body, err: err}
	return f
}

func (f *fakeClient) record(ctx context.Context, c call) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", client.ErrCancelled, err)
	}
	r, ok := f.responses[c.Method+" "+c.Path]
	if !ok {
		return nil, &client.TransportError{StatusCode: 404}
	}
	return r.body, r.err
}

func (f *fakeClient) Get(ctx context.Context, path string, query url.Values) (any, error) {
	return f.record(ctx, call{Method: "GET", Path: path, Query: query})
}

func (f *fakeClient) Post(ctx context.Context, path string, body any) (any, error) {
	return f.record(ctx, call{Method: "POST", Path: path, Body: body})
}

func (f *fakeClient) Put(ctx context.Context, path string, body any) (any, error) {
	return f.record(ctx, call{Method: "PUT", Path: path, Body: body})
}

func (f *fakeClient) Delete(ctx context.Context, path string) error {
	_, err := f.record(ctx, call{Method: "DELETE", Path: path})
	return err
}

func (f *fakeClient) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeClient) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func statusErr(code int) error {
	return &client.TransportError{StatusCode: code}
}
