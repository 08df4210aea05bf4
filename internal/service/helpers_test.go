package service

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/domain"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/shopify"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/pkg/errors"
)

// recordedCall is one Execute invocation seen by the fake client.
type recordedCall struct {
	Query     string
	Variables map[string]interface{}
}

// fakeClient replays canned responses in order, or per-query responses
// when set, and records every call.
type fakeClient struct {
	mu        sync.Mutex
	calls     []recordedCall
	responses []fakeResponse          // consumed in order when non-empty
	byQuery   map[string]fakeResponse // fallback lookup by query document
}

type fakeResponse struct {
	data string
	err  error
}

func (f *fakeClient) queue(data string, err error) {
	f.responses = append(f.responses, fakeResponse{data: data, err: err})
}

func (f *fakeClient) respondTo(query, data string) {
	if f.byQuery == nil {
		f.byQuery = make(map[string]fakeResponse)
	}
	f.byQuery[query] = fakeResponse{data: data}
}

func (f *fakeClient) Execute(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{Query: query, Variables: variables})

	var resp fakeResponse
	if len(f.responses) > 0 {
		resp = f.responses[0]
		f.responses = f.responses[1:]
	} else if r, ok := f.byQuery[query]; ok {
		resp = r
	} else {
		resp = fakeResponse{data: `{}`}
	}

	if resp.err != nil {
		return nil, resp.err
	}
	return &shopify.GraphQLResponse{Data: json.RawMessage(resp.data)}, nil
}

// callsFor returns the recorded calls whose query matches.
func (f *fakeClient) callsFor(query string) []recordedCall {
	var out []recordedCall
	for _, c := range f.calls {
		if c.Query == query {
			out = append(out, c)
		}
	}
	return out
}

// fakeTagRepo is an in-memory TagIndexRepository.
type fakeTagRepo struct {
	mu       sync.Mutex
	indexes  map[string][]string
	replaces int
	failWith error
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{indexes: make(map[string][]string)}
}

func (r *fakeTagRepo) GetByShop(ctx context.Context, shop string) (*domain.TagIndex, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tags, ok := r.indexes[shop]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "tag_index", ID: shop}
	}
	return &domain.TagIndex{Shop: shop, Tags: tags}, nil
}

func (r *fakeTagRepo) Replace(ctx context.Context, shop string, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.replaces++
	r.indexes[shop] = tags
	return nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
