// Package cmdtest provides fixtures for command tests: a card service over
// an in-memory store and a scripted remote catalog.
package cmdtest

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/agentstation/cardmap"
	"github.com/agentstation/cardmap/cmd/application"
	"github.com/agentstation/cardmap/internal/store"
	"github.com/agentstation/cardmap/internal/utils/ptr"
	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/logging"
)

// Fetcher serves a fixed card page or error. After Hold, FetchPage blocks
// until Release or until its context is done.
type Fetcher struct {
	mu          sync.Mutex
	cards       []cards.Card
	err         error
	credentials []string
	held        chan struct{}
}

// NewFetcher returns a fetcher serving cs.
func NewFetcher(cs []cards.Card) *Fetcher {
	return &Fetcher{cards: cs}
}

// Set replaces the page and error served next.
func (f *Fetcher) Set(cs []cards.Card, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards, f.err = cs, err
}

// Credentials returns the credential of every call so far.
func (f *Fetcher) Credentials() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.credentials...)
}

// Hold makes later FetchPage calls block.
func (f *Fetcher) Hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.held = make(chan struct{})
}

// Release unblocks held FetchPage calls.
func (f *Fetcher) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held != nil {
		close(f.held)
		f.held = nil
	}
}

// FetchPage implements cardmap.Fetcher.
func (f *Fetcher) FetchPage(ctx context.Context, credential string, page, pageSize int) (*cards.Page, error) {
	f.mu.Lock()
	f.credentials = append(f.credentials, credential)
	held := f.held
	f.mu.Unlock()

	if held != nil {
		select {
		case <-held:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &cards.Page{Cards: f.cards, Page: page, PageSize: pageSize, Count: len(f.cards), TotalCount: len(f.cards)}, nil
}

// Search implements cardmap.Fetcher. It returns every card whose name
// equals query.
func (f *Fetcher) Search(_ context.Context, credential, query string, page, pageSize int) (*cards.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credentials = append(f.credentials, credential)
	if f.err != nil {
		return nil, f.err
	}
	var out []cards.Card
	for _, c := range f.cards {
		if c.Name == query {
			out = append(out, c)
		}
	}
	return &cards.Page{Cards: out, Page: page, PageSize: pageSize, Count: len(out)}, nil
}

// Env is a wired test application.
type Env struct {
	App     *application.Mock
	Service *cardmap.Service
	Store   *store.Store
	Fetcher *Fetcher
}

// NewEnv wires a Mock application to a service over an in-memory store.
func NewEnv(t testing.TB, remote []cards.Card) *Env {
	t.Helper()

	st := store.OpenMemory(t)
	f := NewFetcher(remote)
	svc, err := cardmap.New(st, f, cardmap.WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatalf("cmdtest: new service: %v", err)
	}
	t.Cleanup(svc.AutoRefreshOff)

	return &Env{
		App: &application.Mock{
			APIKeyValue:      "test-key",
			CatalogFunc:      func() (application.Catalog, error) { return svc, nil },
			OutputFormatFunc: func() string { return "json" },
		},
		Service: svc,
		Store:   st,
		Fetcher: f,
	}
}

// Seed writes cs to the store as if a refresh had saved them.
func (e *Env) Seed(t testing.TB, cs []cards.Card) {
	t.Helper()
	if err := e.Store.UpsertAll(context.Background(), cs); err != nil {
		t.Fatalf("cmdtest: seed: %v", err)
	}
}

// Run executes cmd with args and returns what it wrote to stdout.
func Run(cmd *cobra.Command, args ...string) (string, error) {
	return RunContext(context.Background(), cmd, args...)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

// Cards is a small fixture catalog.
func Cards() []cards.Card {
	return []cards.Card{
		{ID: "xy7-54", Name: "Pikachu", ImageURL: "https://images.example/xy7-54.png", Supertype: ptr.To("Pokémon"), HP: ptr.To("60"), Set: ptr.To("Ancient Origins"), Number: ptr.To("54")},
		{ID: "base1-4", Name: "Charizard", ImageURL: "https://images.example/base1-4.png", Supertype: ptr.To("Pokémon"), Subtype: ptr.To("Stage 2"), HP: ptr.To("120"), Rarity: ptr.To("Rare Holo"), Set: ptr.To("Base"), Number: ptr.To("4")},
		{ID: "base1-91", Name: "Bill", ImageURL: "https://images.example/base1-91.png", Supertype: ptr.To("Trainer")},
	}
}
