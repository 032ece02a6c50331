package tcgapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cardmap/internal/utils/ptr"
	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/errors"
	"github.com/agentstation/cardmap/pkg/logging"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL+"/"), WithLogger(logging.NewNopLogger()))
}

func serveFile(t *testing.T, name string) http.HandlerFunc {
	t.Helper()
	body, err := os.ReadFile(name)
	require.NoError(t, err)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

func TestFetchPage(t *testing.T) {
	var req *http.Request
	page := serveFile(t, "testdata/cards_page.json")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req = r
		page(w, r)
	})

	got, err := c.FetchPage(context.Background(), "secret-key", 1, 50)
	require.NoError(t, err)

	assert.Equal(t, "/v2/cards", req.URL.Path)
	assert.Equal(t, "1", req.URL.Query().Get("page"))
	assert.Equal(t, "50", req.URL.Query().Get("pageSize"))
	assert.False(t, req.URL.Query().Has("q"))
	assert.Equal(t, "secret-key", req.Header.Get("X-Api-Key"))

	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 50, got.PageSize)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 17912, got.TotalCount)
	require.Len(t, got.Cards, 2)

	assert.Equal(t, cards.Card{
		ID:            "base1-4",
		Name:          "Charizard",
		ImageURL:      "https://images.pokemontcg.io/base1/4.png",
		ImageURLHiRes: ptr.String("https://images.pokemontcg.io/base1/4_hires.png"),
		Supertype:     ptr.String("Pokémon"),
		Subtype:       ptr.String("Stage 2"),
		HP:            ptr.String("120"),
		Artist:        ptr.String("Mitsuhiro Arita"),
		Rarity:        ptr.String("Rare Holo"),
		Series:        ptr.String("Base"),
		Set:           ptr.String("Base"),
		SetCode:       ptr.String("base1"),
		Number:        ptr.String("4"),
	}, got.Cards[0])
}

func TestFetchPageMissingLargeImage(t *testing.T) {
	c := newTestClient(t, serveFile(t, "testdata/cards_page.json"))

	got, err := c.FetchPage(context.Background(), "", 1, 50)
	require.NoError(t, err)

	bill := got.Cards[1]
	assert.Nil(t, bill.ImageURLHiRes)
	assert.Equal(t, "https://images.pokemontcg.io/base1/91.png", bill.DetailImageURL())
	assert.Nil(t, bill.Subtype)
	assert.Nil(t, bill.Set)
	assert.Nil(t, bill.SetCode)
	assert.Nil(t, bill.HP)
}

func TestSearch(t *testing.T) {
	var query string
	page := serveFile(t, "testdata/cards_page.json")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		page(w, r)
	})

	_, err := c.Search(context.Background(), "", "name:charizard", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, "name:charizard", query)

	_, err = c.Search(context.Background(), "", "  ", 1, 10)
	assert.True(t, errors.IsValidationError(err))
}

func TestFetchPageHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	})

	_, err := c.FetchPage(context.Background(), "", 1, 50)

	var rf *errors.RemoteFetchError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, http.StatusInternalServerError, rf.StatusCode)
	assert.Equal(t, "API error: 500 - Internal Server Error", err.Error())
}

func TestFetchPageTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(WithBaseURL(url), WithLogger(logging.NewNopLogger()))
	_, err := c.FetchPage(context.Background(), "", 1, 50)

	assert.True(t, errors.IsRemoteFetch(err))
	assert.True(t, errors.IsRemoteUnavailable(err))
}

func TestFetchPageRejectsBadPaging(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.FetchPage(context.Background(), "", 0, 50)
	assert.True(t, errors.IsValidationError(err))

	_, err = c.FetchPage(context.Background(), "", 1, 0)
	assert.True(t, errors.IsValidationError(err))
}

func TestFetchPageMalformedRecordFailsPage(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "missing name",
			body:  `{"data":[{"id":"ok-1","name":"Abra","images":{"small":"a.png"}},{"id":"bad-1","images":{"small":"b.png"}}]}`,
			field: "name",
		},
		{
			name:  "missing images",
			body:  `{"data":[{"id":"bad-2","name":"Onix"}]}`,
			field: "images",
		},
		{
			name:  "missing small image",
			body:  `{"data":[{"id":"bad-3","name":"Onix","images":{"large":"l.png"}}]}`,
			field: "images.small",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			page, err := c.FetchPage(context.Background(), "", 1, 50)
			assert.Nil(t, page)

			var me *errors.MappingError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, tt.field, me.Field)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestConvertToCardBlankOptionals(t *testing.T) {
	r := cardRecord{
		ID:       "x-1",
		Name:     "X",
		Rarity:   ptr.String(""),
		Subtypes: []string{},
		Set:      &setRecord{ID: "x", Name: ""},
		Images:   &imagesRecord{Small: "s.png", Large: ""},
	}

	c := convertToCard(r)
	assert.Nil(t, c.Rarity)
	assert.Nil(t, c.Subtype)
	assert.Nil(t, c.Set)
	assert.Equal(t, ptr.String("x"), c.SetCode)
	assert.Nil(t, c.ImageURLHiRes)
}
