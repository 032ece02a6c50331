// Package tcgapi is the client for the remote trading card catalog
// (GET /v2/cards). It fetches exactly one page per call and never retries.
package tcgapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/agentstation/cardmap/internal/transport"
	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/constants"
	"github.com/agentstation/cardmap/pkg/errors"
	"github.com/agentstation/cardmap/pkg/logging"
)

// Client fetches card pages from the remote catalog.
type Client struct {
	baseURL   string
	transport *transport.Client
	validate  *validator.Validate
	logger    *zerolog.Logger
}

type options struct {
	baseURL   string
	transport []transport.Option
	logger    *zerolog.Logger
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another catalog host (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.transport = append(o.transport, transport.WithTimeout(d)) }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.transport = append(o.transport, transport.WithUserAgent(ua)) }
}

// WithLogger sets the client logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewClient creates a catalog client.
func NewClient(opts ...Option) *Client {
	o := options{baseURL: constants.DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Default()
	}
	return &Client{
		baseURL:   o.baseURL,
		transport: transport.New(transport.APIKeyAuth(), o.transport...),
		validate:  newValidator(),
		logger:    o.logger,
	}
}

// FetchPage fetches one page of the catalog.
func (c *Client) FetchPage(ctx context.Context, credential string, page, pageSize int) (*cards.Page, error) {
	return c.get(ctx, credential, "", page, pageSize)
}

// Search fetches one page of cards matching query, using the catalog's
// query syntax (for example `name:charizard`).
func (c *Client) Search(ctx context.Context, credential, query string, page, pageSize int) (*cards.Page, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.NewValidationError("q", query, "must not be empty")
	}
	return c.get(ctx, credential, query, page, pageSize)
}

func (c *Client) get(ctx context.Context, credential, query string, page, pageSize int) (*cards.Page, error) {
	if page < 1 {
		return nil, errors.NewValidationError("page", page, "must be at least 1")
	}
	if pageSize < 1 {
		return nil, errors.NewValidationError("pageSize", pageSize, "must be at least 1")
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))
	if query != "" {
		params.Set("q", query)
	}
	endpoint := c.baseURL + constants.CardsPath + "?" + params.Encode()

	start := time.Now()
	resp, err := c.transport.Get(ctx, endpoint, credential)
	if err != nil {
		return nil, err
	}

	var result cardsResponse
	if err := transport.DecodeResponse(resp, &result); err != nil {
		c.logger.Debug().Err(err).Int("page", page).Msg("Catalog request failed")
		return nil, err
	}

	converted, err := c.convertCards(result.Data)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("page", result.Page).
		Int("count", len(converted)).
		Int("total", result.TotalCount).
		Dur("took", time.Since(start)).
		Msg("Fetched catalog page")

	return &cards.Page{
		Cards:      converted,
		Page:       result.Page,
		PageSize:   result.PageSize,
		Count:      result.Count,
		TotalCount: result.TotalCount,
	}, nil
}
