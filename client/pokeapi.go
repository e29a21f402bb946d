package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lribeiro/dexview/cache"
)

// DefaultBaseURL is the public PokeAPI record endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2/pokemon"

// speciesBaseURL serves the species documents keyed by record id.
const speciesBaseURL = "https://pokeapi.co/api/v2/pokemon-species"

// Client fetches records from the remote API, validating and
// normalizing payloads and reading/writing through the cache store.
// Calls are idempotent and retry-free; retry policy belongs to the
// caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	store      *cache.Store
	logger     *log.Logger
}

// NewClient creates an API client. store may be nil to disable
// cache-through behavior entirely.
func NewClient(baseURL string, store *cache.Store, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		store:   store,
		logger:  logger,
	}
}

// DetailsURL returns the record resource URL for an id.
func (c *Client) DetailsURL(id int) string {
	return fmt.Sprintf("%s/%d", c.baseURL, id)
}

// listEnvelope is the paginated list response shape.
type listEnvelope struct {
	Results []ListItem `json:"results"`
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, URL: url}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// FetchList fetches the first limit entries of the list envelope.
func (c *Client) FetchList(ctx context.Context, limit int) ([]ListItem, error) {
	return c.FetchListAt(ctx, 0, limit)
}

// FetchListAt fetches a slice of the list envelope at an absolute offset.
func (c *Client) FetchListAt(ctx context.Context, offset, limit int) ([]ListItem, error) {
	url := fmt.Sprintf("%s/?offset=%d&limit=%d", c.baseURL, offset, limit)
	if offset == 0 {
		url = fmt.Sprintf("%s/?limit=%d", c.baseURL, limit)
	}

	var env listEnvelope
	if err := c.getJSON(ctx, url, &env); err != nil {
		return nil, err
	}
	if env.Results == nil {
		return nil, fmt.Errorf("%w: missing results", ErrInvalidResponse)
	}
	for _, item := range env.Results {
		if item.Name == "" || item.URL == "" {
			return nil, fmt.Errorf("%w: item missing name or url", ErrInvalidResponse)
		}
	}
	return env.Results, nil
}

// FetchDetails resolves a single record. With useCache it returns the
// cached snapshot when present and valid; on a miss it fetches,
// validates, normalizes, stores a compact snapshot, and returns the
// full record. Cache read failures are treated as misses.
func (c *Client) FetchDetails(ctx context.Context, url string, useCache bool) (*Pokemon, error) {
	cacheKey := "pokemon_" + url

	if useCache && c.store != nil {
		var cached Pokemon
		if c.store.Get(cacheKey, &cached) {
			return &cached, nil
		}
	}

	var raw rawPokemon
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}

	record := validateAndNormalize(&raw)
	if record == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecord, url)
	}

	if useCache && c.store != nil {
		c.store.Set(cacheKey, cacheSnapshot(record))
	}

	return record, nil
}

// FetchBatch fetches a list slice and resolves every item's details in
// parallel. Any individual failure fails the whole batch; the relative
// order of the source list is preserved.
func (c *Client) FetchBatch(ctx context.Context, offset, limit int) ([]Pokemon, error) {
	items, err := c.FetchListAt(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	results := make([]*Pokemon, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			record, err := c.FetchDetails(gctx, item.URL, true)
			if err != nil {
				return err
			}
			results[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := make([]Pokemon, 0, len(results))
	for _, r := range results {
		batch = append(batch, *r)
	}
	return batch, nil
}

// FetchSpecies fetches the species document for a record id.
func (c *Client) FetchSpecies(ctx context.Context, id int) (*Species, error) {
	cacheKey := fmt.Sprintf("pokemon_species_%d", id)
	var species Species
	if c.store != nil && c.store.Get(cacheKey, &species) {
		return &species, nil
	}

	url := fmt.Sprintf("%s/%d", speciesBaseURL, id)
	if err := c.getJSON(ctx, url, &species); err != nil {
		return nil, err
	}
	if c.store != nil {
		c.store.Set(cacheKey, &species)
	}
	return &species, nil
}

// FetchAbility fetches an ability document by resource URL.
func (c *Client) FetchAbility(ctx context.Context, url string) (*Ability, error) {
	cacheKey := "ability_" + url
	var ability Ability
	if c.store != nil && c.store.Get(cacheKey, &ability) {
		return &ability, nil
	}

	if err := c.getJSON(ctx, url, &ability); err != nil {
		return nil, err
	}
	if c.store != nil {
		c.store.Set(cacheKey, &ability)
	}
	return &ability, nil
}

// FetchEvolutionChain fetches an evolution chain document by resource URL.
func (c *Client) FetchEvolutionChain(ctx context.Context, url string) (*EvolutionChain, error) {
	cacheKey := "evolution_chain_" + url
	var chain EvolutionChain
	if c.store != nil && c.store.Get(cacheKey, &chain) {
		return &chain, nil
	}

	if err := c.getJSON(ctx, url, &chain); err != nil {
		return nil, err
	}
	if c.store != nil {
		c.store.Set(cacheKey, &chain)
	}
	return &chain, nil
}
