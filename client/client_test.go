package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lribeiro/dexview/cache"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func detailJSON(id int, name, typeName string) string {
	return fmt.Sprintf(`{
		"id": %d,
		"name": "%s",
		"height": 7,
		"weight": 69,
		"base_experience": 64,
		"types": [{"slot": 1, "type": {"name": "%s", "url": ""}}],
		"stats": [{"base_stat": 45, "stat": {"name": "hp", "url": ""}}],
		"abilities": [{"is_hidden": false, "ability": {"name": "overgrow", "url": ""}}],
		"sprites": {"front_default": "https://example.com/%d.png"},
		"moves": [{"move": {"name": "tackle", "url": ""}, "version_group_details": []}]
	}`, id, name, typeName, id)
}

// newTestServer serves a list envelope at /pokemon/ and record details
// at /pokemon/{id}. detailCalls counts detail requests.
func newTestServer(t *testing.T, ids []int, detailCalls *atomic.Int64) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/pokemon/")
		if rest == "" {
			var results []string
			for _, id := range ids {
				results = append(results, fmt.Sprintf(`{"name": "pokemon-%d", "url": "%s/pokemon/%d"}`, id, server.URL, id))
			}
			fmt.Fprintf(w, `{"results": [%s]}`, strings.Join(results, ","))
			return
		}
		id, err := strconv.Atoi(strings.TrimSuffix(rest, "/"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if detailCalls != nil {
			detailCalls.Add(1)
		}
		fmt.Fprint(w, detailJSON(id, fmt.Sprintf("pokemon-%d", id), "grass"))
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchListAt(t *testing.T) {
	server := newTestServer(t, []int{1, 2, 3}, nil)
	c := NewClient(server.URL+"/pokemon", nil, testLogger())

	items, err := c.FetchListAt(context.Background(), 0, 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "pokemon-1", items[0].Name)
	assert.Contains(t, items[0].URL, "/pokemon/1")
}

func TestFetchListRejectsMissingResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, testLogger())
	_, err := c.FetchList(context.Background(), 3)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestFetchListRejectsItemsWithoutNameOrURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [{"name": "", "url": "https://example.com/1"}]}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, testLogger())
	_, err := c.FetchList(context.Background(), 1)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestFetchDetailsNormalizesTypes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, detailJSON(6, "charizard", "FIRE"))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, testLogger())
	record, err := c.FetchDetails(context.Background(), server.URL+"/6", false)
	require.NoError(t, err)

	assert.Equal(t, 6, record.ID)
	assert.Equal(t, "fire", record.PrimaryType())
	assert.Equal(t, 45, record.HP())
	require.Len(t, record.Moves, 1)
}

func TestFetchDetailsCachesSnapshotWithoutMoves(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, detailJSON(1, "bulbasaur", "grass"))
	}))
	defer server.Close()

	store := cache.New(cache.NewMemStorage(0), testLogger())
	c := NewClient(server.URL, store, testLogger())
	url := server.URL + "/1"

	first, err := c.FetchDetails(context.Background(), url, true)
	require.NoError(t, err)
	assert.Len(t, first.Moves, 1, "network fetch keeps the full move list")
	require.Equal(t, int64(1), calls.Load())

	second, err := c.FetchDetails(context.Background(), url, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load(), "second fetch must be served from cache")
	assert.Equal(t, "bulbasaur", second.Name)
	assert.Empty(t, second.Moves, "cached snapshot drops moves")
}

func TestFetchDetailsBypassesCacheWhenDisabled(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, detailJSON(1, "bulbasaur", "grass"))
	}))
	defer server.Close()

	store := cache.New(cache.NewMemStorage(0), testLogger())
	c := NewClient(server.URL, store, testLogger())
	url := server.URL + "/1"

	_, err := c.FetchDetails(context.Background(), url, false)
	require.NoError(t, err)
	_, err = c.FetchDetails(context.Background(), url, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetchDetailsRejectsInvalidRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No sprites section at all.
		fmt.Fprint(w, `{"id": 1, "name": "bulbasaur", "types": [{"slot": 1, "type": {"name": "grass"}}]}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, testLogger())
	_, err := c.FetchDetails(context.Background(), server.URL+"/1", false)
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestFetchDetailsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, testLogger())
	_, err := c.FetchDetails(context.Background(), server.URL+"/1", false)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
}

func TestFetchBatchPreservesListOrder(t *testing.T) {
	server := newTestServer(t, []int{9, 3, 5}, nil)
	c := NewClient(server.URL+"/pokemon", nil, testLogger())

	batch, err := c.FetchBatch(context.Background(), 0, 3)
	require.NoError(t, err)
	require.Len(t, batch, 3)
	assert.Equal(t, 9, batch[0].ID)
	assert.Equal(t, 3, batch[1].ID)
	assert.Equal(t, 5, batch[2].ID)
}

func TestFetchBatchFailsWhole(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/pokemon/")
		if rest == "" {
			fmt.Fprintf(w, `{"results": [
				{"name": "pokemon-1", "url": "%s/pokemon/1"},
				{"name": "pokemon-2", "url": "%s/pokemon/2"}
			]}`, server.URL, server.URL)
			return
		}
		if rest == "2" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, detailJSON(1, "pokemon-1", "grass"))
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	c := NewClient(server.URL+"/pokemon", nil, testLogger())
	batch, err := c.FetchBatch(context.Background(), 0, 2)
	require.Error(t, err)
	assert.Nil(t, batch)
}

func TestFetchSpeciesServedFromCache(t *testing.T) {
	store := cache.New(cache.NewMemStorage(0), testLogger())
	store.Set("pokemon_species_25", &Species{Name: "pikachu"})

	c := NewClient("", store, testLogger())
	species, err := c.FetchSpecies(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, "pikachu", species.Name)
}

func TestValidateAndNormalize(t *testing.T) {
	sprites := &SpriteSet{FrontDefault: "x.png"}

	t.Run("rejects bad ids and blank names", func(t *testing.T) {
		assert.Nil(t, validateAndNormalize(nil))
		assert.Nil(t, validateAndNormalize(&rawPokemon{ID: 0, Name: "x", Types: []TypeSlot{{}}, Sprites: sprites}))
		assert.Nil(t, validateAndNormalize(&rawPokemon{ID: 1, Name: "   ", Types: []TypeSlot{{}}, Sprites: sprites}))
		assert.Nil(t, validateAndNormalize(&rawPokemon{ID: 1, Name: "x", Sprites: sprites}))
		assert.Nil(t, validateAndNormalize(&rawPokemon{ID: 1, Name: "x", Types: []TypeSlot{{}}}))
	})

	t.Run("defaults missing slot and type name", func(t *testing.T) {
		p := validateAndNormalize(&rawPokemon{
			ID:      1,
			Name:    " bulbasaur ",
			Types:   []TypeSlot{{Type: NamedRef{Name: ""}}},
			Sprites: sprites,
		})
		require.NotNil(t, p)
		assert.Equal(t, "bulbasaur", p.Name)
		assert.Equal(t, 1, p.Types[0].Slot)
		assert.Equal(t, "normal", p.Types[0].Type.Name)
	})
}

func TestCacheSnapshotPreservesEverythingButMoves(t *testing.T) {
	p := &Pokemon{
		ID:    25,
		Name:  "pikachu",
		Types: []TypeSlot{{Slot: 1, Type: NamedRef{Name: "electric"}}},
		Moves: []Move{{Move: NamedRef{Name: "thunderbolt"}}},
	}

	snap := cacheSnapshot(p)
	assert.Equal(t, 25, snap.ID)
	assert.Equal(t, "pikachu", snap.Name)
	assert.Empty(t, snap.Moves)
	assert.Len(t, p.Moves, 1, "original untouched")
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Status: 404, URL: "https://example.com/x"}
	assert.Contains(t, err.Error(), "404")
	require.True(t, errors.As(error(err), new(*StatusError)))
}
