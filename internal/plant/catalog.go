package plant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Loader fetches the full plant catalog.
type Loader func(ctx context.Context) ([]Plant, error)

// Catalog caches the plant list for the lifetime of a page session.
// Only a successful load is cached; after a failure the next call
// loads again. Construct one per session and hand it to consumers
// instead of sharing module-level state.
type Catalog struct {
	mu     sync.Mutex
	loader Loader
	plants []Plant
	loaded bool
}

func NewCatalog(loader Loader) *Catalog {
	return &Catalog{loader: loader}
}

// Plants returns the cached catalog, loading it on first use.
func (c *Catalog) Plants(ctx context.Context) ([]Plant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.plants, nil
	}
	plants, err := c.loader(ctx)
	if err != nil {
		return nil, fmt.Errorf("load plant catalog: %w", err)
	}
	c.plants = plants
	c.loaded = true
	return c.plants, nil
}

// HTTPLoader GETs a JSON catalog document, typically the static
// indoor_plants.json the site serves.
func HTTPLoader(client *http.Client, url string) Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context) ([]Plant, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build catalog request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog %s: status %d", url, resp.StatusCode)
		}
		var plants []Plant
		if err := json.NewDecoder(resp.Body).Decode(&plants); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		return plants, nil
	}
}
