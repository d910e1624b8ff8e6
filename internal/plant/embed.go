package plant

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/indoor_plants.json
var embeddedCatalog []byte

// EmbeddedLoader serves the catalog bundled with the binary. Used when
// no catalog URL is configured, and handy in tests.
func EmbeddedLoader() Loader {
	return func(ctx context.Context) ([]Plant, error) {
		var plants []Plant
		if err := json.Unmarshal(embeddedCatalog, &plants); err != nil {
			return nil, fmt.Errorf("decode embedded catalog: %w", err)
		}
		return plants, nil
	}
}
