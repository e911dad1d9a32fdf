package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"cardpress/core/storage"
)

// JSONLookup resolves provider IDs from a JSON catalog object in the artifact
// store. The object maps "set/number" keys to provider IDs:
//
//	{ "swsh1/042": "11234", "swsh1/043": "11235" }
//
// The catalog is loaded once on first use and cached for the run.
type JSONLookup struct {
	store storage.Store
	key   string

	once    sync.Once
	loadErr error
	index   map[string]string
}

// NewJSONLookup creates a lookup backed by the given catalog object.
func NewJSONLookup(store storage.Store, objectKey string) *JSONLookup {
	return &JSONLookup{store: store, key: objectKey}
}

func (l *JSONLookup) load(ctx context.Context) error {
	l.once.Do(func() {
		data, err := l.store.Read(ctx, l.key)
		if err != nil {
			l.loadErr = fmt.Errorf("failed to read catalog %s: %w", l.key, err)
			return
		}
		if err := json.Unmarshal(data, &l.index); err != nil {
			l.loadErr = fmt.Errorf("failed to parse catalog %s: %w", l.key, err)
		}
	})
	return l.loadErr
}

// ProviderID looks up the provider-internal ID for one card.
func (l *JSONLookup) ProviderID(ctx context.Context, setID, number string) (string, error) {
	if err := l.load(ctx); err != nil {
		return "", err
	}
	id, ok := l.index[setID+"/"+number]
	if !ok || id == "" {
		return "", ErrUnknownCard
	}
	return id, nil
}
