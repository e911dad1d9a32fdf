package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memStore struct {
	objects map[string][]byte
	reads   int
}

func (s *memStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func (s *memStore) Read(_ context.Context, key string) ([]byte, error) {
	s.reads++
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return data, nil
}

func (s *memStore) Write(_ context.Context, key string, data []byte) error {
	s.objects[key] = data
	return nil
}

func (s *memStore) Remove(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func TestJSONLookupProviderID(t *testing.T) {
	store := &memStore{objects: map[string][]byte{
		"catalog.json": []byte(`{"swsh1/042": "11234", "swsh1/043": "11235"}`),
	}}
	lookup := NewJSONLookup(store, "catalog.json")
	ctx := context.Background()

	id, err := lookup.ProviderID(ctx, "swsh1", "042")
	assert.NoError(t, err)
	assert.Equal(t, "11234", id)

	_, err = lookup.ProviderID(ctx, "swsh1", "999")
	assert.ErrorIs(t, err, ErrUnknownCard)

	// The catalog object is fetched once and served from cache afterwards.
	_, _ = lookup.ProviderID(ctx, "swsh1", "043")
	assert.Equal(t, 1, store.reads)
}

func TestJSONLookupMissingCatalog(t *testing.T) {
	store := &memStore{objects: map[string][]byte{}}
	lookup := NewJSONLookup(store, "catalog.json")

	_, err := lookup.ProviderID(context.Background(), "swsh1", "042")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownCard)
}

func TestJSONLookupMalformedCatalog(t *testing.T) {
	store := &memStore{objects: map[string][]byte{
		"catalog.json": []byte(`{"swsh1/042": `),
	}}
	lookup := NewJSONLookup(store, "catalog.json")

	_, err := lookup.ProviderID(context.Background(), "swsh1", "042")
	assert.Error(t, err)

	// The load error is sticky; later lookups do not retry the fetch.
	_, err2 := lookup.ProviderID(context.Background(), "swsh1", "043")
	assert.Error(t, err2)
	assert.Equal(t, 1, store.reads)
}
