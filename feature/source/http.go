package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cardpress/feature/inventory"
	"cardpress/feature/source/catalog"
)

// HTTPProvider fetches card scans from one CDN endpoint described by a URL
// template.
type HTTPProvider struct {
	name      string
	template  string
	client    *http.Client
	userAgent string
	lookup    catalog.Lookup
}

// NewHTTPProvider creates a provider from its spec. The lookup is only
// consulted when the template references {id}; it may be nil otherwise.
func NewHTTPProvider(spec ProviderSpec, timeout time.Duration, userAgent string, lookup catalog.Lookup) *HTTPProvider {
	return &HTTPProvider{
		name:      spec.Name,
		template:  spec.URLTemplate,
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		lookup:    lookup,
	}
}

// Name identifies the provider.
func (p *HTTPProvider) Name() string { return p.name }

// Fetch downloads the raw image. HTTP 404 (and a missing catalog mapping, for
// {id} templates) map to ErrNotFound.
func (p *HTTPProvider) Fetch(ctx context.Context, card inventory.CardKey) ([]byte, error) {
	url, err := p.expand(ctx, card)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", card, err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", p.name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response from %s: %w", p.name, err)
		}
		return data, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("%s returned HTTP %d", p.name, resp.StatusCode)
	}
}

// expand substitutes the template placeholders for one card.
func (p *HTTPProvider) expand(ctx context.Context, card inventory.CardKey) (string, error) {
	url := p.template
	url = strings.ReplaceAll(url, "{language}", card.Language)
	url = strings.ReplaceAll(url, "{set}", card.SetID)
	url = strings.ReplaceAll(url, "{number}", card.Number)

	if strings.Contains(url, "{id}") {
		if p.lookup == nil {
			return "", fmt.Errorf("provider %s requires a catalog lookup for {id}", p.name)
		}
		id, err := p.lookup.ProviderID(ctx, card.SetID, card.Number)
		if err != nil {
			if errors.Is(err, catalog.ErrUnknownCard) {
				return "", ErrNotFound
			}
			return "", fmt.Errorf("catalog lookup for %s failed: %w", card, err)
		}
		url = strings.ReplaceAll(url, "{id}", id)
	}
	return url, nil
}
