package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cardpress/feature/inventory"

	"go.uber.org/zap"
)

// ErrNotFound indicates that no provider has an image for the card. It is an
// expected outcome, not a failure of the source itself.
var ErrNotFound = errors.New("card image not found upstream")

// Source abstracts "fetch raw bytes for one card".
type Source interface {
	Fetch(ctx context.Context, card inventory.CardKey) ([]byte, error)
}

// Provider is one upstream CDN in the priority list.
type Provider interface {
	// Name identifies the provider in logs and failure records.
	Name() string
	// Fetch returns the raw image bytes, or ErrNotFound if the provider has
	// no image for this card.
	Fetch(ctx context.Context, card inventory.CardKey) ([]byte, error)
}

// Config holds configuration for the image source.
type Config struct {
	// Providers is a comma-separated priority list of name=urlTemplate pairs.
	// Templates may reference {language}, {set}, {number}, and {id}; the
	// latter requires a catalog lookup.
	Providers string `mapstructure:"providers" default:""`
	// TimeoutSeconds bounds each upstream request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RequestDelayMS is a politeness delay inserted after each successful
	// upstream fetch.
	RequestDelayMS int `mapstructure:"request_delay_ms" default:"250"`
	// UserAgent is sent with every upstream request.
	UserAgent string `mapstructure:"user_agent" default:"cardpress/1.0"`
}

// Chain tries providers in priority order until one succeeds or all fail.
type Chain struct {
	providers []Provider
	delay     time.Duration
	log       *zap.Logger
}

// NewChain creates a provider chain. The provider slice order is the priority
// order.
func NewChain(providers []Provider, delay time.Duration, log *zap.Logger) *Chain {
	return &Chain{providers: providers, delay: delay, log: log}
}

// Fetch returns the first provider's bytes. Providers answering NotFound or
// erroring are skipped; if every provider misses, the result is ErrNotFound
// wrapped with the last transient error, if any.
func (c *Chain) Fetch(ctx context.Context, card inventory.CardKey) ([]byte, error) {
	var lastErr error
	for _, p := range c.providers {
		data, err := p.Fetch(ctx, card)
		if err == nil {
			c.log.Debug("fetched card image",
				zap.String("card", card.String()),
				zap.String("provider", p.Name()),
				zap.Int("bytes", len(data)),
			)
			if c.delay > 0 {
				select {
				case <-time.After(c.delay):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
			return data, nil
		}
		if errors.Is(err, ErrNotFound) {
			c.log.Debug("provider has no image",
				zap.String("card", card.String()),
				zap.String("provider", p.Name()),
			)
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		c.log.Warn("provider fetch failed",
			zap.String("card", card.String()),
			zap.String("provider", p.Name()),
			zap.Error(err),
		)
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w (last provider error: %v)", ErrNotFound, lastErr)
	}
	return nil, ErrNotFound
}

// ParseProviders parses the comma-separated name=template provider list from
// configuration, preserving order.
func ParseProviders(spec string) ([]ProviderSpec, error) {
	var specs []ProviderSpec
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		name, tmpl, ok := strings.Cut(tok, "=")
		if !ok || name == "" || tmpl == "" {
			return nil, fmt.Errorf("invalid provider entry %q (want name=urlTemplate)", tok)
		}
		specs = append(specs, ProviderSpec{Name: strings.TrimSpace(name), URLTemplate: strings.TrimSpace(tmpl)})
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no providers configured")
	}
	return specs, nil
}

// ProviderSpec is one parsed provider configuration entry.
type ProviderSpec struct {
	Name        string
	URLTemplate string
}
