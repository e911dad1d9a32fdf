package cmd

import (
	"fmt"
	"time"

	"cardpress/core/config"
	"cardpress/core/imaging"
	"cardpress/core/logger"
	"cardpress/core/storage"
	"cardpress/feature/reconcile"
	"cardpress/feature/source"
	"cardpress/feature/source/catalog"

	"go.uber.org/zap"
)

// deps bundles everything a pipeline command needs.
type deps struct {
	cfg    *config.Config
	log    *zap.Logger
	store  storage.Store
	engine *reconcile.Engine
}

// buildDeps loads configuration and wires the store, codec, image source, and
// repair engine together.
func buildDeps() (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	zap.ReplaceGlobals(log)

	if !cfg.Storage.IsValidDriver() {
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact store: %w", err)
	}

	src, err := buildSource(cfg, store, log)
	if err != nil {
		return nil, err
	}

	engine := reconcile.New(store, imaging.NewCodec(), src, cfg.Pipeline, log)
	return &deps{cfg: cfg, log: log, store: store, engine: engine}, nil
}

// buildSource assembles the provider chain, with a catalog lookup when one is
// configured.
func buildSource(cfg *config.Config, store storage.Store, log *zap.Logger) (source.Source, error) {
	specs, err := source.ParseProviders(cfg.Source.Providers)
	if err != nil {
		return nil, fmt.Errorf("invalid source configuration: %w", err)
	}

	var lookup catalog.Lookup
	switch cfg.Catalog.Source {
	case catalog.SourceDB:
		db, err := catalog.Connect(cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("catalog database required: %w", err)
		}
		lookup = catalog.NewDBLookup(db)
		log.Info("connected to catalog database")
	case catalog.SourceJSON:
		lookup = catalog.NewJSONLookup(store, cfg.Catalog.ObjectKey)
	case catalog.SourceNone, "":
		// Providers referencing {id} will refuse to fetch.
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}

	timeout := time.Duration(cfg.Source.TimeoutSeconds) * time.Second
	providers := make([]source.Provider, 0, len(specs))
	for _, spec := range specs {
		providers = append(providers, source.NewHTTPProvider(spec, timeout, cfg.Source.UserAgent, lookup))
	}

	delay := time.Duration(cfg.Source.RequestDelayMS) * time.Millisecond
	return source.NewChain(providers, delay, log), nil
}
