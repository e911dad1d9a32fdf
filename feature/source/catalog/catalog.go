package catalog

import (
	"context"
	"errors"
)

// ErrUnknownCard indicates the catalog has no mapping for the card. The
// provider treats it like an upstream 404.
var ErrUnknownCard = errors.New("card not in catalog")

// Lookup maps (set, cardNumber) to a provider-internal image ID.
type Lookup interface {
	ProviderID(ctx context.Context, setID, number string) (string, error)
}

// Source names for the catalog backing store.
const (
	SourceDB   = "db"
	SourceJSON = "json"
	SourceNone = "none"
)

// Config holds configuration for the card catalog.
type Config struct {
	// Source selects the catalog backing store (db, json, none).
	Source string `mapstructure:"source" default:"none"`
	// ObjectKey is the storage key of the JSON catalog for the json source.
	ObjectKey string `mapstructure:"object_key" default:"catalog.json"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"cardpress"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
