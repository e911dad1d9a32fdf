// Package config provides centralized configuration management.
//
// Configuration is assembled from defaults declared as struct tags,
// overridden by a .env file when present, and finally by environment
// variables. Nested keys map to underscore-separated variables, e.g.
// STORAGE_ROOT -> storage.root and PIPELINE_PRIMARY_LANGUAGE ->
// pipeline.primary_language.
//
// Each section's struct lives with the package it configures; this package
// only composes them and drives the loading.
package config
