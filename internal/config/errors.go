package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidStorage is returned for an unknown storage backend name.
	ErrInvalidStorage = errors.New("invalid storage backend: must be sqlite, redis or memory")

	// ErrMissingRedisURL is returned when the redis backend has no URL.
	ErrMissingRedisURL = errors.New("redis storage requires a redis URL")

	// ErrMissingDataDir is returned when the sqlite backend has no directory.
	ErrMissingDataDir = errors.New("sqlite storage requires a data directory")

	// ErrInvalidStrategy is returned for an unknown pricing strategy.
	ErrInvalidStrategy = errors.New("invalid pricing strategy: must be catalog or pages")

	// ErrInvalidProvider is returned for an unknown location provider.
	ErrInvalidProvider = errors.New("invalid location provider: must be google, osm or mock")

	// ErrMissingAPIKey is returned when the google provider has no API key.
	ErrMissingAPIKey = errors.New("google provider requires an API key")

	// ErrInvalidTimeout is returned when the lookup timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRadius is returned when the search radius is not positive.
	ErrInvalidRadius = errors.New("invalid search radius: must be positive")

	// ErrInvalidFormat is returned for an unknown report format.
	ErrInvalidFormat = errors.New("invalid report format: must be text, json or markdown")
)
