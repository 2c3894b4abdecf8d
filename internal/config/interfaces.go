package config

// Store loads and saves the launcher configuration.
type Store interface {
	Load() (*Config, error)
	Save(*Config) error
}

var _ Store = (*Manager)(nil)
