package driven

// ConfigStore holds flat dot-notation settings such as "raster.dpi".
// Typed getters return the zero value for missing keys and for values of
// the wrong type, so callers fall back to their defaults.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string

	// GetInt accepts any integer type the backing format produces.
	GetInt(key string) int

	// GetFloat widens integers, so "rate = 2" reads as 2.0.
	GetFloat(key string) float64

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Path returns where the configuration is persisted.
	Path() string
}
