package driven

// ConfigStore holds the persisted settings under dot-notation keys
// such as "tagging.mode" or "writer.line_width".
//
// Typed getters return the zero value for missing keys and for values
// of another type, so callers apply their own defaults.
type ConfigStore interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns a string value.
	GetString(key string) string

	// GetInt returns an integer value.
	GetInt(key string) int

	// GetBool returns a boolean value.
	GetBool(key string) bool

	// GetStringSlice returns a copy of a list value.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save writes the current values to the backing file.
	Save() error

	// Load replaces the current values with the backing file's.
	Load() error

	// Path returns the backing file path, or a placeholder for in-memory stores.
	Path() string
}
