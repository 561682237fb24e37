package cache

import "strconv"

// SchemaVersion is mixed into every resolution key. Bump it when the
// cached payload layout changes so stale entries are never decoded.
const SchemaVersion = 1

// Keyer derives cache keys.
type Keyer interface {
	// ResolutionKey identifies one resolution pass by its ordered inputs.
	ResolutionKey(sources any, fallbacks, overrides map[string]any, options any) string
}

// DefaultKeyer hashes the canonical JSON of the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResolutionKey returns "resolve:v<version>:<sha256>".
func (DefaultKeyer) ResolutionKey(sources any, fallbacks, overrides map[string]any, options any) string {
	return hashKey("resolve:v"+strconv.Itoa(SchemaVersion), sources, fallbacks, overrides, options)
}
