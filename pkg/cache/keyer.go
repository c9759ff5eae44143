package cache

// keyVersion is bumped whenever the layout format or solver semantics change,
// invalidating every existing entry.
const keyVersion = "v2"

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey returns the key of the layout solved from a requirement
	// record (by content hash) under a solver config (by content hash).
	ResultKey(recordHash, configHash string) string
}

// DefaultKeyer produces unscoped keys of the form "result:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(recordHash, configHash string) string {
	return hashKey("result", keyVersion, recordHash, configHash)
}

// ScopedKeyer prefixes every key of an inner Keyer, so that staging and
// production servers can share one Redis without reading each other's
// layouts. The server builds one from WORKCELL_KEY_PREFIX.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ResultKey implements Keyer.
func (k *ScopedKeyer) ResultKey(recordHash, configHash string) string {
	return k.prefix + k.inner.ResultKey(recordHash, configHash)
}
