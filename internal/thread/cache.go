package thread

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ViewCache memoizes assembled views keyed by (focusedID, snapshot version).
// It is a purely additive optimization: a miss just means Assemble runs
// again, and entries for superseded snapshot versions age out on their own.
type ViewCache struct {
	cache *gocache.Cache
}

// DefaultViewTTL bounds how long a cached view outlives its snapshot.
const DefaultViewTTL = 5 * time.Minute

// NewViewCache creates a view cache with the given TTL.
// A ttl of 0 uses DefaultViewTTL.
func NewViewCache(ttl time.Duration) *ViewCache {
	if ttl == 0 {
		ttl = DefaultViewTTL
	}
	return &ViewCache{cache: gocache.New(ttl, 2*ttl)}
}

// Get returns the cached view for (focusedID, version) if present.
func (c *ViewCache) Get(focusedID string, version int64) (View, bool) {
	cached, ok := c.cache.Get(viewKey(focusedID, version))
	if !ok {
		return View{}, false
	}
	view, ok := cached.(View)
	return view, ok
}

// Put stores an assembled view under its own focus id and version.
func (c *ViewCache) Put(v View) {
	c.cache.SetDefault(viewKey(v.FocusedID, v.Version), v)
}

// Assemble returns the cached view for (focusedID, rel.Version()) or
// assembles and caches a fresh one.
func (c *ViewCache) Assemble(focusedID string, rel Relations) View {
	if view, ok := c.Get(focusedID, rel.Version()); ok {
		return view
	}
	view := Assemble(focusedID, rel)
	c.Put(view)
	return view
}

func viewKey(focusedID string, version int64) string {
	return fmt.Sprintf("%s@%d", focusedID, version)
}
