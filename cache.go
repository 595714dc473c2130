package typegraph

import "sync"

type cacheKey struct {
	description Description
	config      fingerprint
}

// nodeCache memoizes built nodes per (description identity, config
// fingerprint). Insert-if-absent: concurrent first-time builds of the same
// description converge on a single cached instance.
type nodeCache struct {
	entries sync.Map // map[cacheKey]*Node
}

func newNodeCache() *nodeCache {
	return &nodeCache{}
}

func (c *nodeCache) load(key cacheKey) (*Node, bool) {
	value, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	return value.(*Node), true
}

func (c *nodeCache) store(key cacheKey, node *Node) *Node {
	actual, _ := c.entries.LoadOrStore(key, node)
	return actual.(*Node)
}

func (c *nodeCache) reset() {
	c.entries.Range(func(key, _ interface{}) bool {
		c.entries.Delete(key)
		return true
	})
}

// sharedCache backs package-level builds for process lifetime
var sharedCache = newNodeCache()

// ResetCache clears the shared memoization cache; intended for tests
func ResetCache() {
	sharedCache.reset()
}
