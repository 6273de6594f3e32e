package tree

import "sync"

// filterMu serializes queries process-wide.
var filterMu sync.Mutex

// Filter returns the nodes under n selected by query. Queries are not
// evaluated yet: the result is always empty and non-nil. Calls are
// serialized process-wide.
func Filter[N comparable](c *Context[N], n N, query string) ([]N, error) {
	filterMu.Lock()
	defer filterMu.Unlock()
	if c.disposed {
		return nil, ErrDisposed
	}
	c.cfg.log.Debug("filter", "query", query, "kind", c.iface.Kind(n))
	return []N{}, nil
}
