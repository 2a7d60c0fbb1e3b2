package git

import "sync"

// CachedService wraps a Service with a bounded cache for Show output.
// Only full object names are cached: the patch text for a given hash never
// changes, so re-opening a Show screen (or refreshing it) can skip the
// subprocess. Symbolic revisions (HEAD, branches, tags) move, so they
// always delegate, as does everything mutable — status, diffs, refs — since
// the worktree may be changed externally at any time and every refresh must
// re-derive from live queries.
type CachedService struct {
	Service

	mu    sync.Mutex
	shows map[string]string
}

// maxShowEntries caps the cache; when exceeded it is flushed entirely.
// Patches can be large, so the bound is deliberately small.
const maxShowEntries = 32

// NewCachedService wraps an existing Service.
func NewCachedService(inner Service) *CachedService {
	return &CachedService{Service: inner, shows: make(map[string]string, 8)}
}

// Show returns the patch text for a revision, cached when the revision is
// a full hash.
func (c *CachedService) Show(rev string) (string, error) {
	if !isObjectName(rev) {
		return c.Service.Show(rev)
	}

	c.mu.Lock()
	if out, ok := c.shows[rev]; ok {
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	out, err := c.Service.Show(rev)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	if len(c.shows) >= maxShowEntries {
		c.shows = make(map[string]string, 8)
	}
	c.shows[rev] = out
	c.mu.Unlock()
	return out, nil
}

// isObjectName reports whether rev is an unabbreviated hash (SHA-1 or
// SHA-256). Anything shorter or symbolic can resolve to a different commit
// between calls.
func isObjectName(rev string) bool {
	if len(rev) != 40 && len(rev) != 64 {
		return false
	}
	for i := 0; i < len(rev); i++ {
		c := rev[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
